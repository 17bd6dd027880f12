package game

import (
	"errors"
	"strings"
	"testing"
)

func TestWorkRequiresJob(t *testing.T) {
	svc := newTestService(t, 1)
	if _, err := svc.Work(); !errors.Is(err, ErrNoJob) {
		t.Fatalf("expected ErrNoJob, got %v", err)
	}
	if svc.state.Ledger.Cash != StartingCash {
		t.Fatalf("rejected work mutated cash: %d", svc.state.Ledger.Cash)
	}
}

func TestWorkRequiresEnergy(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.JobID = "fastfood"
	svc.state.Stats.Energy = 19 // fastfood costs 20
	if _, err := svc.Work(); !errors.Is(err, ErrNotEnoughEnergy) {
		t.Fatalf("expected ErrNotEnoughEnergy, got %v", err)
	}
}

func TestWorkPaysAndDrains(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.JobID = "fastfood"
	if _, err := svc.Work(); err != nil {
		t.Fatalf("work: %v", err)
	}
	if svc.state.Ledger.Cash != StartingCash+800 {
		t.Fatalf("cash = %d", svc.state.Ledger.Cash)
	}
	if svc.state.Stats.Energy != 65 {
		t.Fatalf("energy = %d, want 65", svc.state.Stats.Energy)
	}
	if svc.state.Stats.Happiness != 70-WorkHappinessCost {
		t.Fatalf("happiness = %d", svc.state.Stats.Happiness)
	}
	if svc.state.Experience != 1 {
		t.Fatalf("experience = %d, want 1", svc.state.Experience)
	}
}

func TestApplyForJobGatesOnExperience(t *testing.T) {
	svc := newTestService(t, 1)
	if _, err := svc.ApplyForJob("ceo"); !errors.Is(err, ErrJobRequirements) {
		t.Fatalf("expected ErrJobRequirements, got %v", err)
	}
	if _, err := svc.ApplyForJob("fastfood"); err != nil {
		t.Fatalf("entry job should be open: %v", err)
	}
	if svc.state.JobID != "fastfood" {
		t.Fatalf("job = %q", svc.state.JobID)
	}
	svc.state.Experience = 50
	if _, err := svc.ApplyForJob("ceo"); err != nil {
		t.Fatalf("ceo with 50 experience: %v", err)
	}
}

func TestStudyRequiresEnergyThreshold(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Stats.Energy = StudyEnergyCost - 1
	if _, err := svc.Study(); !errors.Is(err, ErrNotEnoughEnergy) {
		t.Fatalf("expected ErrNotEnoughEnergy, got %v", err)
	}

	svc.state.Stats.Energy = StudyEnergyCost
	svc.state.Stats.Intelligence = 50
	if _, err := svc.Study(); err != nil {
		t.Fatalf("study at threshold: %v", err)
	}
	if svc.state.Stats.Energy != 0 {
		t.Fatalf("energy = %d", svc.state.Stats.Energy)
	}
	gain := svc.state.Stats.Intelligence - 50
	if gain < 5 || gain > 9 {
		t.Fatalf("intelligence gain = %d, want 5..9", gain)
	}
}

func TestSocializeRequiresEnergyThreshold(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Stats.Energy = SocializeEnergyCost - 1
	if _, err := svc.Socialize(); !errors.Is(err, ErrNotEnoughEnergy) {
		t.Fatalf("expected ErrNotEnoughEnergy, got %v", err)
	}

	svc.state.Stats.Energy = SocializeEnergyCost
	svc.state.Stats.Happiness = 50
	svc.state.Stats.Reputation = 50
	if _, err := svc.Socialize(); err != nil {
		t.Fatalf("socialize at threshold: %v", err)
	}
	if svc.state.Stats.Energy != 0 {
		t.Fatalf("energy = %d", svc.state.Stats.Energy)
	}
	if gain := svc.state.Stats.Happiness - 50; gain < 5 || gain > 19 {
		t.Fatalf("happiness gain = %d, want 5..19", gain)
	}
	if gain := svc.state.Stats.Reputation - 50; gain < 1 || gain > 5 {
		t.Fatalf("reputation gain = %d, want 1..5", gain)
	}
}

func TestRestRecovers(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Stats.Energy = 10
	svc.state.Stats.Health = 50
	if _, err := svc.Rest(); err != nil {
		t.Fatalf("rest: %v", err)
	}
	if gain := svc.state.Stats.Energy - 10; gain < 20 || gain > 49 {
		t.Fatalf("energy gain = %d, want 20..49", gain)
	}
	if gain := svc.state.Stats.Health - 50; gain < 1 || gain > 5 {
		t.Fatalf("health gain = %d, want 1..5", gain)
	}
}

func TestGymCostsMoney(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Ledger.Cash = GymCost - 1
	if _, err := svc.Gym(); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	svc.state.Ledger.Cash = GymCost
	if _, err := svc.Gym(); err != nil {
		t.Fatalf("gym: %v", err)
	}
	if svc.state.Ledger.Cash != 0 {
		t.Fatalf("cash = %d", svc.state.Ledger.Cash)
	}
}

func TestGambleRejectsBelowMinimum(t *testing.T) {
	svc := newTestService(t, 1)
	if _, err := svc.Gamble(MinGambleStake - 1); !errors.Is(err, ErrBelowMinimum) {
		t.Fatalf("expected ErrBelowMinimum, got %v", err)
	}
	if _, err := svc.Gamble(StartingCash + 1); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestGambleWinRate(t *testing.T) {
	svc := newTestService(t, 42)
	wins := 0
	const trials = 10_000
	for i := 0; i < trials; i++ {
		svc.state.Ledger.Cash = 1000
		msg, err := svc.Gamble(100)
		if err != nil {
			t.Fatalf("gamble: %v", err)
		}
		if strings.HasPrefix(msg, "Won") {
			wins++
			if svc.state.Ledger.Cash != 1100 {
				t.Fatalf("win payout wrong: cash = %d", svc.state.Ledger.Cash)
			}
		} else if svc.state.Ledger.Cash != 900 {
			t.Fatalf("loss deduction wrong: cash = %d", svc.state.Ledger.Cash)
		}
	}
	rate := float64(wins) / trials
	if rate < 0.42 || rate > 0.48 {
		t.Fatalf("win rate = %.3f, want ~%.2f", rate, GambleWinProb)
	}
}

func TestCrimeOutcomeDistribution(t *testing.T) {
	svc := newTestService(t, 42)
	const trials = 10_000
	var successes, jailed int
	for i := 0; i < trials; i++ {
		svc.state.Stats.JailDays = 0
		msg, err := svc.Crime("petty") // risk 30, jail chance 20
		if err != nil {
			t.Fatalf("crime: %v", err)
		}
		switch {
		case strings.HasPrefix(msg, "Successfully"):
			successes++
		case svc.state.Stats.JailDays > 0:
			jailed++
		}
	}
	successRate := float64(successes) / trials
	if successRate < 0.67 || successRate > 0.73 {
		t.Fatalf("success rate = %.3f, want ~0.70", successRate)
	}
	failures := trials - successes
	jailRate := float64(jailed) / float64(failures)
	if jailRate < 0.15 || jailRate > 0.25 {
		t.Fatalf("jail rate among failures = %.3f, want ~0.20", jailRate)
	}
}

func TestCrimeRewardsWithinRange(t *testing.T) {
	svc := newTestService(t, 7)
	for i := 0; i < 2000; i++ {
		svc.state.Ledger.Cash = 0
		msg, err := svc.Crime("petty")
		if err != nil {
			t.Fatalf("crime: %v", err)
		}
		if !strings.HasPrefix(msg, "Successfully") {
			continue
		}
		got := svc.state.Ledger.Cash
		if got < 500 || got > 2000 {
			t.Fatalf("reward %d outside 500..2000", got)
		}
	}
}

func TestCrimeUnknownTier(t *testing.T) {
	svc := newTestService(t, 1)
	if _, err := svc.Crime("jaywalking"); !errors.Is(err, ErrUnknownCatalogID) {
		t.Fatalf("expected ErrUnknownCatalogID, got %v", err)
	}
}

func TestBuyVehicleAtomicity(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Ledger.Cash = 4999 // old_sedan costs 5000
	if _, err := svc.BuyVehicle("old_sedan"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if len(svc.state.Inventory.Vehicles) != 0 {
		t.Fatalf("vehicle appended on failed purchase")
	}
	if svc.state.Ledger.Cash != 4999 {
		t.Fatalf("cash mutated on failed purchase: %d", svc.state.Ledger.Cash)
	}

	svc.state.Ledger.Cash = 5000
	if _, err := svc.BuyVehicle("old_sedan"); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if len(svc.state.Inventory.Vehicles) != 1 || svc.state.Ledger.Cash != 0 {
		t.Fatalf("purchase incomplete: vehicles=%d cash=%d",
			len(svc.state.Inventory.Vehicles), svc.state.Ledger.Cash)
	}
	v := svc.state.Inventory.Vehicles[0]
	if v.ID == "" || v.CatalogID != "old_sedan" || v.AcquiredAt.IsZero() {
		t.Fatalf("entity identity incomplete: %+v", v.OwnedEntity)
	}
}

func TestTwoPurchasesGetDistinctIDs(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Ledger.Cash = 10_000
	svc.BuyVehicle("old_sedan")
	svc.BuyVehicle("old_sedan")
	vs := svc.state.Inventory.Vehicles
	if len(vs) != 2 || vs[0].ID == vs[1].ID {
		t.Fatalf("duplicate purchase ids: %+v", vs)
	}
}

func TestInvestEnforcesMinimumAndCashOutReturnsPrincipal(t *testing.T) {
	svc := newTestService(t, 1)
	if _, err := svc.Invest("tech", 999); !errors.Is(err, ErrBelowMinimum) {
		t.Fatalf("expected ErrBelowMinimum, got %v", err)
	}
	if _, err := svc.Invest("tech", 5000); err != nil {
		t.Fatalf("invest: %v", err)
	}
	if svc.state.Ledger.Cash != StartingCash-5000 {
		t.Fatalf("cash = %d", svc.state.Ledger.Cash)
	}
	pos := svc.state.Inventory.Investments[0]
	if _, err := svc.CashOut(pos.ID); err != nil {
		t.Fatalf("cashout: %v", err)
	}
	if svc.state.Ledger.Cash != StartingCash {
		t.Fatalf("principal not returned: cash = %d", svc.state.Ledger.Cash)
	}
	if len(svc.state.Inventory.Investments) != 0 {
		t.Fatalf("position not removed")
	}
	if _, err := svc.CashOut(pos.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double cashout, got %v", err)
	}
}

func TestEnrollGatesOnCost(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Ledger.Cash = 19_999 // college costs 20000
	svc.state.Stats.Intelligence = 40
	if _, err := svc.Enroll("college"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if svc.state.Stats.Intelligence != 40 || svc.state.EducationID != "highschool" {
		t.Fatalf("rejected enrollment mutated state: int=%d education=%q",
			svc.state.Stats.Intelligence, svc.state.EducationID)
	}

	svc.state.Ledger.Cash = 20_000
	if _, err := svc.Enroll("college"); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if svc.state.Ledger.Cash != 0 {
		t.Fatalf("cash = %d", svc.state.Ledger.Cash)
	}
	if svc.state.Stats.Intelligence != 70 {
		t.Fatalf("intelligence = %d, want 70", svc.state.Stats.Intelligence)
	}
	if svc.state.EducationID != "college" {
		t.Fatalf("education = %q", svc.state.EducationID)
	}
}

func TestEnrollFreeTierNeedsNoCash(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Ledger.Cash = 0
	svc.state.EducationID = ""
	svc.state.Stats.Intelligence = 40
	if _, err := svc.Enroll("highschool"); err != nil {
		t.Fatalf("free tier: %v", err)
	}
	if svc.state.Stats.Intelligence != 50 {
		t.Fatalf("intelligence = %d, want 50", svc.state.Stats.Intelligence)
	}
	if svc.state.EducationID != "highschool" {
		t.Fatalf("education = %q", svc.state.EducationID)
	}
}

func TestMarryIsUnique(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Ledger.Cash = MarryCost * 2
	if _, err := svc.Marry(); err != nil {
		t.Fatalf("marry: %v", err)
	}
	if _, err := svc.Marry(); !errors.Is(err, ErrAlreadyMarried) {
		t.Fatalf("expected ErrAlreadyMarried, got %v", err)
	}
	spouses := 0
	for _, r := range svc.state.Family {
		if r.Kind == RelationSpouse {
			spouses++
		}
	}
	if spouses != 1 {
		t.Fatalf("spouses = %d", spouses)
	}
}

func TestMarryRequiresAdulthood(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Ledger.Cash = MarryCost
	svc.state.Stats.Age = MarryMinAge - 1
	if _, err := svc.Marry(); !errors.Is(err, ErrTooYoung) {
		t.Fatalf("expected ErrTooYoung, got %v", err)
	}
	if svc.state.Ledger.Cash != MarryCost || len(svc.state.Family) != 0 {
		t.Fatalf("rejected marriage mutated state")
	}
	svc.state.Stats.Age = MarryMinAge
	if _, err := svc.Marry(); err != nil {
		t.Fatalf("marry at %d: %v", MarryMinAge, err)
	}
}

func TestChildRequiresSpouse(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Ledger.Cash = MarryCost + ChildCost
	if _, err := svc.HaveChild(); !errors.Is(err, ErrNoSpouse) {
		t.Fatalf("expected ErrNoSpouse, got %v", err)
	}
	if _, err := svc.Marry(); err != nil {
		t.Fatalf("marry: %v", err)
	}
	if _, err := svc.HaveChild(); err != nil {
		t.Fatalf("child: %v", err)
	}
	if svc.state.Ledger.Cash != 0 {
		t.Fatalf("cash = %d", svc.state.Ledger.Cash)
	}
}

func TestDateSpendsEitherWay(t *testing.T) {
	svc := newTestService(t, 3)
	for i := 0; i < 50; i++ {
		svc.state.Ledger.Cash = DateCost
		if _, err := svc.Date(); err != nil {
			t.Fatalf("date: %v", err)
		}
		if svc.state.Ledger.Cash != 0 {
			t.Fatalf("date should cost %d regardless of outcome", DateCost)
		}
	}
}

func TestDateSuccessRate(t *testing.T) {
	svc := newTestService(t, 42)
	const trials = 10_000
	wins := 0
	for i := 0; i < trials; i++ {
		svc.state.Ledger.Cash = DateCost
		msg, err := svc.Date()
		if err != nil {
			t.Fatalf("date: %v", err)
		}
		if strings.HasPrefix(msg, "Great date") {
			wins++
		}
	}
	rate := float64(wins) / trials
	if rate < 0.67 || rate > 0.73 {
		t.Fatalf("success rate = %.3f, want ~%.2f", rate, DateSuccessProb)
	}
	// Only the good dates leave a record behind.
	if len(svc.state.Relationships) != wins {
		t.Fatalf("relationships = %d, want %d", len(svc.state.Relationships), wins)
	}
}

func TestDailyBonusOncePerDay(t *testing.T) {
	svc := newTestService(t, 1)
	if _, err := svc.ClaimDailyBonus(); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	bonus := svc.state.Ledger.Cash - StartingCash
	if bonus < DailyBonusMin || bonus > DailyBonusMax {
		t.Fatalf("bonus = %d, want %d..%d", bonus, DailyBonusMin, DailyBonusMax)
	}
	if _, err := svc.ClaimDailyBonus(); !errors.Is(err, ErrBonusClaimed) {
		t.Fatalf("expected ErrBonusClaimed, got %v", err)
	}

	svc.state.Clock.Advance(HoursPerDay * MinutesPerHour)
	if _, err := svc.ClaimDailyBonus(); err != nil {
		t.Fatalf("claim on next day: %v", err)
	}
}

func TestToggleRent(t *testing.T) {
	svc := newTestService(t, 1)
	svc.state.Ledger.Cash = 50_000
	if _, err := svc.BuyProperty("small_apartment"); err != nil {
		t.Fatalf("buy property: %v", err)
	}
	id := svc.state.Inventory.Properties[0].ID
	if _, err := svc.ToggleRent(id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !svc.state.Inventory.Properties[0].Rented {
		t.Fatalf("property not marked rented")
	}
	if _, err := svc.ToggleRent("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectionPushesNotification(t *testing.T) {
	svc := newTestService(t, 1)
	svc.Work() // no job
	notes := svc.Notifications(1)
	if len(notes) != 1 || notes[0].Message != "You don't have a job!" {
		t.Fatalf("missing rejection notification: %+v", notes)
	}
}
