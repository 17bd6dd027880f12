package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Every action is all-or-nothing: a rejected precondition produces a
// notification and mutates nothing; a success applies its full mutation
// set, a success notification, and an activity entry.

func (s *Service) Work() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.JobID == "" {
		return "", s.reject(ErrNoJob, "You don't have a job!")
	}
	job, ok := s.catalog.JobByID(s.state.JobID)
	if !ok {
		return "", s.reject(ErrUnknownCatalogID, "Your job no longer exists")
	}
	if s.state.Stats.Energy < job.EnergyCost {
		return "", s.reject(ErrNotEnoughEnergy, "Not enough energy to work!")
	}
	s.state.Ledger.Earn(job.Salary)
	s.state.Stats.Adjust(StatEnergy, -job.EnergyCost)
	s.state.Stats.Adjust(StatHappiness, -WorkHappinessCost)
	s.state.Experience++
	msg := fmt.Sprintf("Worked and earned $%d", job.Salary)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Work: +$%d", job.Salary))
	return msg, nil
}

func (s *Service) ApplyForJob(jobID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.catalog.JobByID(jobID)
	if !ok {
		return "", s.reject(ErrUnknownCatalogID, "That job doesn't exist")
	}
	if s.state.Experience < job.Experience {
		return "", s.reject(ErrJobRequirements,
			fmt.Sprintf("You need %d experience for %s", job.Experience, job.Name))
	}
	s.state.JobID = job.ID
	msg := fmt.Sprintf("Hired as %s ($%d per payday)", job.Name, job.Salary)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("New job: %s", job.Name))
	return msg, nil
}

func (s *Service) Study() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Stats.Energy < StudyEnergyCost {
		return "", s.reject(ErrNotEnoughEnergy, "Not enough energy to study!")
	}
	gain := s.randRange(5, 9)
	s.state.Stats.Adjust(StatIntelligence, gain)
	s.state.Stats.Adjust(StatEnergy, -StudyEnergyCost)
	msg := fmt.Sprintf("Studied and gained %d intelligence", gain)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Study: +%d intelligence", gain))
	return msg, nil
}

func (s *Service) Socialize() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Stats.Energy < SocializeEnergyCost {
		return "", s.reject(ErrNotEnoughEnergy, "Not enough energy to socialize!")
	}
	happiness := s.randRange(5, 19)
	reputation := s.randRange(1, 5)
	s.state.Stats.Adjust(StatHappiness, happiness)
	s.state.Stats.Adjust(StatReputation, reputation)
	s.state.Stats.Adjust(StatEnergy, -SocializeEnergyCost)
	msg := "Socialized and improved happiness"
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Socialize: +%d happiness", happiness))
	return msg, nil
}

func (s *Service) Rest() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	energy := s.randRange(20, 49)
	health := s.randRange(1, 5)
	s.state.Stats.Adjust(StatEnergy, energy)
	s.state.Stats.Adjust(StatHealth, health)
	msg := "Rested and recovered energy"
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Rest: +%d energy", energy))
	return msg, nil
}

func (s *Service) Gym() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Ledger.Spend(GymCost); err != nil {
		return "", s.reject(err, "You need $100 for a gym membership!")
	}
	gain := s.randRange(5, 14)
	s.state.Stats.Adjust(StatHealth, gain)
	s.state.Stats.Adjust(StatEnergy, -GymEnergyCost)
	msg := fmt.Sprintf("Worked out at the gym! Health +%d", gain)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Gym: +%d health", gain))
	return msg, nil
}

// Gamble deducts the stake up front, then a single weighted coin flip
// either returns it doubled or forfeits it entirely.
func (s *Service) Gamble(stake int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stake < MinGambleStake {
		return "", s.reject(ErrBelowMinimum,
			fmt.Sprintf("You need to stake at least $%d to gamble!", MinGambleStake))
	}
	if !s.state.Ledger.CanAfford(stake) {
		return "", s.reject(ErrInsufficientFunds, "Not enough cash to gamble!")
	}
	s.state.Ledger.Debit(stake)
	if s.rand.Float64() < GambleWinProb {
		winnings := stake * 2
		s.state.Ledger.Earn(winnings)
		s.state.Stats.Adjust(StatHappiness, 10)
		msg := fmt.Sprintf("Won $%d gambling!", winnings)
		s.notify(SeveritySuccess, msg)
		s.record(fmt.Sprintf("Gambling: won $%d", winnings))
		return msg, nil
	}
	s.state.Stats.Adjust(StatHappiness, -10)
	msg := fmt.Sprintf("Lost $%d gambling!", stake)
	s.notify(SeverityDanger, msg)
	s.record(fmt.Sprintf("Gambling: lost $%d", stake))
	return msg, nil
}

// Crime keeps the original two-roll structure: first success against
// 100-risk, then, only on failure, an independent jail roll. Reputation
// takes the hit either way.
func (s *Service) Crime(crimeID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	crime, ok := s.catalog.CrimeByID(crimeID)
	if !ok {
		return "", s.reject(ErrUnknownCatalogID, "That crime doesn't exist")
	}
	successChance := float64(100 - crime.Risk)
	if s.rand.Float64()*100 < successChance {
		reward := s.randMoney(crime.MinReward, crime.MaxReward)
		s.state.Ledger.Earn(reward)
		s.state.Stats.Adjust(StatReputation, -crime.ReputationLoss)
		msg := fmt.Sprintf("Successfully committed %s! Got $%d", crime.Name, reward)
		s.notify(SeveritySuccess, msg)
		s.record(fmt.Sprintf("Committed %s: +$%d", crime.Name, reward))
		return msg, nil
	}
	s.state.Stats.Adjust(StatReputation, -crime.ReputationLoss)
	if s.rand.Float64()*100 < float64(crime.JailChance) {
		s.state.Stats.Adjust(StatJailDays, crime.JailDays)
		msg := fmt.Sprintf("Caught! Sent to jail for %d days!", crime.JailDays)
		s.notify(SeverityDanger, msg)
		s.record(fmt.Sprintf("Arrested for %s: %d days jail", crime.Name, crime.JailDays))
		return msg, nil
	}
	msg := fmt.Sprintf("Failed %s but escaped!", crime.Name)
	s.notify(SeverityWarning, msg)
	s.record(fmt.Sprintf("Failed %s", crime.Name))
	return msg, nil
}

func (s *Service) Deposit(amount int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Ledger.Deposit(amount); err != nil {
		return "", s.reject(err, "Not enough cash!")
	}
	msg := fmt.Sprintf("Deposited $%d to bank", amount)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Deposit: $%d", amount))
	return msg, nil
}

func (s *Service) Withdraw(amount int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Ledger.Withdraw(amount); err != nil {
		return "", s.reject(err, "Not enough funds in bank!")
	}
	msg := fmt.Sprintf("Withdrew $%d from bank", amount)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Withdraw: $%d", amount))
	return msg, nil
}

func (s *Service) TakeLoan(amount int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Ledger.Borrow(amount); err != nil {
		return "", s.reject(err,
			fmt.Sprintf("Maximum loan amount is $%d", s.state.Ledger.Cash*BorrowMultiple))
	}
	msg := fmt.Sprintf("Took loan of $%d", amount)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Loan: +$%d", amount))
	return msg, nil
}

func (s *Service) RepayLoan(amount int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied, err := s.state.Ledger.Repay(amount)
	if err != nil {
		return "", s.reject(err, "Not enough money to repay!")
	}
	msg := fmt.Sprintf("Repaid $%d of loan", applied)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Loan repayment: $%d", applied))
	return msg, nil
}

// newEntity mints the unique identity every acquisition carries.
func newEntity(catalogID, name string) OwnedEntity {
	return OwnedEntity{
		ID:         uuid.NewString(),
		CatalogID:  catalogID,
		Name:       name,
		AcquiredAt: time.Now().UTC(),
	}
}

// BuyItem debits the ledger and appends the entity atomically: on any
// failure no money moves and nothing is added.
func (s *Service) BuyItem(itemID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec, ok := s.catalog.ItemByID(itemID)
	if !ok {
		return "", s.reject(ErrUnknownCatalogID, "That item doesn't exist")
	}
	if err := s.state.Ledger.Spend(spec.Price); err != nil {
		return "", s.reject(err, "You don't have enough money!")
	}
	s.state.Inventory.Items = append(s.state.Inventory.Items, Item{
		OwnedEntity: newEntity(spec.ID, spec.Name),
		Price:       spec.Price,
		Kind:        spec.Kind,
	})
	msg := fmt.Sprintf("Bought %s!", spec.Name)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Purchased %s", spec.Name))
	return msg, nil
}

func (s *Service) BuyVehicle(vehicleID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec, ok := s.catalog.VehicleByID(vehicleID)
	if !ok {
		return "", s.reject(ErrUnknownCatalogID, "That vehicle doesn't exist")
	}
	if err := s.state.Ledger.Spend(spec.Price); err != nil {
		return "", s.reject(err, "You don't have enough money!")
	}
	s.state.Inventory.Vehicles = append(s.state.Inventory.Vehicles, Vehicle{
		OwnedEntity: newEntity(spec.ID, spec.Name),
		Comfort:     spec.Comfort,
		Speed:       spec.Speed,
	})
	msg := fmt.Sprintf("Bought %s for $%d!", spec.Name, spec.Price)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Purchased %s", spec.Name))
	return msg, nil
}

func (s *Service) BuyProperty(propertyID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec, ok := s.catalog.PropertyByID(propertyID)
	if !ok {
		return "", s.reject(ErrUnknownCatalogID, "That property doesn't exist")
	}
	if err := s.state.Ledger.Spend(spec.Price); err != nil {
		return "", s.reject(err, "You don't have enough money!")
	}
	s.state.Inventory.Properties = append(s.state.Inventory.Properties, Property{
		OwnedEntity: newEntity(spec.ID, spec.Name),
		Rent:        spec.Rent,
		Comfort:     spec.Comfort,
	})
	msg := fmt.Sprintf("Bought %s for $%d!", spec.Name, spec.Price)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Purchased %s", spec.Name))
	return msg, nil
}

// ToggleRent flips a property between owner-occupied and rented out;
// rented properties pay their rent on every month rollover.
func (s *Service) ToggleRent(entityID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Inventory.Properties {
		p := &s.state.Inventory.Properties[i]
		if p.ID != entityID {
			continue
		}
		p.Rented = !p.Rented
		var msg string
		if p.Rented {
			msg = fmt.Sprintf("%s is now rented out ($%d per month)", p.Name, p.Rent)
		} else {
			msg = fmt.Sprintf("%s is no longer rented out", p.Name)
		}
		s.notify(SeverityInfo, msg)
		return msg, nil
	}
	return "", s.reject(ErrNotFound, "You don't own that property")
}

func (s *Service) StartBusiness(businessID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec, ok := s.catalog.BusinessByID(businessID)
	if !ok {
		return "", s.reject(ErrUnknownCatalogID, "That business doesn't exist")
	}
	if err := s.state.Ledger.Spend(spec.Price); err != nil {
		return "", s.reject(err, "You don't have enough money!")
	}
	s.state.Inventory.Businesses = append(s.state.Inventory.Businesses, Business{
		OwnedEntity: newEntity(spec.ID, spec.Name),
		Income:      spec.Income,
		Risk:        spec.Risk,
	})
	msg := fmt.Sprintf("Started %s business!", spec.Name)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Started %s business", spec.Name))
	return msg, nil
}

func (s *Service) Invest(investmentID string, amount int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec, ok := s.catalog.InvestmentByID(investmentID)
	if !ok {
		return "", s.reject(ErrUnknownCatalogID, "That investment doesn't exist")
	}
	if amount < spec.MinAmount {
		return "", s.reject(ErrBelowMinimum,
			fmt.Sprintf("Minimum investment in %s is $%d", spec.Name, spec.MinAmount))
	}
	if err := s.state.Ledger.Spend(amount); err != nil {
		return "", s.reject(err, "You don't have enough money!")
	}
	s.state.Inventory.Investments = append(s.state.Inventory.Investments, Investment{
		OwnedEntity:     newEntity(spec.ID, spec.Name),
		Amount:          amount,
		AnnualReturnBps: spec.AnnualReturnBps,
	})
	msg := fmt.Sprintf("Invested $%d in %s", amount, spec.Name)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Investment: $%d in %s", amount, spec.Name))
	return msg, nil
}

// CashOut liquidates a position: the principal returns to cash and the
// position is removed. Accrued returns were already credited monthly.
func (s *Service) CashOut(entityID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.state.Inventory.InvestmentByID(entityID)
	if !ok {
		return "", s.reject(ErrNotFound, "You don't hold that investment")
	}
	s.state.Inventory.RemoveInvestment(entityID)
	s.state.Ledger.Earn(pos.Amount)
	msg := fmt.Sprintf("Cashed out $%d from %s", pos.Amount, pos.Name)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Cashed out %s", pos.Name))
	return msg, nil
}

func (s *Service) Enroll(educationID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tier, ok := s.catalog.EducationByID(educationID)
	if !ok {
		return "", s.reject(ErrUnknownCatalogID, "That program doesn't exist")
	}
	if tier.Cost > 0 {
		if err := s.state.Ledger.Spend(tier.Cost); err != nil {
			return "", s.reject(err,
				fmt.Sprintf("You need $%d for %s!", tier.Cost, tier.Name))
		}
	}
	s.state.Stats.Adjust(StatIntelligence, tier.IntelligenceGain)
	s.state.EducationID = tier.ID
	msg := fmt.Sprintf("Graduated: %s! Intelligence +%d", tier.Name, tier.IntelligenceGain)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Graduation: %s", tier.Name))
	return msg, nil
}

func (s *Service) Meet() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := s.randName()
	s.state.Relationships = append(s.state.Relationships, Relation{
		Name: name, Kind: RelationFriend, Happiness: 30,
	})
	msg := fmt.Sprintf("Met %s!", name)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Met %s", name))
	return msg, nil
}

// Date costs the money whether or not it goes well.
func (s *Service) Date() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Ledger.Spend(DateCost); err != nil {
		return "", s.reject(err, "You need $500 for a date!")
	}
	if s.rand.Float64() < DateSuccessProb {
		name := s.randName()
		s.state.Relationships = append(s.state.Relationships, Relation{
			Name: name, Kind: RelationDating, Happiness: 50,
		})
		msg := fmt.Sprintf("Great date with %s!", name)
		s.notify(SeveritySuccess, msg)
		s.record(fmt.Sprintf("Date with %s", name))
		return msg, nil
	}
	msg := "The date didn't go well..."
	s.notify(SeverityDanger, msg)
	s.record("Bad date")
	return msg, nil
}

func (s *Service) Marry() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Stats.Age < MarryMinAge {
		return "", s.reject(ErrTooYoung, "You're too young to get married!")
	}
	if _, married := s.state.Spouse(); married {
		return "", s.reject(ErrAlreadyMarried, "You're already married!")
	}
	if err := s.state.Ledger.Spend(MarryCost); err != nil {
		return "", s.reject(err, "You need $20,000 for a wedding!")
	}
	name := s.randName()
	s.state.Family = append(s.state.Family, Relation{
		Name: name, Kind: RelationSpouse, Happiness: 50,
	})
	s.state.Stats.Adjust(StatHappiness, 30)
	msg := fmt.Sprintf("Married %s!", name)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Married %s", name))
	return msg, nil
}

func (s *Service) HaveChild() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, married := s.state.Spouse(); !married {
		return "", s.reject(ErrNoSpouse, "You need to be married first!")
	}
	if err := s.state.Ledger.Spend(ChildCost); err != nil {
		return "", s.reject(err, "You need $10,000 for child expenses!")
	}
	name := s.randName()
	s.state.Family = append(s.state.Family, Relation{
		Name: name, Kind: RelationChild, Happiness: 50,
	})
	s.state.Stats.Adjust(StatHappiness, 20)
	msg := fmt.Sprintf("Had a child named %s!", name)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("New child: %s", name))
	return msg, nil
}

// ClaimDailyBonus pays out once per in-game day.
func (s *Service) ClaimDailyBonus() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.state.Clock.TotalDays()
	if s.state.LastBonusDay == today {
		return "", s.reject(ErrBonusClaimed, "Daily bonus already claimed, come back tomorrow!")
	}
	bonus := s.randMoney(DailyBonusMin, DailyBonusMax)
	s.state.Ledger.Earn(bonus)
	s.state.LastBonusDay = today
	msg := fmt.Sprintf("Daily bonus: $%d!", bonus)
	s.notify(SeveritySuccess, msg)
	s.record(fmt.Sprintf("Daily bonus: +$%d", bonus))
	return msg, nil
}

// applyEffects routes an event effect map onto the ledger and stats.
// Unknown keys are logged loudly instead of silently dropped.
func (s *Service) applyEffects(effects map[string]int64) {
	for key, delta := range effects {
		if key == "money" {
			if delta >= 0 {
				s.state.Ledger.Earn(delta)
			} else {
				s.state.Ledger.Debit(-delta)
			}
			continue
		}
		if _, err := s.state.Stats.Adjust(Stat(key), int(delta)); err != nil {
			s.log.Warn("event effect targets unknown stat", "stat", key)
		}
	}
}
