package game

import "fmt"

// Per-tick background drift probabilities.
const (
	energyDriftProb    = 0.30
	happinessDriftProb = 0.20
)

// RunTick advances the clock by the given minutes and applies everything
// the passage of time owes the player: stat drift, jail countdown, monthly
// income, yearly aging, and at most one world event. The whole pass runs
// under the session mutex, so a tick and a user action never interleave.
func (s *Service) RunTick(minutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if minutes <= 0 {
		return
	}
	roll := s.state.Clock.Advance(minutes)

	if s.rand.Float64() < energyDriftProb {
		s.state.Stats.Adjust(StatEnergy, 1)
	}
	if s.rand.Float64() < happinessDriftProb {
		s.state.Stats.Adjust(StatHappiness, -1)
	}

	for i := 0; i < roll.Days; i++ {
		s.onDay()
	}
	for i := 0; i < roll.Months; i++ {
		s.onMonth()
	}
	for i := 0; i < roll.Years; i++ {
		s.onYear()
	}

	s.evaluateEvents()
}

// onDay counts down a jail sentence one day at a time.
func (s *Service) onDay() {
	if s.state.Stats.JailDays <= 0 {
		return
	}
	s.state.Stats.Adjust(StatJailDays, -1)
	if s.state.Stats.JailDays == 0 {
		s.notify(SeveritySuccess, "Released from jail!")
		s.record("Released from jail")
	}
}

// onMonth credits every recurring income stream: payroll, investment
// returns, rent on rented-out properties, and business profits. A business
// can have a down month: its risk is the monthly chance it pays nothing.
func (s *Service) onMonth() {
	if s.state.JobID != "" {
		if job, ok := s.catalog.JobByID(s.state.JobID); ok {
			s.state.Ledger.Earn(job.Salary)
			s.notify(SeveritySuccess, fmt.Sprintf("Payday! +$%d", job.Salary))
		}
	}
	var returns int64
	for _, pos := range s.state.Inventory.Investments {
		returns += pos.MonthlyReturn()
	}
	if returns > 0 {
		s.state.Ledger.Earn(returns)
		s.notify(SeveritySuccess, fmt.Sprintf("Investment returns: +$%d", returns))
	}
	var rent int64
	for _, p := range s.state.Inventory.Properties {
		if p.Rented {
			rent += p.Rent
		}
	}
	if rent > 0 {
		s.state.Ledger.Earn(rent)
		s.notify(SeveritySuccess, fmt.Sprintf("Rental income: +$%d", rent))
	}
	for _, b := range s.state.Inventory.Businesses {
		if s.rand.Float64()*100 < float64(b.Risk) {
			s.notify(SeverityWarning, fmt.Sprintf("%s had a bad month, no profit", b.Name))
			continue
		}
		s.state.Ledger.Earn(b.Income)
		s.notify(SeveritySuccess, fmt.Sprintf("%s profit: +$%d", b.Name, b.Income))
	}
}

// ageMilestones are the birthdays that get a special callout.
var ageMilestones = map[int]string{
	21: "You're 21! The whole world is open to you.",
	30: "30 already. Time to get serious?",
	40: "40 years old. Over the hill or just getting started?",
	50: "Half a century! Look how far you've come.",
	65: "65. Retirement is on the horizon.",
	80: "80 years old. A life well lived.",
}

// onYear ages the player by one.
func (s *Service) onYear() {
	age, _ := s.state.Stats.Adjust(StatAge, 1)
	s.notify(SeverityInfo, fmt.Sprintf("Happy birthday! You are now %d", age))
	s.record(fmt.Sprintf("Turned %d", age))
	if msg, ok := ageMilestones[age]; ok {
		s.notify(SeveritySuccess, msg)
	}
}
