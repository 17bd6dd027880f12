package game

// StateView is the read-model snapshot served to the API and CLI. It is a
// value copy taken under the session mutex; mutating it has no effect on
// the running session.
type StateView struct {
	Stats         StatBlock  `json:"stats"`
	Ledger        Ledger     `json:"ledger"`
	Clock         GameClock  `json:"clock"`
	NetWorth      int64      `json:"net_worth"`
	Job           string     `json:"job"`
	Education     string     `json:"education"`
	Experience    int        `json:"experience"`
	Inventory     Inventory  `json:"inventory"`
	Family        []Relation `json:"family"`
	Relationships []Relation `json:"relationships"`
	JailDays      int        `json:"jail_days"`
	PendingEvent  *EventView `json:"pending_event,omitempty"`
}

// EventView is the open branching event, flattened for display.
type EventView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Choices     []string `json:"choices"`
}

// Snapshot builds a StateView from the current session state.
func (s *Service) Snapshot() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := StateView{
		Stats:         s.state.Stats,
		Ledger:        s.state.Ledger,
		Clock:         s.state.Clock,
		NetWorth:      s.state.NetWorth(),
		Experience:    s.state.Experience,
		Inventory:     s.state.Inventory,
		Family:        append([]Relation(nil), s.state.Family...),
		Relationships: append([]Relation(nil), s.state.Relationships...),
		JailDays:      s.state.Stats.JailDays,
	}
	if job, ok := s.catalog.JobByID(s.state.JobID); ok {
		view.Job = job.Name
	}
	if tier, ok := s.catalog.EducationByID(s.state.EducationID); ok {
		view.Education = tier.Name
	}
	if s.state.Pending != nil {
		if def, ok := s.catalog.EventByID(s.state.Pending.EventID); ok {
			ev := EventView{ID: def.ID, Title: def.Title, Description: def.Description}
			for _, c := range def.Choices {
				ev.Choices = append(ev.Choices, c.Text)
			}
			view.PendingEvent = &ev
		}
	}
	return view
}
