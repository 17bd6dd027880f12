package game

// Relation kinds for family and social records.
const (
	RelationFriend = "friend"
	RelationDating = "dating"
	RelationSpouse = "spouse"
	RelationChild  = "child"
)

// Relation is one family member or social contact.
type Relation struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Happiness int    `json:"happiness"`
}

// PendingEvent is a branching world event awaiting a player choice.
type PendingEvent struct {
	EventID string `json:"event_id"`
	// Depth counts how many follow-up hops led here; chains are capped.
	Depth int `json:"depth"`
}

// FollowUp is a scheduled follow-up event, fired after a short tick delay.
type FollowUp struct {
	EventID string `json:"event_id"`
	InTicks int    `json:"in_ticks"`
	Depth   int    `json:"depth"`
}

// State is the aggregate root: the complete owned state of one player
// session. Exactly one instance exists per running session.
type State struct {
	Stats  StatBlock `json:"stats"`
	Ledger Ledger    `json:"ledger"`
	Clock  GameClock `json:"clock"`

	JobID       string `json:"job_id"`
	EducationID string `json:"education_id"`
	Experience  int    `json:"experience"`

	Inventory     Inventory  `json:"inventory"`
	Family        []Relation `json:"family"`
	Relationships []Relation `json:"relationships"`

	LastBonusDay int           `json:"last_bonus_day"`
	Pending      *PendingEvent `json:"pending_event,omitempty"`
	Scheduled    *FollowUp     `json:"scheduled_event,omitempty"`
}

// NewState returns a fresh save with the fixed starting values.
func NewState() *State {
	return &State{
		Stats:       startingStats(),
		Ledger:      Ledger{Cash: StartingCash},
		Clock:       startingClock(),
		EducationID: "highschool",
	}
}

// Spouse reports the active spouse relation, if any. At most one exists.
func (s *State) Spouse() (Relation, bool) {
	for _, r := range s.Family {
		if r.Kind == RelationSpouse {
			return r, true
		}
	}
	return Relation{}, false
}

// NetWorth is cash plus bank minus outstanding loans plus asset book value.
func (s *State) NetWorth() int64 {
	nw := s.Ledger.Cash + s.Ledger.BankBalance - s.Ledger.LoanBalance
	for _, it := range s.Inventory.Items {
		nw += it.Price
	}
	for _, p := range s.Inventory.Investments {
		nw += p.Amount
	}
	return nw
}
