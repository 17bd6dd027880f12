package game

import (
	"encoding/json"
	"fmt"
	"time"
)

// savePayload is the on-disk shape of a save. Every field is a pointer so a
// load can tell "absent" from "zero" and merge onto defaults instead of
// replacing them, which is what keeps old blobs loadable after new fields
// are added.
type savePayload struct {
	Stats         *StatBlock    `json:"stats,omitempty"`
	Ledger        *Ledger       `json:"ledger,omitempty"`
	Clock         *GameClock    `json:"clock,omitempty"`
	JobID         *string       `json:"job_id,omitempty"`
	EducationID   *string       `json:"education_id,omitempty"`
	Experience    *int          `json:"experience,omitempty"`
	Inventory     *Inventory    `json:"inventory,omitempty"`
	Family        []Relation    `json:"family,omitempty"`
	Relationships []Relation    `json:"relationships,omitempty"`
	LastBonusDay  *int          `json:"last_bonus_day,omitempty"`
	Pending       *PendingEvent `json:"pending_event,omitempty"`
	Scheduled     *FollowUp     `json:"scheduled_event,omitempty"`
	SavedAt       time.Time     `json:"saved_at"`
}

// MarshalState serializes the aggregate root with a save timestamp.
func MarshalState(st *State) ([]byte, error) {
	payload := savePayload{
		Stats:         &st.Stats,
		Ledger:        &st.Ledger,
		Clock:         &st.Clock,
		JobID:         &st.JobID,
		EducationID:   &st.EducationID,
		Experience:    &st.Experience,
		Inventory:     &st.Inventory,
		Family:        st.Family,
		Relationships: st.Relationships,
		LastBonusDay:  &st.LastBonusDay,
		Pending:       st.Pending,
		Scheduled:     st.Scheduled,
		SavedAt:       time.Now().UTC(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal save: %w", err)
	}
	return raw, nil
}

// UnmarshalState merges a save blob onto a freshly constructed default
// state: top-level fields present in the blob overwrite the default, absent
// fields keep their starting value.
func UnmarshalState(raw []byte) (*State, error) {
	var payload savePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse save: %w", err)
	}
	st := NewState()
	if payload.Stats != nil {
		st.Stats = *payload.Stats
	}
	if payload.Ledger != nil {
		st.Ledger = *payload.Ledger
	}
	if payload.Clock != nil {
		st.Clock = *payload.Clock
	}
	if payload.JobID != nil {
		st.JobID = *payload.JobID
	}
	if payload.EducationID != nil {
		st.EducationID = *payload.EducationID
	}
	if payload.Experience != nil {
		st.Experience = *payload.Experience
	}
	if payload.Inventory != nil {
		st.Inventory = *payload.Inventory
	}
	if payload.Family != nil {
		st.Family = payload.Family
	}
	if payload.Relationships != nil {
		st.Relationships = payload.Relationships
	}
	if payload.LastBonusDay != nil {
		st.LastBonusDay = *payload.LastBonusDay
	}
	st.Pending = payload.Pending
	st.Scheduled = payload.Scheduled
	return st, nil
}
