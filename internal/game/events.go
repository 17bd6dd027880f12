package game

import (
	"fmt"

	"lifeverse/internal/catalog"
)

const (
	// maxEventChainDepth caps follow-up chains so a catalog cycle can
	// never wedge the session on an endless pending event.
	maxEventChainDepth = 4

	// followUpDelay is how many ticks after a choice its follow-up fires.
	followUpDelay = 1
)

// evaluateEvents runs the per-tick event pass. Callers hold s.mu.
//
// A pending branching event blocks everything until the player resolves
// it. Otherwise a due follow-up fires before any random draw, and at most
// one random event fires per tick: the table is walked in catalog order
// and the first row to pass its trigger roll wins.
func (s *Service) evaluateEvents() {
	if s.state.Pending != nil {
		return
	}
	if sched := s.state.Scheduled; sched != nil {
		sched.InTicks--
		if sched.InTicks > 0 {
			return
		}
		s.state.Scheduled = nil
		if def, ok := s.catalog.EventByID(sched.EventID); ok {
			s.fireEvent(def, sched.Depth)
		}
		return
	}
	for _, def := range s.catalog.Events {
		if def.Chance <= 0 {
			continue
		}
		if s.rand.Float64() < def.Chance {
			s.fireEvent(def, 0)
			return
		}
	}
}

// fireEvent applies a plain event immediately, or parks a branching one
// as pending until the player picks a choice.
func (s *Service) fireEvent(def catalog.EventDef, depth int) {
	if len(def.Choices) > 0 {
		s.state.Pending = &PendingEvent{EventID: def.ID, Depth: depth}
		s.notify(SeverityInfo, fmt.Sprintf("%s: %s", def.Title, def.Description))
		s.record(fmt.Sprintf("Event: %s", def.Title))
		return
	}
	s.applyEffects(def.Effect)
	s.notify(eventSeverity(def.Effect), fmt.Sprintf("%s: %s", def.Title, def.Description))
	s.record(fmt.Sprintf("Event: %s", def.Title))
}

// eventSeverity picks a notification severity from the money movement,
// matching how the rest of the log colors gains and losses.
func eventSeverity(effect map[string]int64) string {
	money, ok := effect["money"]
	switch {
	case !ok:
		return SeverityInfo
	case money < 0:
		return SeverityDanger
	default:
		return SeveritySuccess
	}
}

// PendingChoices returns the open branching event and its options, if any.
func (s *Service) PendingChoices() (catalog.EventDef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Pending == nil {
		return catalog.EventDef{}, false
	}
	def, ok := s.catalog.EventByID(s.state.Pending.EventID)
	return def, ok
}

// ResolveEvent applies the chosen branch of the pending event. A choice
// with a follow-up schedules it one tick out, unless the chain is already
// at its depth cap.
func (s *Service) ResolveEvent(choice int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.state.Pending
	if pending == nil {
		return "", s.reject(ErrNoPendingEvent, "There is no event to respond to")
	}
	def, ok := s.catalog.EventByID(pending.EventID)
	if !ok {
		s.state.Pending = nil
		return "", s.reject(ErrUnknownCatalogID, "That event no longer exists")
	}
	if choice < 0 || choice >= len(def.Choices) {
		return "", s.reject(ErrInvalidChoice, "That isn't one of the options")
	}
	picked := def.Choices[choice]
	s.state.Pending = nil
	s.applyEffects(picked.Effect)
	if picked.Next != "" && pending.Depth+1 < maxEventChainDepth {
		s.state.Scheduled = &FollowUp{
			EventID: picked.Next,
			InTicks: followUpDelay,
			Depth:   pending.Depth + 1,
		}
	}
	msg := fmt.Sprintf("%s: %s", def.Title, picked.Text)
	s.notify(SeverityInfo, msg)
	s.record(msg)
	return msg, nil
}
