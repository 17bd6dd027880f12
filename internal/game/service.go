package game

import (
	"context"
	"errors"
	"log/slog"
	mathrand "math/rand"
	"sync"
	"time"

	"lifeverse/internal/catalog"
)

// Store is the persistence gateway the service saves through. Get returns
// ErrNoSave when the key has never been written.
type Store interface {
	Put(ctx context.Context, key string, blob []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ErrNoSave is returned by a Store when no blob exists under the key.
var ErrNoSave = errors.New("no save found")

// Service owns one aggregate root and serializes every mutation through its
// mutex: user actions and tick processing never overlap.
type Service struct {
	mu      sync.Mutex
	log     *slog.Logger
	rand    *mathrand.Rand
	catalog *catalog.Catalog
	store   Store
	saveKey string

	state    *State
	notes    *RingLog
	activity *RingLog
}

// NewService builds a session around a fresh default state. A zero seed
// draws from the wall clock; tests pass a fixed seed for reproducible
// outcomes.
func NewService(cat *catalog.Catalog, store Store, logger *slog.Logger, seed int64) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Service{
		log:      logger,
		rand:     mathrand.New(mathrand.NewSource(seed)),
		catalog:  cat,
		store:    store,
		saveKey:  "lifeverse",
		state:    NewState(),
		notes:    NewRingLog(NotificationCap),
		activity: NewRingLog(ActivityCap),
	}
}

// SetSaveKey overrides the storage key the session persists under.
func (s *Service) SetSaveKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key != "" {
		s.saveKey = key
	}
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// notify appends a user-facing notification. Callers hold s.mu.
func (s *Service) notify(severity, message string) {
	s.notes.Push(message, severity)
}

// record appends to the activity log. Callers hold s.mu.
func (s *Service) record(message string) {
	s.activity.Push(message, SeverityInfo)
}

// reject surfaces a failed precondition as a notification and returns the
// sentinel unchanged. No state is mutated on this path.
func (s *Service) reject(err error, message string) error {
	s.notify(SeverityWarning, message)
	return err
}

func (s *Service) Notifications(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Recent(n)
}

func (s *Service) Activity(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activity.Recent(n)
}

// Save serializes the aggregate root and writes it through the gateway.
// A failed write is reported, not retried.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := MarshalState(s.state)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, s.saveKey, raw); err != nil {
		s.log.Error("save failed", "key", s.saveKey, "err", err)
		s.notify(SeverityDanger, "Failed to save game")
		return err
	}
	s.notify(SeveritySuccess, "Game saved successfully!")
	return nil
}

// Load replaces the session state with the stored save merged onto
// defaults. A missing or unreadable blob falls back to the default state
// and is reported, never fatal.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.store.Get(ctx, s.saveKey)
	if err != nil {
		if errors.Is(err, ErrNoSave) {
			s.state = NewState()
			return nil
		}
		s.log.Error("load failed", "key", s.saveKey, "err", err)
		s.notify(SeverityDanger, "Failed to load save game")
		s.state = NewState()
		return err
	}
	st, err := UnmarshalState(raw)
	if err != nil {
		s.log.Error("save blob unreadable", "key", s.saveKey, "err", err)
		s.notify(SeverityDanger, "Failed to load save game")
		s.state = NewState()
		return err
	}
	s.state = st
	s.notify(SeveritySuccess, "Game loaded successfully!")
	return nil
}

// Reset discards all progress and starts over.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = NewState()
	s.notes = NewRingLog(NotificationCap)
	s.activity = NewRingLog(ActivityCap)
	s.notify(SeverityInfo, "New life started. Good luck!")
}

// randRange draws uniformly from [min, max] inclusive. Callers hold s.mu.
func (s *Service) randRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rand.Intn(max-min+1)
}

func (s *Service) randMoney(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + s.rand.Int63n(max-min+1)
}

func (s *Service) randName() string {
	names := s.catalog.Names
	if len(names) == 0 {
		return "Alex"
	}
	return names[s.rand.Intn(len(names))]
}
