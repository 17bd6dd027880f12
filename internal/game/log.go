package game

import (
	"time"

	"github.com/google/uuid"
)

// Severity levels for notifications and activity entries.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

const (
	NotificationCap = 10
	ActivityCap     = 20

	// DefaultRecent is the slice size surfaced to UIs.
	DefaultRecent = 5
)

// Entry is one transient log record.
type Entry struct {
	ID       string    `json:"id"`
	Message  string    `json:"message"`
	Severity string    `json:"severity"`
	At       time.Time `json:"at"`
}

// RingLog is a fixed-capacity buffer: newest entry at the head, oldest
// evicted from the tail once the cap is exceeded.
type RingLog struct {
	cap     int
	entries []Entry
}

func NewRingLog(capacity int) *RingLog {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingLog{cap: capacity}
}

func (r *RingLog) Push(message, severity string) Entry {
	e := Entry{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
		At:       time.Now(),
	}
	r.entries = append([]Entry{e}, r.entries...)
	if len(r.entries) > r.cap {
		r.entries = r.entries[:r.cap]
	}
	return e
}

// Recent returns up to n entries, newest first. n <= 0 uses DefaultRecent.
func (r *RingLog) Recent(n int) []Entry {
	if n <= 0 {
		n = DefaultRecent
	}
	if n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]Entry, n)
	copy(out, r.entries[:n])
	return out
}

func (r *RingLog) All() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *RingLog) Len() int {
	return len(r.entries)
}
