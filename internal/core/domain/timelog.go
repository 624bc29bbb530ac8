package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSpent = errors.New("time spent must be a positive number of minutes")
)

// TimeLogEntry records minutes spent on a habit on a given date. Entries are
// never mutated after creation; they only disappear through the owning
// habit's delete cascade. Multiple entries on the same date are legal and
// additive.
type TimeLogEntry struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	Date      time.Time `json:"date" db:"date"`
	TimeSpent int       `json:"time_spent" db:"time_spent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewTimeLogEntry builds an entry for the given date. A zero date defaults to
// the creation date.
func NewTimeLogEntry(habitID string, date time.Time, timeSpent int) *TimeLogEntry {
	now := time.Now().UTC()

	if date.IsZero() {
		date = now
	}

	return &TimeLogEntry{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Date:      DateOnly(date),
		TimeSpent: timeSpent,
		CreatedAt: now,
	}
}

func (e *TimeLogEntry) Validate() error {
	if strings.TrimSpace(e.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if e.TimeSpent <= 0 {
		return ErrInvalidTimeSpent
	}
	if e.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}
