package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrUnauthorized  = errors.New("unauthorized access")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits associated with a specific user.
	// An empty userID selects the anonymous/shared habits.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// ListWithReminder retrieves every habit that has a reminder time set,
	// across all users. Used by the reminder dispatcher.
	ListWithReminder(ctx context.Context) ([]*Habit, error)

	// Update modifies the descriptive fields of an existing habit.
	Update(ctx context.Context, habit *Habit) error

	// UpdateCompletion writes the (completed, completed_at, streak) triple in
	// a single statement. Readers observe either the old or the new triple,
	// never a mix; that atomicity is the storage engine's job.
	UpdateCompletion(ctx context.Context, id string, completed bool, completedAt *time.Time, streak int) error

	// Delete permanently removes a habit. Implementations cascade to the
	// habit's completion history and time logs.
	Delete(ctx context.Context, id string) error
}

// CompletionEvent is one recorded completion of a habit on a calendar date.
type CompletionEvent struct {
	HabitID string    `json:"habit_id" db:"habit_id"`
	UserID  string    `json:"user_id" db:"user_id"`
	Date    time.Time `json:"date" db:"date"`
}

// CompletionHistory is the ledger of completion events backing the streak
// and progress computations. History is keyed by the stable habit id, not by
// (owner, name); renaming a habit never detaches its history.
type CompletionHistory interface {
	// Record appends a completion event. Recording the same date twice is
	// harmless; readers deduplicate by date.
	Record(ctx context.Context, event CompletionEvent) error

	// ListByHabitID returns the habit's completion dates, newest first.
	ListByHabitID(ctx context.Context, habitID string) ([]time.Time, error)

	// ListByUserIDAndDateRange returns every completion event for the user's
	// habits whose date falls inside [from, to], inclusive.
	ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]CompletionEvent, error)

	// DeleteByHabitID removes all history for a habit (delete cascade).
	DeleteByHabitID(ctx context.Context, habitID string) error
}

type TimeLogRepository interface {
	// Append persists a new time log entry. Entries are append-only.
	Append(ctx context.Context, entry *TimeLogEntry) error

	// ListByHabitID returns the habit's entries with a date inside
	// [from, to], inclusive.
	ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*TimeLogEntry, error)

	// DeleteByHabitID removes all entries for a habit (delete cascade).
	DeleteByHabitID(ctx context.Context, habitID string) error
}
