package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty   = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong = errors.New("habit description is too long (max 500 chars)")
	ErrInvalidReminder  = errors.New("invalid reminder format (must be HH:MM 24h)")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
)

var reminderRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	MaxNameLen = 100
	MaxDescLen = 500
)

// Habit is one tracked behavior. UserID may be empty, which marks the habit
// as anonymous/shared rather than owned.
//
// The completion triple (Completed, CompletedAt, Streak) moves together:
// an uncompleted habit never carries a completion date or a streak.
type Habit struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id,omitempty" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Description  string     `json:"description,omitempty" db:"description"`
	Goal         string     `json:"goal,omitempty" db:"goal"`
	ReminderTime *string    `json:"reminder_time,omitempty" db:"reminder_time"`
	Completed    bool       `json:"completed" db:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	Progress     int        `json:"progress" db:"progress"`
	Streak       int        `json:"streak" db:"streak"`
}

func validateHabitFields(name, desc, reminder string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return "", ErrHabitNameTooLong
	}

	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return "", ErrHabitDescTooLong
	}

	if reminder != "" && !reminderRegex.MatchString(reminder) {
		return "", ErrInvalidReminder
	}

	return trimmed, nil
}

func NewHabit(userID, name, description, goal, reminder string) (*Habit, error) {
	cleanDesc := strings.TrimSpace(description)

	cleanName, err := validateHabitFields(name, cleanDesc, reminder)
	if err != nil {
		return nil, err
	}

	var remPtr *string
	if reminder != "" {
		remPtr = &reminder
	}

	return &Habit{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         cleanName,
		Description:  cleanDesc,
		Goal:         strings.TrimSpace(goal),
		ReminderTime: remPtr,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Update edits the descriptive fields only. Completion state and streak are
// owned by the completion path and never touched here.
func (h *Habit) Update(name, description, goal, reminder string) error {
	cleanDesc := strings.TrimSpace(description)

	cleanName, err := validateHabitFields(name, cleanDesc, reminder)
	if err != nil {
		return err
	}

	var remPtr *string
	if reminder != "" {
		remPtr = &reminder
	}

	h.Name = cleanName
	h.Description = cleanDesc
	h.Goal = strings.TrimSpace(goal)
	h.ReminderTime = remPtr

	return nil
}

func (h *Habit) SetProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}
	h.Progress = progress
	return nil
}

// MarkCompleted flips the habit into the completed state for the given
// calendar date. The streak is supplied by the caller, which is expected to
// have recomputed it from the completion history.
func (h *Habit) MarkCompleted(date time.Time, streak int) {
	day := DateOnly(date)
	h.Completed = true
	h.CompletedAt = &day
	h.Streak = streak
}

// RevokeCompletion clears the completion triple.
func (h *Habit) RevokeCompletion() {
	h.Completed = false
	h.CompletedAt = nil
	h.Streak = 0
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
