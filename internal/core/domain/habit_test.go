package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewHabit(t *testing.T) {
	t.Run("Success: Creates valid habit with clean defaults", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "Drink Water", "2 liters a day", "Stay hydrated", "08:30")

		assert.Nil(t, err)
		assert.NotNil(t, h)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "u1", h.UserID)
		assert.Equal(t, "Drink Water", h.Name)
		assert.Equal(t, "2 liters a day", h.Description)
		assert.Equal(t, "Stay hydrated", h.Goal)

		assert.NotNil(t, h.ReminderTime)
		assert.Equal(t, "08:30", *h.ReminderTime)

		assert.False(t, h.Completed, "New habits must start uncompleted")
		assert.Nil(t, h.CompletedAt)
		assert.Equal(t, 0, h.Streak)
		assert.Equal(t, 0, h.Progress)

		assert.WithinDuration(t, time.Now().UTC(), h.CreatedAt, 2*time.Second)
	})

	t.Run("Success: Anonymous habit keeps empty owner", func(t *testing.T) {
		h, err := domain.NewHabit("", "Public Habit", "", "", "")

		assert.Nil(t, err)
		assert.Empty(t, h.UserID)
		assert.Nil(t, h.ReminderTime, "Empty reminder must stay nil, not zero string")
	})

	t.Run("Success: Trims whitespace from text fields", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "  Read  ", "  ten pages  ", "  finish book  ", "")

		assert.Nil(t, err)
		assert.Equal(t, "Read", h.Name)
		assert.Equal(t, "ten pages", h.Description)
		assert.Equal(t, "finish book", h.Goal)
	})

	t.Run("Error: Empty Name", func(t *testing.T) {
		_, err := domain.NewHabit("u1", "   ", "desc", "", "")
		assert.Equal(t, domain.ErrHabitNameEmpty, err)
	})

	t.Run("Error: Name Too Long", func(t *testing.T) {
		_, err := domain.NewHabit("u1", strings.Repeat("a", 101), "desc", "", "")
		assert.Equal(t, domain.ErrHabitNameTooLong, err)
	})

	t.Run("Error: Description Too Long", func(t *testing.T) {
		_, err := domain.NewHabit("u1", "Name", strings.Repeat("b", 501), "", "")
		assert.Equal(t, domain.ErrHabitDescTooLong, err)
	})
}

func TestHabit_ReminderValidation(t *testing.T) {
	tests := []struct {
		name     string
		reminder string
		wantErr  error
	}{
		{name: "Success: Morning", reminder: "07:30", wantErr: nil},
		{name: "Success: Midnight", reminder: "00:00", wantErr: nil},
		{name: "Success: Last Minute of Day", reminder: "23:59", wantErr: nil},
		{name: "Error: Hour Out of Range", reminder: "24:00", wantErr: domain.ErrInvalidReminder},
		{name: "Error: Minute Out of Range", reminder: "12:60", wantErr: domain.ErrInvalidReminder},
		{name: "Error: Letters", reminder: "hello", wantErr: domain.ErrInvalidReminder},
		{name: "Error: Missing Leading Zero", reminder: "7:30", wantErr: domain.ErrInvalidReminder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewHabit("u1", "Wake Up", "", "", tt.reminder)
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestHabit_Update(t *testing.T) {
	t.Run("Success: Update changes descriptive fields only", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Original", "old desc", "old goal", "09:00")
		h.MarkCompleted(time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC), 4)

		err := h.Update("Renamed", "new desc", "new goal", "")

		assert.Nil(t, err)
		assert.Equal(t, "Renamed", h.Name)
		assert.Equal(t, "new desc", h.Description)
		assert.Equal(t, "new goal", h.Goal)
		assert.Nil(t, h.ReminderTime)

		assert.True(t, h.Completed, "Update must never touch completion state")
		assert.Equal(t, 4, h.Streak)
	})

	t.Run("Error: Invalid fields leave habit untouched", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Keep Me", "desc", "", "")

		err := h.Update("", "new desc", "", "")

		assert.Equal(t, domain.ErrHabitNameEmpty, err)
		assert.Equal(t, "Keep Me", h.Name)
		assert.Equal(t, "desc", h.Description)
	})
}

func TestHabit_SetProgress(t *testing.T) {
	h, _ := domain.NewHabit("u1", "Progress", "", "", "")

	t.Run("Success: Boundary values", func(t *testing.T) {
		assert.Nil(t, h.SetProgress(0))
		assert.Equal(t, 0, h.Progress)

		assert.Nil(t, h.SetProgress(100))
		assert.Equal(t, 100, h.Progress)
	})

	t.Run("Error: Out of range keeps previous value", func(t *testing.T) {
		_ = h.SetProgress(55)

		assert.Equal(t, domain.ErrInvalidProgress, h.SetProgress(-1))
		assert.Equal(t, domain.ErrInvalidProgress, h.SetProgress(101))
		assert.Equal(t, 55, h.Progress)
	})
}

func TestHabit_CompletionTriple(t *testing.T) {
	t.Run("Success: MarkCompleted stores calendar date and streak", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Run", "", "", "")

		h.MarkCompleted(time.Date(2024, time.February, 29, 18, 45, 12, 0, time.UTC), 7)

		assert.True(t, h.Completed)
		assert.Equal(t, 7, h.Streak)
		assert.NotNil(t, h.CompletedAt)
		assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), *h.CompletedAt,
			"CompletedAt must be truncated to the calendar date")
	})

	t.Run("Success: RevokeCompletion clears the whole triple", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Run", "", "", "")
		h.MarkCompleted(time.Now(), 12)

		h.RevokeCompletion()

		assert.False(t, h.Completed)
		assert.Nil(t, h.CompletedAt)
		assert.Equal(t, 0, h.Streak)
	})
}

func TestDateOnly(t *testing.T) {
	t.Run("Success: Strips clock and normalizes to UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+5", 5*3600)
		in := time.Date(2024, time.January, 2, 1, 30, 0, 0, loc)

		got := domain.DateOnly(in)

		assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), got,
			"01:30 at UTC+5 is still Jan 1st in UTC")
		assert.Equal(t, time.UTC, got.Location())
	})
}
