package services

import (
	"context"
	"time"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
)

type TimeLogService struct {
	repo      domain.TimeLogRepository
	habitRepo domain.HabitRepository
}

func NewTimeLogService(repo domain.TimeLogRepository, habitRepo domain.HabitRepository) *TimeLogService {
	return &TimeLogService{
		repo:      repo,
		habitRepo: habitRepo,
	}
}

type LogTimeInput struct {
	HabitID   string
	UserID    string
	Date      time.Time // zero value defaults to today
	TimeSpent int
}

// Log appends one time log entry. Validation happens before any write, so a
// rejected entry leaves no partial state behind. Same-date entries are not
// merged; logging twice on one day is additive.
func (s *TimeLogService) Log(ctx context.Context, input LogTimeInput) (*domain.TimeLogEntry, error) {
	habit, err := s.habitRepo.GetByID(ctx, input.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != "" && habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}

	entry := domain.NewTimeLogEntry(habit.ID, input.Date, input.TimeSpent)
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// TotalTimeSpent sums the habit's logged minutes over the inclusive range
// [start, end]. Zero-value bounds default to the first of now's month and to
// today. An empty range sums to 0; there is no error path for "no entries".
func (s *TimeLogService) TotalTimeSpent(ctx context.Context, habitID, userID string, start, end, now time.Time) (int, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return 0, err
	}
	if habit.UserID != "" && habit.UserID != userID {
		return 0, domain.ErrHabitNotFound
	}

	if start.IsZero() {
		start = time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		start = domain.DateOnly(start)
	}
	if end.IsZero() {
		end = domain.DateOnly(now)
	} else {
		end = domain.DateOnly(end)
	}

	entries, err := s.repo.ListByHabitID(ctx, habit.ID, start, end)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, e := range entries {
		total += e.TimeSpent
	}

	return total, nil
}
