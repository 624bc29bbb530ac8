package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
)

var (
	ErrInvalidMonth        = errors.New("month must be between 1 and 12")
	ErrInvalidLookbackDays = errors.New("lookback days must be positive")
)

// DefaultLookbackDays is the frequency-over-time window when the caller does
// not supply one.
const DefaultLookbackDays = 30

// ProgressService hosts the stateless read computations. Every method is a
// pure function of repository state plus an injected "now"; wall-clock time
// is never consulted directly, which keeps the outputs deterministic under
// test.
type ProgressService struct {
	habitRepo domain.HabitRepository
	history   domain.CompletionHistory
}

func NewProgressService(habitRepo domain.HabitRepository, history domain.CompletionHistory) *ProgressService {
	return &ProgressService{
		habitRepo: habitRepo,
		history:   history,
	}
}

// WeeklySummary counts, per habit, the completion dates inside the inclusive
// window [now-7d, now]. Habits without completions still get a row with 0.
func (s *ProgressService) WeeklySummary(ctx context.Context, userID string, now time.Time) (*domain.WeeklySummary, error) {
	endDate := domain.DateOnly(now)
	startDate := endDate.AddDate(0, 0, -7)

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.history.ListByUserIDAndDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	// Dedupe by (habit, date) so a double-recorded day counts once.
	counted := make(map[string]bool)
	perHabit := make(map[string]int)
	for _, e := range events {
		key := e.HabitID + "|" + domain.DateOnly(e.Date).Format("2006-01-02")
		if !counted[key] {
			counted[key] = true
			perHabit[e.HabitID]++
		}
	}

	summary := &domain.WeeklySummary{
		StartDate: startDate.Format("2006-01-02"),
		EndDate:   endDate.Format("2006-01-02"),
		Habits:    make([]domain.HabitSummary, 0, len(habits)),
	}

	for _, h := range habits {
		summary.Habits = append(summary.Habits, domain.HabitSummary{
			HabitID:       h.ID,
			HabitName:     h.Name,
			DaysCompleted: perHabit[h.ID],
		})
	}

	return summary, nil
}

// CompletionReport looks at habits created on or after the first day of
// now's month and reports the share currently marked completed. Zero habits
// yields a zero report, never a division fault.
func (s *ProgressService) CompletionReport(ctx context.Context, userID string, now time.Time) (*domain.CompletionReport, error) {
	firstOfMonth := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &domain.CompletionReport{}

	for _, h := range habits {
		if h.CreatedAt.Before(firstOfMonth) {
			continue
		}
		report.TotalHabits++
		if h.Completed {
			report.CompletedHabits++
		}
	}

	if report.TotalHabits > 0 {
		pct := float64(report.CompletedHabits) / float64(report.TotalHabits) * 100
		report.Percentage = math.Round(pct*100) / 100
	}

	return report, nil
}

// FrequencyOverTime tallies the habit's completion dates inside the lookback
// window [now-days, now]. The model normally yields at most one completion
// per date, but duplicate history rows are tallied as-is rather than
// rejected.
func (s *ProgressService) FrequencyOverTime(ctx context.Context, habitID, userID string, days int, now time.Time) (domain.FrequencyMap, error) {
	if days <= 0 {
		return nil, ErrInvalidLookbackDays
	}

	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != "" && habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	endDate := domain.DateOnly(now)
	startDate := endDate.AddDate(0, 0, -days)

	dates, err := s.history.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, err
	}

	freq := make(domain.FrequencyMap)
	for _, d := range dates {
		day := domain.DateOnly(d)
		if day.Before(startDate) || day.After(endDate) {
			continue
		}
		freq[day.Format("2006-01-02")]++
	}

	return freq, nil
}

// ProgressCalendar builds the day -> completed-habit-names view for one
// month. The day count comes from the calendar itself (day zero of the next
// month), so leap Februaries get their 29 keys without a lookup table.
func (s *ProgressService) ProgressCalendar(ctx context.Context, userID string, month, year int) (*domain.ProgressCalendar, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
	}

	events, err := s.history.ListByUserIDAndDateRange(ctx, userID, firstDay, lastDay)
	if err != nil {
		return nil, err
	}

	cal := &domain.ProgressCalendar{
		Month: month,
		Year:  year,
		Days:  make(map[int][]string, lastDay.Day()),
	}
	for day := 1; day <= lastDay.Day(); day++ {
		cal.Days[day] = []string{}
	}

	seen := make(map[string]bool)
	for _, e := range events {
		name, ok := names[e.HabitID]
		if !ok {
			continue
		}

		day := domain.DateOnly(e.Date).Day()
		key := e.HabitID + "|" + domain.DateOnly(e.Date).Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true

		cal.Days[day] = append(cal.Days[day], name)
	}

	return cal, nil
}
