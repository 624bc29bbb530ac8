package services

import (
	"context"
	"time"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
	"github.com/gmarinelli/habitpulse/internal/metrics"
)

type HabitService struct {
	repo    domain.HabitRepository
	history domain.CompletionHistory
	logs    domain.TimeLogRepository
	policy  MilestonePolicy
}

func NewHabitService(repo domain.HabitRepository, history domain.CompletionHistory, logs domain.TimeLogRepository, policy MilestonePolicy) *HabitService {
	if policy == nil {
		policy = ExactMatchPolicy{}
	}
	return &HabitService{
		repo:    repo,
		history: history,
		logs:    logs,
		policy:  policy,
	}
}

type CreateHabitInput struct {
	UserID       string
	Name         string
	Description  string
	Goal         string
	ReminderTime string
}

// UpdateHabitInput describes a habit edit. ReminderTime distinguishes an
// omitted field (nil, keep the current reminder) from an explicit empty
// string (clear it).
type UpdateHabitInput struct {
	ID           string
	UserID       string
	Name         string
	Description  string
	Goal         string
	ReminderTime *string
	Progress     *int
}

// CompletionResult is what a completion toggle hands back: the updated habit
// plus, on the way up, the milestone reward (if the new streak hit one) and
// a reinforcement message.
type CompletionResult struct {
	Habit   *domain.Habit  `json:"habit"`
	Reward  *domain.Reward `json:"reward,omitempty"`
	Message string         `json:"message,omitempty"`
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name, input.Description, input.Goal, input.ReminderTime)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// getOwned fetches a habit and enforces ownership. Anonymous habits (no
// owner) are readable by anyone; owned habits surface as not-found to other
// users rather than leaking their existence.
func (s *HabitService) getOwned(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if habit.UserID != "" && habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	return habit, nil
}

func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return s.getOwned(ctx, id, userID)
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.getOwned(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = habit.Name
	}

	var reminder string
	switch {
	case input.ReminderTime != nil:
		reminder = *input.ReminderTime
	case habit.ReminderTime != nil:
		reminder = *habit.ReminderTime
	}

	if err := habit.Update(name, input.Description, input.Goal, reminder); err != nil {
		return nil, err
	}

	if input.Progress != nil {
		if err := habit.SetProgress(*input.Progress); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// SetCompletion is the engine's single write path. Marking a habit complete
// records a completion event and recomputes the streak from the full
// history; revoking resets the triple to its zero state. Either way the
// (completed, completed_at, streak) triple is written in one repository
// call.
func (s *HabitService) SetCompletion(ctx context.Context, id, userID string, completed bool, now time.Time) (*CompletionResult, error) {
	habit, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !completed {
		habit.RevokeCompletion()
		if err := s.repo.UpdateCompletion(ctx, habit.ID, false, nil, 0); err != nil {
			return nil, err
		}
		return &CompletionResult{Habit: habit}, nil
	}

	today := domain.DateOnly(now)

	if err := s.history.Record(ctx, domain.CompletionEvent{
		HabitID: habit.ID,
		UserID:  habit.UserID,
		Date:    today,
	}); err != nil {
		return nil, err
	}

	dates, err := s.history.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, err
	}

	streak := ComputeStreak(dates)
	metrics.StreakRecomputations.Inc()

	habit.MarkCompleted(today, streak)
	if err := s.repo.UpdateCompletion(ctx, habit.ID, true, habit.CompletedAt, streak); err != nil {
		return nil, err
	}

	metrics.CompletionsTotal.Inc()

	return &CompletionResult{
		Habit:   habit,
		Reward:  s.policy.Classify(streak),
		Message: ReinforcementMessage(habit.Name, streak),
	}, nil
}

// Streak reports the stored streak together with its reinforcement message
// and milestone classification. Reads never recompute: a stale streak is
// reported as-is until the next completion write.
func (s *HabitService) Streak(ctx context.Context, id, userID string) (*CompletionResult, error) {
	habit, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		Habit:   habit,
		Reward:  s.policy.Classify(habit.Streak),
		Message: ReinforcementMessage(habit.Name, habit.Streak),
	}, nil
}

// Delete removes the habit and cascades to its completion history and time
// logs.
func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	habit, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.history.DeleteByHabitID(ctx, habit.ID); err != nil {
		return err
	}
	if err := s.logs.DeleteByHabitID(ctx, habit.ID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, habit.ID)
}
