package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
	"github.com/gmarinelli/habitpulse/internal/metrics"
)

type HabitLister interface {
	ListWithReminder(ctx context.Context) ([]*domain.Habit, error)
}

type ReminderJob struct {
	HabitID   string
	UserID    string
	HabitName string
}

// ReminderWorker scans habits with a reminder time once a minute and pushes
// a job for every habit due at the current wall-clock minute. Jobs are
// consumed by a single background goroutine; a full queue drops the job
// rather than blocking the scan.
type ReminderWorker struct {
	habits HabitLister
	jobs   chan ReminderJob
	logger *zap.Logger
	tick   time.Duration
}

func NewReminderWorker(habits HabitLister, logger *zap.Logger) *ReminderWorker {
	return &ReminderWorker{
		habits: habits,
		jobs:   make(chan ReminderJob, 100),
		logger: logger,
		tick:   time.Minute,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	go w.scanLoop(ctx)
	go w.dispatchLoop(ctx)
}

func (w *ReminderWorker) scanLoop(ctx context.Context) {
	w.logger.Info("reminder_worker_started")

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			w.scan(ctx, now)
		case <-ctx.Done():
			w.logger.Info("reminder_worker_stopping")
			return
		}
	}
}

func (w *ReminderWorker) scan(ctx context.Context, now time.Time) {
	habits, err := w.habits.ListWithReminder(ctx)
	if err != nil {
		w.logger.Error("reminder_scan_failed", zap.Error(err))
		return
	}

	for _, h := range DueHabits(habits, now) {
		job := ReminderJob{HabitID: h.ID, UserID: h.UserID, HabitName: h.Name}
		select {
		case w.jobs <- job:
		default:
			w.logger.Warn("reminder_queue_full", zap.String("habit_id", h.ID))
		}
	}
}

func (w *ReminderWorker) dispatchLoop(ctx context.Context) {
	for {
		select {
		case job := <-w.jobs:
			// Delivery transports (push, mail) hang off here; the engine
			// itself only logs and counts the dispatch.
			w.logger.Info("reminder_dispatched",
				zap.String("habit_id", job.HabitID),
				zap.String("user_id", job.UserID),
				zap.String("habit", job.HabitName),
			)
			metrics.RemindersDispatched.Inc()
		case <-ctx.Done():
			return
		}
	}
}

// DueHabits filters to the habits whose reminder time matches now's HH:MM.
func DueHabits(habits []*domain.Habit, now time.Time) []*domain.Habit {
	hhmm := now.Format("15:04")

	var due []*domain.Habit
	for _, h := range habits {
		if h.ReminderTime != nil && *h.ReminderTime == hhmm {
			due = append(due, h)
		}
	}
	return due
}
