package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
)

// In-memory implementations of the storage interfaces. Used by handler and
// service tests, and usable as a dev-mode backend.

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *habit
	r.store[habit.ID] = &cp
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}

	cp := *habit
	return &cp, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID {
			cp := *h
			habits = append(habits, &cp)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) ListWithReminder(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.ReminderTime != nil {
			cp := *h
			habits = append(habits, &cp)
		}
	}

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	cp := *habit
	r.store[habit.ID] = &cp
	return nil
}

func (r *InMemoryHabitRepository) UpdateCompletion(ctx context.Context, id string, completed bool, completedAt *time.Time, streak int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}

	habit.Completed = completed
	habit.CompletedAt = completedAt
	habit.Streak = streak
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

type InMemoryCompletionHistory struct {
	events []domain.CompletionEvent

	mu sync.RWMutex
}

func NewInMemoryCompletionHistory() *InMemoryCompletionHistory {
	return &InMemoryCompletionHistory{}
}

func (r *InMemoryCompletionHistory) Record(ctx context.Context, event domain.CompletionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.Date = domain.DateOnly(event.Date)
	r.events = append(r.events, event)
	return nil
}

func (r *InMemoryCompletionHistory) ListByHabitID(ctx context.Context, habitID string) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var dates []time.Time
	for _, e := range r.events {
		if e.HabitID == habitID {
			dates = append(dates, e.Date)
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	return dates, nil
}

func (r *InMemoryCompletionHistory) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.CompletionEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from = domain.DateOnly(from)
	to = domain.DateOnly(to)

	var events []domain.CompletionEvent
	for _, e := range r.events {
		if e.UserID != userID {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		events = append(events, e)
	}

	return events, nil
}

func (r *InMemoryCompletionHistory) DeleteByHabitID(ctx context.Context, habitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	for _, e := range r.events {
		if e.HabitID != habitID {
			kept = append(kept, e)
		}
	}
	r.events = kept
	return nil
}

type InMemoryTimeLogRepository struct {
	entries []*domain.TimeLogEntry

	mu sync.RWMutex
}

func NewInMemoryTimeLogRepository() *InMemoryTimeLogRepository {
	return &InMemoryTimeLogRepository{}
}

func (r *InMemoryTimeLogRepository) Append(ctx context.Context, entry *domain.TimeLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *InMemoryTimeLogRepository) ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.TimeLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from = domain.DateOnly(from)
	to = domain.DateOnly(to)

	var entries []*domain.TimeLogEntry
	for _, e := range r.entries {
		if e.HabitID != habitID {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		cp := *e
		entries = append(entries, &cp)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	return entries, nil
}

func (r *InMemoryTimeLogRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.HabitID != habitID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

type InMemoryUserRepository struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailAlreadyExists
	}

	cp := *user
	r.byID[user.ID] = &cp
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	cp := *user
	return &cp, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	cp := *user
	return &cp, nil
}
