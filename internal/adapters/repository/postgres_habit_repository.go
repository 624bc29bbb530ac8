package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresHabitRepository) scanRow(row scannable) (*domain.Habit, error) {
	var h domain.Habit
	var userID sql.NullString

	err := row.Scan(
		&h.ID, &userID, &h.Name, &h.Description, &h.Goal, &h.ReminderTime,
		&h.Completed, &h.CompletedAt, &h.CreatedAt, &h.Progress, &h.Streak,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		h.UserID = userID.String
	}

	return &h, nil
}

// nullableUser maps the anonymous owner (empty string) to SQL NULL so the
// habits table can keep a real foreign key on user_id.
func nullableUser(userID string) sql.NullString {
	return sql.NullString{String: userID, Valid: userID != ""}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
        INSERT INTO habits (
            id, user_id, name, description, goal, reminder_time,
            completed, completed_at, created_at, progress, streak
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		h.ID, nullableUser(h.UserID), h.Name, h.Description, h.Goal, h.ReminderTime,
		h.Completed, h.CompletedAt, h.CreatedAt, h.Progress, h.Streak,
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `
        SELECT id, user_id, name, description, goal, reminder_time,
               completed, completed_at, created_at, progress, streak
        FROM habits WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	h, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `
        SELECT id, user_id, name, description, goal, reminder_time,
               completed, completed_at, created_at, progress, streak
        FROM habits
        WHERE user_id IS NOT DISTINCT FROM $1
        ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, nullableUser(userID))
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		h, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (r *PostgresHabitRepository) ListWithReminder(ctx context.Context) ([]*domain.Habit, error) {
	query := `
        SELECT id, user_id, name, description, goal, reminder_time,
               completed, completed_at, created_at, progress, streak
        FROM habits
        WHERE reminder_time IS NOT NULL
        ORDER BY reminder_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		h, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
        UPDATE habits SET
            name=$1, description=$2, goal=$3, reminder_time=$4, progress=$5
        WHERE id=$6`

	res, err := r.db.ExecContext(ctx, query,
		h.Name, h.Description, h.Goal, h.ReminderTime, h.Progress, h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}

// UpdateCompletion writes the completion triple in one statement, so a
// concurrent reader sees either the old or the new state in full.
func (r *PostgresHabitRepository) UpdateCompletion(ctx context.Context, id string, completed bool, completedAt *time.Time, streak int) error {
	query := `
        UPDATE habits SET completed=$1, completed_at=$2, streak=$3
        WHERE id=$4`

	res, err := r.db.ExecContext(ctx, query, completed, completedAt, streak, id)
	if err != nil {
		return fmt.Errorf("failed to update completion state: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}
