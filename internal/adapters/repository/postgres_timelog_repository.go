package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

type PostgresTimeLogRepository struct {
	db *sqlx.DB
}

func NewPostgresTimeLogRepository(db *sqlx.DB) *PostgresTimeLogRepository {
	return &PostgresTimeLogRepository{db: db}
}

func (r *PostgresTimeLogRepository) Append(ctx context.Context, entry *domain.TimeLogEntry) error {
	query := `
        INSERT INTO time_logs (id, habit_id, date, time_spent, created_at)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.HabitID, entry.Date, entry.TimeSpent, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert time log: %w", err)
	}

	return nil
}

func (r *PostgresTimeLogRepository) ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.TimeLogEntry, error) {
	query := `
        SELECT id, habit_id, date, time_spent, created_at
        FROM time_logs
        WHERE habit_id = $1 AND date BETWEEN $2 AND $3
        ORDER BY date ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, habitID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeLogEntry
	for rows.Next() {
		var e domain.TimeLogEntry
		if err := rows.Scan(&e.ID, &e.HabitID, &e.Date, &e.TimeSpent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

func (r *PostgresTimeLogRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM time_logs WHERE habit_id = $1`, habitID); err != nil {
		return fmt.Errorf("failed to delete time logs: %w", err)
	}
	return nil
}
