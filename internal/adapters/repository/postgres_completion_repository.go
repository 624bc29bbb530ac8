package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

type PostgresCompletionHistory struct {
	db *sqlx.DB
}

func NewPostgresCompletionHistory(db *sqlx.DB) *PostgresCompletionHistory {
	return &PostgresCompletionHistory{db: db}
}

// Record appends one completion event. The table carries a unique index on
// (habit_id, date); a same-day re-completion is a no-op instead of a
// duplicate row.
func (r *PostgresCompletionHistory) Record(ctx context.Context, event domain.CompletionEvent) error {
	query := `
        INSERT INTO habit_completions (habit_id, user_id, date)
        VALUES ($1, $2, $3)
        ON CONFLICT (habit_id, date) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		event.HabitID,
		sql.NullString{String: event.UserID, Valid: event.UserID != ""},
		domain.DateOnly(event.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}

	return nil
}

func (r *PostgresCompletionHistory) ListByHabitID(ctx context.Context, habitID string) ([]time.Time, error) {
	query := `
        SELECT date FROM habit_completions
        WHERE habit_id = $1
        ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, habitID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

func (r *PostgresCompletionHistory) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.CompletionEvent, error) {
	query := `
        SELECT habit_id, user_id, date FROM habit_completions
        WHERE user_id IS NOT DISTINCT FROM $1 AND date BETWEEN $2 AND $3
        ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query,
		sql.NullString{String: userID, Valid: userID != ""},
		domain.DateOnly(from), domain.DateOnly(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var events []domain.CompletionEvent
	for rows.Next() {
		var e domain.CompletionEvent
		var owner sql.NullString
		if err := rows.Scan(&e.HabitID, &owner, &e.Date); err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		if owner.Valid {
			e.UserID = owner.String
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *PostgresCompletionHistory) DeleteByHabitID(ctx context.Context, habitID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM habit_completions WHERE habit_id = $1`, habitID); err != nil {
		return fmt.Errorf("failed to delete completion history: %w", err)
	}
	return nil
}
