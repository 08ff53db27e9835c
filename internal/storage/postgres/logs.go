package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitboard/internal/calendar"
	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/models"
)

func (s *Store) queryLogs(ctx context.Context, query string, args ...any) ([]models.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.LogEntry{}
	for rows.Next() {
		var l models.LogEntry
		var date time.Time
		if err := rows.Scan(&l.HabitID, &date, &l.Completed); err != nil {
			return nil, err
		}
		l.Date = calendar.FromTime(date).String()
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) ListLogs(ctx context.Context, ownerID string, year, month int) ([]models.LogEntry, error) {
	first, last, err := calendar.MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	return s.queryLogs(ctx, `
		SELECT l.habit_id, l.date, l.completed
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.owner_id = $1 AND l.date BETWEEN $2::date AND $3::date
		ORDER BY l.date, l.habit_id`,
		ownerID, first.String(), last.String())
}

// ApplyToggle locks the habit row for the duration of the transaction so
// concurrent toggles of the same habit run one after another.
func (s *Store) ApplyToggle(ctx context.Context, ownerID, habitID string, date calendar.Date) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin toggle: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var owner string
	err = tx.QueryRowContext(ctx, "SELECT owner_id FROM habits WHERE id = $1 FOR UPDATE", habitID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != ownerID) {
		return false, fmt.Errorf("habit %s: %w", habitID, apperrors.ErrUnknownHabit)
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up habit %s: %w", habitID, err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM habit_logs WHERE habit_id = $1 AND date = $2::date", habitID, date.String())
	if err != nil {
		return false, fmt.Errorf("failed to remove log: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	added := removed == 0
	if added {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO habit_logs (habit_id, date, completed, created_at)
			VALUES ($1, $2::date, TRUE, $3)`,
			habitID, date.String(), time.Now().UTC())
		if err != nil {
			return false, fmt.Errorf("failed to add log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit toggle: %w", err)
	}
	return added, nil
}

func (s *Store) GetAllLogs(ctx context.Context) ([]models.LogEntry, error) {
	return s.queryLogs(ctx, "SELECT habit_id, date, completed FROM habit_logs ORDER BY habit_id, date")
}
