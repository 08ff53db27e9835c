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
	"github.com/julianstephens/habitboard/internal/storage"
)

const habitColumns = "id, owner_id, name, icon, target_days, scheduled_time, created_at"

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var createdAt time.Time
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Icon, &h.TargetDays, &h.ScheduledTime, &createdAt); err != nil {
		return models.Habit{}, err
	}
	h.CreatedAt = calendar.FromTime(createdAt)
	return h, nil
}

func (s *Store) queryHabits(ctx context.Context, query string, args ...any) ([]models.Habit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) ListHabits(ctx context.Context, ownerID string) ([]models.Habit, error) {
	return s.queryHabits(ctx, `
		SELECT `+habitColumns+` FROM habits
		WHERE owner_id = $1
		ORDER BY scheduled_time, name, id`, ownerID)
}

func (s *Store) GetHabit(ctx context.Context, id string) (models.Habit, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+habitColumns+" FROM habits WHERE id = $1", id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, apperrors.ErrNotFound)
	}
	return h, err
}

func (s *Store) CreateHabit(ctx context.Context, ownerID string, fields models.HabitFields, createdAt calendar.Date) (models.Habit, error) {
	h := models.Habit{
		ID:            storage.NewID(),
		OwnerID:       ownerID,
		Name:          fields.Name,
		Icon:          fields.Icon,
		TargetDays:    fields.TargetDays,
		ScheduledTime: fields.ScheduledTime,
		CreatedAt:     createdAt,
	}
	if err := upsertHabit(ctx, s.db, h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertHabit(ctx context.Context, db execer, h models.Habit) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			name = EXCLUDED.name,
			icon = EXCLUDED.icon,
			target_days = EXCLUDED.target_days,
			scheduled_time = EXCLUDED.scheduled_time,
			created_at = EXCLUDED.created_at`,
		h.ID, h.OwnerID, h.Name, h.Icon, h.TargetDays, h.ScheduledTime, h.CreatedAt.String())
	if err != nil {
		return fmt.Errorf("failed to save habit %s: %w", h.Name, err)
	}
	return nil
}

func (s *Store) UpdateHabit(ctx context.Context, id string, patch models.HabitPatch) (models.Habit, error) {
	h, err := s.GetHabit(ctx, id)
	if err != nil {
		return models.Habit{}, err
	}
	if patch.IsEmpty() {
		return h, nil
	}
	h = patch.Apply(h)

	_, err = s.db.ExecContext(ctx, `
		UPDATE habits SET name = $1, icon = $2, target_days = $3, scheduled_time = $4
		WHERE id = $5`,
		h.Name, h.Icon, h.TargetDays, h.ScheduledTime, h.ID)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to update habit %s: %w", id, err)
	}
	return h, nil
}

func (s *Store) GetAllHabits(ctx context.Context) ([]models.Habit, error) {
	return s.queryHabits(ctx, "SELECT "+habitColumns+" FROM habits ORDER BY owner_id, scheduled_time, name, id")
}
