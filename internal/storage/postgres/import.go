package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/habitboard/internal/storage"
)

// Import writes snapshot in one transaction. Existing rows with the same
// keys are overwritten.
func (s *Store) Import(ctx context.Context, snapshot storage.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range snapshot.Users {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				username = EXCLUDED.username,
				full_name = EXCLUDED.full_name,
				profile_picture = EXCLUDED.profile_picture,
				friend_code = EXCLUDED.friend_code,
				created_at = EXCLUDED.created_at`,
			u.ID, u.Username, u.FullName, u.ProfilePicture, u.FriendCode, u.CreatedAt); err != nil {
			return fmt.Errorf("failed to import user %s: %w", u.Username, err)
		}
	}
	for _, h := range snapshot.Habits {
		if err := upsertHabit(ctx, tx, h); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	for _, l := range snapshot.Logs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO habit_logs (habit_id, date, completed, created_at) VALUES ($1, $2::date, $3, $4)
			ON CONFLICT (habit_id, date) DO UPDATE SET completed = EXCLUDED.completed`,
			l.HabitID, l.Date, l.Completed, now); err != nil {
			return fmt.Errorf("failed to import log %s/%s: %w", l.HabitID, l.Date, err)
		}
	}
	for _, f := range snapshot.Friendships {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO friendships (user_id, friend_id, created_at) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, friend_id) DO NOTHING`,
			f.UserID, f.FriendID, f.CreatedAt); err != nil {
			return fmt.Errorf("failed to import friendship: %w", err)
		}
	}

	return tx.Commit()
}

var _ storage.Provider = (*Store)(nil)
