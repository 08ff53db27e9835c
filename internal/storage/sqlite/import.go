package sqlite

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
			INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				username = excluded.username,
				full_name = excluded.full_name,
				profile_picture = excluded.profile_picture,
				friend_code = excluded.friend_code,
				created_at = excluded.created_at`,
			u.ID, u.Username, u.FullName, u.ProfilePicture, u.FriendCode, u.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to import user %s: %w", u.Username, err)
		}
	}
	for _, h := range snapshot.Habits {
		if err := s.insertHabit(ctx, tx, h); err != nil {
			return err
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, l := range snapshot.Logs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO habit_logs (habit_id, date, completed, created_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(habit_id, date) DO UPDATE SET completed = excluded.completed`,
			l.HabitID, l.Date, l.Completed, now); err != nil {
			return fmt.Errorf("failed to import log %s/%s: %w", l.HabitID, l.Date, err)
		}
	}
	for _, f := range snapshot.Friendships {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO friendships (user_id, friend_id, created_at) VALUES (?, ?, ?)
			ON CONFLICT(user_id, friend_id) DO NOTHING`,
			f.UserID, f.FriendID, f.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to import friendship: %w", err)
		}
	}

	return tx.Commit()
}

var _ storage.Provider = (*Store)(nil)
