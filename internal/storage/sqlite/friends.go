package sqlite

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/models"
)

func (s *Store) ListFriends(ctx context.Context, ownerID string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.full_name, u.profile_picture, u.friend_code, u.created_at
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = ?
		ORDER BY u.username`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		friends = append(friends, u)
	}
	return friends, rows.Err()
}

func (s *Store) AddFriend(ctx context.Context, ownerID, friendCode string) (models.User, bool, error) {
	friend, err := s.GetUserByFriendCode(ctx, friendCode)
	if err != nil {
		return models.User{}, false, err
	}
	if friend.ID == ownerID {
		return models.User{}, false, fmt.Errorf("cannot add yourself as a friend: %w", apperrors.ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, false, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM friendships WHERE user_id = ? AND friend_id = ?", ownerID, friend.ID,
	).Scan(&existing); err != nil {
		return models.User{}, false, err
	}
	if existing > 0 {
		return friend, false, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, pair := range [][2]string{{ownerID, friend.ID}, {friend.ID, ownerID}} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO friendships (user_id, friend_id, created_at) VALUES (?, ?, ?)
			ON CONFLICT(user_id, friend_id) DO NOTHING`,
			pair[0], pair[1], now); err != nil {
			return models.User{}, false, fmt.Errorf("failed to add friendship: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, false, err
	}
	return friend, true, nil
}

func (s *Store) GetAllFriendships(ctx context.Context) ([]models.Friendship, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT user_id, friend_id, created_at FROM friendships ORDER BY user_id, friend_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Friendship{}
	for rows.Next() {
		var f models.Friendship
		var createdAt string
		if err := rows.Scan(&f.UserID, &f.FriendID, &createdAt); err != nil {
			return nil, err
		}
		if f.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse friendship created_at: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
