package postgres

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
		WHERE f.user_id = $1
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

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO friendships (user_id, friend_id, created_at) VALUES ($1, $2, $3), ($2, $1, $3)
		ON CONFLICT (user_id, friend_id) DO NOTHING`,
		ownerID, friend.ID, now)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to add friendship: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return models.User{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, false, err
	}
	return friend, inserted > 0, nil
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
		if err := rows.Scan(&f.UserID, &f.FriendID, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.CreatedAt = f.CreatedAt.UTC()
		out = append(out, f)
	}
	return out, rows.Err()
}
