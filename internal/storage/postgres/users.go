package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/storage"
)

const userColumns = "id, username, full_name, profile_picture, friend_code, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.ProfilePicture, &u.FriendCode, &u.CreatedAt); err != nil {
		return models.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = storage.NewID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	generate := user.FriendCode == ""
	for attempt := 0; attempt < storage.FriendCodeAttempts; attempt++ {
		if generate {
			user.FriendCode = storage.NewFriendCode()
		}
		var taken bool
		if err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE friend_code = $1)", user.FriendCode).Scan(&taken); err != nil {
			return models.User{}, fmt.Errorf("failed to check friend code: %w", err)
		}
		if !taken {
			break
		}
		if !generate || attempt == storage.FriendCodeAttempts-1 {
			return models.User{}, fmt.Errorf("friend code %s already in use: %w", user.FriendCode, apperrors.ErrValidation)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.FullName, user.ProfilePicture, user.FriendCode, user.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user %s: %w", user.Username, err)
	}
	return user, nil
}

func (s *Store) EnsureUser(ctx context.Context, user models.User) (models.User, error) {
	existing, err := s.GetUserByUsername(ctx, user.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return models.User{}, err
	}
	return s.CreateUser(ctx, user)
}

func (s *Store) getUserWhere(ctx context.Context, column, value string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user with %s %q: %w", column, value, apperrors.ErrNotFound)
	}
	return u, err
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.getUserWhere(ctx, "id", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.getUserWhere(ctx, "username", username)
}

func (s *Store) GetUserByFriendCode(ctx context.Context, code string) (models.User, error) {
	return s.getUserWhere(ctx, "friend_code", code)
}

func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
