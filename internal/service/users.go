package service

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitboard/internal/constants"
	"github.com/julianstephens/habitboard/internal/logger"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/validation"
)

// EnsureDefaultUser creates the configured default user on first use.
func (s *Service) EnsureDefaultUser(ctx context.Context) (models.User, error) {
	return s.store.EnsureUser(ctx, models.User{
		Username:       s.defaultUser,
		FullName:       constants.DefaultUserFullName,
		ProfilePicture: constants.DefaultProfilePicture,
	})
}

// CurrentUser resolves a username to a user. An empty username means the
// default user, which is created on demand.
func (s *Service) CurrentUser(ctx context.Context, username string) (models.User, error) {
	if username == "" || username == s.defaultUser {
		return s.EnsureDefaultUser(ctx)
	}
	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("user %q: %w", username, err)
	}
	return u, nil
}

// CreateUser registers a new user with a fresh friend code.
func (s *Service) CreateUser(ctx context.Context, username, fullName, picture string) (models.User, error) {
	if err := validation.Username(username); err != nil {
		return models.User{}, err
	}
	if fullName == "" {
		fullName = username
	}
	if picture == "" {
		picture = constants.AvatarURLPrefix + username
	}
	u, err := s.store.CreateUser(ctx, models.User{Username: username, FullName: fullName, ProfilePicture: picture})
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	logger.Info("User created", "username", u.Username, "friend_code", u.FriendCode)
	return u, nil
}

// AddFriend redeems a friend code for user.
func (s *Service) AddFriend(ctx context.Context, user models.User, code string) (models.FriendResult, error) {
	code, err := validation.FriendCode(code)
	if err != nil {
		return models.FriendResult{}, err
	}
	friend, added, err := s.store.AddFriend(ctx, user.ID, code)
	if err != nil {
		return models.FriendResult{}, err
	}
	status := constants.FriendStatusExisted
	if added {
		status = constants.FriendStatusAdded
		logger.Info("Friend added", "user", user.Username, "friend", friend.Username)
	}
	return models.FriendResult{Status: status, FriendName: friend.FullName}, nil
}

func (s *Service) ListFriends(ctx context.Context, user models.User) ([]models.User, error) {
	return s.store.ListFriends(ctx, user.ID)
}
