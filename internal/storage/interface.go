package storage

import (
	"context"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/models"
)

type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// EnsureUser returns the user with user.Username, creating it when absent.
	EnsureUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByFriendCode(ctx context.Context, code string) (models.User, error)

	// Habits
	ListHabits(ctx context.Context, ownerID string) ([]models.Habit, error)
	GetHabit(ctx context.Context, id string) (models.Habit, error)
	CreateHabit(ctx context.Context, ownerID string, fields models.HabitFields, createdAt calendar.Date) (models.Habit, error)
	UpdateHabit(ctx context.Context, id string, patch models.HabitPatch) (models.Habit, error)

	// Logs
	ListLogs(ctx context.Context, ownerID string, year, month int) ([]models.LogEntry, error)
	// ApplyToggle flips the completion of habitID on date and reports whether
	// an entry was added. Concurrent toggles of the same pair are serialized.
	ApplyToggle(ctx context.Context, ownerID, habitID string, date calendar.Date) (bool, error)

	// Social
	ListFriends(ctx context.Context, ownerID string) ([]models.User, error)
	// AddFriend links ownerID with the user holding friendCode in both
	// directions. The boolean is false when they were already friends.
	AddFriend(ctx context.Context, ownerID, friendCode string) (models.User, bool, error)

	// Bulk Retrieval for Migration
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetAllHabits(ctx context.Context) ([]models.Habit, error)
	GetAllLogs(ctx context.Context) ([]models.LogEntry, error)
	GetAllFriendships(ctx context.Context) ([]models.Friendship, error)
	Import(ctx context.Context, snapshot Snapshot) error

	// Utils
	GetConfigPath() string
}

// Snapshot is the full contents of a store, used to copy one backend into
// another.
type Snapshot struct {
	Users       []models.User
	Habits      []models.Habit
	Logs        []models.LogEntry
	Friendships []models.Friendship
}

// Export reads every record from p.
func Export(ctx context.Context, p Provider) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Users, err = p.GetAllUsers(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Habits, err = p.GetAllHabits(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Logs, err = p.GetAllLogs(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Friendships, err = p.GetAllFriendships(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
