// Package service wires the stores to the dashboard engine. It is the only
// place that reads the clock.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/constants"
	"github.com/julianstephens/habitboard/internal/engine"
	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/logger"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/storage"
	"github.com/julianstephens/habitboard/internal/utils"
	"github.com/julianstephens/habitboard/internal/validation"
)

// Options configures a Service. Zero values fall back to the system clock,
// the local timezone and the default username.
type Options struct {
	Clock       utils.Clock
	Location    *time.Location
	DefaultUser string
}

type Service struct {
	store       storage.Provider
	clock       utils.Clock
	loc         *time.Location
	defaultUser string
}

func New(store storage.Provider, opts Options) *Service {
	s := &Service{
		store:       store,
		clock:       opts.Clock,
		loc:         opts.Location,
		defaultUser: opts.DefaultUser,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.defaultUser == "" {
		s.defaultUser = constants.DefaultUsername
	}
	return s
}

// Store exposes the underlying provider for maintenance commands.
func (s *Service) Store() storage.Provider {
	return s.store
}

// Today is the current calendar date in the configured timezone.
func (s *Service) Today() calendar.Date {
	return utils.TodayIn(s.clock, s.loc)
}

// monthData loads a user's habits and the logs of one month.
func (s *Service) monthData(ctx context.Context, user models.User, year, month int) ([]models.Habit, []models.LogEntry, error) {
	if _, err := calendar.DaysInMonth(year, month); err != nil {
		return nil, nil, err
	}
	habits, err := s.store.ListHabits(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list habits: %w", err)
	}
	logs, err := s.store.ListLogs(ctx, user.ID, year, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return habits, logs, nil
}

// GetDashboard builds the month view for user. Streaks are scanned up to
// today when the month is the current one.
func (s *Service) GetDashboard(ctx context.Context, user models.User, year, month int) (models.Dashboard, error) {
	habits, logs, err := s.monthData(ctx, user, year, month)
	if err != nil {
		return models.Dashboard{}, err
	}
	dash, err := engine.BuildDashboard(habits, logs, year, month, s.Today())
	if err != nil {
		return models.Dashboard{}, err
	}
	dash.UserInfo = models.UserInfo{
		Name:       user.FullName,
		FriendCode: user.FriendCode,
		Pic:        user.ProfilePicture,
	}
	return dash, nil
}

// Toggle flips the completion of habitID on date and returns the
// authoritative dashboard for the month containing date.
func (s *Service) Toggle(ctx context.Context, user models.User, habitID string, date calendar.Date) (models.ToggleResult, error) {
	if date.IsZero() {
		return models.ToggleResult{}, fmt.Errorf("toggle date is required: %w", apperrors.ErrInvalidDate)
	}
	if _, err := calendar.NewDate(date.Year, date.Month, date.Day); err != nil {
		return models.ToggleResult{}, err
	}

	added, err := s.store.ApplyToggle(ctx, user.ID, habitID, date)
	if err != nil {
		return models.ToggleResult{}, err
	}
	status := constants.ToggleStatusRemoved
	if added {
		status = constants.ToggleStatusAdded
	}
	logger.Debug("Toggled habit", "user", user.Username, "habit", habitID, "date", date, "status", status)

	dash, err := s.GetDashboard(ctx, user, date.Year, date.Month)
	if err != nil {
		return models.ToggleResult{}, err
	}

	result := models.ToggleResult{Status: status, Dashboard: dash}
	for _, h := range dash.Habits {
		if h.ID != habitID {
			continue
		}
		streak, err := engine.Streak(h.Habit, engine.BuildIndex(dash.Logs), date.Year, date.Month, date)
		if err != nil {
			return models.ToggleResult{}, err
		}
		result.NewStreak = streak.Current
		break
	}
	return result, nil
}

// GetLeaderboard ranks user and their friends by completion over the
// current month up to today.
func (s *Service) GetLeaderboard(ctx context.Context, user models.User) ([]models.LeaderboardEntry, error) {
	today := s.Today()
	friends, err := s.store.ListFriends(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}

	participants := make([]engine.Participant, 0, len(friends)+1)
	for _, u := range append([]models.User{user}, friends...) {
		habits, logs, err := s.monthData(ctx, u, today.Year, today.Month)
		if err != nil {
			return nil, err
		}
		participants = append(participants, engine.Participant{
			User:   u,
			Habits: habits,
			Logs:   logs,
			IsMe:   u.ID == user.ID,
		})
	}
	return engine.Leaderboard(participants, today.Year, today.Month, today.Day)
}

func (s *Service) ListHabits(ctx context.Context, user models.User) ([]models.Habit, error) {
	return s.store.ListHabits(ctx, user.ID)
}

// CreateHabit applies the habit defaults, validates the result and stores
// it with today as its creation date.
func (s *Service) CreateHabit(ctx context.Context, user models.User, fields models.HabitFields) (models.Habit, error) {
	fields = validation.WithDefaults(fields)
	if err := validation.HabitFields(fields); err != nil {
		return models.Habit{}, err
	}
	h, err := s.store.CreateHabit(ctx, user.ID, fields, s.Today())
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to create habit: %w", err)
	}
	logger.Info("Habit created", "user", user.Username, "habit", h.ID, "name", h.Name)
	return h, nil
}

// UpdateHabit changes the fields set in patch on a habit owned by user.
func (s *Service) UpdateHabit(ctx context.Context, user models.User, habitID string, patch models.HabitPatch) (models.Habit, error) {
	h, err := s.ownedHabit(ctx, user, habitID)
	if err != nil {
		return models.Habit{}, err
	}
	if patch.IsEmpty() {
		return h, nil
	}

	merged := patch.Apply(h)
	if err := validation.HabitFields(models.HabitFields{
		Name:          merged.Name,
		Icon:          merged.Icon,
		TargetDays:    merged.TargetDays,
		ScheduledTime: merged.ScheduledTime,
	}); err != nil {
		return models.Habit{}, err
	}
	return s.store.UpdateHabit(ctx, habitID, patch)
}

func (s *Service) ownedHabit(ctx context.Context, user models.User, habitID string) (models.Habit, error) {
	h, err := s.store.GetHabit(ctx, habitID)
	if errors.Is(err, apperrors.ErrNotFound) || (err == nil && h.OwnerID != user.ID) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", habitID, apperrors.ErrUnknownHabit)
	}
	if err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// ListLogs returns the user's log entries for a YYYY-MM month.
func (s *Service) ListLogs(ctx context.Context, user models.User, month string) ([]models.LogEntry, error) {
	y, m, err := utils.ParseMonth(month)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidDate)
	}
	return s.store.ListLogs(ctx, user.ID, y, m)
}
