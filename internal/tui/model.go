// Package tui is the interactive month view: a habit-by-day grid with
// optimistic toggling, plus a friends leaderboard.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/tui/components/leaderboard"
)

// Backend is the part of the service the TUI drives.
type Backend interface {
	Today() calendar.Date
	GetDashboard(ctx context.Context, user models.User, year, month int) (models.Dashboard, error)
	Toggle(ctx context.Context, user models.User, habitID string, date calendar.Date) (models.ToggleResult, error)
	GetLeaderboard(ctx context.Context, user models.User) ([]models.LeaderboardEntry, error)
	CreateHabit(ctx context.Context, user models.User, fields models.HabitFields) (models.Habit, error)
}

type SessionState int

const (
	StateMonth SessionState = iota
	StateFriends
	StateAddHabit
)

type Model struct {
	ctx     context.Context
	backend Backend
	user    models.User

	state SessionState
	keys  KeyMap
	help  help.Model

	year, month int
	today       calendar.Date

	// confirmed is the last dashboard returned by the backend for the
	// visible month; view is what is drawn and may hold an optimistic
	// guess. Both are nil until the month loads.
	confirmed *models.Dashboard
	view      *models.Dashboard
	inFlight  int
	loading   bool
	loadErr   error

	habitRow int
	day      int
	status   string

	board    leaderboard.Model
	boardErr error

	form      *huh.Form
	habitForm *HabitFormModel

	width, height int
	quitting      bool
}

func NewModel(ctx context.Context, backend Backend, user models.User) Model {
	today := backend.Today()
	return Model{
		ctx:     ctx,
		backend: backend,
		user:    user,
		state:   StateMonth,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		year:    today.Year,
		month:   today.Month,
		today:   today,
		day:     today.Day,
		loading: true,
		board:   leaderboard.New(nil, 0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDashboard(), m.loadLeaderboard())
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateFriends:
		return []key.Binding{m.keys.Tab, m.keys.Retry, m.keys.Quit, m.keys.Help}
	case StateAddHabit:
		return nil
	}
	return []key.Binding{m.keys.Toggle, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Add, m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Retry}
	if m.state != StateMonth {
		return [][]key.Binding{global}
	}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	actions := []key.Binding{m.keys.Toggle, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Today, m.keys.Add}
	return [][]key.Binding{global, navigation, actions}
}

// selectedHabit returns the habit under the cursor.
func (m Model) selectedHabit() (models.DashboardHabit, bool) {
	if m.view == nil || len(m.view.Habits) == 0 {
		return models.DashboardHabit{}, false
	}
	return m.view.Habits[m.habitRow], true
}

// selectedDate returns the day under the cursor in the visible month.
func (m Model) selectedDate() calendar.Date {
	return calendar.Date{Year: m.year, Month: m.month, Day: m.day}
}

// clampCursor keeps the cursor inside the loaded month and habit list.
func (m *Model) clampCursor() {
	if m.view == nil {
		return
	}
	if n := len(m.view.Habits); m.habitRow >= n {
		m.habitRow = max(n-1, 0)
	}
	m.day = min(max(m.day, 1), m.view.Meta.DaysInMonth)
}
