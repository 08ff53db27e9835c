package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/engine"
	"github.com/julianstephens/habitboard/internal/models"
)

type dashboardMsg struct {
	year, month int
	dashboard   models.Dashboard
	err         error
}

type toggledMsg struct {
	year, month int
	result      models.ToggleResult
	err         error
}

type leaderboardMsg struct {
	entries []models.LeaderboardEntry
	err     error
}

type habitCreatedMsg struct {
	habit models.Habit
	err   error
}

func (m Model) loadDashboard() tea.Cmd {
	year, month := m.year, m.month
	return func() tea.Msg {
		d, err := m.backend.GetDashboard(m.ctx, m.user, year, month)
		return dashboardMsg{year: year, month: month, dashboard: d, err: err}
	}
}

func (m Model) loadLeaderboard() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.backend.GetLeaderboard(m.ctx, m.user)
		return leaderboardMsg{entries: entries, err: err}
	}
}

func (m Model) sendToggle(habitID string, date calendar.Date) tea.Cmd {
	return func() tea.Msg {
		res, err := m.backend.Toggle(m.ctx, m.user, habitID, date)
		return toggledMsg{year: date.Year, month: date.Month, result: res, err: err}
	}
}

func (m Model) createHabit(fields models.HabitFields) tea.Cmd {
	return func() tea.Msg {
		h, err := m.backend.CreateHabit(m.ctx, m.user, fields)
		return habitCreatedMsg{habit: h, err: err}
	}
}

// predict applies a toggle locally so the grid updates before the backend
// answers.
func predict(d models.Dashboard, habitID string, date, today calendar.Date) (models.Dashboard, error) {
	habits := make([]models.Habit, len(d.Habits))
	for i, h := range d.Habits {
		habits[i] = h.Habit
	}
	next, err := engine.BuildDashboard(habits, engine.Toggle(d.Logs, habitID, date), d.Meta.Year, d.Meta.Month, today)
	if err != nil {
		return models.Dashboard{}, err
	}
	next.UserInfo = d.UserInfo
	return next, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.board.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case dashboardMsg:
		m.today = m.backend.Today()
		if msg.year != m.year || msg.month != m.month {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			m.confirmed, m.view = nil, nil
			return m, nil
		}
		d := msg.dashboard
		m.loadErr = nil
		m.confirmed, m.view = &d, &d
		m.clampCursor()
		return m, nil

	case toggledMsg:
		m.inFlight--
		if msg.year != m.year || msg.month != m.month {
			return m, nil
		}
		if msg.err != nil {
			m.status = dangerStyle.Render(fmt.Sprintf("Toggle failed: %v", msg.err))
			if m.inFlight == 0 {
				m.view = m.confirmed
			}
			return m, nil
		}
		d := msg.result.Dashboard
		m.confirmed = &d
		if m.inFlight == 0 {
			m.view = &d
		}
		m.status = ""
		return m, m.loadLeaderboard()

	case leaderboardMsg:
		m.boardErr = msg.err
		if msg.err == nil {
			m.board.SetEntries(msg.entries)
		}
		return m, nil

	case habitCreatedMsg:
		if msg.err != nil {
			m.status = dangerStyle.Render(fmt.Sprintf("Could not add habit: %v", msg.err))
			return m, nil
		}
		m.status = fmt.Sprintf("Added %s %s", msg.habit.Icon, msg.habit.Name)
		return m, m.loadDashboard()
	}

	switch m.state {
	case StateAddHabit:
		return m.updateForm(msg)
	case StateFriends:
		return m.updateFriends(msg)
	}
	return m.updateMonth(msg)
}

func (m Model) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = StateFriends
	case key.Matches(keyMsg, m.keys.Up):
		if m.habitRow > 0 {
			m.habitRow--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.view != nil && m.habitRow < len(m.view.Habits)-1 {
			m.habitRow++
		}
	case key.Matches(keyMsg, m.keys.Left):
		if m.day > 1 {
			m.day--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.view != nil && m.day < m.view.Meta.DaysInMonth {
			m.day++
		}
	case key.Matches(keyMsg, m.keys.PrevMonth):
		return m.showMonth(calendar.ShiftMonth(m.year, m.month, -1))
	case key.Matches(keyMsg, m.keys.NextMonth):
		return m.showMonth(calendar.ShiftMonth(m.year, m.month, 1))
	case key.Matches(keyMsg, m.keys.Today):
		m.today = m.backend.Today()
		m.day = m.today.Day
		return m.showMonth(m.today.Year, m.today.Month)
	case key.Matches(keyMsg, m.keys.Retry):
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.loadDashboard(), m.loadLeaderboard())
	case key.Matches(keyMsg, m.keys.Add):
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Toggle):
		return m.toggleSelected()
	}
	return m, nil
}

// showMonth switches the visible month and drops the previous one's data
// so it is never drawn under the new heading.
func (m Model) showMonth(year, month int) (tea.Model, tea.Cmd) {
	m.year, m.month = year, month
	m.confirmed, m.view = nil, nil
	m.loadErr = nil
	m.loading = true
	m.status = ""
	return m, m.loadDashboard()
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	h, ok := m.selectedHabit()
	if !ok {
		return m, nil
	}
	date := m.selectedDate()
	switch {
	case date.After(m.today):
		m.status = warningStyle.Render("Can't complete a day in the future")
		return m, nil
	case !engine.IsActive(h.Habit, date):
		m.status = warningStyle.Render(fmt.Sprintf("%s was created on %s", h.Name, h.CreatedAt))
		return m, nil
	}

	guess, err := predict(*m.view, h.ID, date, m.today)
	if err == nil {
		m.view = &guess
	}
	m.inFlight++
	m.status = ""
	return m, m.sendToggle(h.ID, date)
}

func (m Model) updateFriends(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.board.Filtering() {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Tab):
			m.state = StateMonth
			return m, nil
		case key.Matches(keyMsg, m.keys.Retry):
			return m, m.loadLeaderboard()
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateMonth
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateMonth
		fields := m.habitForm.Fields()
		m.form = nil
		return m, m.createHabit(fields)
	case huh.StateAborted:
		m.state = StateMonth
		m.form = nil
		return m, nil
	}
	return m, cmd
}
