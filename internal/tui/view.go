package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/engine"
	"github.com/julianstephens/habitboard/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateMonth:
		content = m.viewMonth()
	case StateFriends:
		content = m.viewFriends()
	case StateAddHabit:
		content = m.viewForm()
	}

	parts := []string{m.viewTabs(), docStyle.Render(content)}
	if m.status != "" {
		parts = append(parts, "  "+m.status)
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Month", "Friends"} {
		if m.state == SessionState(i) || (m.state == StateAddHabit && i == 0) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) monthTitle() string {
	return fmt.Sprintf("%s %d", time.Month(m.month), m.year)
}

func (m Model) viewMonth() string {
	switch {
	case m.loadErr != nil:
		return lipgloss.JoinVertical(lipgloss.Left,
			dangerStyle.Render(fmt.Sprintf("⚠ Could not load %s", m.monthTitle())),
			mutedStyle.Render(m.loadErr.Error()),
			"",
			"Press r to retry.",
		)
	case m.view == nil:
		return mutedStyle.Render(fmt.Sprintf("Loading %s...", m.monthTitle()))
	}

	d := *m.view
	var b strings.Builder
	overall := d.Stats.OverallProgress
	b.WriteString(activeTabStyle.Render(m.monthTitle()))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d completed (%d%%)",
		overall.Completed, overall.Total, engine.Percent(overall.Completed, overall.Total))))
	if m.inFlight > 0 {
		b.WriteString(warningStyle.Render("  saving..."))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s | friend code %s", d.UserInfo.Name, d.UserInfo.FriendCode)))
	b.WriteString("\n\n")

	if len(d.Habits) == 0 {
		b.WriteString(mutedStyle.Render("No habits yet. Press a to add one."))
		return b.String()
	}
	b.WriteString(m.renderGrid(d))
	return b.String()
}

func (m Model) renderGrid(d models.Dashboard) string {
	var b strings.Builder

	nameWidth := 0
	for _, h := range d.Habits {
		nameWidth = max(nameWidth, lipgloss.Width(h.Icon+" "+h.Name))
	}
	pad := func(s string) string {
		return s + strings.Repeat(" ", nameWidth-lipgloss.Width(s)+1)
	}

	b.WriteString(pad(""))
	for day := 1; day <= d.Meta.DaysInMonth; day++ {
		label := fmt.Sprintf("%2d", day)
		if (calendar.Date{Year: d.Meta.Year, Month: d.Meta.Month, Day: day}) == m.today {
			label = todayStyle.Render(label)
		}
		b.WriteString(label + " ")
	}
	b.WriteString("\n")

	ix := engine.BuildIndex(d.Logs)
	for row, h := range d.Habits {
		b.WriteString(pad(h.Icon + " " + h.Name))
		for day := 1; day <= d.Meta.DaysInMonth; day++ {
			date := calendar.Date{Year: d.Meta.Year, Month: d.Meta.Month, Day: day}
			glyph, style := " ", missedStyle
			switch {
			case !engine.IsActive(h.Habit, date):
			case ix.Has(h.ID, date):
				glyph, style = "✓", doneStyle
			default:
				glyph = "·"
			}
			if row == m.habitRow && day == m.day {
				style = cursorStyle
			}
			cell := style.Render(glyph)
			b.WriteString(" " + cell + " ")
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" 🔥%d best %d", h.Current, h.Longest)))
		b.WriteString("\n")
	}

	b.WriteString(pad(""))
	for _, agg := range d.Stats.DailyAggregates {
		b.WriteString(fmt.Sprintf("%3d", agg.Percent))
	}
	b.WriteString(mutedStyle.Render("  % done"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewFriends() string {
	if m.boardErr != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			dangerStyle.Render("⚠ Could not load the leaderboard"),
			mutedStyle.Render(m.boardErr.Error()),
			"",
			"Press r to retry.",
		)
	}
	if m.board.Len() == 0 {
		return mutedStyle.Render("Loading leaderboard...")
	}
	return m.board.View()
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		activeTabStyle.Render("New habit"),
		"",
		m.form.View(),
		mutedStyle.Render("esc to cancel"),
	)
}
