package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/engine"
	"github.com/julianstephens/habitboard/internal/models"
)

// heat maps a percentage to a block glyph.
func heat(percent int) string {
	switch {
	case percent <= 0:
		return "·"
	case percent < 34:
		return "░"
	case percent < 67:
		return "▒"
	case percent < 100:
		return "▓"
	default:
		return "█"
	}
}

// RenderDashboard draws a month grid: one row per habit, one column per
// day, and a heat row of daily completion.
func RenderDashboard(d models.Dashboard, today calendar.Date) string {
	var b strings.Builder

	monthName := time.Month(d.Meta.Month).String()
	overall := d.Stats.OverallProgress
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", monthName, d.Meta.Year)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d completed (%d%%)",
		overall.Completed, overall.Total, engine.Percent(overall.Completed, overall.Total))))
	b.WriteString("\n\n")

	if len(d.Habits) == 0 {
		b.WriteString(mutedStyle.Render("No habits yet. Add one with 'habitboard habit add'."))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := 0
	for _, h := range d.Habits {
		nameWidth = max(nameWidth, lipgloss.Width(h.Icon+" "+h.Name))
	}
	pad := func(s string) string {
		return s + strings.Repeat(" ", nameWidth-lipgloss.Width(s)+2)
	}

	b.WriteString(pad(""))
	for day := 1; day <= d.Meta.DaysInMonth; day++ {
		label := fmt.Sprintf("%2d", day)
		if (calendar.Date{Year: d.Meta.Year, Month: d.Meta.Month, Day: day}) == today {
			label = todayStyle.Render(label)
		}
		b.WriteString(label + " ")
	}
	b.WriteString("\n")

	ix := engine.BuildIndex(d.Logs)
	for _, h := range d.Habits {
		b.WriteString(pad(h.Icon + " " + h.Name))
		for day := 1; day <= d.Meta.DaysInMonth; day++ {
			date := calendar.Date{Year: d.Meta.Year, Month: d.Meta.Month, Day: day}
			cell := " "
			switch {
			case !engine.IsActive(h.Habit, date):
			case ix.Has(h.ID, date):
				cell = doneStyle.Render("✓")
			default:
				cell = missedStyle.Render("·")
			}
			b.WriteString(" " + cell + " ")
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" streak %d (best %d)", h.Current, h.Longest)))
		b.WriteString("\n")
	}

	b.WriteString(pad(""))
	for _, agg := range d.Stats.DailyAggregates {
		b.WriteString(" " + heat(agg.Percent) + " ")
	}
	b.WriteString("\n")
	return b.String()
}

// RenderLeaderboard formats ranked entries, highlighting the caller.
func RenderLeaderboard(entries []models.LeaderboardEntry) string {
	var b strings.Builder
	for _, e := range entries {
		line := fmt.Sprintf("%2d. %-20s %3d%%  %s", e.Rank, e.FullName, e.Score, mutedStyle.Render("@"+e.Username))
		if e.IsMe {
			line = meStyle.Render(fmt.Sprintf("%2d. %-20s %3d%%", e.Rank, e.FullName, e.Score)) + "  " + mutedStyle.Render("@"+e.Username+" (you)")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
