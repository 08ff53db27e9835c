package cli

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/engine"
	"github.com/julianstephens/habitboard/internal/models"
)

func TestHeat(t *testing.T) {
	tests := map[int]string{0: "·", 10: "░", 50: "▒", 80: "▓", 100: "█"}
	for percent, want := range tests {
		if got := heat(percent); got != want {
			t.Errorf("heat(%d) = %q, want %q", percent, got, want)
		}
	}
}

func TestRenderDashboard(t *testing.T) {
	habits := []models.Habit{
		{ID: "h1", Name: "Read", Icon: "📖", CreatedAt: calendar.MustDate(2024, 3, 1)},
	}
	logs := []models.LogEntry{
		{HabitID: "h1", Date: "2024-03-10", Completed: true},
		{HabitID: "h1", Date: "2024-03-11", Completed: true},
		{HabitID: "h1", Date: "2024-03-12", Completed: true},
	}
	today := calendar.MustDate(2024, 3, 12)
	dash, err := engine.BuildDashboard(habits, logs, 2024, 3, today)
	if err != nil {
		t.Fatalf("BuildDashboard() error = %v", err)
	}

	out := RenderDashboard(dash, today)
	for _, want := range []string{"March 2024", "3/31 completed (10%)", "Read", "streak 3 (best 3)", "✓"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderDashboard() missing %q in:\n%s", want, out)
		}
	}

	empty, _ := engine.BuildDashboard(nil, nil, 2024, 3, today)
	if out := RenderDashboard(empty, today); !strings.Contains(out, "No habits yet") {
		t.Errorf("empty dashboard = %q", out)
	}
}

func TestRenderLeaderboard(t *testing.T) {
	out := RenderLeaderboard([]models.LeaderboardEntry{
		{Rank: 1, Username: "a", FullName: "Alice", Score: 100, IsMe: true},
		{Rank: 2, Username: "b", FullName: "Bob", Score: 0},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderLeaderboard() lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Alice") || !strings.Contains(lines[0], "(you)") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Bob") || !strings.Contains(lines[1], "0%") {
		t.Errorf("second line = %q", lines[1])
	}
}
