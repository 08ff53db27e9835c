package engine

import (
	"testing"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/models"
)

func TestLeaderboard(t *testing.T) {
	created := calendar.MustDate(2024, 1, 1)
	participants := []Participant{
		{
			User:   models.User{Username: "b", FullName: "B"},
			Habits: []models.Habit{habit("hb", created)},
		},
		{
			User:   models.User{Username: "a", FullName: "A"},
			Habits: []models.Habit{habit("ha", created)},
			Logs:   logsFor("ha", 2024, 3, 1, 2, 3),
			IsMe:   true,
		},
	}

	got, err := Leaderboard(participants, 2024, 3, 3)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	want := []models.LeaderboardEntry{
		{Rank: 1, Username: "a", FullName: "A", Score: 100, IsMe: true},
		{Rank: 2, Username: "b", FullName: "B", Score: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScore(t *testing.T) {
	created := calendar.MustDate(2024, 1, 1)
	habits := []models.Habit{habit("h1", created), habit("h2", created)}

	tests := []struct {
		name    string
		logs    []models.LogEntry
		lastDay int
		want    int
	}{
		{name: "no habits logged", lastDay: 10, want: 0},
		{name: "half", logs: logsFor("h1", 2024, 3, 1, 2), lastDay: 2, want: 50},
		{name: "one of three", logs: logsFor("h1", 2024, 3, 1, 2), lastDay: 3, want: 33},
		{name: "nothing elapsed", logs: logsFor("h1", 2024, 3, 1), lastDay: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(habits, tt.logs, 2024, 3, tt.lastDay)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}

	if got, _ := Score(nil, nil, 2024, 3, 31); got != 0 {
		t.Errorf("Score() with no habits = %d, want 0", got)
	}
}

func TestRankTieBreak(t *testing.T) {
	in := []models.LeaderboardEntry{
		{Username: "carol", Score: 50},
		{Username: "alice", Score: 50},
		{Username: "bob", Score: 90},
		{Username: "dave", Score: 0},
	}
	got := Rank(in)

	wantOrder := []string{"bob", "alice", "carol", "dave"}
	for i, name := range wantOrder {
		if got[i].Username != name {
			t.Errorf("position %d = %s, want %s", i, got[i].Username, name)
		}
		if got[i].Rank != i+1 {
			t.Errorf("%s rank = %d, want %d", name, got[i].Rank, i+1)
		}
	}
	if in[0].Username != "carol" || in[0].Rank != 0 {
		t.Error("Rank() modified its input")
	}
}
