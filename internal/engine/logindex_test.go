package engine

import (
	"reflect"
	"sort"
	"testing"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/models"
)

func TestBuildIndex(t *testing.T) {
	logs := []models.LogEntry{
		{HabitID: "h1", Date: "2024-03-01", Completed: true},
		{HabitID: "h1", Date: "2024-03-02", Completed: true},
		{HabitID: "h2", Date: "2024-03-01", Completed: true},
		{HabitID: "", Date: "2024-03-03", Completed: true},
		{HabitID: "h1", Date: "not-a-date", Completed: true},
		{HabitID: "h1", Date: "2024-02-30", Completed: true},
	}
	ix := BuildIndex(logs)

	tests := []struct {
		habitID string
		date    calendar.Date
		want    bool
	}{
		{"h1", calendar.MustDate(2024, 3, 1), true},
		{"h1", calendar.MustDate(2024, 3, 2), true},
		{"h1", calendar.MustDate(2024, 3, 3), false},
		{"h2", calendar.MustDate(2024, 3, 1), true},
		{"h2", calendar.MustDate(2024, 3, 2), false},
		{"missing", calendar.MustDate(2024, 3, 1), false},
	}
	for _, tt := range tests {
		if got := ix.Has(tt.habitID, tt.date); got != tt.want {
			t.Errorf("Has(%s, %s) = %v, want %v", tt.habitID, tt.date, got, tt.want)
		}
	}
}

func TestBuildIndexLastWriteWins(t *testing.T) {
	d := calendar.MustDate(2024, 3, 1)
	logs := []models.LogEntry{
		{HabitID: "h1", Date: d.String(), Completed: true},
		{HabitID: "h1", Date: d.String(), Completed: false},
	}
	if BuildIndex(logs).Has("h1", d) {
		t.Error("Has() = true, want later entry to win")
	}

	logs[0], logs[1] = logs[1], logs[0]
	if !BuildIndex(logs).Has("h1", d) {
		t.Error("Has() = false, want later entry to win")
	}
}

func TestNilIndex(t *testing.T) {
	var ix *LogIndex
	if ix.Has("h1", calendar.MustDate(2024, 1, 1)) {
		t.Error("nil index reported a completion")
	}
}

func TestToggle(t *testing.T) {
	d := calendar.MustDate(2024, 3, 5)
	base := logsFor("h1", 2024, 3, 1, 2)

	added := Toggle(base, "h1", d)
	if len(added) != 3 {
		t.Fatalf("len(added) = %d, want 3", len(added))
	}
	if !BuildIndex(added).Has("h1", d) {
		t.Error("toggle did not add the entry")
	}
	if len(base) != 2 {
		t.Errorf("input mutated: len = %d", len(base))
	}

	removed := Toggle(added, "h1", d)
	if BuildIndex(removed).Has("h1", d) {
		t.Error("second toggle did not remove the entry")
	}
	if !sameSet(removed, base) {
		t.Errorf("toggle twice = %v, want %v", removed, base)
	}
}

func TestToggleIsInvolution(t *testing.T) {
	base := append(logsFor("h1", 2024, 3, 1, 5, 9), logsFor("h2", 2024, 3, 5)...)
	snapshot := append([]models.LogEntry(nil), base...)

	for _, habitID := range []string{"h1", "h2", "h3"} {
		for _, day := range []int{1, 2, 5, 31} {
			d := calendar.MustDate(2024, 3, day)
			twice := Toggle(Toggle(base, habitID, d), habitID, d)
			if !sameSet(twice, base) {
				t.Errorf("Toggle twice (%s, %s) = %v, want %v", habitID, d, twice, base)
			}
		}
	}
	if !reflect.DeepEqual(base, snapshot) {
		t.Error("Toggle mutated its input")
	}
}

func TestToggleOnlyAffectsTarget(t *testing.T) {
	base := append(logsFor("h1", 2024, 3, 5), logsFor("h2", 2024, 3, 5)...)
	out := Toggle(base, "h1", calendar.MustDate(2024, 3, 5))

	ix := BuildIndex(out)
	if ix.Has("h1", calendar.MustDate(2024, 3, 5)) {
		t.Error("h1 still completed")
	}
	if !ix.Has("h2", calendar.MustDate(2024, 3, 5)) {
		t.Error("h2 lost its completion")
	}
}

func sameSet(a, b []models.LogEntry) bool {
	key := func(logs []models.LogEntry) []string {
		out := make([]string, 0, len(logs))
		for _, l := range logs {
			out = append(out, l.HabitID+"|"+l.Date)
		}
		sort.Strings(out)
		return out
	}
	return reflect.DeepEqual(key(a), key(b))
}
