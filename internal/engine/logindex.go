package engine

import (
	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/logger"
	"github.com/julianstephens/habitboard/internal/models"
)

// LogIndex answers "was habit H completed on day D" in constant time.
type LogIndex struct {
	done map[string]map[calendar.Date]bool
}

// BuildIndex groups log entries by habit and date. When the same
// (habit, date) pair appears more than once the last entry wins. Entries
// with an empty habit id or an unparsable date are skipped.
func BuildIndex(logs []models.LogEntry) *LogIndex {
	ix := &LogIndex{done: make(map[string]map[calendar.Date]bool)}
	for _, entry := range logs {
		if entry.HabitID == "" {
			logger.Debug("Skipping log entry without habit id", "date", entry.Date)
			continue
		}
		d, err := calendar.ParseDate(entry.Date)
		if err != nil {
			logger.Debug("Skipping malformed log entry", "habit_id", entry.HabitID, "date", entry.Date, "error", err)
			continue
		}
		days, ok := ix.done[entry.HabitID]
		if !ok {
			days = make(map[calendar.Date]bool)
			ix.done[entry.HabitID] = days
		}
		days[d] = entry.Completed
	}
	return ix
}

// Has reports whether habitID has a completed entry on d.
func (ix *LogIndex) Has(habitID string, d calendar.Date) bool {
	if ix == nil {
		return false
	}
	return ix.done[habitID][d]
}

// Toggle returns a new log list with the completion of habitID on d flipped.
// If the pair is currently completed every entry for it is dropped;
// otherwise a completed entry is appended. logs is not modified.
func Toggle(logs []models.LogEntry, habitID string, d calendar.Date) []models.LogEntry {
	present := BuildIndex(logs).Has(habitID, d)

	out := make([]models.LogEntry, 0, len(logs)+1)
	for _, entry := range logs {
		if matches(entry, habitID, d) {
			continue
		}
		out = append(out, entry)
	}
	if !present {
		out = append(out, models.LogEntry{HabitID: habitID, Date: d.String(), Completed: true})
	}
	return out
}

func matches(entry models.LogEntry, habitID string, d calendar.Date) bool {
	if entry.HabitID != habitID {
		return false
	}
	ed, err := calendar.ParseDate(entry.Date)
	return err == nil && ed == d
}
