package engine

import (
	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/models"
)

func habit(id string, created calendar.Date) models.Habit {
	return models.Habit{ID: id, Name: id, Icon: "📝", TargetDays: 30, ScheduledTime: "09:00", CreatedAt: created}
}

func logsFor(habitID string, year, month int, days ...int) []models.LogEntry {
	out := make([]models.LogEntry, 0, len(days))
	for _, day := range days {
		out = append(out, models.LogEntry{
			HabitID:   habitID,
			Date:      calendar.MustDate(year, month, day).String(),
			Completed: true,
		})
	}
	return out
}
