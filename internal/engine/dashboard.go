package engine

import (
	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/models"
)

// BuildDashboard assembles the month view for one user. Logs outside the
// month are ignored by the aggregation but returned unchanged in Logs.
// UserInfo is left for the caller to fill.
func BuildDashboard(habits []models.Habit, logs []models.LogEntry, year, month int, asOf calendar.Date) (models.Dashboard, error) {
	n, err := calendar.DaysInMonth(year, month)
	if err != nil {
		return models.Dashboard{}, err
	}

	ix := BuildIndex(logs)
	agg, err := Aggregate(habits, ix, year, month)
	if err != nil {
		return models.Dashboard{}, err
	}
	streaks, err := Streaks(habits, ix, year, month, asOf)
	if err != nil {
		return models.Dashboard{}, err
	}

	annotated := make([]models.DashboardHabit, 0, len(habits))
	for _, h := range habits {
		annotated = append(annotated, models.DashboardHabit{Habit: h, StreakState: streaks[h.ID]})
	}
	if logs == nil {
		logs = []models.LogEntry{}
	}

	return models.Dashboard{
		Meta:   models.Meta{Year: year, Month: month, DaysInMonth: n},
		Habits: annotated,
		Logs:   logs,
		Stats: models.Stats{
			DailyAggregates: agg.Days,
			OverallProgress: agg.Overall,
			TotalHabits:     len(habits),
		},
	}, nil
}
