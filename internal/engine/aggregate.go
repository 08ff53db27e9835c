package engine

import (
	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/models"
)

// Aggregation is the per-day rollup of one month plus its sum.
type Aggregation struct {
	Days    []models.DailyAggregate
	Overall models.OverallProgress
}

// Aggregate computes one DailyAggregate per day of the month.
func Aggregate(habits []models.Habit, ix *LogIndex, year, month int) (Aggregation, error) {
	n, err := calendar.DaysInMonth(year, month)
	if err != nil {
		return Aggregation{}, err
	}
	return AggregateThrough(habits, ix, year, month, n)
}

// AggregateThrough is Aggregate restricted to days 1..lastDay. lastDay is
// clamped to the month; a value below 1 yields an empty aggregation.
func AggregateThrough(habits []models.Habit, ix *LogIndex, year, month, lastDay int) (Aggregation, error) {
	n, err := calendar.DaysInMonth(year, month)
	if err != nil {
		return Aggregation{}, err
	}
	lastDay = min(lastDay, n)

	agg := Aggregation{Days: make([]models.DailyAggregate, 0, max(lastDay, 0))}
	for day := 1; day <= lastDay; day++ {
		d := calendar.Date{Year: year, Month: month, Day: day}
		active, completed := 0, 0
		for _, h := range habits {
			if !IsActive(h, d) {
				continue
			}
			active++
			if ix.Has(h.ID, d) {
				completed++
			}
		}
		agg.Days = append(agg.Days, models.DailyAggregate{
			Date:           d.String(),
			Day:            day,
			Percent:        Percent(completed, active),
			CompletedCount: completed,
			TotalActive:    active,
		})
		agg.Overall.Completed += completed
		agg.Overall.Total += active
	}
	return agg, nil
}

// Percent returns 100*part/whole rounded half up and clamped to 0..100.
// It is 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	p := (200*part + whole) / (2 * whole)
	return min(p, 100)
}
