package engine

import (
	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/models"
)

// scanEnd returns the last day of the month that a streak may cover given
// today's date, or 0 when the whole month is still in the future.
func scanEnd(year, month int, asOf calendar.Date) (int, error) {
	first, last, err := calendar.MonthRange(year, month)
	if err != nil {
		return 0, err
	}
	switch {
	case asOf.Before(first):
		return 0, nil
	case asOf.Before(last):
		return asOf.Day, nil
	default:
		return last.Day, nil
	}
}

// Streak computes the streaks of h within the given month. The current
// streak counts consecutive completed days backwards from the earlier of
// asOf and the month's last day, stopping at the first missed day or at
// the habit's creation date. Days outside the month are never visited.
func Streak(h models.Habit, ix *LogIndex, year, month int, asOf calendar.Date) (models.StreakState, error) {
	end, err := scanEnd(year, month, asOf)
	if err != nil {
		return models.StreakState{}, err
	}

	var st models.StreakState
	for day := end; day >= 1; day-- {
		d := calendar.Date{Year: year, Month: month, Day: day}
		if !IsActive(h, d) || !ix.Has(h.ID, d) {
			break
		}
		st.Current++
	}

	run := 0
	for day := 1; day <= end; day++ {
		d := calendar.Date{Year: year, Month: month, Day: day}
		if IsActive(h, d) && ix.Has(h.ID, d) {
			run++
			st.Longest = max(st.Longest, run)
			continue
		}
		run = 0
	}
	return st, nil
}

// Streaks runs Streak for every habit, keyed by habit id.
func Streaks(habits []models.Habit, ix *LogIndex, year, month int, asOf calendar.Date) (map[string]models.StreakState, error) {
	out := make(map[string]models.StreakState, len(habits))
	for _, h := range habits {
		st, err := Streak(h, ix, year, month, asOf)
		if err != nil {
			return nil, err
		}
		out[h.ID] = st
	}
	return out, nil
}
