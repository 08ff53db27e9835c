package engine

import (
	"sort"

	"github.com/julianstephens/habitboard/internal/models"
)

// Participant is one user's input to the leaderboard.
type Participant struct {
	User   models.User
	Habits []models.Habit
	Logs   []models.LogEntry
	IsMe   bool
}

// Score is a user's completion percentage over days 1..lastDay of a month.
func Score(habits []models.Habit, logs []models.LogEntry, year, month, lastDay int) (int, error) {
	agg, err := AggregateThrough(habits, BuildIndex(logs), year, month, lastDay)
	if err != nil {
		return 0, err
	}
	return Percent(agg.Overall.Completed, agg.Overall.Total), nil
}

// Leaderboard scores every participant independently and returns the ranked
// entries.
func Leaderboard(participants []Participant, year, month, lastDay int) ([]models.LeaderboardEntry, error) {
	entries := make([]models.LeaderboardEntry, 0, len(participants))
	for _, p := range participants {
		score, err := Score(p.Habits, p.Logs, year, month, lastDay)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.LeaderboardEntry{
			Username:       p.User.Username,
			FullName:       p.User.FullName,
			ProfilePicture: p.User.ProfilePicture,
			Score:          score,
			IsMe:           p.IsMe,
		})
	}
	return Rank(entries), nil
}

// Rank sorts a copy of entries by score descending, then username
// ascending, and numbers them 1..N.
func Rank(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Username < out[j].Username
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
