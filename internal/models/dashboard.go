package models

type DailyAggregate struct {
	Date           string `json:"date"` // YYYY-MM-DD format
	Day            int    `json:"day"`
	Percent        int    `json:"percent"` // 0..100
	CompletedCount int    `json:"completed_count"`
	TotalActive    int    `json:"total_active"`
}

type OverallProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type StreakState struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// DashboardHabit is a habit annotated with its streaks for the viewed month.
type DashboardHabit struct {
	Habit
	StreakState
}

type Meta struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	DaysInMonth int `json:"days_in_month"`
}

type Stats struct {
	DailyAggregates []DailyAggregate `json:"daily_aggregates"`
	OverallProgress OverallProgress  `json:"overall_progress"`
	TotalHabits     int              `json:"total_habits"`
}

type UserInfo struct {
	Name       string `json:"name"`
	FriendCode string `json:"friend_code"`
	Pic        string `json:"pic"`
}

type Dashboard struct {
	Meta     Meta             `json:"meta"`
	Habits   []DashboardHabit `json:"habits"`
	Logs     []LogEntry       `json:"logs"`
	Stats    Stats            `json:"stats"`
	UserInfo UserInfo         `json:"user_info"`
}

type ToggleResult struct {
	Status    string    `json:"status"` // "added" or "removed"
	NewStreak int       `json:"new_streak"`
	Dashboard Dashboard `json:"dashboard"`
}
