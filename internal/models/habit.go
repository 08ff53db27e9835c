package models

import "github.com/julianstephens/habitboard/internal/calendar"

// Habit represents a recurring practice to track
type Habit struct {
	ID            string        `json:"id"`
	OwnerID       string        `json:"owner_id"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon"`
	TargetDays    int           `json:"target_days"`
	ScheduledTime string        `json:"scheduled_time"` // HH:MM format
	CreatedAt     calendar.Date `json:"created_at"`
}

// HabitFields carries the user-editable fields of a new habit.
type HabitFields struct {
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	TargetDays    int    `json:"target_days"`
	ScheduledTime string `json:"scheduled_time"`
}

// HabitPatch is a partial update. Nil fields are left unchanged.
type HabitPatch struct {
	Name          *string `json:"name,omitempty"`
	Icon          *string `json:"icon,omitempty"`
	TargetDays    *int    `json:"target_days,omitempty"`
	ScheduledTime *string `json:"scheduled_time,omitempty"`
}

// Apply returns h with the non-nil fields of p copied over.
func (p HabitPatch) Apply(h Habit) Habit {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	if p.TargetDays != nil {
		h.TargetDays = *p.TargetDays
	}
	if p.ScheduledTime != nil {
		h.ScheduledTime = *p.ScheduledTime
	}
	return h
}

// IsEmpty reports whether the patch changes nothing.
func (p HabitPatch) IsEmpty() bool {
	return p.Name == nil && p.Icon == nil && p.TargetDays == nil && p.ScheduledTime == nil
}

// LogEntry records that a habit was completed on a day. Its presence is the
// completion; entries are created and removed by toggling, never edited.
type LogEntry struct {
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed"`
}
