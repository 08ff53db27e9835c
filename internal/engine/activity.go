// Package engine derives dashboard statistics from habits and their log
// entries. Every function is pure: inputs are never mutated and no state is
// kept between calls.
package engine

import (
	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/models"
)

// IsActive reports whether h counts towards day d. A habit is active from
// its creation date onwards.
func IsActive(h models.Habit, d calendar.Date) bool {
	return !d.Before(h.CreatedAt)
}
