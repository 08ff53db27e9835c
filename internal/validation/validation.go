package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/habitboard/internal/calendar"
	"github.com/julianstephens/habitboard/internal/constants"
	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/utils"
)

// ConflictType represents the type of data integrity problem
type ConflictType string

const (
	ConflictOrphanLog          ConflictType = "orphan_log"
	ConflictDuplicateLog       ConflictType = "duplicate_log"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictLogBeforeCreation  ConflictType = "log_before_creation"
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictInvalidHabit       ConflictType = "invalid_habit"
)

// Conflict represents a detected problem in stored habits or logs
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []string
	Date        string // YYYY-MM-DD format (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of the given type
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks habits and logs for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits reports habits with invalid fields and duplicate names per owner.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	names := make(map[string][]string)
	for _, h := range habits {
		if err := HabitFields(models.HabitFields{
			Name:          h.Name,
			Icon:          h.Icon,
			TargetDays:    h.TargetDays,
			ScheduledTime: h.ScheduledTime,
		}); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHabit,
				Description: fmt.Sprintf("Habit \"%s\" is invalid: %v", h.Name, err),
				HabitIDs:    []string{h.ID},
			})
		}
		if h.Name == "" {
			continue
		}
		key := h.OwnerID + "\x00" + strings.ToLower(h.Name)
		names[key] = append(names[key], h.ID)
	}

	for key, ids := range names {
		if len(ids) > 1 {
			name := key[strings.IndexByte(key, 0)+1:]
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", name, ids),
				HabitIDs:    ids,
			})
		}
	}
	return result
}

// ValidateLogs reports log entries that the aggregation would skip or that
// violate the one-entry-per-day rule.
func (v *Validator) ValidateLogs(habits []models.Habit, logs []models.LogEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byID := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	seen := make(map[string]int)
	for _, entry := range logs {
		h, ok := byID[entry.HabitID]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanLog,
				Description: fmt.Sprintf("Log on %s references missing habit %s", entry.Date, entry.HabitID),
				HabitIDs:    []string{entry.HabitID},
				Date:        entry.Date,
			})
			continue
		}

		d, err := calendar.ParseDate(entry.Date)
		if err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Habit \"%s\" has a log with invalid date %q", h.Name, entry.Date),
				HabitIDs:    []string{h.ID},
				Date:        entry.Date,
			})
			continue
		}
		if d.Before(h.CreatedAt) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictLogBeforeCreation,
				Description: fmt.Sprintf("Habit \"%s\" has a log on %s before it was created (%s)", h.Name, d, h.CreatedAt),
				HabitIDs:    []string{h.ID},
				Date:        d.String(),
			})
		}

		key := h.ID + "|" + d.String()
		seen[key]++
		if seen[key] == 2 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateLog,
				Description: fmt.Sprintf("Habit \"%s\" has more than one log on %s", h.Name, d),
				HabitIDs:    []string{h.ID},
				Date:        d.String(),
			})
		}
	}
	return result
}

var friendCode = regexp.MustCompile(`^[0-9A-F]{8}$`)

// HabitFields validates the user-editable fields of a habit. Errors wrap
// apperrors.ErrValidation.
func HabitFields(f models.HabitFields) error {
	var problems []string
	if strings.TrimSpace(f.Name) == "" {
		problems = append(problems, "name must not be empty")
	}
	if f.Icon == "" || utf8.RuneCountInString(f.Icon) > 8 {
		problems = append(problems, "icon must be a single glyph")
	}
	if f.TargetDays < constants.MinTargetDays || f.TargetDays > constants.MaxTargetDays {
		problems = append(problems, fmt.Sprintf("target_days must be between %d and %d", constants.MinTargetDays, constants.MaxTargetDays))
	}
	if !TimeOfDay(f.ScheduledTime) {
		problems = append(problems, fmt.Sprintf("scheduled_time %q must be HH:MM", f.ScheduledTime))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(problems, "; "), apperrors.ErrValidation)
	}
	return nil
}

// WithDefaults fills empty fields of f with the habit defaults.
func WithDefaults(f models.HabitFields) models.HabitFields {
	f.Name = strings.TrimSpace(f.Name)
	if f.Icon == "" {
		f.Icon = constants.DefaultHabitIcon
	}
	if f.TargetDays == 0 {
		f.TargetDays = constants.DefaultHabitTargetDays
	}
	if f.ScheduledTime == "" {
		f.ScheduledTime = constants.DefaultHabitScheduledTime
	}
	return f
}

// TimeOfDay reports whether s is a zero-padded 24-hour HH:MM time.
func TimeOfDay(s string) bool {
	return utils.ValidateTimeFormat(s)
}

// FriendCode normalizes a friend code to upper case and checks its shape.
func FriendCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !friendCode.MatchString(code) {
		return "", fmt.Errorf("friend code %q must be %d hex characters: %w", code, constants.FriendCodeLength, apperrors.ErrValidation)
	}
	return code, nil
}

// Username checks that a username is non-empty and has no whitespace.
func Username(name string) error {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("username %q must be non-empty without spaces: %w", name, apperrors.ErrValidation)
	}
	return nil
}
