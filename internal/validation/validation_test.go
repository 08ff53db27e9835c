package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/habitboard/internal/calendar"
	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/models"
)

func validFields() models.HabitFields {
	return models.HabitFields{Name: "Read", Icon: "📚", TargetDays: 20, ScheduledTime: "07:30"}
}

func TestHabitFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.HabitFields)
		wantErr string
	}{
		{name: "valid", mutate: func(*models.HabitFields) {}},
		{name: "empty name", mutate: func(f *models.HabitFields) { f.Name = "  " }, wantErr: "name must not be empty"},
		{name: "missing icon", mutate: func(f *models.HabitFields) { f.Icon = "" }, wantErr: "icon"},
		{name: "target too low", mutate: func(f *models.HabitFields) { f.TargetDays = 0 }, wantErr: "target_days"},
		{name: "target too high", mutate: func(f *models.HabitFields) { f.TargetDays = 32 }, wantErr: "target_days"},
		{name: "hour out of range", mutate: func(f *models.HabitFields) { f.ScheduledTime = "25:00" }, wantErr: "scheduled_time"},
		{name: "minute out of range", mutate: func(f *models.HabitFields) { f.ScheduledTime = "12:70" }, wantErr: "scheduled_time"},
		{name: "not padded", mutate: func(f *models.HabitFields) { f.ScheduledTime = "9:00" }, wantErr: "scheduled_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)
			err := HabitFields(f)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("HabitFields() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Fatalf("HabitFields() error = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("HabitFields() error = %q, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestWithDefaults(t *testing.T) {
	got := WithDefaults(models.HabitFields{Name: "  Walk "})
	want := models.HabitFields{Name: "Walk", Icon: "📝", TargetDays: 30, ScheduledTime: "09:00"}
	if got != want {
		t.Errorf("WithDefaults() = %+v, want %+v", got, want)
	}
	if err := HabitFields(got); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}

	kept := WithDefaults(validFields())
	if kept != validFields() {
		t.Errorf("WithDefaults() overwrote set fields: %+v", kept)
	}
}

func TestFriendCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "A1B2C3D4", want: "A1B2C3D4"},
		{in: " a1b2c3d4 ", want: "A1B2C3D4"},
		{in: "A1B2C3D", wantErr: true},
		{in: "A1B2C3D4E", wantErr: true},
		{in: "ZZZZZZZZ", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := FriendCode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("FriendCode(%q) error = %v, want ErrValidation", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FriendCode(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestUsername(t *testing.T) {
	if err := Username("default_user"); err != nil {
		t.Errorf("Username() unexpected error: %v", err)
	}
	for _, bad := range []string{"", "two words", "tab\tname"} {
		if err := Username(bad); !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("Username(%q) error = %v, want ErrValidation", bad, err)
		}
	}
}

func TestValidateHabits_DuplicateNames(t *testing.T) {
	validator := New()
	created := calendar.MustDate(2024, 1, 1)

	habits := []models.Habit{
		{ID: "1", OwnerID: "u1", Name: "Read", Icon: "📚", TargetDays: 30, ScheduledTime: "09:00", CreatedAt: created},
		{ID: "2", OwnerID: "u1", Name: "read", Icon: "📚", TargetDays: 30, ScheduledTime: "09:00", CreatedAt: created},
		{ID: "3", OwnerID: "u2", Name: "Read", Icon: "📚", TargetDays: 30, ScheduledTime: "09:00", CreatedAt: created},
	}

	result := validator.ValidateHabits(habits)
	if got := result.Count(ConflictDuplicateHabitName); got != 1 {
		t.Errorf("duplicate name conflicts = %d, want 1 (names are per owner)", got)
	}
	if result.Count(ConflictInvalidHabit) != 0 {
		t.Errorf("unexpected invalid habit conflicts: %s", result.FormatReport())
	}
}

func TestValidateHabits_InvalidFields(t *testing.T) {
	validator := New()
	habits := []models.Habit{
		{ID: "1", Name: "Bad time", Icon: "x", TargetDays: 30, ScheduledTime: "noon"},
		{ID: "2", Name: "Bad target", Icon: "x", TargetDays: 99, ScheduledTime: "09:00"},
	}
	result := validator.ValidateHabits(habits)
	if got := result.Count(ConflictInvalidHabit); got != 2 {
		t.Errorf("invalid habit conflicts = %d, want 2", got)
	}
}

func TestValidateLogs(t *testing.T) {
	validator := New()
	habits := []models.Habit{
		{ID: "h1", Name: "Read", CreatedAt: calendar.MustDate(2024, 3, 10)},
	}
	logs := []models.LogEntry{
		{HabitID: "h1", Date: "2024-03-10", Completed: true},
		{HabitID: "h1", Date: "2024-03-10", Completed: true},
		{HabitID: "h1", Date: "2024-03-10", Completed: true},
		{HabitID: "h1", Date: "2024-03-01", Completed: true},
		{HabitID: "h1", Date: "2024-03-xx", Completed: true},
		{HabitID: "ghost", Date: "2024-03-11", Completed: true},
	}

	result := validator.ValidateLogs(habits, logs)

	tests := []struct {
		kind ConflictType
		want int
	}{
		{ConflictDuplicateLog, 1},
		{ConflictLogBeforeCreation, 1},
		{ConflictInvalidDate, 1},
		{ConflictOrphanLog, 1},
	}
	for _, tt := range tests {
		if got := result.Count(tt.kind); got != tt.want {
			t.Errorf("%s conflicts = %d, want %d", tt.kind, got, tt.want)
		}
	}
	if !strings.HasPrefix(result.FormatReport(), "Conflicts detected:") {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}

func TestValidateLogs_Clean(t *testing.T) {
	validator := New()
	habits := []models.Habit{{ID: "h1", Name: "Read", CreatedAt: calendar.MustDate(2024, 1, 1)}}
	logs := []models.LogEntry{{HabitID: "h1", Date: "2024-03-10", Completed: true}}

	result := validator.ValidateLogs(habits, logs)
	if result.HasConflicts() {
		t.Errorf("unexpected conflicts: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}

func TestTimeOfDay(t *testing.T) {
	tests := map[string]bool{
		"00:00": true,
		"09:30": true,
		"23:59": true,
		"9:30":  false,
		"24:00": false,
		"12:60": false,
		"0930":  false,
		"":      false,
	}
	for in, want := range tests {
		if got := TimeOfDay(in); got != want {
			t.Errorf("TimeOfDay(%q) = %v, want %v", in, got, want)
		}
	}
}
