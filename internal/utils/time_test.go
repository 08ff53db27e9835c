package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitboard/internal/calendar"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty is local", timezone: ""},
		{name: "Local", timezone: "Local"},
		{name: "UTC", timezone: "UTC"},
		{name: "invalid", timezone: "Not/AZone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation(%q) returned nil location", tt.timezone)
			}
		})
	}
}

func TestTodayIn(t *testing.T) {
	fixed := func() time.Time { return time.Date(2024, 3, 31, 22, 30, 0, 0, time.UTC) }

	if got := TodayIn(fixed, time.UTC); got != calendar.MustDate(2024, 3, 31) {
		t.Errorf("TodayIn(UTC) = %s, want 2024-03-31", got)
	}
	ahead := time.FixedZone("UTC+3", 3*60*60)
	if got := TodayIn(fixed, ahead); got != calendar.MustDate(2024, 4, 1) {
		t.Errorf("TodayIn(UTC+3) = %s, want 2024-04-01", got)
	}
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2024-02")
	if err != nil || y != 2024 || m != 2 {
		t.Errorf("ParseMonth() = (%d, %d, %v), want (2024, 2, nil)", y, m, err)
	}
	for _, bad := range []string{"2024-13", "2024", "02-2024", ""} {
		if _, _, err := ParseMonth(bad); err == nil {
			t.Errorf("ParseMonth(%q) expected error", bad)
		}
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := map[string]bool{
		"09:00": true,
		"23:59": true,
		"24:00": false,
		"9:00":  false,
		"00:00": true,
		"12:60": false,
		"noon":  false,
	}
	for in, want := range tests {
		if got := ValidateTimeFormat(in); got != want {
			t.Errorf("ValidateTimeFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, want string
	}{
		{in: "~", want: home},
		{in: "~/.config/habitboard/habitboard.db", want: filepath.Join(home, ".config/habitboard/habitboard.db")},
		{in: "/tmp/habitboard.db", want: "/tmp/habitboard.db"},
		{in: "relative/~/db", want: "relative/~/db"},
		{in: "postgres://localhost/habitboard", want: "postgres://localhost/habitboard"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
