package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitboard/internal/constants"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/validation"
)

// HabitFormModel backs the add-habit form. Empty fields take defaults.
type HabitFormModel struct {
	Name   string
	Icon   string
	Target string
	Time   string
}

// Fields converts the form values. Target was validated by the form.
func (f HabitFormModel) Fields() models.HabitFields {
	target, _ := strconv.Atoi(strings.TrimSpace(f.Target))
	return models.HabitFields{
		Name:          strings.TrimSpace(f.Name),
		Icon:          strings.TrimSpace(f.Icon),
		TargetDays:    target,
		ScheduledTime: strings.TrimSpace(f.Time),
	}
}

// NewHabitForm builds the huh form used by both the TUI and 'habit add'.
func NewHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Icon").
				Placeholder(constants.DefaultHabitIcon).
				Value(&f.Icon),
			huh.NewInput().
				Title("Target days per month").
				Placeholder(strconv.Itoa(constants.DefaultHabitTargetDays)).
				Value(&f.Target).
				Validate(validateTarget),
			huh.NewInput().
				Title("Scheduled time (HH:MM)").
				Placeholder(constants.DefaultHabitScheduledTime).
				Value(&f.Time).
				Validate(func(s string) error {
					if s = strings.TrimSpace(s); s != "" && !validation.TimeOfDay(s) {
						return errors.New("use 24-hour HH:MM")
					}
					return nil
				}),
		),
	)
}

func validateTarget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < constants.MinTargetDays || n > constants.MaxTargetDays {
		return fmt.Errorf("enter a number between %d and %d", constants.MinTargetDays, constants.MaxTargetDays)
	}
	return nil
}
