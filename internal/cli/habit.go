package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/tui"
)

type HabitCmd struct {
	Add  HabitAddCmd  `cmd:"" help:"Add a new habit."`
	List HabitListCmd `cmd:"" help:"List habits."`
	Edit HabitEditCmd `cmd:"" help:"Edit a habit's name, icon, target or time."`
}

type HabitAddCmd struct {
	Name   string `arg:"" optional:"" help:"Habit name. Omit to fill in a form."`
	Icon   string `help:"Icon glyph." default:""`
	Target int    `help:"Target days per month (1-31)." default:"0"`
	Time   string `help:"Scheduled time of day (HH:MM)." default:""`
}

func (c *HabitAddCmd) fields() (models.HabitFields, error) {
	if c.Name != "" {
		return models.HabitFields{Name: c.Name, Icon: c.Icon, TargetDays: c.Target, ScheduledTime: c.Time}, nil
	}

	v := &tui.HabitFormModel{Icon: c.Icon, Time: c.Time}
	if c.Target > 0 {
		v.Target = strconv.Itoa(c.Target)
	}
	if err := tui.NewHabitForm(v).Run(); err != nil {
		return models.HabitFields{}, err
	}
	return v.Fields(), nil
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	fields, err := c.fields()
	if err != nil {
		return err
	}
	h, err := ctx.Service.CreateHabit(ctx.Ctx(), user, fields)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s %s (%s, target %d days)\n", h.Icon, h.Name, h.ScheduledTime, h.TargetDays)
	fmt.Printf("  id: %s\n", h.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	habits, err := ctx.Service.ListHabits(ctx.Ctx(), user)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}
	for _, h := range habits {
		fmt.Printf("%s  %s %-24s target %2d  since %s  %s\n",
			h.ScheduledTime, h.Icon, h.Name, h.TargetDays, h.CreatedAt, mutedStyle.Render(h.ID))
	}
	return nil
}

type HabitEditCmd struct {
	Habit  string `arg:"" help:"Habit id or name."`
	Name   string `help:"New name." default:""`
	Icon   string `help:"New icon." default:""`
	Target int    `help:"New target days per month." default:"0"`
	Time   string `help:"New scheduled time (HH:MM)." default:""`
}

func (c *HabitEditCmd) patch() models.HabitPatch {
	var p models.HabitPatch
	if c.Name != "" {
		p.Name = &c.Name
	}
	if c.Icon != "" {
		p.Icon = &c.Icon
	}
	if c.Target != 0 {
		p.TargetDays = &c.Target
	}
	if c.Time != "" {
		p.ScheduledTime = &c.Time
	}
	return p
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	patch := c.patch()
	if patch.IsEmpty() {
		return errors.New("nothing to change: pass --name, --icon, --target or --time")
	}

	habits, err := ctx.Service.ListHabits(ctx.Ctx(), user)
	if err != nil {
		return err
	}
	h, err := FindHabit(habits, c.Habit)
	if err != nil {
		return err
	}

	updated, err := ctx.Service.UpdateHabit(ctx.Ctx(), user, h.ID, patch)
	if err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s %s (%s, target %d days)\n", updated.Icon, updated.Name, updated.ScheduledTime, updated.TargetDays)
	return nil
}
