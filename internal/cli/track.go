package cli

import (
	"fmt"

	"github.com/julianstephens/habitboard/internal/constants"
)

type ToggleCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	date, err := ParseDateOr(c.Date, ctx.Service.Today())
	if err != nil {
		return err
	}
	habits, err := ctx.Service.ListHabits(ctx.Ctx(), user)
	if err != nil {
		return err
	}
	h, err := FindHabit(habits, c.Habit)
	if err != nil {
		return err
	}

	res, err := ctx.Service.Toggle(ctx.Ctx(), user, h.ID, date)
	if err != nil {
		return err
	}
	if res.Status == constants.ToggleStatusAdded {
		fmt.Printf("%s Marked %q for %s (streak %d)\n", doneStyle.Render("✓"), h.Name, date, res.NewStreak)
	} else {
		fmt.Printf("%s Unmarked %q for %s\n", missedStyle.Render("○"), h.Name, date)
	}
	return nil
}

type DashboardCmd struct {
	Year  int  `help:"Year (default: current)." default:"0"`
	Month int  `help:"Month 1-12 (default: current)." default:"0"`
	JSON  bool `help:"Print the raw dashboard as JSON."`
}

func (c *DashboardCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	today := ctx.Service.Today()
	year, month := today.Year, today.Month
	if c.Year != 0 {
		year = c.Year
	}
	if c.Month != 0 {
		month = c.Month
	}

	dash, err := ctx.Service.GetDashboard(ctx.Ctx(), user, year, month)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(dash)
	}
	fmt.Print(RenderDashboard(dash, today))
	return nil
}

type LeaderboardCmd struct {
	JSON bool `help:"Print the leaderboard as JSON."`
}

func (c *LeaderboardCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	board, err := ctx.Service.GetLeaderboard(ctx.Ctx(), user)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(board)
	}
	today := ctx.Service.Today()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Leaderboard %04d-%02d", today.Year, today.Month)))
	fmt.Print(RenderLeaderboard(board))
	return nil
}
