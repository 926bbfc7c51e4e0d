package plants

import (
	"context"
	"fmt"

	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/models"
)

type NeglectCmd struct {
	Check NeglectCheckCmd `cmd:"" help:"Run today's neglect check for your plant."`
	Sweep NeglectSweepCmd `cmd:"" help:"Run today's neglect check for every plant."`
}

type NeglectCheckCmd struct {
	Date string `help:"Day to check (YYYY-MM-DD). Defaults to today."`
}

func (c *NeglectCheckCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDay(c.Date)
	if err != nil {
		return err
	}
	res, err := ctx.Engine.CheckNeglect(context.Background(), ctx.UserID, day)
	if err != nil {
		return err
	}
	if !res.Checked {
		fmt.Println("Already checked for this day.")
	}
	if res.Wilted {
		fmt.Printf("%s %s wilted and lost growth points (now %d).\n", cli.StageIcon(res.Plant.Stage), res.Plant.Name, res.Plant.GrowthPoints)
	}
	printStatus(res.Status)
	return nil
}

type NeglectSweepCmd struct {
	Date string `help:"Day to check (YYYY-MM-DD). Defaults to today."`
}

func (c *NeglectSweepCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDay(c.Date)
	if err != nil {
		return err
	}
	report, err := ctx.Engine.SweepNeglect(context.Background(), day)
	if err != nil {
		return err
	}
	fmt.Printf("Checked %d of %d plant(s): %d skipped, %d wilted, %d failed\n",
		report.Checked, report.Plants, report.Skipped, report.Wilted, report.Failed)
	if report.Failed > 0 {
		return fmt.Errorf("%d neglect check(s) failed", report.Failed)
	}
	return nil
}

type ReminderCmd struct {
	JSON bool `help:"Print the status as JSON."`
}

func (c *ReminderCmd) Run(ctx *cli.Context) error {
	status, err := ctx.Engine.ReminderStatus(ctx.UserID)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(status)
	}
	printStatus(status)
	return nil
}

func printStatus(s models.NeglectStatus) {
	level := "ok"
	switch {
	case s.Wilting:
		level = "wilting"
	case s.Warning:
		level = "warning"
	}
	fmt.Printf("Reminder: %s (%d/%d missed day(s)", level, s.ConsecutiveMissedDays, s.WiltThreshold)
	if s.LastQualifyingDate != "" {
		fmt.Printf(", last journal %s", s.LastQualifyingDate)
	}
	fmt.Println(")")
}
