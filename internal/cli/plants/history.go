package plants

import (
	"fmt"
	"time"

	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/export"
)

type HistoryCmd struct {
	List  HistoryListCmd  `cmd:"" help:"Show recent activity." default:"1"`
	Prune HistoryPruneCmd `cmd:"" help:"Delete activity older than a date."`
}

type HistoryListCmd struct {
	Limit  int    `help:"Maximum entries to show (0 for all)." default:"20"`
	Export string `help:"Write the entries to an .xlsx file instead of printing them." placeholder:"PATH"`
}

func (c *HistoryListCmd) Run(ctx *cli.Context) error {
	logs, err := ctx.Engine.History(ctx.UserID, c.Limit)
	if err != nil {
		return err
	}

	if c.Export != "" {
		if err := export.WriteHistory(c.Export, logs, time.Local); err != nil {
			return err
		}
		fmt.Printf("Exported %d entries to %s\n", len(logs), c.Export)
		return nil
	}

	if len(logs) == 0 {
		fmt.Println("No activity yet.")
		return nil
	}
	for _, l := range logs {
		impact := ""
		if l.GrowthImpact != 0 {
			impact = fmt.Sprintf(" (%+d)", l.GrowthImpact)
		}
		fmt.Printf("%s  %-12s %s%s\n", l.CreatedAt.Local().Format("2006-01-02 15:04"), l.ActivityType, l.Note, impact)
	}
	return nil
}

type HistoryPruneCmd struct {
	Before string `required:"" help:"Delete entries created before this date (YYYY-MM-DD)."`
}

func (c *HistoryPruneCmd) Run(ctx *cli.Context) error {
	before, err := time.ParseInLocation(constants.DateFormat, c.Before, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q (expected %s)", c.Before, constants.DateFormat)
	}
	n, err := ctx.Engine.PruneHistory(before)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d entries.\n", n)
	return nil
}
