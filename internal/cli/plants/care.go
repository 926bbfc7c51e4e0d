package plants

import (
	"fmt"
	"time"

	"github.com/julianstephens/plantpal/internal/care"
	"github.com/julianstephens/plantpal/internal/cli"
)

type CareCmd struct {
	Action string `arg:"" enum:"water,fertilize,sunshine" help:"Care action: water, fertilize or sunshine."`
	At     string `help:"When the action happened (RFC3339 or YYYY-MM-DD)."`
}

func (c *CareCmd) Run(ctx *cli.Context) error {
	action, err := care.ParseAction(c.Action)
	if err != nil {
		return err
	}
	at, err := cli.ParseTimestamp(c.At, time.Local)
	if err != nil {
		return err
	}

	res, err := ctx.Engine.Care(ctx.UserID, action, at)
	if err != nil {
		return err
	}

	p := res.Plant
	nudge, _ := care.NudgeFor(action)
	fmt.Printf("%s %s: %s\n", cli.StageIcon(p.Stage), p.Name, res.Log.Note)
	fmt.Printf("  Health %d, water %d", p.HealthScore, p.WaterLevel)
	if nudge.Growth > 0 {
		fmt.Printf(", growth %d", p.GrowthPoints)
	}
	fmt.Printf(", streak %d day(s)\n", p.CareStreak)
	if res.Transition.StageChanged() {
		fmt.Printf("Your plant is now a %s!\n", res.Transition.To)
	}
	return nil
}
