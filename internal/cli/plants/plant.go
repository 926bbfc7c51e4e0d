package plants

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/engine"
	"github.com/julianstephens/plantpal/internal/models"
)

type PlantCmd struct {
	Create PlantCreateCmd `cmd:"" help:"Plant a new seedling."`
	Show   PlantShowCmd   `cmd:"" help:"Show your plant." default:"1"`
	Delete PlantDeleteCmd `cmd:"" help:"Delete your plant and its history."`
}

type PlantCreateCmd struct {
	Name string `arg:"" optional:"" help:"Name for your plant."`
}

func (c *PlantCreateCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Engine.CreatePlant(ctx.UserID, c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s was planted. Journal daily to help it grow!\n", cli.StageIcon(p.Stage), p.Name)
	return nil
}

type PlantShowCmd struct {
	JSON bool `help:"Print the snapshot as JSON."`
}

func (c *PlantShowCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Engine.Snapshot(ctx.UserID, time.Time{})
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(snap)
	}
	PrintSnapshot(snap)
	return nil
}

// PrintSnapshot writes a human-readable plant summary to stdout
func PrintSnapshot(snap engine.Snapshot) {
	p := snap.Plant
	fmt.Printf("%s %s (%s)\n", cli.StageIcon(p.Stage), p.Name, p.Stage)
	fmt.Printf("  Growth:   %d points\n", p.GrowthPoints)
	fmt.Printf("  Health:   %s %d (%s)\n", cli.Meter(p.HealthScore, constants.MaxHealth, 20), p.HealthScore, snap.Health)
	fmt.Printf("  Water:    %s %d\n", cli.Meter(p.WaterLevel, constants.MaxWater, 20), p.WaterLevel)
	fmt.Printf("  Mood:     journal %.2f, music %.2f, combined %.2f\n", p.JournalMoodScore, p.MusicMoodScore, p.CombinedMoodScore)
	if snap.Mood != nil {
		fmt.Printf("  Feeling:  %s (%.2f, confidence %.2f)\n", snap.Mood.Label, snap.Mood.Score, snap.Mood.Confidence)
	}
	fmt.Printf("  Trend:    %s\n", snap.Trend.Trend)
	fmt.Printf("  Streak:   %d day(s) of care\n", p.CareStreak)

	actions := make([]models.CareAction, 0, len(snap.Cooldowns))
	for a := range snap.Cooldowns {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	fmt.Print("  Care:    ")
	for _, a := range actions {
		fmt.Printf(" %s %s", a, cli.FormatCooldown(snap.Cooldowns[a]))
	}
	fmt.Println()

	n := snap.Neglect
	switch {
	case n.Wilting:
		fmt.Printf("\n%s is wilting. Write a journal entry to help it recover.\n", p.Name)
	case n.Warning:
		fmt.Printf("\n%s misses you: %d day(s) without a journal entry.\n", p.Name, n.ConsecutiveMissedDays)
	}
	for _, r := range snap.Recommendations {
		fmt.Printf("  • %s\n", r)
	}
}

type PlantDeleteCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *PlantDeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed, err := confirm("Delete your plant and all of its history?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}
	if err := ctx.Engine.DeletePlant(ctx.UserID); err != nil {
		return err
	}
	fmt.Println("Plant deleted.")
	return nil
}
