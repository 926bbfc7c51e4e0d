package plants

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/plantpal/internal/cli"
)

type JournalCmd struct {
	Add JournalAddCmd `cmd:"" help:"Write a journal entry." default:"withargs"`
}

type JournalAddCmd struct {
	Text []string `arg:"" optional:"" help:"Journal text. Prompts when omitted."`
	At   string   `help:"When the entry was written (RFC3339 or YYYY-MM-DD)."`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	text := strings.Join(c.Text, " ")
	if strings.TrimSpace(text) == "" {
		prompted, err := promptJournal()
		if err != nil {
			return fmt.Errorf("failed to read journal entry: %w", err)
		}
		text = prompted
	}

	at, err := cli.ParseTimestamp(c.At, time.Local)
	if err != nil {
		return err
	}

	res, err := ctx.Engine.RecordJournal(ctx.UserID, text, at)
	if err != nil {
		return err
	}

	u := res.Unified
	fmt.Printf("Mood: %s (%.2f, confidence %.2f via %s)\n", u.Label, u.Score, u.Confidence, res.Estimate.Method)
	if len(u.Sources) > 1 {
		agreement := "agree"
		if !u.Agreement {
			agreement = "disagree"
		}
		fmt.Printf("Your words and your music %s.\n", agreement)
	}
	fmt.Printf("%s %s: %+d growth (%d points, %s)\n",
		cli.StageIcon(res.Plant.Stage), res.Plant.Name, res.Transition.Delta, res.Plant.GrowthPoints, res.Plant.Stage)
	if res.Transition.StageChanged() {
		fmt.Printf("Your plant is now a %s!\n", res.Transition.To)
	}
	if len(res.Suggestions) > 0 {
		fmt.Printf("Next time, try: %s\n", res.Suggestions[0])
	}
	return nil
}
