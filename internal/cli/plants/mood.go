package plants

import (
	"fmt"
	"strings"

	"github.com/julianstephens/plantpal/internal/audio"
	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/models"
)

type MoodCmd struct {
	Preview MoodPreviewCmd `cmd:"" help:"Analyze text and music without touching your plant." default:"withargs"`
}

type MoodPreviewCmd struct {
	Text   []string `arg:"" optional:"" help:"Text to analyze."`
	Tracks string   `help:"JSON file with a list of track features."`
	JSON   bool     `help:"Print the preview as JSON."`
}

func (c *MoodPreviewCmd) Run(ctx *cli.Context) error {
	var tracks []audio.Features
	if c.Tracks != "" {
		t, err := ReadTracks(c.Tracks)
		if err != nil {
			return err
		}
		tracks = t
	}

	preview := ctx.Engine.PreviewMood(strings.Join(c.Text, " "), tracks)
	if c.JSON {
		return printJSON(preview)
	}

	printEstimate("Journal", preview.Journal)
	printEstimate("Music", preview.Music)
	u := preview.Unified
	fmt.Printf("Unified: %s (%.2f, confidence %.2f)\n", u.Label, u.Score, u.Confidence)
	if len(u.Sources) > 1 && !u.Agreement {
		fmt.Println("Your words and your music tell different stories.")
	}
	for _, s := range preview.Suggestions {
		fmt.Printf("  • %s\n", s)
	}
	for _, r := range preview.Recommendations {
		fmt.Printf("  ♪ %s\n", r)
	}
	return nil
}

func printEstimate(name string, e *models.MoodEstimate) {
	if e == nil {
		fmt.Printf("%-8s no input\n", name+":")
		return
	}
	fmt.Printf("%-8s %s (%.2f, confidence %.2f via %s)\n", name+":", e.Label, e.Score, e.Confidence, e.Method)
}
