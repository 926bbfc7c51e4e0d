package plants

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/plantpal/internal/audio"
	"github.com/julianstephens/plantpal/internal/cli"
)

type ListenCmd struct {
	Valence      *float64 `help:"Track valence (0-1)."`
	Energy       *float64 `help:"Track energy (0-1)."`
	Danceability *float64 `help:"Track danceability (0-1)."`
	Tempo        *float64 `help:"Track tempo in BPM."`
	File         string   `help:"JSON file with a list of track features."`
	Minutes      int      `help:"Minutes listened." default:"0"`
	At           string   `help:"When the session happened (RFC3339 or YYYY-MM-DD)."`
}

func (c *ListenCmd) Run(ctx *cli.Context) error {
	tracks, err := c.tracks()
	if err != nil {
		return err
	}
	at, err := cli.ParseTimestamp(c.At, time.Local)
	if err != nil {
		return err
	}

	res, err := ctx.Engine.RecordListening(ctx.UserID, tracks, c.Minutes, at)
	if err != nil {
		return err
	}

	if res.Estimate != nil {
		fmt.Printf("Music mood: %s (%.2f, confidence %.2f) from %d track(s)\n",
			res.Estimate.Label, res.Estimate.Score, res.Estimate.Confidence, len(tracks))
	}
	if res.Bonus > 0 {
		fmt.Printf("%s %s enjoyed the music: health %+d (now %d)\n", cli.StageIcon(res.Plant.Stage), res.Plant.Name, res.Bonus, res.Plant.HealthScore)
	}
	fmt.Println("Music shapes your plant's mood but only journaling makes it grow.")
	return nil
}

func (c *ListenCmd) tracks() ([]audio.Features, error) {
	if c.File != "" {
		return ReadTracks(c.File)
	}
	if c.Valence == nil && c.Energy == nil && c.Danceability == nil && c.Tempo == nil {
		return nil, nil
	}
	if c.Valence == nil || c.Energy == nil {
		return nil, errors.New("--valence and --energy are required when describing a track")
	}
	f := audio.Features{Valence: *c.Valence, Energy: *c.Energy}
	if c.Danceability != nil {
		f.Danceability = *c.Danceability
	}
	if c.Tempo != nil {
		f.Tempo = *c.Tempo
	}
	return []audio.Features{f}, nil
}

// ReadTracks loads a JSON array of track features
func ReadTracks(path string) ([]audio.Features, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks file: %w", err)
	}
	var tracks []audio.Features
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse tracks file: %w", err)
	}
	if len(tracks) == 0 {
		return nil, errors.New("tracks file has no tracks")
	}
	return tracks, nil
}
