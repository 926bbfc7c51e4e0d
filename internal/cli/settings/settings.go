package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/plantpal/internal/cli"
)

type SettingsCmd struct {
	List bool     `help:"List current settings."`
	Set  []string `help:"Update a setting, as key=value. Repeatable." placeholder:"KEY=VALUE"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Println("\nGrowth:")
		fmt.Printf("  Sprout Threshold:      %d points\n", settings.SproutThreshold)
		fmt.Printf("  Bloom Threshold:       %d points\n", settings.BloomThreshold)
		fmt.Printf("  Wilt Recovery:         %d points\n", settings.WiltRecoveryPoints)
		fmt.Println("\nNeglect:")
		fmt.Printf("  Wilt Threshold:        %d days\n", settings.WiltThreshold)
		fmt.Printf("  Penalty Per Day:       %d points\n", settings.NeglectPenaltyUnit)
		fmt.Println("\nCare & Music:")
		fmt.Printf("  Care Cooldown:         %d min\n", settings.CareCooldownMin)
		fmt.Printf("  Music Freshness:       %d h\n", settings.MusicFreshnessHours)
		return nil
	}

	if len(c.Set) == 0 {
		fmt.Println("No changes specified. Use --list to view settings or --set key=value to update them.")
		return nil
	}

	for _, kv := range c.Set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid setting %q (expected key=value)", kv)
		}
		if err := settings.SetValue(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
