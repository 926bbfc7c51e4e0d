package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/keyring"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			fmt.Printf("❌ %s: FAIL\n", name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		fmt.Printf("✓ %s: OK\n", name)
	}

	// Load validates the schema version
	dbErr := ctx.Store.Load()
	report("Database reachable", dbErr)

	if dbErr == nil {
		settings, err := ctx.Store.GetSettings()
		if err == nil {
			err = settings.Validate()
		}
		report("Settings", err)
		if err == nil {
			_, tzErr := utils.LoadLocation(settings.Timezone)
			report("Timezone", tzErr)
		}
		report("Plant integrity", checkPlants(ctx))
	} else {
		fmt.Println("⊘ Settings: SKIPPED (database not reachable)")
		fmt.Println("⊘ Plant integrity: SKIPPED (database not reachable)")
	}

	if keyring.IsAvailable() {
		fmt.Println("✓ OS keyring: OK")
	} else {
		fmt.Println("⚠ OS keyring: WARNING")
		fmt.Println("   Not available; use --database-url or the environment for PostgreSQL")
	}

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

// checkPlants verifies every stored plant against the engine invariants
func checkPlants(ctx *cli.Context) error {
	plants, err := ctx.Store.GetAllPlants()
	if err != nil {
		return fmt.Errorf("failed to list plants: %w", err)
	}
	var errs []error
	for _, p := range plants {
		if !p.Stage.Valid() {
			errs = append(errs, fmt.Errorf("plant for %s has unknown stage %q", p.UserID, p.Stage))
		}
		if p.GrowthPoints < 0 {
			errs = append(errs, fmt.Errorf("plant for %s has negative growth points", p.UserID))
		}
		if p.HealthScore != models.ClampInt(p.HealthScore, 0, constants.MaxHealth) || p.WaterLevel != models.ClampInt(p.WaterLevel, 0, constants.MaxWater) {
			errs = append(errs, fmt.Errorf("plant for %s has out-of-range vitals", p.UserID))
		}
		if _, err := ctx.Store.GetNeglectCounter(p.UserID); err != nil {
			errs = append(errs, fmt.Errorf("plant for %s: %w", p.UserID, err))
		}
	}
	return errors.Join(errs...)
}
