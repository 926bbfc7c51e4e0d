package plants

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/plantpal/internal/care"
	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/engine"
	"github.com/julianstephens/plantpal/internal/export"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/storage/sqlite"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	ctx := &cli.Context{
		Store:  store,
		Engine: engine.New(store, engine.Options{Clock: func() time.Time { return testNow }}),
		UserID: "tester",
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func createPlant(t *testing.T, ctx *cli.Context) {
	t.Helper()
	cmd := &PlantCreateCmd{Name: "Basil"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("plant create failed: %v", err)
	}
}

func TestPlantCreateShowDelete(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	createPlant(t, ctx)

	if err := (&PlantCreateCmd{}).Run(ctx); !errors.Is(err, engine.ErrPlantExists) {
		t.Errorf("second create error = %v, want ErrPlantExists", err)
	}

	if err := (&PlantShowCmd{}).Run(ctx); err != nil {
		t.Errorf("plant show failed: %v", err)
	}
	if err := (&PlantShowCmd{JSON: true}).Run(ctx); err != nil {
		t.Errorf("plant show --json failed: %v", err)
	}

	if err := (&PlantDeleteCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("plant delete failed: %v", err)
	}
	if err := (&PlantShowCmd{}).Run(ctx); !errors.Is(err, engine.ErrNoPlantFound) {
		t.Errorf("show after delete error = %v, want ErrNoPlantFound", err)
	}
}

func TestJournalAddGrowsPlant(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&JournalAddCmd{Text: []string{"hello"}}).Run(ctx); !errors.Is(err, engine.ErrNoPlantFound) {
		t.Errorf("journal without plant error = %v, want ErrNoPlantFound", err)
	}

	createPlant(t, ctx)

	cmd := &JournalAddCmd{Text: []string{"I", "feel", "wonderful", "and", "grateful", "today!"}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("journal add failed: %v", err)
	}

	plant, err := ctx.Store.GetPlant(ctx.UserID)
	if err != nil {
		t.Fatalf("failed to get plant: %v", err)
	}
	if plant.GrowthPoints <= 0 {
		t.Errorf("GrowthPoints = %d, want > 0 after a happy entry", plant.GrowthPoints)
	}
	if plant.LastUnifiedMood == nil {
		t.Error("expected LastUnifiedMood to be set")
	}
}

func TestJournalAddRejectsBadTimestamp(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	createPlant(t, ctx)

	cmd := &JournalAddCmd{Text: []string{"fine"}, At: "yesterday"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for invalid --at")
	}
}

func TestListenCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	createPlant(t, ctx)

	if err := (&ListenCmd{}).Run(ctx); err == nil {
		t.Error("expected error for an empty session")
	}

	valence := 0.9
	if err := (&ListenCmd{Valence: &valence}).Run(ctx); err == nil {
		t.Error("expected error when --energy is missing")
	}

	energy := 0.8
	if err := (&ListenCmd{Valence: &valence, Energy: &energy, Minutes: 20}).Run(ctx); err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	plant, err := ctx.Store.GetPlant(ctx.UserID)
	if err != nil {
		t.Fatalf("failed to get plant: %v", err)
	}
	if plant.LastMusicMood == nil {
		t.Fatal("expected LastMusicMood to be set")
	}
	if plant.GrowthPoints != 0 {
		t.Errorf("GrowthPoints = %d, want 0: listening never grows the plant", plant.GrowthPoints)
	}
	if plant.TotalListeningMin != 20 {
		t.Errorf("TotalListeningMin = %d, want 20", plant.TotalListeningMin)
	}
}

func TestListenFromFile(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	createPlant(t, ctx)

	path := filepath.Join(t.TempDir(), "tracks.json")
	data := `[{"valence":0.2,"energy":0.3,"danceability":0.4,"tempo":80},{"valence":0.3,"energy":0.2,"danceability":0.3,"tempo":70}]`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("failed to write tracks: %v", err)
	}

	if err := (&ListenCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("listen --file failed: %v", err)
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte(`[]`), 0600); err != nil {
		t.Fatalf("failed to write tracks: %v", err)
	}
	if err := (&ListenCmd{File: empty}).Run(ctx); err == nil {
		t.Error("expected error for a tracks file without tracks")
	}
}

func TestCareCmdCooldown(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	createPlant(t, ctx)

	if err := (&CareCmd{Action: "water"}).Run(ctx); err != nil {
		t.Fatalf("care water failed: %v", err)
	}

	err := (&CareCmd{Action: "water"}).Run(ctx)
	var cooldown *care.CooldownError
	if !errors.As(err, &cooldown) {
		t.Fatalf("second water error = %v, want *care.CooldownError", err)
	}
	if cooldown.Action != models.CareWater {
		t.Errorf("cooldown action = %s, want water", cooldown.Action)
	}

	if err := (&CareCmd{Action: "sunshine"}).Run(ctx); err != nil {
		t.Errorf("care sunshine failed: %v", err)
	}
	if err := (&CareCmd{Action: "prune"}).Run(ctx); !errors.Is(err, care.ErrUnknownAction) {
		t.Errorf("unknown action error = %v, want ErrUnknownAction", err)
	}
}

func TestMoodPreviewDoesNotNeedPlant(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&MoodPreviewCmd{Text: []string{"what", "a", "lovely", "day"}}).Run(ctx); err != nil {
		t.Errorf("mood preview failed: %v", err)
	}
	if err := (&MoodPreviewCmd{JSON: true}).Run(ctx); err != nil {
		t.Errorf("mood preview --json failed: %v", err)
	}
	if err := (&MoodPreviewCmd{Tracks: filepath.Join(t.TempDir(), "missing.json")}).Run(ctx); err == nil {
		t.Error("expected error for a missing tracks file")
	}
}

func TestNeglectCheckWiltsPlant(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	createPlant(t, ctx)

	if err := (&NeglectCheckCmd{Date: "06/05/2024"}).Run(ctx); err == nil {
		t.Error("expected error for invalid --date")
	}

	if err := (&NeglectCheckCmd{Date: "2024-06-05"}).Run(ctx); err != nil {
		t.Fatalf("neglect check failed: %v", err)
	}
	plant, err := ctx.Store.GetPlant(ctx.UserID)
	if err != nil {
		t.Fatalf("failed to get plant: %v", err)
	}
	if plant.Stage != models.StageWilt {
		t.Errorf("Stage = %s, want wilt after three missed days", plant.Stage)
	}

	// Same day again is a no-op
	if err := (&NeglectCheckCmd{Date: "2024-06-05"}).Run(ctx); err != nil {
		t.Fatalf("repeat neglect check failed: %v", err)
	}
	again, _ := ctx.Store.GetPlant(ctx.UserID)
	if again.Version != plant.Version {
		t.Errorf("Version = %d, want %d after an idempotent check", again.Version, plant.Version)
	}

	if err := (&ReminderCmd{}).Run(ctx); err != nil {
		t.Errorf("reminder failed: %v", err)
	}
}

func TestNeglectSweep(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	createPlant(t, ctx)

	other := *ctx
	other.UserID = "friend"
	createPlant(t, &other)

	if err := (&NeglectSweepCmd{Date: "2024-06-03"}).Run(ctx); err != nil {
		t.Fatalf("neglect sweep failed: %v", err)
	}
	counter, err := ctx.Store.GetNeglectCounter("friend")
	if err != nil {
		t.Fatalf("failed to get counter: %v", err)
	}
	if counter.LastCheckedDate != "2024-06-03" || counter.ConsecutiveMissedDays != 1 {
		t.Errorf("counter = %+v, want checked 2024-06-03 with 1 missed day", counter)
	}
}

func TestHistoryListExportPrune(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	createPlant(t, ctx)

	if err := (&JournalAddCmd{Text: []string{"good", "day"}}).Run(ctx); err != nil {
		t.Fatalf("journal add failed: %v", err)
	}
	if err := (&CareCmd{Action: "fertilize"}).Run(ctx); err != nil {
		t.Fatalf("care fertilize failed: %v", err)
	}

	if err := (&HistoryListCmd{Limit: 5}).Run(ctx); err != nil {
		t.Errorf("history list failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "history.xlsx")
	if err := (&HistoryListCmd{Export: path}).Run(ctx); err != nil {
		t.Fatalf("history export failed: %v", err)
	}

	logs, err := ctx.Store.GetActivityLogs(ctx.UserID, 0)
	if err != nil {
		t.Fatalf("failed to get logs: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(export.HistorySheet)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if len(rows) != len(logs)+1 {
		t.Errorf("export has %d rows, want %d", len(rows), len(logs)+1)
	}

	if err := (&HistoryPruneCmd{Before: "June 2"}).Run(ctx); err == nil {
		t.Error("expected error for invalid --before")
	}
	if err := (&HistoryPruneCmd{Before: "2024-06-02"}).Run(ctx); err != nil {
		t.Fatalf("history prune failed: %v", err)
	}
	remaining, _ := ctx.Store.GetActivityLogs(ctx.UserID, 0)
	if len(remaining) != 0 {
		t.Errorf("%d logs left after prune, want 0", len(remaining))
	}
}
