package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/storage"
)

var (
	_ storage.Provider = (*Store)(nil)
	_ storage.Migrator = (*Store)(nil)
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testPlant(userID string, now time.Time) (models.PlantState, models.NeglectCounter) {
	p := models.NewPlantState("plant-"+userID, userID, "Fern", now)
	c := models.NeglectCounter{
		UserID:             userID,
		LastQualifyingDate: now.Format("2006-01-02"),
		WiltThreshold:      3,
	}
	return p, c
}

func TestInitSeedsDefaultSettings(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("GetSettings() = %+v, want defaults", settings)
	}

	settings.BloomThreshold = 12
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	got, _ := store.GetSettings()
	if got.BloomThreshold != 12 {
		t.Errorf("BloomThreshold = %d, want 12", got.BloomThreshold)
	}

	settings.BloomThreshold = 1
	if err := store.SaveSettings(settings); err == nil {
		t.Error("expected SaveSettings() to reject bloom below sprout")
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected Load() to fail before Init()")
	}

	path := filepath.Join(t.TempDir(), "plantpal.db")
	initStore := NewStore(path)
	if err := initStore.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	initStore.Close()

	loaded := NewStore(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer loaded.Close()
	if loaded.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", loaded.GetConfigPath(), path)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	if _, err := NewStore(filepath.Join(t.TempDir(), "missing.db")).Migrate(nil); err == nil {
		t.Error("expected Migrate() to fail before Init()")
	}

	path := filepath.Join(t.TempDir(), "plantpal.db")
	initStore := NewStore(path)
	if err := initStore.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	initStore.Close()

	store := NewStore(path)
	defer store.Close()
	n, err := store.Migrate(nil)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Migrate() applied %d migrations on an up-to-date database, want 0", n)
	}
}

func TestPlantRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	now := time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.UTC)

	p, c := testPlant("alice", now)
	watered := now.Add(-time.Hour)
	p.LastWateredAt = &watered
	p.LastCareDate = "2024-03-01"
	p.LastMusicMood = &models.MoodEstimate{
		Score: 0.7, Label: models.MoodUpbeat, Confidence: 0.8, Method: models.MethodAudioFeatures,
	}

	if err := store.CreatePlant(p, c); err != nil {
		t.Fatalf("CreatePlant() failed: %v", err)
	}

	got, err := store.GetPlant("alice")
	if err != nil {
		t.Fatalf("GetPlant() failed: %v", err)
	}
	if !got.LastDecayAt.Equal(now) || !got.CreatedAt.Equal(now) {
		t.Errorf("timestamps not preserved: decay %v created %v", got.LastDecayAt, got.CreatedAt)
	}
	if got.LastWateredAt == nil || !got.LastWateredAt.Equal(watered) {
		t.Errorf("LastWateredAt = %v, want %v", got.LastWateredAt, watered)
	}
	if got.LastFertilizedAt != nil {
		t.Errorf("LastFertilizedAt = %v, want nil", got.LastFertilizedAt)
	}
	if got.LastMusicMood == nil || got.LastMusicMood.Label != models.MoodUpbeat {
		t.Errorf("LastMusicMood = %+v", got.LastMusicMood)
	}
	if got.Stage != models.StageSeedling || got.LastCareDate != "2024-03-01" {
		t.Errorf("got stage %s care date %q", got.Stage, got.LastCareDate)
	}

	counter, err := store.GetNeglectCounter("alice")
	if err != nil {
		t.Fatalf("GetNeglectCounter() failed: %v", err)
	}
	if counter != c {
		t.Errorf("counter = %+v, want %+v", counter, c)
	}
}

func TestCreatePlantRejectsDuplicateUser(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now().UTC()

	p, c := testPlant("bob", now)
	if err := store.CreatePlant(p, c); err != nil {
		t.Fatalf("CreatePlant() failed: %v", err)
	}
	p.ID = "another"
	if err := store.CreatePlant(p, c); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("second CreatePlant() = %v, want ErrAlreadyExists", err)
	}
}

func TestGetPlantNotFound(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.GetPlant("nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetPlant() = %v, want ErrNotFound", err)
	}
	if _, err := store.GetNeglectCounter("nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetNeglectCounter() = %v, want ErrNotFound", err)
	}
	if err := store.DeletePlant("nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeletePlant() = %v, want ErrNotFound", err)
	}
}

func TestCommitPlantVersioning(t *testing.T) {
	store := setupTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	p, c := testPlant("carol", now)
	if err := store.CreatePlant(p, c); err != nil {
		t.Fatalf("CreatePlant() failed: %v", err)
	}

	stale, _ := store.GetPlant("carol")

	p.GrowthPoints = 3
	logs := []models.ActivityLog{
		{ID: "l1", PlantID: p.ID, UserID: "carol", ActivityType: models.ActivityMoodGrowth, Value: 0.9, GrowthImpact: 3, CreatedAt: now},
		{ID: "l2", PlantID: p.ID, UserID: "carol", ActivityType: models.ActivityStageChange, Note: "seedling -> sprout", CreatedAt: now},
	}
	c.ConsecutiveMissedDays = 0
	c.LastCheckedDate = "2024-03-01"
	committed, err := store.CommitPlant(storage.PlantUpdate{Plant: p, Logs: logs, Counter: &c})
	if err != nil {
		t.Fatalf("CommitPlant() failed: %v", err)
	}
	if committed.Version != 1 {
		t.Errorf("Version = %d, want 1", committed.Version)
	}

	stale.GrowthPoints = 99
	if _, err := store.CommitPlant(storage.PlantUpdate{Plant: stale, Logs: logs[:1]}); !errors.Is(err, storage.ErrVersionConflict) {
		t.Errorf("stale CommitPlant() = %v, want ErrVersionConflict", err)
	}

	got, _ := store.GetPlant("carol")
	if got.GrowthPoints != 3 || got.Version != 1 {
		t.Errorf("got growth %d version %d, want 3 and 1", got.GrowthPoints, got.Version)
	}

	history, err := store.GetActivityLogs("carol", 0)
	if err != nil {
		t.Fatalf("GetActivityLogs() failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2 (conflicting commit must not write logs)", len(history))
	}
	if history[0].ID != "l2" || history[1].ID != "l1" {
		t.Errorf("history order = %s, %s; want l2, l1", history[0].ID, history[1].ID)
	}

	counter, _ := store.GetNeglectCounter("carol")
	if counter.LastCheckedDate != "2024-03-01" {
		t.Errorf("LastCheckedDate = %q, want 2024-03-01", counter.LastCheckedDate)
	}
}

func TestCommitPlantRejectsNegativePoints(t *testing.T) {
	store := setupTestStore(t)
	p, c := testPlant("dave", time.Now().UTC())
	if err := store.CreatePlant(p, c); err != nil {
		t.Fatalf("CreatePlant() failed: %v", err)
	}
	p.GrowthPoints = -1
	if _, err := store.CommitPlant(storage.PlantUpdate{Plant: p}); err == nil {
		t.Error("expected CommitPlant() to reject negative growth points")
	}
}

func TestActivityLogsLimitAndPrune(t *testing.T) {
	store := setupTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	p, c := testPlant("erin", base)
	if err := store.CreatePlant(p, c); err != nil {
		t.Fatalf("CreatePlant() failed: %v", err)
	}

	current := p
	for i := 0; i < 5; i++ {
		log := models.ActivityLog{
			ID:           string(rune('a' + i)),
			PlantID:      p.ID,
			UserID:       "erin",
			ActivityType: models.ActivityWatered,
			CreatedAt:    base.Add(time.Duration(i) * 24 * time.Hour),
		}
		next, err := store.CommitPlant(storage.PlantUpdate{Plant: current, Logs: []models.ActivityLog{log}})
		if err != nil {
			t.Fatalf("CommitPlant() failed: %v", err)
		}
		current = next
	}

	recent, err := store.GetActivityLogs("erin", 2)
	if err != nil {
		t.Fatalf("GetActivityLogs() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "e" || recent[1].ID != "d" {
		t.Errorf("recent = %+v, want e then d", recent)
	}

	watered, err := store.GetActivityLogsByType("erin", models.ActivityWatered, 3)
	if err != nil {
		t.Fatalf("GetActivityLogsByType() failed: %v", err)
	}
	if len(watered) != 3 || watered[0].ID != "e" {
		t.Errorf("watered = %+v, want 3 newest first", watered)
	}
	if other, _ := store.GetActivityLogsByType("erin", models.ActivityMoodGrowth, 0); len(other) != 0 {
		t.Errorf("mood logs = %d, want 0", len(other))
	}

	pruned, err := store.PruneActivityLogs(base.Add(48 * time.Hour))
	if err != nil {
		t.Fatalf("PruneActivityLogs() failed: %v", err)
	}
	if pruned != 2 {
		t.Errorf("pruned = %d, want 2", pruned)
	}
	all, _ := store.GetActivityLogs("erin", 0)
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestDeletePlantRemovesEverything(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now().UTC()

	p, c := testPlant("frank", now)
	if err := store.CreatePlant(p, c); err != nil {
		t.Fatalf("CreatePlant() failed: %v", err)
	}
	log := models.ActivityLog{ID: "x", PlantID: p.ID, UserID: "frank", ActivityType: models.ActivitySunshine, CreatedAt: now}
	if _, err := store.CommitPlant(storage.PlantUpdate{Plant: p, Logs: []models.ActivityLog{log}}); err != nil {
		t.Fatalf("CommitPlant() failed: %v", err)
	}

	if err := store.DeletePlant("frank"); err != nil {
		t.Fatalf("DeletePlant() failed: %v", err)
	}
	if _, err := store.GetPlant("frank"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetPlant() after delete = %v, want ErrNotFound", err)
	}
	if _, err := store.GetNeglectCounter("frank"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetNeglectCounter() after delete = %v, want ErrNotFound", err)
	}
	if logs, _ := store.GetActivityLogs("frank", 0); len(logs) != 0 {
		t.Errorf("logs after delete = %d, want 0", len(logs))
	}

	// A fresh plant can be created after deletion
	if err := store.CreatePlant(p, c); err != nil {
		t.Errorf("CreatePlant() after delete failed: %v", err)
	}
}

func TestGetAllPlants(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now().UTC()
	for _, user := range []string{"zoe", "amy"} {
		p, c := testPlant(user, now)
		if err := store.CreatePlant(p, c); err != nil {
			t.Fatalf("CreatePlant() failed: %v", err)
		}
	}
	plants, err := store.GetAllPlants()
	if err != nil {
		t.Fatalf("GetAllPlants() failed: %v", err)
	}
	if len(plants) != 2 || plants[0].UserID != "amy" {
		t.Errorf("GetAllPlants() = %d plants, first %q", len(plants), plants[0].UserID)
	}
}
