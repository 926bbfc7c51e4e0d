package sqlstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/storage"
)

const plantColumns = `id, user_id, name, stage, growth_points, recovery_points, health_score, water_level,
	journal_mood_score, music_mood_score, combined_mood_score, journal_samples, music_samples,
	care_streak, last_care_date, total_listening_min,
	last_watered_at, last_fertilized_at, last_sunshine_at, last_decay_at, last_music_at,
	last_music_mood, last_unified_mood, version, created_at, updated_at`

// plantRow is the flattened column form of a PlantState
type plantRow struct {
	lastCareDate     sql.NullString
	lastWateredAt    sql.NullString
	lastFertilizedAt sql.NullString
	lastSunshineAt   sql.NullString
	lastDecayAt      string
	lastMusicAt      sql.NullString
	lastMusicMood    sql.NullString
	lastUnifiedMood  sql.NullString
	createdAt        string
	updatedAt        string
}

func scanPlant(row rowScanner) (models.PlantState, error) {
	var p models.PlantState
	var r plantRow
	var stage string
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &stage, &p.GrowthPoints, &p.RecoveryPoints, &p.HealthScore, &p.WaterLevel,
		&p.JournalMoodScore, &p.MusicMoodScore, &p.CombinedMoodScore, &p.JournalSamples, &p.MusicSamples,
		&p.CareStreak, &r.lastCareDate, &p.TotalListeningMin,
		&r.lastWateredAt, &r.lastFertilizedAt, &r.lastSunshineAt, &r.lastDecayAt, &r.lastMusicAt,
		&r.lastMusicMood, &r.lastUnifiedMood, &p.Version, &r.createdAt, &r.updatedAt,
	)
	if err != nil {
		return models.PlantState{}, err
	}
	p.Stage = models.Stage(stage)
	p.LastCareDate = r.lastCareDate.String

	if p.LastWateredAt, err = parseNullTime(r.lastWateredAt); err != nil {
		return models.PlantState{}, err
	}
	if p.LastFertilizedAt, err = parseNullTime(r.lastFertilizedAt); err != nil {
		return models.PlantState{}, err
	}
	if p.LastSunshineAt, err = parseNullTime(r.lastSunshineAt); err != nil {
		return models.PlantState{}, err
	}
	if p.LastMusicAt, err = parseNullTime(r.lastMusicAt); err != nil {
		return models.PlantState{}, err
	}
	if p.LastDecayAt, err = parseTime(r.lastDecayAt); err != nil {
		return models.PlantState{}, err
	}
	if p.CreatedAt, err = parseTime(r.createdAt); err != nil {
		return models.PlantState{}, err
	}
	if p.UpdatedAt, err = parseTime(r.updatedAt); err != nil {
		return models.PlantState{}, err
	}

	if r.lastMusicMood.Valid {
		var e models.MoodEstimate
		if err := json.Unmarshal([]byte(r.lastMusicMood.String), &e); err != nil {
			return models.PlantState{}, fmt.Errorf("failed to unmarshal last_music_mood: %w", err)
		}
		p.LastMusicMood = &e
	}
	if r.lastUnifiedMood.Valid {
		var u models.UnifiedMood
		if err := json.Unmarshal([]byte(r.lastUnifiedMood.String), &u); err != nil {
			return models.PlantState{}, fmt.Errorf("failed to unmarshal last_unified_mood: %w", err)
		}
		p.LastUnifiedMood = &u
	}

	return p, nil
}

// plantArgs returns the mutable columns in plantColumns order, starting at name
func plantArgs(p models.PlantState) ([]any, error) {
	musicMood, err := nullJSON(p.LastMusicMood)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal last_music_mood: %w", err)
	}
	unifiedMood, err := nullJSON(p.LastUnifiedMood)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal last_unified_mood: %w", err)
	}
	return []any{
		p.Name, string(p.Stage), p.GrowthPoints, p.RecoveryPoints, p.HealthScore, p.WaterLevel,
		p.JournalMoodScore, p.MusicMoodScore, p.CombinedMoodScore, p.JournalSamples, p.MusicSamples,
		p.CareStreak, nullString(p.LastCareDate), p.TotalListeningMin,
		nullTime(p.LastWateredAt), nullTime(p.LastFertilizedAt), nullTime(p.LastSunshineAt),
		formatTime(p.LastDecayAt), nullTime(p.LastMusicAt),
		musicMood, unifiedMood,
	}, nil
}

func (s *Store) CreatePlant(p models.PlantState, counter models.NeglectCounter) error {
	if p.GrowthPoints < 0 {
		return fmt.Errorf("growth points cannot be negative")
	}

	args, err := plantArgs(p)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(s.Rebind("SELECT COUNT(*) FROM plants WHERE user_id = ?"), p.UserID).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing plant: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("plant for user %s: %w", p.UserID, storage.ErrAlreadyExists)
	}

	insertArgs := append([]any{p.ID, p.UserID}, args...)
	insertArgs = append(insertArgs, p.Version, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	_, err = tx.Exec(s.Rebind(`
		INSERT INTO plants (`+plantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		insertArgs...)
	if err != nil {
		return fmt.Errorf("failed to insert plant: %w", err)
	}

	if err := s.upsertCounter(tx, counter); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetPlant(userID string) (models.PlantState, error) {
	row := s.db.QueryRow(s.Rebind("SELECT "+plantColumns+" FROM plants WHERE user_id = ?"), userID)
	p, err := scanPlant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PlantState{}, fmt.Errorf("plant for user %s: %w", userID, storage.ErrNotFound)
		}
		return models.PlantState{}, err
	}
	return p, nil
}

func (s *Store) GetAllPlants() ([]models.PlantState, error) {
	rows, err := s.db.Query("SELECT " + plantColumns + " FROM plants ORDER BY user_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []models.PlantState
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

func (s *Store) DeletePlant(userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(s.Rebind("DELETE FROM activity_logs WHERE user_id = ?"), userID); err != nil {
		return fmt.Errorf("failed to delete activity logs: %w", err)
	}
	if _, err := tx.Exec(s.Rebind("DELETE FROM neglect_counters WHERE user_id = ?"), userID); err != nil {
		return fmt.Errorf("failed to delete neglect counter: %w", err)
	}
	res, err := tx.Exec(s.Rebind("DELETE FROM plants WHERE user_id = ?"), userID)
	if err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("plant for user %s: %w", userID, storage.ErrNotFound)
	}

	return tx.Commit()
}

func (s *Store) CommitPlant(update storage.PlantUpdate) (models.PlantState, error) {
	p := update.Plant
	if p.GrowthPoints < 0 {
		return models.PlantState{}, fmt.Errorf("growth points cannot be negative")
	}

	args, err := plantArgs(p)
	if err != nil {
		return models.PlantState{}, err
	}
	args = append(args, formatTime(p.UpdatedAt), p.ID, p.Version)

	tx, err := s.db.Begin()
	if err != nil {
		return models.PlantState{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(s.Rebind(`
		UPDATE plants SET
			name = ?, stage = ?, growth_points = ?, recovery_points = ?, health_score = ?, water_level = ?,
			journal_mood_score = ?, music_mood_score = ?, combined_mood_score = ?, journal_samples = ?, music_samples = ?,
			care_streak = ?, last_care_date = ?, total_listening_min = ?,
			last_watered_at = ?, last_fertilized_at = ?, last_sunshine_at = ?, last_decay_at = ?, last_music_at = ?,
			last_music_mood = ?, last_unified_mood = ?,
			updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`), args...)
	if err != nil {
		return models.PlantState{}, fmt.Errorf("failed to update plant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.PlantState{}, err
	}
	if n == 0 {
		var count int
		if err := tx.QueryRow(s.Rebind("SELECT COUNT(*) FROM plants WHERE id = ?"), p.ID).Scan(&count); err != nil {
			return models.PlantState{}, err
		}
		if count == 0 {
			return models.PlantState{}, fmt.Errorf("plant %s: %w", p.ID, storage.ErrNotFound)
		}
		return models.PlantState{}, storage.ErrVersionConflict
	}

	if err := s.insertLogs(tx, update.Logs); err != nil {
		return models.PlantState{}, err
	}
	if update.Counter != nil {
		if err := s.upsertCounter(tx, *update.Counter); err != nil {
			return models.PlantState{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.PlantState{}, err
	}

	p.Version++
	return p, nil
}
