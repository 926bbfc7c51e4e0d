package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/plantpal/internal/models"
)

func (s *Store) insertLogs(tx *sql.Tx, logs []models.ActivityLog) error {
	if len(logs) == 0 {
		return nil
	}
	query := s.Rebind(`
		INSERT INTO activity_logs (id, plant_id, user_id, activity_type, note, value, growth_impact, batch_seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for i, l := range logs {
		_, err := tx.Exec(query,
			l.ID, l.PlantID, l.UserID, string(l.ActivityType), l.Note, l.Value, l.GrowthImpact, i, formatTime(l.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert activity log: %w", err)
		}
	}
	return nil
}

func (s *Store) GetActivityLogs(userID string, limit int) ([]models.ActivityLog, error) {
	return s.queryLogs(userID, "", limit)
}

// GetActivityLogsByType returns the user's logs of one kind, newest first
func (s *Store) GetActivityLogsByType(userID string, kind models.ActivityType, limit int) ([]models.ActivityLog, error) {
	return s.queryLogs(userID, kind, limit)
}

func (s *Store) queryLogs(userID string, kind models.ActivityType, limit int) ([]models.ActivityLog, error) {
	query := `
		SELECT id, plant_id, user_id, activity_type, note, value, growth_impact, created_at
		FROM activity_logs
		WHERE user_id = ?`
	args := []any{userID}
	if kind != "" {
		query += " AND activity_type = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY created_at DESC, batch_seq DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(s.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var l models.ActivityLog
		var logType, createdAt string
		if err := rows.Scan(&l.ID, &l.PlantID, &l.UserID, &logType, &l.Note, &l.Value, &l.GrowthImpact, &createdAt); err != nil {
			return nil, err
		}
		l.ActivityType = models.ActivityType(logType)
		if l.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// PruneActivityLogs deletes logs created strictly before the cutoff
func (s *Store) PruneActivityLogs(before time.Time) (int64, error) {
	res, err := s.db.Exec(s.Rebind("DELETE FROM activity_logs WHERE created_at < ?"), formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity logs: %w", err)
	}
	return res.RowsAffected()
}
