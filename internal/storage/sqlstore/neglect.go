package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/storage"
)

func (s *Store) upsertCounter(tx *sql.Tx, c models.NeglectCounter) error {
	_, err := tx.Exec(s.Rebind(`
		INSERT INTO neglect_counters (user_id, consecutive_missed_days, last_qualifying_date, last_checked_date, wilt_threshold)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			consecutive_missed_days = excluded.consecutive_missed_days,
			last_qualifying_date = excluded.last_qualifying_date,
			last_checked_date = excluded.last_checked_date,
			wilt_threshold = excluded.wilt_threshold`),
		c.UserID, c.ConsecutiveMissedDays, nullString(c.LastQualifyingDate), nullString(c.LastCheckedDate), c.WiltThreshold)
	if err != nil {
		return fmt.Errorf("failed to save neglect counter: %w", err)
	}
	return nil
}

func (s *Store) GetNeglectCounter(userID string) (models.NeglectCounter, error) {
	var c models.NeglectCounter
	var qualifying, checked sql.NullString
	err := s.db.QueryRow(s.Rebind(`
		SELECT user_id, consecutive_missed_days, last_qualifying_date, last_checked_date, wilt_threshold
		FROM neglect_counters WHERE user_id = ?`), userID).
		Scan(&c.UserID, &c.ConsecutiveMissedDays, &qualifying, &checked, &c.WiltThreshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NeglectCounter{}, fmt.Errorf("neglect counter for user %s: %w", userID, storage.ErrNotFound)
		}
		return models.NeglectCounter{}, err
	}
	c.LastQualifyingDate = qualifying.String
	c.LastCheckedDate = checked.String
	return c, nil
}
