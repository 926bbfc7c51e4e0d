package models

// NeglectCounter tracks consecutive days without journaling
type NeglectCounter struct {
	UserID                string `json:"user_id"`
	ConsecutiveMissedDays int    `json:"consecutive_missed_days"`
	LastQualifyingDate    string `json:"last_qualifying_date,omitempty"` // YYYY-MM-DD format
	LastCheckedDate       string `json:"last_checked_date,omitempty"`    // YYYY-MM-DD format
	WiltThreshold         int    `json:"wilt_threshold"`
}

// NeglectStatus is what the reminder subsystem needs to decide on escalation
type NeglectStatus struct {
	UserID                string `json:"user_id"`
	Stage                 Stage  `json:"stage"`
	Wilting               bool   `json:"wilting"`
	Warning               bool   `json:"warning"`
	ConsecutiveMissedDays int    `json:"consecutive_missed_days"`
	WiltThreshold         int    `json:"wilt_threshold"`
	LastQualifyingDate    string `json:"last_qualifying_date,omitempty"`
}
