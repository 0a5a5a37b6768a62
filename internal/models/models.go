package models

import "time"

// SessionStatus is the outcome recorded for a session. A session is created
// as running and moves to exactly one terminal status.
type SessionStatus string

const (
	StatusRunning   SessionStatus = "running"
	StatusCompleted SessionStatus = "completed"
	StatusAbandoned SessionStatus = "abandoned"
	StatusFailed    SessionStatus = "failed"
)

// Session is the persisted record of one focus session.
type Session struct {
	StartedAt     time.Time     `json:"started_at"`
	EndedAt       time.Time     `json:"ended_at"`
	LastHeartbeat time.Time     `json:"last_heartbeat"`
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	GroupID       string        `json:"group_id,omitempty"`
	Location      string        `json:"location"`
	Status        SessionStatus `json:"status"`
	Planned       time.Duration `json:"planned_duration"`
	Actual        time.Duration `json:"actual_duration"`
	Remaining     int           `json:"remaining_seconds"`
	CoinsEarned   int           `json:"coins_earned"`
	DeepFocus     bool          `json:"deep_focus"`
}

// Terminal reports whether the session has reached a final outcome.
func (s *Session) Terminal() bool {
	return s.Status != StatusRunning
}
