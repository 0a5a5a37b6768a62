package store

import (
	"time"

	"github.com/perchapp/perch/internal/models"
)

// DB is the session persistence interface. It mirrors the local state
// machine; callers treat every write as best-effort and never roll back
// local state when one fails.
type DB interface {
	// CreateSession records a new running session and returns its handle.
	// A handle is assigned if the record does not carry one already.
	CreateSession(sess *models.Session) (string, error)
	// Heartbeat updates the presence data for a running session. A
	// heartbeat that arrives after the session reached a terminal status
	// is ignored.
	Heartbeat(id string, remaining int) error
	// CompleteSession marks a session as completed and adds its actual
	// duration to the daily total.
	CompleteSession(id string, actual time.Duration, coins int) error
	// AbandonSession marks a session as abandoned by its owner.
	AbandonSession(id string) error
	// FailSession marks a session as failed, either because the grace
	// period expired or because its group failed.
	FailSession(id string) error
	// TotalToday returns the total completed focus time for the day the
	// given time falls on.
	TotalToday(now time.Time) (time.Duration, error)
	// GetSessions returns saved sessions according to the time and
	// location constraints.
	GetSessions(
		startTime, endTime time.Time,
		locations []string,
	) ([]*models.Session, error)
	// DeleteSessions deletes one or more saved sessions.
	DeleteSessions(sessions []*models.Session) error
	// Close ends the database connection.
	Close() error
}
