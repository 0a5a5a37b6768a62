package app

import (
	"log/slog"
	"time"

	"github.com/perchapp/perch/store"
)

// staleMultiplier is how many missed heartbeats write a running session off
// as dead.
const staleMultiplier = 3

// sweepStaleSessions fails running records whose heartbeats stopped. They
// are left behind when an earlier process exited mid-session, and settling
// them on the next start keeps the history from ever showing two sessions
// running at once.
func sweepStaleSessions(db store.DB, heartbeatInterval time.Duration) {
	sessions, err := db.GetSessions(time.Time{}, time.Now(), nil)
	if err != nil {
		slog.Warn("unable to sweep stale sessions", slog.Any("error", err))
		return
	}

	cutoff := time.Now().Add(-staleMultiplier * heartbeatInterval)

	for _, sess := range sessions {
		if sess.Terminal() {
			continue
		}

		lastSeen := sess.LastHeartbeat
		if lastSeen.IsZero() {
			lastSeen = sess.StartedAt
		}

		if lastSeen.After(cutoff) {
			continue
		}

		if err := db.FailSession(sess.ID); err != nil {
			slog.Warn("unable to fail stale session",
				slog.String("id", sess.ID),
				slog.Any("error", err),
			)

			continue
		}

		slog.Info("failed stale session",
			slog.String("id", sess.ID),
			slog.Time("last_heartbeat", lastSeen),
		)
	}
}
