package engine

import (
	"math"
	"time"
)

// Phase is the lifecycle state of the session engine. Exactly one phase
// holds at any time, and every transition between phases goes through the
// engine so that timers, notifications, and persistence stay consistent.
type Phase string

const (
	Idle      Phase = "idle"
	Setup     Phase = "setup"
	Active    Phase = "active"
	Complete  Phase = "complete"
	Abandoned Phase = "abandoned"
	Break     Phase = "break"
)

// SessionConfig holds the parameters chosen during setup. It is mutable
// only while the engine is in setup and is copied into the active session
// when the session starts.
type SessionConfig struct {
	DurationMinutes int
	DeepFocus       bool
}

// ActiveSession is a focus session that is currently running.
//
// The remaining time is always recomputed from the start timestamp and the
// wall clock rather than decremented, so a process that is suspended or a
// ticker that skips beats resumes with the correct value on the next tick.
type ActiveSession struct {
	StartedAt time.Time
	Config    SessionConfig
}

// TotalSeconds reports the planned length of the session.
func (s *ActiveSession) TotalSeconds() int {
	return s.Config.DurationMinutes * 60
}

// Remaining reports the number of whole seconds left before the session
// ends naturally. It never returns a negative value.
func (s *ActiveSession) Remaining(now time.Time) int {
	elapsed := int(now.Sub(s.StartedAt).Seconds())

	remaining := s.TotalSeconds() - elapsed
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Done reports whether the session has run its full planned length.
func (s *ActiveSession) Done(now time.Time) bool {
	return s.Remaining(now) == 0
}

// CompletedSession summarises a session that ended naturally. It backs the
// completion screen until the user leaves it.
type CompletedSession struct {
	DurationSeconds int
	CoinsEarned     int
	TotalTimeToday  time.Duration
}

// BreakSession is a rest timer between focus sessions. Breaks carry no
// reward and are not persisted, so a plain decrementing counter is enough.
type BreakSession struct {
	DurationSeconds  int
	RemainingSeconds int
}

// Reward computes the coins earned for completing a session of the given
// length. The result is floored, with a minimum of one coin so that any
// completed session pays out.
func Reward(durationMinutes int, ratePerMinute float64) int {
	coins := int(math.Floor(float64(durationMinutes) * ratePerMinute))
	if coins < 1 {
		return 1
	}

	return coins
}
