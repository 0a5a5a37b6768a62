// Package engine drives the focus-session lifecycle. It owns the phase
// state machine, the wall-clock countdown, the grace-period timer, and the
// heartbeat publisher, and it reconciles the two independent completion
// triggers (its own countdown and the game view's natural-end signal) into
// exactly one recorded outcome.
//
// The engine is the source of truth for local session state. Persistence,
// notifications, and group coordination mirror it: their calls are issued
// in the background and their failures are logged, never propagated back
// into a transition.
package engine

import (
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/perchapp/perch/config"
	"github.com/perchapp/perch/internal/apperr"
	"github.com/perchapp/perch/internal/models"
	"github.com/perchapp/perch/store"
)

var (
	errSessionInProgress = &apperr.Error{
		Message: "a session is already in progress",
	}

	errNotInSetup = &apperr.Error{
		Message: "session settings can only be changed during setup",
	}

	errNoActiveSession = &apperr.Error{
		Message: "there is no active session",
	}

	errNotCompleted = &apperr.Error{
		Message: "a break can only follow a completed session",
	}

	errNotOnBreak = &apperr.Error{
		Message: "there is no break in progress",
	}

	errNotAbandoned = &apperr.Error{
		Message: "there is no abandoned session to continue from",
	}

	errNothingToDismiss = &apperr.Error{
		Message: "there is no finished session to dismiss",
	}

	errInvalidDuration = &apperr.Error{
		Message: "session duration must be a positive number of minutes, got: %d",
	}
)

// Notifier schedules and cancels local alerts for a session.
type Notifier interface {
	ScheduleCompletion(after time.Duration) int
	ScheduleReminder(after time.Duration) int
	CancelAll()
}

// GameView is the visual surface for a running session. The engine starts
// and stops it around transitions; the view reports a natural end back
// through HandleNaturalEnd.
type GameView interface {
	Start(sess *ActiveSession)
	End()
	CancelSetup()
	StartBreakView(brk *BreakSession)
	EndBreakView()
}

// GroupGateway reports a failed session to the other members of a study
// group.
type GroupGateway interface {
	FailGroup(groupID string)
}

// Engine is the focus-session state machine.
//
// All mutation goes through its methods; collaborators never touch the
// state directly, they only report events (ticks, lifecycle changes, the
// game view's natural end) that the engine interprets. Methods are safe
// for concurrent use.
type Engine struct {
	db       store.DB
	notifier Notifier
	gameView GameView
	group    GroupGateway
	dispatch *dispatcher

	Opts *config.Config

	// now is the engine's clock. Tests substitute a controlled one.
	now func() time.Time

	mu                sync.Mutex
	phase             Phase
	location          string
	draft             SessionConfig
	active            *ActiveSession
	completed         *CompletedSession
	breakSess         *BreakSession
	handle            string
	totalToday        time.Duration
	breakDraftMinutes int
	autoCompleted     bool
	abandoning        bool
	abandonPrompt     bool
	breakSetup        bool
	graceTimer        *time.Timer
	countdownDone     chan struct{}
	heartbeatDone     chan struct{}
	breakDone         chan struct{}
}

// New creates a session engine backed by dbClient and configured by cfg.
// Collaborators are attached afterwards with the Set methods; each one is
// optional and a missing one is skipped.
func New(dbClient store.DB, cfg *config.Config) *Engine {
	return &Engine{
		db:       dbClient,
		Opts:     cfg,
		dispatch: newDispatcher(),
		now:      time.Now,
		phase:    Idle,
		location: cfg.Location,
		draft: SessionConfig{
			DurationMinutes: cfg.SessionMinutes,
			DeepFocus:       cfg.DeepFocus,
		},
	}
}

// SetNotifier attaches the alert scheduler.
func (e *Engine) SetNotifier(n Notifier) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.notifier = n
}

// SetGameView attaches the visual session surface.
func (e *Engine) SetGameView(gv GameView) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gameView = gv
}

// SetGroupGateway attaches the study-group coordinator.
func (e *Engine) SetGroupGateway(g GroupGateway) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.group = g
}

// Close stops the engine's background work and drains queued operations.
// An active session is not finalised: its record keeps the running status,
// and the missing heartbeats mark it stale to outside observers.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.stopCountdownLocked()
	e.stopHeartbeatLocked()
	e.stopBreakTickerLocked()
	e.cancelGraceLocked()
	e.mu.Unlock()

	e.dispatch.close()

	return nil
}

// SeatAt moves the engine from idle to setup for a session at the given
// location. The setup draft starts from the configured defaults.
func (e *Engine) SeatAt(location string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Idle {
		return errSessionInProgress
	}

	if location != "" {
		e.location = location
	}

	e.draft = SessionConfig{
		DurationMinutes: e.Opts.SessionMinutes,
		DeepFocus:       e.Opts.DeepFocus,
	}
	e.phase = Setup

	return nil
}

// ConfigPatch is a partial update to the setup draft. Nil fields are left
// unchanged.
type ConfigPatch struct {
	DurationMinutes *int
	DeepFocus       *bool
}

// UpdateConfig changes part of the setup draft. The draft is only mutable
// during setup; once a session starts it runs on an immutable snapshot.
func (e *Engine) UpdateConfig(patch ConfigPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Setup {
		return errNotInSetup
	}

	if patch.DurationMinutes != nil {
		e.draft.DurationMinutes = *patch.DurationMinutes
	}

	if patch.DeepFocus != nil {
		e.draft.DeepFocus = *patch.DeepFocus
	}

	return nil
}

// CancelSetup abandons setup and returns to idle without starting a
// session.
func (e *Engine) CancelSetup() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Setup {
		return errNotInSetup
	}

	e.phase = Idle

	if e.gameView != nil {
		gv := e.gameView

		e.dispatch.enqueue("cancel game view setup", func() error {
			gv.CancelSetup()
			return nil
		})
	}

	return nil
}

// StartSession starts the focus session described by the setup draft.
//
// Session-scoped resources come up in a fixed order: countdown, game view,
// completion alert, persistence record, heartbeat publisher. They are torn
// down together at whichever terminal transition is reached first.
func (e *Engine) StartSession() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Setup {
		return errNotInSetup
	}

	if e.draft.DurationMinutes <= 0 {
		return errInvalidDuration.Fmt(e.draft.DurationMinutes)
	}

	startedAt := e.now()

	e.active = &ActiveSession{
		StartedAt: startedAt,
		Config:    e.draft,
	}
	e.phase = Active
	e.autoCompleted = false
	e.abandoning = false
	e.abandonPrompt = false

	e.startCountdownLocked()

	if e.gameView != nil {
		gv := e.gameView
		sess := *e.active

		e.dispatch.enqueue("start game view", func() error {
			gv.Start(&sess)
			return nil
		})
	}

	if e.notifier != nil {
		n := e.notifier
		total := time.Duration(e.active.TotalSeconds()) * time.Second

		e.dispatch.enqueue("schedule completion alert", func() error {
			n.ScheduleCompletion(total)
			return nil
		})
	}

	e.createRecordLocked(startedAt)
	e.startHeartbeatLocked()
	e.writeStatusLocked()

	slog.Info(
		"session started",
		slog.String("location", e.location),
		slog.Int("duration_minutes", e.draft.DurationMinutes),
		slog.Bool("deep_focus", e.draft.DeepFocus),
	)

	return nil
}

// RequestAbandon surfaces the abandon confirmation. The countdown keeps
// running until the user confirms.
func (e *Engine) RequestAbandon() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Active {
		return errNoActiveSession
	}

	e.abandonPrompt = true

	return nil
}

// CancelAbandonConfirmation dismisses the abandon confirmation and keeps
// the session running.
func (e *Engine) CancelAbandonConfirmation() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Active {
		return errNoActiveSession
	}

	e.abandonPrompt = false

	return nil
}

// ConfirmAbandon gives up the active session. Calling it again once the
// session has already ended is a no-op, so a double-tap on the confirm
// control cannot record the abandonment twice.
func (e *Engine) ConfirmAbandon() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Active || e.active == nil {
		return nil
	}

	slog.Info("session abandoned by user")

	e.abandonLocked(models.StatusAbandoned, true)

	return nil
}

// GoHome dismisses the completion or abandoned screen and returns to idle.
func (e *Engine) GoHome() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.phase {
	case Complete:
		e.completed = nil
		e.breakSetup = false
	case Abandoned:
		e.abandoning = false
	default:
		return errNothingToDismiss
	}

	e.phase = Idle

	return nil
}

// ContinueAfterAbandon returns to setup so the user can start over without
// standing up. The previous location and draft are kept.
func (e *Engine) ContinueAfterAbandon() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Abandoned {
		return errNotAbandoned
	}

	e.abandoning = false
	e.phase = Setup

	return nil
}

// ShowBreakSetup surfaces the break length picker on the completion
// screen, seeded with the configured break length.
func (e *Engine) ShowBreakSetup() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Complete {
		return errNotCompleted
	}

	e.breakSetup = true
	e.breakDraftMinutes = e.Opts.BreakMinutes

	return nil
}

// SetBreakDuration changes the pending break length.
func (e *Engine) SetBreakDuration(minutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Complete {
		return errNotCompleted
	}

	if minutes <= 0 {
		return errInvalidDuration.Fmt(minutes)
	}

	e.breakDraftMinutes = minutes

	return nil
}

// StartBreak begins a rest timer after a completed session.
func (e *Engine) StartBreak() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Complete {
		return errNotCompleted
	}

	minutes := e.breakDraftMinutes
	if minutes <= 0 {
		minutes = e.Opts.BreakMinutes
	}

	secs := minutes * 60

	e.breakSess = &BreakSession{
		DurationSeconds:  secs,
		RemainingSeconds: secs,
	}
	e.completed = nil
	e.breakSetup = false
	e.phase = Break

	e.startBreakTickerLocked()

	if e.gameView != nil {
		gv := e.gameView
		brk := *e.breakSess

		e.dispatch.enqueue("start break view", func() error {
			gv.StartBreakView(&brk)
			return nil
		})
	}

	e.writeStatusLocked()

	return nil
}

// EndBreak ends the break early and returns to setup.
func (e *Engine) EndBreak() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Break {
		return errNotOnBreak
	}

	e.endBreakLocked()

	return nil
}

// HandleNaturalEnd records a session end reported by the game view, which
// runs its own clock for visual purposes. The engine countdown and the
// view race to report completion; whichever lands first performs the full
// completion and the other is absorbed here. Non-positive durations or
// coin counts are replaced with the engine's own figures.
func (e *Engine) HandleNaturalEnd(durationSeconds, coinsEarned int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.abandoning {
		// The view's end signal lost a race against an abandon.
		return
	}

	if e.autoCompleted {
		e.autoCompleted = false
		return
	}

	if e.phase != Active || e.active == nil {
		return
	}

	e.completeLocked(durationSeconds, coinsEarned, false)
}

// HandleGroupFailure ends the active session because another member of the
// study group failed theirs. The failure is recorded locally but not
// reported back to the group, where it originated.
func (e *Engine) HandleGroupFailure() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Active || e.active == nil {
		return
	}

	slog.Info("session failed by group", slog.String("group_id", e.Opts.GroupID))

	e.abandonLocked(models.StatusFailed, false)
}

// HandleScreenLock is called when the device screen locks. Studying with
// the screen off is allowed, so the countdown keeps running untouched.
func (e *Engine) HandleScreenLock() {
	slog.Debug("screen locked, session unaffected")
}

// HandleAppSwitch is called when the user deliberately leaves the app. In
// deep focus the session fails immediately. Otherwise a reminder goes out
// and a grace timer starts; if the user does not come back before it
// fires, the session fails.
func (e *Engine) HandleAppSwitch() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Active || e.active == nil {
		return
	}

	if e.active.Config.DeepFocus {
		slog.Info("app switch during deep focus, failing session")

		e.abandonLocked(models.StatusFailed, true)

		return
	}

	if e.notifier != nil {
		n := e.notifier

		e.dispatch.enqueue("schedule return reminder", func() error {
			n.ScheduleReminder(0)
			return nil
		})
	}

	e.armGraceLocked()
}

// HandleForeground is called when the user returns to the app after
// awayFor spent elsewhere. Returning inside the grace period keeps the
// session alive: the grace timer is cancelled, stale alerts are cleared,
// and the completion alert is rescheduled for the remaining time.
func (e *Engine) HandleForeground(awayFor time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Active || e.active == nil {
		return
	}

	if e.graceTimer == nil {
		// Back from a brief lock; nothing was disturbed.
		return
	}

	e.cancelGraceLocked()

	slog.Debug("returned within grace period", slog.Duration("away_for", awayFor))

	if e.notifier != nil {
		n := e.notifier
		remaining := time.Duration(e.active.Remaining(e.now())) * time.Second

		e.dispatch.enqueue("reschedule completion alert", func() error {
			n.CancelAll()
			n.ScheduleCompletion(remaining)

			return nil
		})
	}
}

// completeLocked finishes the active session in the complete phase. The
// caller has already resolved the trigger race; exactly one trigger
// reaches this per session.
func (e *Engine) completeLocked(durationSeconds, coinsEarned int, fromCountdown bool) {
	sess := e.active

	if durationSeconds <= 0 {
		durationSeconds = sess.TotalSeconds()
	}

	if coinsEarned <= 0 {
		coinsEarned = Reward(sess.Config.DurationMinutes, e.Opts.CoinRate)
	}

	actual := time.Duration(durationSeconds) * time.Second

	e.completed = &CompletedSession{
		DurationSeconds: durationSeconds,
		CoinsEarned:     coinsEarned,
		TotalTimeToday:  e.totalToday + actual,
	}
	e.phase = Complete
	e.active = nil
	e.autoCompleted = fromCountdown
	e.abandonPrompt = false

	e.teardownLocked(func(id string) error {
		return e.db.CompleteSession(id, actual, coinsEarned)
	})

	if e.gameView != nil {
		gv := e.gameView

		e.dispatch.enqueue("end game view", func() error {
			gv.End()
			return nil
		})
	}

	if cmd := e.Opts.SessionCmd; cmd != "" {
		e.dispatch.enqueue("run session_cmd", func() error {
			return runSessionCmd(cmd)
		})
	}

	e.writeStatusLocked()

	slog.Info(
		"session completed",
		slog.Int("duration_seconds", durationSeconds),
		slog.Int("coins_earned", coinsEarned),
		slog.Bool("from_countdown", fromCountdown),
	)
}

// abandonLocked ends the active session in the abandoned phase. status
// picks the persistence write: StatusAbandoned for a user choice,
// StatusFailed for a grace expiry, deep-focus breach, or group failure.
//
// propagate controls whether the failure is reported to the study group.
// A failure received FROM the group must pass false here, or two members
// failing together would bounce reports between each other forever.
func (e *Engine) abandonLocked(status models.SessionStatus, propagate bool) {
	e.phase = Abandoned
	e.active = nil
	e.abandoning = true
	e.abandonPrompt = false

	write := e.db.AbandonSession
	if status == models.StatusFailed {
		write = e.db.FailSession
	}

	e.teardownLocked(func(id string) error {
		return write(id)
	})

	if propagate && e.Opts.GroupID != "" && e.group != nil {
		g := e.group
		groupID := e.Opts.GroupID

		e.dispatch.enqueue("report group failure", func() error {
			g.FailGroup(groupID)
			return nil
		})
	}

	if e.gameView != nil {
		gv := e.gameView

		e.dispatch.enqueue("end game view", func() error {
			gv.End()
			return nil
		})
	}

	e.writeStatusLocked()
}

// teardownLocked releases everything scoped to the ending session in a
// fixed order: countdown, heartbeat, grace timer, scheduled notifications,
// then the single terminal persistence write. The write runs on the
// dispatcher after the notification cancellation and clears the
// persistence handle once it lands, so nothing can fire against a session
// the store has already closed.
func (e *Engine) teardownLocked(write func(id string) error) {
	e.stopCountdownLocked()
	e.stopHeartbeatLocked()
	e.cancelGraceLocked()

	if e.notifier != nil {
		n := e.notifier

		e.dispatch.enqueue("cancel notifications", func() error {
			n.CancelAll()
			return nil
		})
	}

	e.dispatch.enqueue("persist terminal state", func() error {
		e.mu.Lock()
		id := e.handle
		e.handle = ""
		e.mu.Unlock()

		if id == "" {
			return nil
		}

		return write(id)
	})
}

// createRecordLocked mirrors the new session to storage and loads the
// running daily total. Both run in the background; the session identifier
// lands in e.handle before any later write needs it because the queue is
// ordered.
func (e *Engine) createRecordLocked(startedAt time.Time) {
	rec := &models.Session{
		UserID:    e.Opts.UserID,
		GroupID:   e.Opts.GroupID,
		Location:  e.location,
		StartedAt: startedAt,
		Status:    models.StatusRunning,
		Planned:   time.Duration(e.active.TotalSeconds()) * time.Second,
		Remaining: e.active.TotalSeconds(),
		DeepFocus: e.active.Config.DeepFocus,
	}

	e.dispatch.enqueue("create session record", func() error {
		id, err := e.db.CreateSession(rec)
		if err != nil {
			return err
		}

		e.mu.Lock()
		e.handle = id
		e.mu.Unlock()

		return nil
	})

	e.dispatch.enqueue("load daily total", func() error {
		total, err := e.db.TotalToday(startedAt)
		if err != nil {
			return err
		}

		e.mu.Lock()
		e.totalToday = total
		e.mu.Unlock()

		return nil
	})
}

func (e *Engine) startCountdownLocked() {
	done := make(chan struct{})
	e.countdownDone = done

	go e.runCountdown(done)
}

func (e *Engine) stopCountdownLocked() {
	if e.countdownDone != nil {
		close(e.countdownDone)
		e.countdownDone = nil
	}
}

func (e *Engine) runCountdown(done chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// tick re-derives the remaining time from the wall clock and completes the
// session once it reaches zero. A process that was suspended catches up
// here: however many ticks were missed, the next one lands on the correct
// remaining value.
func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Active || e.active == nil {
		return
	}

	if e.active.Done(e.now()) {
		e.completeLocked(0, 0, true)
	}
}

func (e *Engine) startHeartbeatLocked() {
	done := make(chan struct{})
	e.heartbeatDone = done

	go e.runHeartbeat(done)
}

func (e *Engine) stopHeartbeatLocked() {
	if e.heartbeatDone != nil {
		close(e.heartbeatDone)
		e.heartbeatDone = nil
	}
}

func (e *Engine) runHeartbeat(done chan struct{}) {
	ticker := time.NewTicker(e.Opts.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			e.heartbeat()
		}
	}
}

// heartbeat pushes the current remaining time to storage and refreshes the
// status file. Presence is best-effort: a failed push is logged and the
// session carries on.
func (e *Engine) heartbeat() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Active || e.active == nil {
		return
	}

	remaining := e.active.Remaining(e.now())

	e.dispatch.enqueue("push heartbeat", func() error {
		e.mu.Lock()
		id := e.handle
		e.mu.Unlock()

		if id == "" {
			return nil
		}

		return e.db.Heartbeat(id, remaining)
	})

	e.writeStatusLocked()
}

func (e *Engine) startBreakTickerLocked() {
	done := make(chan struct{})
	e.breakDone = done

	go e.runBreak(done)
}

func (e *Engine) stopBreakTickerLocked() {
	if e.breakDone != nil {
		close(e.breakDone)
		e.breakDone = nil
	}
}

func (e *Engine) runBreak(done chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if e.breakTick() {
				return
			}
		}
	}
}

// breakTick counts the break down one second and reports whether it is
// over. Breaks carry no reward or reconciliation, so a plain decrement is
// enough.
func (e *Engine) breakTick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Break || e.breakSess == nil {
		return true
	}

	e.breakSess.RemainingSeconds--
	if e.breakSess.RemainingSeconds > 0 {
		return false
	}

	e.endBreakLocked()

	return true
}

// endBreakLocked moves from break to setup for the next session.
func (e *Engine) endBreakLocked() {
	e.stopBreakTickerLocked()

	e.breakSess = nil
	e.phase = Setup

	if e.gameView != nil {
		gv := e.gameView

		e.dispatch.enqueue("end break view", func() error {
			gv.EndBreakView()
			return nil
		})
	}

	e.writeStatusLocked()
}

func (e *Engine) armGraceLocked() {
	e.cancelGraceLocked()

	e.graceTimer = time.AfterFunc(e.Opts.GracePeriod, e.graceExpired)
}

func (e *Engine) cancelGraceLocked() {
	if e.graceTimer != nil {
		e.graceTimer.Stop()
		e.graceTimer = nil
	}
}

// graceExpired fails the session after the user stayed away through the
// whole grace period. A return that raced the timer wins: it clears
// graceTimer under the lock before this body runs, and the nil check
// turns the expiry into a no-op.
func (e *Engine) graceExpired() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != Active || e.graceTimer == nil {
		return
	}

	slog.Info(
		"grace period expired, failing session",
		slog.Duration("grace_period", e.Opts.GracePeriod),
	)

	e.abandonLocked(models.StatusFailed, true)
}

func (e *Engine) statusLocked() Status {
	s := Status{
		Location: e.location,
		Phase:    e.phase,
		GroupID:  e.Opts.GroupID,
	}

	if e.active != nil {
		total := time.Duration(e.active.TotalSeconds()) * time.Second

		s.StartedAt = e.active.StartedAt
		s.EndTime = e.active.StartedAt.Add(total)
		s.RemainingSeconds = e.active.Remaining(e.now())
		s.DeepFocus = e.active.Config.DeepFocus
	}

	if e.breakSess != nil {
		remaining := time.Duration(e.breakSess.RemainingSeconds) * time.Second

		s.EndTime = e.now().Add(remaining)
		s.RemainingSeconds = e.breakSess.RemainingSeconds
	}

	return s
}

func (e *Engine) writeStatusLocked() {
	s := e.statusLocked()

	e.dispatch.enqueue("write status file", func() error {
		return e.writeStatusFile(s)
	})
}

// runSessionCmd executes the user's post-session command.
func runSessionCmd(sessionCmd string) error {
	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}
