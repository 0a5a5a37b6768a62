package engine

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchapp/perch/config"
	"github.com/perchapp/perch/internal/models"
)

func TestMain(m *testing.M) {
	os.Setenv("PERCH_ENV", "testing")

	config.InitializePaths()

	os.Exit(m.Run())
}

// fakeClock is a controllable wall clock for the engine.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

// dbRecorder counts persistence calls.
type dbRecorder struct {
	mu            sync.Mutex
	createErr     error
	lastCreated   *models.Session
	creates       int
	completes     int
	abandons      int
	fails         int
	heartbeats    int
	lastRemaining int
	lastActual    time.Duration
	lastCoins     int
	dailyTotal    time.Duration
}

func (d *dbRecorder) CreateSession(sess *models.Session) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.createErr != nil {
		return "", d.createErr
	}

	d.creates++
	d.lastCreated = sess

	return "sess_1", nil
}

func (d *dbRecorder) Heartbeat(_ string, remaining int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.heartbeats++
	d.lastRemaining = remaining

	return nil
}

func (d *dbRecorder) CompleteSession(_ string, actual time.Duration, coins int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.completes++
	d.lastActual = actual
	d.lastCoins = coins

	return nil
}

func (d *dbRecorder) AbandonSession(_ string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.abandons++

	return nil
}

func (d *dbRecorder) FailSession(_ string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fails++

	return nil
}

func (d *dbRecorder) TotalToday(_ time.Time) (time.Duration, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.dailyTotal, nil
}

func (d *dbRecorder) GetSessions(
	_, _ time.Time,
	_ []string,
) ([]*models.Session, error) {
	return nil, nil
}

func (d *dbRecorder) DeleteSessions(_ []*models.Session) error {
	return nil
}

func (d *dbRecorder) Close() error {
	return nil
}

func (d *dbRecorder) counts() (creates, completes, abandons, fails int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.creates, d.completes, d.abandons, d.fails
}

// notifierRecorder counts alert scheduling.
type notifierRecorder struct {
	mu          sync.Mutex
	completions []time.Duration
	reminders   []time.Duration
	cancels     int
	nextID      int
}

func (n *notifierRecorder) ScheduleCompletion(after time.Duration) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.completions = append(n.completions, after)
	n.nextID++

	return n.nextID
}

func (n *notifierRecorder) ScheduleReminder(after time.Duration) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.reminders = append(n.reminders, after)
	n.nextID++

	return n.nextID
}

func (n *notifierRecorder) CancelAll() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cancels++
}

func (n *notifierRecorder) lastCompletion() (time.Duration, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.completions) == 0 {
		return 0, false
	}

	return n.completions[len(n.completions)-1], true
}

func (n *notifierRecorder) reminderCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.reminders)
}

// viewRecorder counts game-view calls.
type viewRecorder struct {
	mu           sync.Mutex
	starts       int
	ends         int
	setupCancels int
	breakStarts  int
	breakEnds    int
}

func (v *viewRecorder) Start(_ *ActiveSession) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.starts++
}

func (v *viewRecorder) End() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.ends++
}

func (v *viewRecorder) CancelSetup() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.setupCancels++
}

func (v *viewRecorder) StartBreakView(_ *BreakSession) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.breakStarts++
}

func (v *viewRecorder) EndBreakView() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.breakEnds++
}

// groupRecorder captures group failure reports.
type groupRecorder struct {
	mu     sync.Mutex
	failed []string
}

func (g *groupRecorder) FailGroup(groupID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.failed = append(g.failed, groupID)
}

func (g *groupRecorder) reported() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]string(nil), g.failed...)
}

func testConfig() *config.Config {
	return &config.Config{
		UserID:            "u_test",
		SessionMinutes:    25,
		BreakMinutes:      5,
		CoinRate:          0.4,
		InactiveThreshold: 200 * time.Millisecond,
		GracePeriod:       15 * time.Second,
		HeartbeatInterval: 30 * time.Second,
	}
}

type fixture struct {
	eng   *Engine
	db    *dbRecorder
	notif *notifierRecorder
	view  *viewRecorder
	group *groupRecorder
	clock *fakeClock
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()

	if cfg == nil {
		cfg = testConfig()
	}

	f := &fixture{
		db:    &dbRecorder{},
		notif: &notifierRecorder{},
		view:  &viewRecorder{},
		group: &groupRecorder{},
		clock: newFakeClock(),
	}

	f.eng = New(f.db, cfg)
	f.eng.now = f.clock.Now
	f.eng.SetNotifier(f.notif)
	f.eng.SetGameView(f.view)
	f.eng.SetGroupGateway(f.group)

	t.Cleanup(func() {
		_ = f.eng.Close()
	})

	return f
}

func (f *fixture) start(t *testing.T, minutes int, deepFocus bool) {
	t.Helper()

	require.NoError(t, f.eng.SeatAt("library"))
	require.NoError(t, f.eng.UpdateConfig(ConfigPatch{
		DurationMinutes: &minutes,
		DeepFocus:       &deepFocus,
	}))
	require.NoError(t, f.eng.StartSession())

	f.eng.dispatch.flush()
}

func TestReward(t *testing.T) {
	cases := []struct {
		name    string
		minutes int
		rate    float64
		want    int
	}{
		{"standard session", 25, 0.4, 10},
		{"floors the product", 3, 0.5, 1},
		{"raw product below one coin", 1, 0.1, 1},
		{"raw product of zero", 2, 0.4, 1},
		{"long session", 90, 0.4, 36},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Reward(tc.minutes, tc.rate))
		})
	}
}

func TestRemainingIsRecomputedFromWallClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sess := &ActiveSession{
		StartedAt: start,
		Config:    SessionConfig{DurationMinutes: 25},
	}

	cases := []struct {
		name string
		at   time.Time
		want int
	}{
		{"at start", start, 1500},
		{"after one second", start.Add(time.Second), 1499},
		{"sub-second elapsed is floored", start.Add(1500 * time.Millisecond), 1499},
		{"after ten minutes", start.Add(10 * time.Minute), 900},
		{"at the planned end", start.Add(25 * time.Minute), 0},
		{"past the planned end", start.Add(26 * time.Minute), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sess.Remaining(tc.at))
		})
	}
}

func TestHappyPath(t *testing.T) {
	f := newFixture(t, nil)

	f.start(t, 25, false)

	require.Equal(t, Active, f.eng.Phase())
	assert.Equal(t, 1500, f.eng.RemainingSeconds())
	assert.Equal(t, "library", f.eng.Location())

	// No intermediate ticks: the first tick after the planned end must
	// complete the session regardless of how many were missed.
	f.clock.Advance(1500 * time.Second)
	f.eng.tick()
	f.eng.dispatch.flush()

	assert.Equal(t, Complete, f.eng.Phase())

	done := f.eng.CompletedSession()
	require.NotNil(t, done)
	assert.Equal(t, 1500, done.DurationSeconds)
	assert.Equal(t, 10, done.CoinsEarned)
	assert.Equal(t, 25*time.Minute, done.TotalTimeToday)

	creates, completes, abandons, fails := f.db.counts()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 1, completes)
	assert.Zero(t, abandons)
	assert.Zero(t, fails)
	assert.Equal(t, 25*time.Minute, f.db.lastActual)
	assert.Equal(t, 10, f.db.lastCoins)

	f.view.mu.Lock()
	assert.Equal(t, 1, f.view.starts)
	assert.Equal(t, 1, f.view.ends)
	f.view.mu.Unlock()
}

func TestCompletionHappensAtMostOnce(t *testing.T) {
	t.Run("countdown wins, view signal absorbed", func(t *testing.T) {
		f := newFixture(t, nil)
		f.start(t, 25, false)

		f.clock.Advance(25 * time.Minute)
		f.eng.tick()

		f.eng.HandleNaturalEnd(1500, 10)
		f.eng.dispatch.flush()

		_, completes, _, _ := f.db.counts()
		assert.Equal(t, 1, completes)
		assert.Equal(t, Complete, f.eng.Phase())

		f.eng.mu.Lock()
		assert.False(t, f.eng.autoCompleted, "absorbing the second trigger resets the flag")
		f.eng.mu.Unlock()
	})

	t.Run("view signal wins, countdown absorbed", func(t *testing.T) {
		f := newFixture(t, nil)
		f.start(t, 25, false)

		f.clock.Advance(100 * time.Second)
		f.eng.HandleNaturalEnd(100, 3)

		f.clock.Advance(1400 * time.Second)
		f.eng.tick()
		f.eng.dispatch.flush()

		_, completes, _, _ := f.db.counts()
		assert.Equal(t, 1, completes)
		assert.Equal(t, Complete, f.eng.Phase())

		done := f.eng.CompletedSession()
		require.NotNil(t, done)
		assert.Equal(t, 100, done.DurationSeconds)
		assert.Equal(t, 3, done.CoinsEarned)
	})

	t.Run("duplicate view signals", func(t *testing.T) {
		f := newFixture(t, nil)
		f.start(t, 25, false)

		f.clock.Advance(25 * time.Minute)
		f.eng.HandleNaturalEnd(1500, 10)
		f.eng.HandleNaturalEnd(1500, 10)
		f.eng.dispatch.flush()

		_, completes, _, _ := f.db.counts()
		assert.Equal(t, 1, completes)
	})

	t.Run("view signal with no active session", func(t *testing.T) {
		f := newFixture(t, nil)

		f.eng.HandleNaturalEnd(1500, 10)
		f.eng.dispatch.flush()

		assert.Equal(t, Idle, f.eng.Phase())

		_, completes, _, _ := f.db.counts()
		assert.Zero(t, completes)
	})
}

func TestNaturalEndWithoutFiguresFallsBackToEngineValues(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 25, false)

	f.clock.Advance(25 * time.Minute)
	f.eng.HandleNaturalEnd(0, 0)
	f.eng.dispatch.flush()

	done := f.eng.CompletedSession()
	require.NotNil(t, done)
	assert.Equal(t, 1500, done.DurationSeconds)
	assert.Equal(t, 10, done.CoinsEarned)
}

func TestAbandonMidSession(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 10, false)

	f.clock.Advance(3 * time.Minute)

	require.NoError(t, f.eng.RequestAbandon())
	assert.True(t, f.eng.AbandonConfirmationShowing())
	assert.Equal(t, Active, f.eng.Phase(), "session keeps running until confirmed")

	require.NoError(t, f.eng.ConfirmAbandon())
	f.eng.dispatch.flush()

	assert.Equal(t, Abandoned, f.eng.Phase())
	assert.Nil(t, f.eng.ActiveSession())
	assert.Nil(t, f.eng.CompletedSession(), "no reward for an abandoned session")

	_, completes, abandons, fails := f.db.counts()
	assert.Zero(t, completes)
	assert.Equal(t, 1, abandons)
	assert.Zero(t, fails)
}

func TestConfirmAbandonTwiceWritesOnce(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 10, false)

	require.NoError(t, f.eng.ConfirmAbandon())
	require.NoError(t, f.eng.ConfirmAbandon())
	f.eng.dispatch.flush()

	_, _, abandons, _ := f.db.counts()
	assert.Equal(t, 1, abandons)
}

func TestAbandonSuppressesStrayViewSignal(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 10, false)

	require.NoError(t, f.eng.ConfirmAbandon())

	// The view's natural-end signal arrives after the abandon.
	f.eng.HandleNaturalEnd(600, 4)
	f.eng.dispatch.flush()

	assert.Equal(t, Abandoned, f.eng.Phase())
	assert.Nil(t, f.eng.CompletedSession())

	_, completes, abandons, _ := f.db.counts()
	assert.Zero(t, completes)
	assert.Equal(t, 1, abandons)
}

func TestGracePeriodRoundTrip(t *testing.T) {
	t.Run("return before expiry keeps the session", func(t *testing.T) {
		cfg := testConfig()
		cfg.GracePeriod = 80 * time.Millisecond

		f := newFixture(t, cfg)
		f.start(t, 25, false)

		f.eng.HandleAppSwitch()
		f.eng.dispatch.flush()

		assert.Equal(t, 1, f.notif.reminderCount())

		time.Sleep(20 * time.Millisecond)
		f.eng.HandleForeground(20 * time.Millisecond)

		// Wait past the original expiry to prove the timer is gone.
		time.Sleep(120 * time.Millisecond)
		f.eng.dispatch.flush()

		assert.Equal(t, Active, f.eng.Phase())

		_, _, abandons, fails := f.db.counts()
		assert.Zero(t, abandons)
		assert.Zero(t, fails)
	})

	t.Run("no return fails the session", func(t *testing.T) {
		cfg := testConfig()
		cfg.GracePeriod = 30 * time.Millisecond

		f := newFixture(t, cfg)
		f.start(t, 25, false)

		f.eng.HandleAppSwitch()

		require.Eventually(t, func() bool {
			return f.eng.Phase() == Abandoned
		}, time.Second, 5*time.Millisecond)

		f.eng.dispatch.flush()

		_, _, abandons, fails := f.db.counts()
		assert.Zero(t, abandons, "a grace expiry is a failure, not a user abandon")
		assert.Equal(t, 1, fails)
	})
}

func TestForegroundReschedulesCompletionAlert(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 25, false)

	f.clock.Advance(5 * time.Minute)
	f.eng.HandleAppSwitch()

	f.clock.Advance(10 * time.Second)
	f.eng.HandleForeground(10 * time.Second)
	f.eng.dispatch.flush()

	last, ok := f.notif.lastCompletion()
	require.True(t, ok)
	assert.Equal(t, 20*time.Minute-10*time.Second, last)

	f.notif.mu.Lock()
	cancels := f.notif.cancels
	f.notif.mu.Unlock()
	assert.Equal(t, 1, cancels)
}

func TestForegroundAfterLockIsUndisturbed(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 25, false)

	// A brief lock never armed the grace timer, so the return must not
	// touch the scheduled completion alert.
	f.eng.HandleScreenLock()
	f.eng.HandleForeground(50 * time.Millisecond)
	f.eng.dispatch.flush()

	assert.Equal(t, Active, f.eng.Phase())

	f.notif.mu.Lock()
	completions := len(f.notif.completions)
	cancels := f.notif.cancels
	f.notif.mu.Unlock()

	assert.Equal(t, 1, completions, "only the alert scheduled at start")
	assert.Zero(t, cancels)
}

func TestDeepFocusFailsImmediatelyOnAppSwitch(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 25, true)

	f.eng.HandleAppSwitch()
	f.eng.dispatch.flush()

	assert.Equal(t, Abandoned, f.eng.Phase())

	_, _, abandons, fails := f.db.counts()
	assert.Zero(t, abandons)
	assert.Equal(t, 1, fails)
	assert.Zero(t, f.notif.reminderCount(), "no reminder, the session is already gone")
}

func TestGroupFailurePropagation(t *testing.T) {
	t.Run("local abandon propagates", func(t *testing.T) {
		cfg := testConfig()
		cfg.GroupID = "g_1"

		f := newFixture(t, cfg)
		f.start(t, 25, false)

		require.NoError(t, f.eng.ConfirmAbandon())
		f.eng.dispatch.flush()

		assert.Equal(t, []string{"g_1"}, f.group.reported())
	})

	t.Run("externally observed failure does not re-propagate", func(t *testing.T) {
		cfg := testConfig()
		cfg.GroupID = "g_1"

		f := newFixture(t, cfg)
		f.start(t, 25, false)

		f.eng.HandleGroupFailure()
		f.eng.dispatch.flush()

		assert.Equal(t, Abandoned, f.eng.Phase())
		assert.Empty(t, f.group.reported())

		_, _, abandons, fails := f.db.counts()
		assert.Zero(t, abandons)
		assert.Equal(t, 1, fails)
	})

	t.Run("solo session never reports", func(t *testing.T) {
		f := newFixture(t, nil)
		f.start(t, 25, false)

		require.NoError(t, f.eng.ConfirmAbandon())
		f.eng.dispatch.flush()

		assert.Empty(t, f.group.reported())
	})
}

func TestPhaseGuards(t *testing.T) {
	f := newFixture(t, nil)

	assert.ErrorIs(t, f.eng.StartSession(), errNotInSetup)
	assert.ErrorIs(t, f.eng.CancelSetup(), errNotInSetup)
	assert.ErrorIs(t, f.eng.RequestAbandon(), errNoActiveSession)
	assert.ErrorIs(t, f.eng.GoHome(), errNothingToDismiss)
	assert.ErrorIs(t, f.eng.EndBreak(), errNotOnBreak)
	assert.ErrorIs(t, f.eng.ContinueAfterAbandon(), errNotAbandoned)
	assert.ErrorIs(t, f.eng.ShowBreakSetup(), errNotCompleted)

	require.NoError(t, f.eng.SeatAt("library"))
	assert.ErrorIs(t, f.eng.SeatAt("cafe"), errSessionInProgress)

	zero := 0
	require.NoError(t, f.eng.UpdateConfig(ConfigPatch{DurationMinutes: &zero}))

	err := f.eng.StartSession()
	require.Error(t, err)
	assert.Equal(t, Setup, f.eng.Phase(), "invalid config keeps the engine in setup")
}

func TestCancelSetupNotifiesView(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.eng.SeatAt("library"))
	require.NoError(t, f.eng.CancelSetup())
	f.eng.dispatch.flush()

	assert.Equal(t, Idle, f.eng.Phase())

	f.view.mu.Lock()
	assert.Equal(t, 1, f.view.setupCancels)
	f.view.mu.Unlock()
}

func TestBreakFlow(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 25, false)

	f.clock.Advance(25 * time.Minute)
	f.eng.tick()
	f.eng.dispatch.flush()
	require.Equal(t, Complete, f.eng.Phase())

	require.NoError(t, f.eng.ShowBreakSetup())
	assert.True(t, f.eng.BreakSetupShowing())
	assert.Equal(t, 5, f.eng.BreakDraftMinutes())

	require.NoError(t, f.eng.SetBreakDuration(1))
	require.NoError(t, f.eng.StartBreak())
	f.eng.dispatch.flush()

	assert.Equal(t, Break, f.eng.Phase())
	assert.Nil(t, f.eng.CompletedSession(), "completion data is discarded")

	brk := f.eng.BreakSession()
	require.NotNil(t, brk)
	assert.Equal(t, 60, brk.DurationSeconds)
	assert.Equal(t, 60, brk.RemainingSeconds)

	f.view.mu.Lock()
	assert.Equal(t, 1, f.view.breakStarts)
	f.view.mu.Unlock()

	// Run the break down to its last second.
	f.eng.mu.Lock()
	f.eng.breakSess.RemainingSeconds = 1
	f.eng.mu.Unlock()

	f.eng.breakTick()
	f.eng.dispatch.flush()

	assert.Equal(t, Setup, f.eng.Phase())
	assert.Nil(t, f.eng.BreakSession())

	f.view.mu.Lock()
	assert.Equal(t, 1, f.view.breakEnds)
	f.view.mu.Unlock()
}

func TestEndBreakEarly(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 25, false)

	f.clock.Advance(25 * time.Minute)
	f.eng.tick()
	require.Equal(t, Complete, f.eng.Phase())

	require.NoError(t, f.eng.StartBreak())
	require.NoError(t, f.eng.EndBreak())
	f.eng.dispatch.flush()

	assert.Equal(t, Setup, f.eng.Phase())
}

func TestGoHome(t *testing.T) {
	t.Run("from complete", func(t *testing.T) {
		f := newFixture(t, nil)
		f.start(t, 25, false)

		f.clock.Advance(25 * time.Minute)
		f.eng.tick()
		require.Equal(t, Complete, f.eng.Phase())

		require.NoError(t, f.eng.GoHome())

		assert.Equal(t, Idle, f.eng.Phase())
		assert.Nil(t, f.eng.CompletedSession())
	})

	t.Run("from abandoned", func(t *testing.T) {
		f := newFixture(t, nil)
		f.start(t, 25, false)

		require.NoError(t, f.eng.ConfirmAbandon())
		require.NoError(t, f.eng.GoHome())

		assert.Equal(t, Idle, f.eng.Phase())

		f.eng.mu.Lock()
		assert.False(t, f.eng.abandoning)
		f.eng.mu.Unlock()
	})
}

func TestContinueAfterAbandon(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 25, false)

	require.NoError(t, f.eng.ConfirmAbandon())
	require.NoError(t, f.eng.ContinueAfterAbandon())

	assert.Equal(t, Setup, f.eng.Phase())
	assert.Equal(t, "library", f.eng.Location(), "location survives a retry")

	// The next session must run clean of the stale abandon flag.
	require.NoError(t, f.eng.StartSession())
	f.eng.dispatch.flush()

	assert.Equal(t, Active, f.eng.Phase())
}

func TestHeartbeat(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 25, false)

	f.clock.Advance(90 * time.Second)
	f.eng.heartbeat()
	f.eng.dispatch.flush()

	f.db.mu.Lock()
	heartbeats := f.db.heartbeats
	remaining := f.db.lastRemaining
	f.db.mu.Unlock()

	assert.Equal(t, 1, heartbeats)
	assert.Equal(t, 1410, remaining)

	// Once the session ends the publisher goes quiet.
	require.NoError(t, f.eng.ConfirmAbandon())
	f.eng.heartbeat()
	f.eng.dispatch.flush()

	f.db.mu.Lock()
	assert.Equal(t, 1, f.db.heartbeats)
	f.db.mu.Unlock()
}

func TestPersistenceFailureKeepsLocalState(t *testing.T) {
	f := newFixture(t, nil)
	f.db.createErr = errors.New("backend unreachable")

	f.start(t, 25, false)

	assert.Equal(t, Active, f.eng.Phase(), "local state is authoritative")

	f.clock.Advance(25 * time.Minute)
	f.eng.tick()
	f.eng.dispatch.flush()

	assert.Equal(t, Complete, f.eng.Phase())
	require.NotNil(t, f.eng.CompletedSession())

	// No handle ever existed, so no terminal write can be issued either.
	_, completes, _, _ := f.db.counts()
	assert.Zero(t, completes)
}

func TestSessionRecordCarriesIdentifiers(t *testing.T) {
	cfg := testConfig()
	cfg.GroupID = "g_9"

	f := newFixture(t, cfg)
	f.start(t, 50, true)

	f.db.mu.Lock()
	rec := f.db.lastCreated
	f.db.mu.Unlock()

	require.NotNil(t, rec)
	assert.Equal(t, "u_test", rec.UserID)
	assert.Equal(t, "g_9", rec.GroupID)
	assert.Equal(t, "library", rec.Location)
	assert.Equal(t, 50*time.Minute, rec.Planned)
	assert.Equal(t, models.StatusRunning, rec.Status)
	assert.True(t, rec.DeepFocus)
}

func TestTotalTimeTodayIncludesEarlierSessions(t *testing.T) {
	f := newFixture(t, nil)
	f.db.dailyTotal = 2 * time.Hour

	f.start(t, 25, false)

	f.clock.Advance(25 * time.Minute)
	f.eng.tick()
	f.eng.dispatch.flush()

	done := f.eng.CompletedSession()
	require.NotNil(t, done)
	assert.Equal(t, 2*time.Hour+25*time.Minute, done.TotalTimeToday)
}

func TestStatusFileMirrorsSession(t *testing.T) {
	f := newFixture(t, nil)
	f.start(t, 25, false)

	s, err := ReadStatus(config.StatusFilePath())
	require.NoError(t, err)

	assert.Equal(t, Active, s.Phase)
	assert.Equal(t, "library", s.Location)
	assert.Equal(t, 1500, s.RemainingSeconds)
	assert.Equal(t, s.StartedAt.Add(25*time.Minute), s.EndTime)

	require.NoError(t, f.eng.ConfirmAbandon())
	f.eng.dispatch.flush()

	s, err = ReadStatus(config.StatusFilePath())
	require.NoError(t, err)
	assert.Equal(t, Abandoned, s.Phase)
}
