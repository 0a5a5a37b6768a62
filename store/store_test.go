package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/perchapp/perch/internal/models"
	"github.com/perchapp/perch/store"
)

func newTestClient(t *testing.T) *store.Client {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "perch.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func newSession(startedAt time.Time, location string) *models.Session {
	return &models.Session{
		StartedAt: startedAt,
		UserID:    "user_1",
		Location:  location,
		Status:    models.StatusRunning,
		Planned:   25 * time.Minute,
	}
}

func mustCreate(
	t *testing.T,
	db *store.Client,
	sess *models.Session,
) string {
	t.Helper()

	id, err := db.CreateSession(sess)
	if err != nil {
		t.Fatal(err)
	}

	if id == "" {
		t.Fatal("expected a non-empty session handle")
	}

	return id
}

func getByID(
	t *testing.T,
	db *store.Client,
	id string,
) *models.Session {
	t.Helper()

	sessions, err := db.GetSessions(
		time.Now().AddDate(0, 0, -2),
		time.Now().AddDate(0, 0, 1),
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range sessions {
		if s.ID == id {
			return s
		}
	}

	t.Fatalf("session %s not found", id)

	return nil
}

func TestCreateSession(t *testing.T) {
	db := newTestClient(t)

	id := mustCreate(t, db, newSession(time.Now(), "library"))

	got := getByID(t, db, id)

	if got.Status != models.StatusRunning {
		t.Errorf("status = %s, want %s", got.Status, models.StatusRunning)
	}

	if got.Location != "library" {
		t.Errorf("location = %s, want library", got.Location)
	}
}

func TestHeartbeat(t *testing.T) {
	db := newTestClient(t)

	id := mustCreate(t, db, newSession(time.Now(), "library"))

	err := db.Heartbeat(id, 1200)
	if err != nil {
		t.Fatal(err)
	}

	got := getByID(t, db, id)

	if got.Remaining != 1200 {
		t.Errorf("remaining = %d, want 1200", got.Remaining)
	}

	if got.LastHeartbeat.IsZero() {
		t.Error("expected last heartbeat to be recorded")
	}

	// A heartbeat after completion must not resurrect the session.
	err = db.CompleteSession(id, 25*time.Minute, 10)
	if err != nil {
		t.Fatal(err)
	}

	err = db.Heartbeat(id, 900)
	if err != nil {
		t.Fatal(err)
	}

	got = getByID(t, db, id)

	if got.Status != models.StatusCompleted {
		t.Errorf("status = %s, want %s", got.Status, models.StatusCompleted)
	}

	if got.Remaining != 0 {
		t.Errorf("remaining = %d, want 0 after completion", got.Remaining)
	}
}

func TestCompleteSessionIsIdempotent(t *testing.T) {
	db := newTestClient(t)

	id := mustCreate(t, db, newSession(time.Now(), "library"))

	err := db.CompleteSession(id, 25*time.Minute, 10)
	if err != nil {
		t.Fatal(err)
	}

	// A duplicate completion must not double the daily total.
	err = db.CompleteSession(id, 25*time.Minute, 10)
	if err != nil {
		t.Fatal(err)
	}

	total, err := db.TotalToday(time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if total != 25*time.Minute {
		t.Errorf("total today = %v, want %v", total, 25*time.Minute)
	}

	got := getByID(t, db, id)

	if got.CoinsEarned != 10 {
		t.Errorf("coins = %d, want 10", got.CoinsEarned)
	}
}

func TestAbandonAndFail(t *testing.T) {
	db := newTestClient(t)

	abandonID := mustCreate(
		t,
		db,
		newSession(time.Now().Add(-time.Hour), "library"),
	)

	failID := mustCreate(t, db, newSession(time.Now(), "cafe"))

	if err := db.AbandonSession(abandonID); err != nil {
		t.Fatal(err)
	}

	if err := db.FailSession(failID); err != nil {
		t.Fatal(err)
	}

	if got := getByID(t, db, abandonID); got.Status != models.StatusAbandoned {
		t.Errorf("status = %s, want %s", got.Status, models.StatusAbandoned)
	}

	if got := getByID(t, db, failID); got.Status != models.StatusFailed {
		t.Errorf("status = %s, want %s", got.Status, models.StatusFailed)
	}

	// Abandoned and failed sessions contribute nothing to the daily total.
	total, err := db.TotalToday(time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if total != 0 {
		t.Errorf("total today = %v, want 0", total)
	}
}

func TestGetSessionsFilters(t *testing.T) {
	db := newTestClient(t)

	now := time.Now()

	mustCreate(t, db, newSession(now.Add(-30*time.Minute), "library"))
	mustCreate(t, db, newSession(now.Add(-20*time.Minute), "cafe"))
	mustCreate(t, db, newSession(now.Add(-10*time.Minute), "library"))

	all, err := db.GetSessions(now.Add(-time.Hour), now, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(all) != 3 {
		t.Fatalf("got %d sessions, want 3", len(all))
	}

	library, err := db.GetSessions(
		now.Add(-time.Hour),
		now,
		[]string{"library"},
	)
	if err != nil {
		t.Fatal(err)
	}

	if len(library) != 2 {
		t.Fatalf("got %d library sessions, want 2", len(library))
	}

	for _, s := range library {
		if s.Location != "library" {
			t.Errorf("unexpected location %s", s.Location)
		}
	}

	// A window that excludes the oldest session.
	recent, err := db.GetSessions(now.Add(-15*time.Minute), now, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(recent) != 1 {
		t.Fatalf("got %d recent sessions, want 1", len(recent))
	}
}

func TestDeleteSessions(t *testing.T) {
	db := newTestClient(t)

	now := time.Now()

	id := mustCreate(t, db, newSession(now.Add(-10*time.Minute), "library"))
	mustCreate(t, db, newSession(now, "cafe"))

	victim := getByID(t, db, id)

	err := db.DeleteSessions([]*models.Session{victim})
	if err != nil {
		t.Fatal(err)
	}

	remaining, err := db.GetSessions(now.Add(-time.Hour), now, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(remaining) != 1 {
		t.Fatalf("got %d sessions after delete, want 1", len(remaining))
	}

	if remaining[0].Location != "cafe" {
		t.Errorf("wrong session deleted, remaining: %s", remaining[0].Location)
	}

	// Deleted handles no longer accept writes.
	err = db.Heartbeat(id, 100)
	if err == nil {
		t.Error("expected an error writing to a deleted session")
	}
}

func TestTotalTodayAcrossDays(t *testing.T) {
	db := newTestClient(t)

	id := mustCreate(t, db, newSession(time.Now(), "library"))

	err := db.CompleteSession(id, 50*time.Minute, 20)
	if err != nil {
		t.Fatal(err)
	}

	total, err := db.TotalToday(time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if total != 50*time.Minute {
		t.Errorf("total today = %v, want %v", total, 50*time.Minute)
	}

	yesterday, err := db.TotalToday(time.Now().AddDate(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}

	if yesterday != 0 {
		t.Errorf("total yesterday = %v, want 0", yesterday)
	}
}
