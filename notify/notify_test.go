package notify

import (
	"testing"
	"time"
)

func TestScheduleAssignsDistinctIDs(t *testing.T) {
	d := NewDesktop(true, "")
	defer d.CancelAll()

	first := d.ScheduleCompletion(time.Hour)
	second := d.ScheduleReminder(time.Hour)

	if first == 0 || second == 0 {
		t.Fatal("expected non-zero notification ids")
	}

	if first == second {
		t.Fatalf("expected distinct ids, got %d twice", first)
	}

	if len(d.pending) != 2 {
		t.Errorf("pending notifications = %d, want 2", len(d.pending))
	}
}

func TestCancelAllStopsPending(t *testing.T) {
	d := NewDesktop(true, "")

	d.ScheduleCompletion(time.Hour)
	d.ScheduleReminder(time.Hour)

	d.CancelAll()

	if len(d.pending) != 0 {
		t.Errorf("pending notifications = %d, want 0", len(d.pending))
	}

	// A second cancel must be harmless.
	d.CancelAll()
}

func TestDisabledSchedulerIsNoOp(t *testing.T) {
	d := NewDesktop(false, "")

	if id := d.ScheduleCompletion(time.Hour); id != 0 {
		t.Errorf("disabled scheduler returned id %d, want 0", id)
	}

	if len(d.pending) != 0 {
		t.Errorf("pending notifications = %d, want 0", len(d.pending))
	}
}
