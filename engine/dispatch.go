package engine

import (
	"log/slog"
	"sync"
)

const opQueueSize = 128

type op struct {
	fn   func() error
	name string
}

// dispatcher runs collaborator calls (persistence, notifications, group
// gateway) on a single background goroutine in FIFO order. State
// transitions enqueue their side effects and return immediately, so the
// engine never blocks on the database or the network, while the queue order
// preserves the teardown sequence: notification cancellation is always
// executed before the terminal persistence write that follows it.
//
// A failed call is logged and dropped. The in-memory state machine is
// authoritative; collaborators are eventually consistent with it.
type dispatcher struct {
	ops    chan op
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func newDispatcher() *dispatcher {
	d := &dispatcher{
		ops: make(chan op, opQueueSize),
	}

	d.wg.Add(1)

	go d.loop()

	return d
}

func (d *dispatcher) loop() {
	defer d.wg.Done()

	for o := range d.ops {
		if err := o.fn(); err != nil {
			slog.Warn(
				"background operation failed",
				slog.String("op", o.name),
				slog.Any("error", err),
			)
		}
	}
}

// enqueue adds a call to the queue without blocking. If the queue is full
// the call is dropped with a warning rather than stalling a transition. A
// stray timer firing during shutdown finds the dispatcher closed and its
// call is dropped the same way.
func (d *dispatcher) enqueue(name string, fn func() error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		slog.Warn("dispatcher closed, dropping call", slog.String("op", name))
		return
	}

	select {
	case d.ops <- op{name: name, fn: fn}:
	default:
		slog.Warn("operation queue full, dropping call", slog.String("op", name))
	}
}

// flush blocks until every call enqueued before it has run.
func (d *dispatcher) flush() {
	done := make(chan struct{})

	d.ops <- op{
		name: "flush",
		fn: func() error {
			close(done)
			return nil
		},
	}

	<-done
}

// close drains the queue and stops the goroutine. Calls enqueued afterwards
// are dropped.
func (d *dispatcher) close() {
	d.mu.Lock()

	if d.closed {
		d.mu.Unlock()
		return
	}

	d.closed = true
	d.mu.Unlock()

	close(d.ops)
	d.wg.Wait()
}
