package game

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrRunnerStopped is returned when a command is sent to a runner that has exited.
var ErrRunnerStopped = errors.New("table runner stopped")

// Broadcaster receives a snapshot whenever the table changes.
type Broadcaster interface {
	BroadcastSnapshot(Snapshot)
}

type command struct {
	fn   func(*Session)
	done chan struct{}
}

// Runner owns a Session and drives it from a single goroutine. Ticks and
// commands never interleave.
type Runner struct {
	session     *Session
	tickRate    time.Duration
	commands    chan command
	broadcaster Broadcaster
	events      chan<- Event
	stopped     chan struct{}
}

// NewRunner creates a runner. broadcaster and events may be nil.
func NewRunner(s *Session, tickRate time.Duration, broadcaster Broadcaster, events chan<- Event) *Runner {
	if tickRate <= 0 {
		tickRate = time.Second / 60
	}
	return &Runner{
		session:     s,
		tickRate:    tickRate,
		commands:    make(chan command),
		broadcaster: broadcaster,
		events:      events,
		stopped:     make(chan struct{}),
	}
}

// Run steps the session every tick until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.stopped)

	ticker := time.NewTicker(r.tickRate)
	defer ticker.Stop()

	log.Printf("[TABLE] Runner started (tick=%s)", r.tickRate)
	for {
		select {
		case <-ctx.Done():
			log.Println("[TABLE] Runner stopping")
			return
		case <-ticker.C:
			active := r.session.Moving() || !r.session.AllAtRest()
			r.session.Step()
			if active {
				r.publish()
			} else {
				r.flush()
			}
		case cmd := <-r.commands:
			cmd.fn(r.session)
			close(cmd.done)
			r.publish()
		}
	}
}

// Do runs fn on the runner goroutine between ticks and waits for it to finish.
func (r *Runner) Do(ctx context.Context, fn func(*Session)) error {
	cmd := command{fn: fn, done: make(chan struct{})}
	select {
	case r.commands <- cmd:
	case <-r.stopped:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-cmd.done:
		return nil
	case <-r.stopped:
		return ErrRunnerStopped
	}
}

// Snapshot returns the current table state.
func (r *Runner) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := r.Do(ctx, func(s *Session) { snap = s.Snapshot() })
	return snap, err
}

func (r *Runner) publish() {
	if r.broadcaster != nil {
		r.broadcaster.BroadcastSnapshot(r.session.Snapshot())
	}
	r.flush()
}

func (r *Runner) flush() {
	for _, e := range r.session.DrainEvents() {
		if r.events == nil {
			continue
		}
		select {
		case r.events <- e:
		default:
			log.Printf("[EVENTS] Queue full, dropping %s event", e.Type)
		}
	}
}
