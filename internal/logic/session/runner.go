package session

import (
	"context"
	"sync"
	"time"

	"gobooth/internal/debug"
	"gobooth/internal/logic/filter"
)

// Timer schedules one-shot delayed callbacks. The standard implementation
// wraps time.AfterFunc; tests substitute a fake.
type Timer interface {
	AfterFunc(d time.Duration, fn func())
}

type stdTimer struct{}

func (stdTimer) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Capturer produces one encoded still from the live frame source with the
// given filter settings and mirror flag.
type Capturer interface {
	Capture(s filter.Settings, mirror bool) (Capture, error)
}

// ProceedFunc receives the ordered strip when the caller proceeds to layout.
type ProceedFunc func(strip []Capture)

// Runner owns the session and serializes all events through a single
// goroutine, so the collection and the countdown are only ever mutated from
// one place. Effects returned by transitions are executed here: timers
// re-enter the loop as events, capture work runs in a worker goroutine and
// posts its completion back.
type Runner struct {
	sess     *Session
	capturer Capturer
	timer    Timer

	events chan Event
	done   chan struct{}

	mu       sync.RWMutex
	snapshot Snapshot
	onState  func(Snapshot)
	proceed  ProceedFunc
}

// NewRunner wires a session to its capturer. A nil timer selects the real
// time.AfterFunc-backed one.
func NewRunner(sess *Session, capturer Capturer, timer Timer) *Runner {
	if timer == nil {
		timer = stdTimer{}
	}
	return &Runner{
		sess:     sess,
		capturer: capturer,
		timer:    timer,
		events:   make(chan Event, 64),
		done:     make(chan struct{}),
		snapshot: sess.Snapshot(),
	}
}

// OnState registers the listener notified after every transition.
func (r *Runner) OnState(fn func(Snapshot)) {
	r.mu.Lock()
	r.onState = fn
	r.mu.Unlock()
}

// OnProceed registers the strip hand-off collaborator.
func (r *Runner) OnProceed(fn ProceedFunc) {
	r.mu.Lock()
	r.proceed = fn
	r.mu.Unlock()
}

// Snapshot returns the view produced by the most recent transition.
func (r *Runner) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Submit queues an event for the loop. Safe from any goroutine; events
// submitted after the runner stopped are dropped.
func (r *Runner) Submit(ev Event) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

// Run processes events until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.events:
			effects := r.sess.Apply(ev)
			r.publish(ev)
			for _, fx := range effects {
				r.execute(fx)
			}
		}
	}
}

func (r *Runner) execute(fx Effect) {
	switch f := fx.(type) {
	case ScheduleTick:
		gen := f.Gen
		r.timer.AfterFunc(f.After, func() { r.Submit(TickFired{Gen: gen}) })

	case ScheduleRestart:
		gen := f.Gen
		r.timer.AfterFunc(f.After, func() { r.Submit(RestartFired{Gen: gen}) })

	case TakeCapture:
		debug.Filter(f.Settings.Chain(), f.Mirror)
		go func() {
			img, err := r.capturer.Capture(f.Settings, f.Mirror)
			if err != nil {
				debug.Error(err)
			}
			r.Submit(CaptureDone{Token: f.Token, Image: img, Err: err})
		}()

	case HandOff:
		debug.Info("strip handed off: %d photos", len(f.Strip))
		r.mu.RLock()
		proceed := r.proceed
		r.mu.RUnlock()
		if proceed != nil {
			proceed(f.Strip)
		}
	}
}

func (r *Runner) publish(ev Event) {
	snap := r.sess.Snapshot()

	switch e := ev.(type) {
	case TickFired:
		if snap.Phase == "counting" {
			debug.Countdown(snap.Countdown)
		}
	case CaptureDone:
		if e.Err == nil {
			debug.Shot(len(snap.Strip), snap.MaxCaptures)
			debug.Quota(len(snap.Strip), snap.MaxCaptures)
		}
	case CameraFailed:
		debug.Error(e.Err)
	}

	r.mu.Lock()
	r.snapshot = snap
	fn := r.onState
	r.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
