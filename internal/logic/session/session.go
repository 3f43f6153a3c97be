package session

import (
	"time"

	"gobooth/internal/logic/filter"
)

// Phase is the coarse sequencing state.
type Phase int

const (
	Idle Phase = iota
	CountingDown
)

func (p Phase) String() string {
	if p == CountingDown {
		return "counting"
	}
	return "idle"
}

// Capture is one encoded still frame in the strip.
type Capture struct {
	ID      string    `json:"id"`
	DataURI string    `json:"data_uri"`
	TakenAt time.Time `json:"taken_at"`
}

// Params holds the externally supplied constants the session runs with.
type Params struct {
	MaxCaptures       int
	TimerOptions      []int // countdown durations in seconds, cycled in order
	DefaultTimerIndex int
	CapturePause      time.Duration // pause between an auto capture and the next countdown
	Boosts            filter.Boosts
	MirrorDefault     bool
}

// Session is the photobooth capture state machine. It owns the filter state,
// the countdown, the auto-sequencing mode and the captured strip. Apply is
// the single transition function: it mutates the session and returns the
// effects to schedule. The session performs no I/O and holds no timers, so
// every transition is synchronous and testable.
//
// Countdown ticks and in-flight captures carry generation numbers. A tick
// from a cancelled or completed countdown, or a capture completion after a
// reset, is recognized as stale and ignored. That makes cancellation and the
// double-zero-tick guard structural rather than flag-based.
type Session struct {
	p Params

	phase      Phase
	remaining  int
	gen        uint64 // current countdown generation
	capToken   uint64 // in-flight capture token
	sequencing bool   // auto sequence currently running
	autoMode   bool   // auto mode toggled on by the user
	capturing  bool   // a capture effect is in flight

	cameraReady bool
	cameraErr   error

	mirror   bool
	timerIdx int
	filters  filter.Settings
	strip    []Capture
}

// New creates a session in Idle with neutral filters and an empty strip.
func New(p Params) *Session {
	if p.DefaultTimerIndex < 0 || p.DefaultTimerIndex >= len(p.TimerOptions) {
		p.DefaultTimerIndex = 0
	}
	return &Session{
		p:        p,
		timerIdx: p.DefaultTimerIndex,
		mirror:   p.MirrorDefault,
		filters:  filter.DefaultSettings(),
	}
}

// Apply advances the state machine by one event and returns the effects the
// caller must execute. A nil return means the event was a no-op (rejected
// operations decline silently).
func (s *Session) Apply(ev Event) []Effect {
	switch e := ev.(type) {
	case CameraReady:
		s.cameraReady = true
		s.cameraErr = nil

	case CameraFailed:
		// The single persistent error state: controls disabled, no retry.
		s.cameraReady = false
		s.cameraErr = e.Err
		s.stopSequence()
		s.capturing = false
		s.capToken++

	case StartRequested:
		return s.start()

	case PrimaryPressed:
		switch {
		case s.quotaMet():
			return s.handOff()
		case s.phase == CountingDown || s.sequencing:
			s.stopSequence()
		default:
			return s.start()
		}

	case TickFired:
		return s.tick(e.Gen)

	case RestartFired:
		return s.restart(e.Gen)

	case CaptureDone:
		return s.captureDone(e)

	case UndoRequested:
		if len(s.strip) > 0 && s.idle() {
			s.strip = s.strip[:len(s.strip)-1]
		}

	case ResetRequested:
		s.strip = nil
		s.stopSequence()
		s.capturing = false
		s.capToken++ // discard any capture still in flight

	case AutoToggled:
		s.autoMode = !s.autoMode
		if !s.autoMode && s.sequencing {
			s.stopSequence()
		}

	case FilterToggled:
		if s.controlsEnabled() {
			s.filters.Toggle(e.ID, s.p.Boosts)
		}

	case MirrorToggled:
		if s.controlsEnabled() {
			s.mirror = !s.mirror
		}

	case TimerCycled:
		if s.controlsEnabled() {
			s.timerIdx = (s.timerIdx + 1) % len(s.p.TimerOptions)
		}

	case ProceedRequested:
		if s.quotaMet() {
			return s.handOff()
		}
	}
	return nil
}

func (s *Session) idle() bool {
	return s.phase == Idle && !s.sequencing && !s.capturing
}

func (s *Session) quotaMet() bool {
	return len(s.strip) >= s.p.MaxCaptures
}

// controlsEnabled reports whether filter, mirror and timer controls accept
// input: camera started and no countdown/sequence/capture in progress.
func (s *Session) controlsEnabled() bool {
	return s.cameraReady && s.idle()
}

// start seeds a countdown with the selected timer duration. When auto mode is
// enabled the sequence flag is raised so the countdown repeats after each
// capture.
func (s *Session) start() []Effect {
	if !s.cameraReady || !s.idle() || s.quotaMet() {
		return nil
	}
	s.gen++
	s.phase = CountingDown
	s.remaining = s.p.TimerOptions[s.timerIdx]
	s.sequencing = s.autoMode
	return []Effect{ScheduleTick{Gen: s.gen, After: time.Second}}
}

// stopSequence cancels the in-flight countdown (by retiring its generation)
// and clears the auto sequence.
func (s *Session) stopSequence() {
	s.gen++
	s.phase = Idle
	s.remaining = 0
	s.sequencing = false
}

func (s *Session) tick(gen uint64) []Effect {
	if gen != s.gen || s.phase != CountingDown {
		return nil // stale tick from a cancelled or completed countdown
	}
	s.remaining--
	if s.remaining > 0 {
		return []Effect{ScheduleTick{Gen: gen, After: time.Second}}
	}
	// Zero reached: exactly one capture. The generation is retired so a
	// redundant zero tick finds nothing to fire.
	s.phase = Idle
	s.remaining = 0
	s.gen++
	s.capturing = true
	s.capToken++
	return []Effect{TakeCapture{Token: s.capToken, Settings: s.filters, Mirror: s.mirror}}
}

func (s *Session) restart(gen uint64) []Effect {
	if gen != s.gen || !s.sequencing || s.capturing || s.phase != Idle {
		return nil
	}
	s.gen++
	s.phase = CountingDown
	s.remaining = s.p.TimerOptions[s.timerIdx]
	return []Effect{ScheduleTick{Gen: s.gen, After: time.Second}}
}

func (s *Session) captureDone(e CaptureDone) []Effect {
	if e.Token != s.capToken {
		return nil // capture was discarded by a reset or camera failure
	}
	s.capturing = false

	if e.Err != nil {
		// Capture failed: abort the sequence, keep the strip as it was.
		s.stopSequence()
		return nil
	}

	if !s.quotaMet() {
		s.strip = append(s.strip, e.Image)
	}
	if s.quotaMet() {
		// Quota reached: no further auto captures, pending countdown cancelled.
		s.stopSequence()
		return nil
	}
	if s.sequencing {
		s.gen++
		return []Effect{ScheduleRestart{Gen: s.gen, After: s.p.CapturePause}}
	}
	s.phase = Idle
	return nil
}

func (s *Session) handOff() []Effect {
	// The strip is handed off, not destroyed; the caller proceeds to layout.
	strip := make([]Capture, len(s.strip))
	copy(strip, s.strip)
	return []Effect{HandOff{Strip: strip}}
}
