package session

import (
	"time"

	"gobooth/internal/logic/filter"
)

// Event is an input to the state machine. Events come from the websocket
// dispatcher, the hardware button, timer callbacks and the capture worker.
type Event interface{ isEvent() }

// CameraReady reports that the camera source started delivering frames.
type CameraReady struct{}

// CameraFailed reports permission denial or absent hardware. The session
// enters its persistent error state; there is no retry.
type CameraFailed struct{ Err error }

// PrimaryPressed is the primary action (Space/Enter, UI capture button,
// hardware shutter button): proceed when the quota is met, cancel while a
// countdown or sequence runs, start a countdown otherwise.
type PrimaryPressed struct{}

// StartRequested explicitly asks for a countdown (UI capture control).
type StartRequested struct{}

// TickFired is a one-second countdown tick for the given generation.
type TickFired struct{ Gen uint64 }

// RestartFired ends the inter-capture pause of an auto sequence.
type RestartFired struct{ Gen uint64 }

// CaptureDone reports the outcome of a TakeCapture effect.
type CaptureDone struct {
	Token uint64
	Image Capture
	Err   error
}

// UndoRequested removes the newest capture (Backspace/Delete).
type UndoRequested struct{}

// ResetRequested empties the strip and returns to Idle (Escape).
type ResetRequested struct{}

// AutoToggled flips auto mode ('a' key).
type AutoToggled struct{}

// FilterToggled flips one filter knob.
type FilterToggled struct{ ID filter.ID }

// MirrorToggled flips the horizontal mirror.
type MirrorToggled struct{}

// TimerCycled advances the countdown duration selection.
type TimerCycled struct{}

// ProceedRequested asks for the strip hand-off (UI proceed control).
type ProceedRequested struct{}

func (CameraReady) isEvent()      {}
func (CameraFailed) isEvent()     {}
func (PrimaryPressed) isEvent()   {}
func (StartRequested) isEvent()   {}
func (TickFired) isEvent()        {}
func (RestartFired) isEvent()     {}
func (CaptureDone) isEvent()      {}
func (UndoRequested) isEvent()    {}
func (ResetRequested) isEvent()   {}
func (AutoToggled) isEvent()      {}
func (FilterToggled) isEvent()    {}
func (MirrorToggled) isEvent()    {}
func (TimerCycled) isEvent()      {}
func (ProceedRequested) isEvent() {}

// Effect is an action the caller must execute after a transition.
type Effect interface{ isEffect() }

// ScheduleTick asks for a TickFired{Gen} event after the delay.
type ScheduleTick struct {
	Gen   uint64
	After time.Duration
}

// ScheduleRestart asks for a RestartFired{Gen} event after the delay.
type ScheduleRestart struct {
	Gen   uint64
	After time.Duration
}

// TakeCapture asks for one frame to be grabbed and composited with the given
// settings, completing with CaptureDone{Token}.
type TakeCapture struct {
	Token    uint64
	Settings filter.Settings
	Mirror   bool
}

// HandOff delivers the ordered strip to the proceed collaborator.
type HandOff struct{ Strip []Capture }

func (ScheduleTick) isEffect()    {}
func (ScheduleRestart) isEffect() {}
func (TakeCapture) isEffect()     {}
func (HandOff) isEffect()         {}
