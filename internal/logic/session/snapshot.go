package session

import "gobooth/internal/logic/filter"

// Snapshot is an immutable view of the session for the UI. The active filter
// set is derived from the knob values at snapshot time.
type Snapshot struct {
	Phase           string          `json:"phase"`
	Countdown       int             `json:"countdown"`
	AutoMode        bool            `json:"auto_mode"`
	Sequencing      bool            `json:"sequencing"`
	Capturing       bool            `json:"capturing"`
	Mirror          bool            `json:"mirror"`
	TimerIndex      int             `json:"timer_index"`
	TimerSeconds    int             `json:"timer_seconds"`
	TimerOptions    []int           `json:"timer_options"`
	Filters         filter.Settings `json:"filters"`
	ActiveFilters   []filter.ID     `json:"active_filters"`
	Strip           []Capture       `json:"strip"`
	MaxCaptures     int             `json:"max_captures"`
	CameraReady     bool            `json:"camera_ready"`
	CameraError     string          `json:"camera_error,omitempty"`
	CanProceed      bool            `json:"can_proceed"`
	CanUndo         bool            `json:"can_undo"`
	ControlsEnabled bool            `json:"controls_enabled"`
}

// Snapshot returns the current UI view of the session.
func (s *Session) Snapshot() Snapshot {
	strip := make([]Capture, len(s.strip))
	copy(strip, s.strip)

	camErr := ""
	if s.cameraErr != nil {
		camErr = s.cameraErr.Error()
	}

	return Snapshot{
		Phase:           s.phase.String(),
		Countdown:       s.remaining,
		AutoMode:        s.autoMode,
		Sequencing:      s.sequencing,
		Capturing:       s.capturing,
		Mirror:          s.mirror,
		TimerIndex:      s.timerIdx,
		TimerSeconds:    s.p.TimerOptions[s.timerIdx],
		TimerOptions:    s.p.TimerOptions,
		Filters:         s.filters,
		ActiveFilters:   s.filters.Active(),
		Strip:           strip,
		MaxCaptures:     s.p.MaxCaptures,
		CameraReady:     s.cameraReady,
		CameraError:     camErr,
		CanProceed:      s.quotaMet(),
		CanUndo:         len(s.strip) > 0 && s.idle(),
		ControlsEnabled: s.controlsEnabled(),
	}
}
