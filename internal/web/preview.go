package web

import (
	"context"
	"time"

	"gobooth/internal/debug"
	"gobooth/internal/logic/filter"
)

// Framer renders one preview frame with the given filter settings.
type Framer interface {
	Frame(s filter.Settings, mirror bool) (string, error)
}

// Preview pushes rendered frames to the connected views at a fixed
// interval. Rendering is skipped while nobody is connected.
type Preview struct {
	hub      *Hub
	framer   Framer
	snapshot SnapshotFunc
	interval time.Duration
}

func NewPreview(hub *Hub, framer Framer, snapshot SnapshotFunc, interval time.Duration) *Preview {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &Preview{
		hub:      hub,
		framer:   framer,
		snapshot: snapshot,
		interval: interval,
	}
}

// Run loops until ctx is cancelled. Grab errors are logged, not fatal; the
// session loop owns the decision to mark the camera failed.
func (p *Preview) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.hub.Count() == 0 {
				continue
			}
			snap := p.snapshot()
			if !snap.CameraReady {
				continue
			}
			uri, err := p.framer.Frame(snap.Filters, snap.Mirror)
			if err != nil {
				debug.Error(err)
				continue
			}
			p.hub.SendFrame(uri)
		}
	}
}
