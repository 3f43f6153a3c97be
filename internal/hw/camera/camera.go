package camera

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"gobooth/internal/config"
	"gobooth/internal/debug"
)

// ErrUnavailable is returned when the capture device cannot deliver frames,
// either because Start failed or because the device disappeared mid-session.
var ErrUnavailable = errors.New("camera unavailable")

// Source is the abstract interface over a frame-producing device.
// This allows plugging in a real webcam or a synthetic source for
// development on PC.
type Source interface {
	Start() error
	Grab() (image.Image, error)
	Stop() error
}

// New creates a frame source based on the configuration.
func New(cfg config.CameraConfig) (Source, error) {
	switch cfg.Type {
	case "webcam":
		return NewWebcam(cfg.DeviceID, cfg.WidthPx, cfg.HeightPx), nil
	case "mock":
		debug.Info("Using MOCK camera source (development mode)")
		return NewFakeSource(cfg.WidthPx, cfg.HeightPx), nil
	default:
		return nil, fmt.Errorf("unknown camera type %q", cfg.Type)
	}
}

// FakeSource produces synthetic frames without any hardware. Each frame is
// a horizontal gradient with a band that moves one row per grab, so
// successive frames are distinguishable in the gallery.
type FakeSource struct {
	width   int
	height  int
	mu      sync.Mutex
	started bool
	frame   int
	failOn  int // 1-based grab index that fails, 0 disables
}

func NewFakeSource(width, height int) *FakeSource {
	return &FakeSource{width: width, height: height}
}

// FailOnGrab arms a single-shot failure on the nth Grab. Tests use it to
// simulate a device dropping out mid-session.
func (f *FakeSource) FailOnGrab(n int) {
	f.mu.Lock()
	f.failOn = n
	f.mu.Unlock()
}

func (f *FakeSource) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
	return nil
}

func (f *FakeSource) Grab() (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.started {
		return nil, ErrUnavailable
	}
	f.frame++
	if f.failOn != 0 && f.frame == f.failOn {
		return nil, fmt.Errorf("%w: grab %d", ErrUnavailable, f.frame)
	}

	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	band := f.frame % f.height
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := color.RGBA{
				R: uint8(x * 255 / f.width),
				G: uint8(y * 255 / f.height),
				B: 128,
				A: 255,
			}
			if y == band {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

func (f *FakeSource) Stop() error {
	f.mu.Lock()
	f.started = false
	f.mu.Unlock()
	return nil
}
