package button

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"gobooth/internal/hw/gpio"
)

func newTestPort(t *testing.T, drv *gpio.MockDriver, debounce time.Duration, presses *atomic.Int32) *Port {
	t.Helper()
	p, err := NewPort(drv, Config{
		ShutterPin: 17,
		LEDPin:     27,
		Poll:       time.Millisecond,
		Debounce:   debounce,
	}, func() { presses.Add(1) })
	if err != nil {
		t.Fatalf("NewPort: %v", err)
	}
	return p
}

func waitForPresses(t *testing.T, presses *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if presses.Load() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("presses = %d, want %d", presses.Load(), want)
}

func TestPort_PinSetup(t *testing.T) {
	drv := &gpio.MockDriver{}
	var presses atomic.Int32
	newTestPort(t, drv, 0, &presses)

	// Pull-up input idles HIGH; LED starts LOW.
	if level := drv.Level(17); level != gpio.High {
		t.Error("shutter pin should idle HIGH with pull-up")
	}
	if level := drv.Level(27); level != gpio.Low {
		t.Error("LED should start LOW")
	}
}

func TestPort_PressFiresOnce(t *testing.T) {
	drv := &gpio.MockDriver{}
	var presses atomic.Int32
	p := newTestPort(t, drv, time.Millisecond, &presses)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	// Press and hold: a single press despite many polls at LOW.
	drv.SetLevel(17, gpio.Low)
	waitForPresses(t, &presses, 1)
	time.Sleep(20 * time.Millisecond)
	if got := presses.Load(); got != 1 {
		t.Errorf("held button fired %d times, want 1", got)
	}

	// Release, then press again: second fire.
	drv.SetLevel(17, gpio.High)
	time.Sleep(10 * time.Millisecond)
	drv.SetLevel(17, gpio.Low)
	waitForPresses(t, &presses, 2)
}

func TestPort_DebounceSwallowsBounce(t *testing.T) {
	drv := &gpio.MockDriver{}
	var presses atomic.Int32
	p := newTestPort(t, drv, 500*time.Millisecond, &presses)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	// Rapid bounce: press, release, press within the debounce window.
	drv.SetLevel(17, gpio.Low)
	waitForPresses(t, &presses, 1)
	drv.SetLevel(17, gpio.High)
	time.Sleep(10 * time.Millisecond)
	drv.SetLevel(17, gpio.Low)
	time.Sleep(20 * time.Millisecond)

	if got := presses.Load(); got != 1 {
		t.Errorf("bounced press fired %d times, want 1", got)
	}
}

func TestPort_Lamp(t *testing.T) {
	drv := &gpio.MockDriver{}
	var presses atomic.Int32
	p := newTestPort(t, drv, 0, &presses)

	p.SetLamp(true)
	if drv.Level(27) != gpio.High {
		t.Error("lamp on should drive LED HIGH")
	}
	p.SetLamp(false)
	if drv.Level(27) != gpio.Low {
		t.Error("lamp off should drive LED LOW")
	}
}

func TestPort_RunStopsOnCancel(t *testing.T) {
	drv := &gpio.MockDriver{}
	var presses atomic.Int32
	p := newTestPort(t, drv, 0, &presses)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected context error, got nil")
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
