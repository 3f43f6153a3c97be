package button

import (
	"context"
	"time"

	"gobooth/internal/debug"
	"gobooth/internal/hw/gpio"
)

// Config holds the wiring of the hardware shutter button.
type Config struct {
	ShutterPin int // active LOW with internal pull-up
	LEDPin     int // 0 = no LED wired
	Poll       time.Duration
	Debounce   time.Duration
}

// Port polls a physical arcade button and reports presses through a
// callback. It is the hardware twin of the browser's primary action key:
// both feed the same event into the session. An optional LED can mirror the
// countdown so guests see the booth arming.
type Port struct {
	gpio    gpio.Driver
	cfg     Config
	onPress func()
}

// NewPort configures the button pin as a pulled-up input and the LED pin
// (if any) as an output driven LOW. onPress fires once per debounced press.
func NewPort(d gpio.Driver, cfg Config, onPress func()) (*Port, error) {
	if cfg.Poll <= 0 {
		cfg.Poll = 20 * time.Millisecond
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 150 * time.Millisecond
	}

	if err := d.SetupPin(cfg.ShutterPin, gpio.InputPullup); err != nil {
		return nil, err
	}
	if cfg.LEDPin != 0 {
		if err := d.SetupPin(cfg.LEDPin, gpio.Output); err != nil {
			return nil, err
		}
		_ = d.WritePin(cfg.LEDPin, gpio.Low)
	}

	return &Port{gpio: d, cfg: cfg, onPress: onPress}, nil
}

// Run polls the button until ctx is cancelled. A press is the HIGH -> LOW
// edge; after firing, further edges are ignored until the line has been
// released and the debounce window has passed.
func (p *Port) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Poll)
	defer ticker.Stop()

	pressed := false
	var lastFire time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			level, err := p.gpio.ReadPin(p.cfg.ShutterPin)
			if err != nil {
				debug.Error(err)
				continue
			}
			down := level == gpio.Low
			switch {
			case down && !pressed:
				pressed = true
				if time.Since(lastFire) >= p.cfg.Debounce {
					lastFire = time.Now()
					debug.Live("Shutter button pressed")
					if p.onPress != nil {
						p.onPress()
					}
				}
			case !down && pressed:
				pressed = false
			}
		}
	}
}

// SetLamp drives the countdown LED.
func (p *Port) SetLamp(on bool) {
	if p.cfg.LEDPin == 0 {
		return
	}
	level := gpio.Low
	if on {
		level = gpio.High
	}
	if err := p.gpio.WritePin(p.cfg.LEDPin, level); err != nil {
		debug.Error(err)
	}
}
