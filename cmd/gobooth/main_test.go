package main

import (
	"testing"

	"gobooth/internal/config"
)

// ---------- webPortFlag ----------

func TestWebPortFlag_EmptyString(t *testing.T) {
	w := &webPortFlag{defaultPort: 8080}
	if err := w.Set(""); err != nil {
		t.Fatalf("Set(\"\") error: %v", err)
	}
	if w.port() != 8080 {
		t.Errorf("expected default port 8080, got %d", w.port())
	}
}

func TestWebPortFlag_ValidPorts(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"8080", 8080},
		{"1", 1},
		{"65535", 65535},
		{"3000", 3000},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			w := &webPortFlag{defaultPort: 8080}
			if err := w.Set(tc.input); err != nil {
				t.Fatalf("Set(%q) error: %v", tc.input, err)
			}
			if w.port() != tc.want {
				t.Errorf("port() = %d, want %d", w.port(), tc.want)
			}
		})
	}
}

func TestWebPortFlag_InvalidPorts(t *testing.T) {
	cases := []string{"0", "65536", "-1", "abc", "8080.5"}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			w := &webPortFlag{defaultPort: 8080}
			if err := w.Set(input); err == nil {
				t.Errorf("Set(%q) should fail, got nil", input)
			}
		})
	}
}

func TestWebPortFlag_String(t *testing.T) {
	w := &webPortFlag{val: 0}
	if s := w.String(); s != "0" {
		t.Errorf("String() = %q, want \"0\"", s)
	}
	w.val = 9090
	if s := w.String(); s != "9090" {
		t.Errorf("String() = %q, want \"9090\"", s)
	}
}

// ---------- config mapping ----------

func newTestConfig() *config.Config {
	return &config.Config{
		Camera: config.CameraConfig{Type: "mock", WidthPx: 1280, HeightPx: 960},
		Filters: config.FiltersConfig{
			BrightnessBoost: 125,
			ContrastBoost:   150,
			SaturateBoost:   200,
			GrayscaleLevel:  100,
			SepiaLevel:      100,
			MirrorDefault:   true,
		},
		Booth: config.BoothConfig{
			MaxCaptures:       10,
			TimerOptionsSec:   []int{3, 5, 10},
			DefaultTimerIndex: 1,
			CapturePauseMs:    1000,
			PreviewIntervalMs: 200,
		},
		Defaults: config.DefaultsConfig{MockGPIO: true},
	}
}

func TestSessionParams_FromConfig(t *testing.T) {
	p := sessionParams(newTestConfig())

	if p.MaxCaptures != 10 {
		t.Errorf("MaxCaptures = %d, want 10", p.MaxCaptures)
	}
	if len(p.TimerOptions) != 3 || p.TimerOptions[2] != 10 {
		t.Errorf("TimerOptions = %v, want [3 5 10]", p.TimerOptions)
	}
	if p.DefaultTimerIndex != 1 {
		t.Errorf("DefaultTimerIndex = %d, want 1", p.DefaultTimerIndex)
	}
	if p.CapturePause.Milliseconds() != 1000 {
		t.Errorf("CapturePause = %v, want 1s", p.CapturePause)
	}
	if !p.MirrorDefault {
		t.Error("MirrorDefault should carry over")
	}
	if p.Boosts.Brightness != 125 || p.Boosts.Sepia != 100 {
		t.Errorf("Boosts = %+v", p.Boosts)
	}
}

func TestBoothInfo_FromConfig(t *testing.T) {
	info := boothInfo(newTestConfig())

	if info.MaxCaptures != 10 {
		t.Errorf("MaxCaptures = %d, want 10", info.MaxCaptures)
	}
	if info.CapturePauseMs != 1000 {
		t.Errorf("CapturePauseMs = %d, want 1000", info.CapturePauseMs)
	}
	if !info.MirrorDefault {
		t.Error("MirrorDefault should carry over")
	}
	if info.Boosts.Contrast != 150 || info.Boosts.Grayscale != 100 {
		t.Errorf("Boosts = %+v", info.Boosts)
	}
}
