package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"gobooth/internal/config"
	"gobooth/internal/debug"
	"gobooth/internal/hw/button"
	"gobooth/internal/hw/camera"
	"gobooth/internal/hw/gpio"
	"gobooth/internal/logic/filter"
	"gobooth/internal/logic/session"
	"gobooth/internal/render"
	"gobooth/internal/web"
)

func main() {
	// CLI flags
	webPort := &webPortFlag{defaultPort: 8080, val: 8080}
	flag.Var(webPort, "web", "web server port; -web 8980 for custom port")
	cfgPath := flag.String("config", filepath.Join("configs", "default.yaml"), "path to config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// Initialize debug system, teed into the browser activity feed
	stream := web.NewEventStream()
	debug.Init(cfg.Defaults.DebugLevel)
	debug.SetOutput(io.MultiWriter(os.Stdout, stream.Writer()))
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)
	debug.Value("Camera type", cfg.Camera.Type)
	debug.Value("Max captures", cfg.Booth.MaxCaptures)

	// Initialize camera source
	debug.Step(1, "Initializing camera")
	src, err := camera.New(cfg.Camera)
	if err != nil {
		log.Fatalf("init camera failed: %v", err)
	}
	defer src.Stop()

	// Build the session and its runner
	debug.Step(2, "Creating capture session")
	comp := render.NewCompositor(src)
	sess := session.New(sessionParams(cfg))
	runner := session.NewRunner(sess, comp, nil)

	// The booth stays up when the camera does not: the browser shows the
	// error and the camera can be fixed without restarting the daemon.
	if err := src.Start(); err != nil {
		debug.Error(err)
		runner.Submit(session.CameraFailed{Err: err})
	} else {
		runner.Submit(session.CameraReady{})
	}

	// Optional arcade button on GPIO
	var port *button.Port
	if cfg.Button.Enabled {
		debug.Step(3, "Initializing shutter button")
		debug.Value("Mock GPIO", cfg.Defaults.MockGPIO)
		gpioDriver, err := gpio.NewDriver(cfg.Defaults.MockGPIO)
		if err != nil {
			log.Fatalf("init GPIO failed: %v", err)
		}
		defer func() {
			if err := gpioDriver.Close(); err != nil {
				log.Printf("closing GPIO driver failed: %v", err)
			}
		}()

		port, err = button.NewPort(gpioDriver, button.Config{
			ShutterPin: cfg.Button.ShutterPin,
			LEDPin:     cfg.Button.LEDPin,
			Poll:       cfg.ButtonPoll(),
			Debounce:   cfg.ButtonDebounce(),
		}, func() { runner.Submit(session.PrimaryPressed{}) })
		if err != nil {
			log.Fatalf("init shutter button failed: %v", err)
		}
		go port.Run(ctx)
	}

	// Web surface
	debug.Step(4, "Starting web surface")
	hub := web.NewHub()
	runner.OnState(func(snap session.Snapshot) {
		hub.SendState(snap)
		if port != nil {
			port.SetLamp(snap.Phase == "counting")
		}
	})
	runner.OnProceed(func(strip []session.Capture) {
		hub.SendLayout(strip)
	})

	go runner.Run(ctx)

	preview := web.NewPreview(hub, comp, runner.Snapshot, cfg.PreviewInterval())
	go preview.Run(ctx)

	webAddr := fmt.Sprintf(":%d", webPort.port())
	srv := web.NewServer(webAddr, hub, stream, runner.Submit, runner.Snapshot, boothInfo(cfg))
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("web server: %v", err)
	}
}

// sessionParams maps the loaded config onto the session constants.
func sessionParams(cfg *config.Config) session.Params {
	return session.Params{
		MaxCaptures:       cfg.Booth.MaxCaptures,
		TimerOptions:      cfg.Booth.TimerOptionsSec,
		DefaultTimerIndex: cfg.Booth.DefaultTimerIndex,
		CapturePause:      cfg.CapturePause(),
		Boosts:            boosts(cfg),
		MirrorDefault:     cfg.Filters.MirrorDefault,
	}
}

func boosts(cfg *config.Config) filter.Boosts {
	return filter.Boosts{
		Brightness: cfg.Filters.BrightnessBoost,
		Contrast:   cfg.Filters.ContrastBoost,
		Saturate:   cfg.Filters.SaturateBoost,
		Grayscale:  cfg.Filters.GrayscaleLevel,
		Sepia:      cfg.Filters.SepiaLevel,
	}
}

// boothInfo maps the loaded config onto the browser-facing configuration.
func boothInfo(cfg *config.Config) web.BoothInfo {
	return web.BoothInfo{
		MaxCaptures:       cfg.Booth.MaxCaptures,
		TimerOptionsSec:   cfg.Booth.TimerOptionsSec,
		DefaultTimerIndex: cfg.Booth.DefaultTimerIndex,
		CapturePauseMs:    cfg.Booth.CapturePauseMs,
		MirrorDefault:     cfg.Filters.MirrorDefault,
		Boosts: web.BoostInfo{
			Brightness: cfg.Filters.BrightnessBoost,
			Contrast:   cfg.Filters.ContrastBoost,
			Saturate:   cfg.Filters.SaturateBoost,
			Grayscale:  cfg.Filters.GrayscaleLevel,
			Sepia:      cfg.Filters.SepiaLevel,
		},
	}
}

// webPortFlag implements flag.Value for -web: -web 8980 overrides the default 8080.
type webPortFlag struct {
	val         int
	defaultPort int
}

func (w *webPortFlag) String() string {
	if w.val == 0 {
		return "0"
	}
	return strconv.Itoa(w.val)
}

func (w *webPortFlag) Set(s string) error {
	if s == "" {
		w.val = w.defaultPort
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 || v > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", v)
	}
	w.val = v
	return nil
}

func (w *webPortFlag) port() int { return w.val }
