package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"fbscene/app"
	"fbscene/hal"
	"fbscene/internal/buildinfo"
	"fbscene/internal/config"
	"fbscene/internal/posefeed"
	"fbscene/internal/status"
)

func main() {
	var (
		headless    hal.HeadlessConfig
		fbdev       int
		configPath  string
		listen      string
		width       int
		height      int
		aa          bool
		hud         bool
		rainbow     bool
		printConfig bool
		version     bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Frame rate in headless and fbdev mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N frames in headless and fbdev mode (0 = run forever).")
	flag.IntVar(&fbdev, "fbdev", -1, "Draw to /dev/fbN instead of a window (-1 = off).")
	flag.StringVar(&configPath, "config", "", "YAML config file.")
	flag.StringVar(&listen, "listen", "", "Serve the websocket pose feed on this address (overrides config).")
	flag.IntVar(&width, "width", 0, "Window width (overrides config).")
	flag.IntVar(&height, "height", 0, "Window height (overrides config).")
	flag.BoolVar(&aa, "aa", false, "Draw anti-aliased lines.")
	flag.BoolVar(&hud, "hud", false, "Show the frame time and camera pose on screen.")
	flag.BoolVar(&rainbow, "rainbow", false, "Draw a rainbow backdrop in the sky.")
	flag.BoolVar(&printConfig, "print-config", false, "Print the effective config as YAML and exit.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal(err)
	}
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}
	if aa {
		cfg.Lines = config.LinesAA
	}
	if listen != "" {
		cfg.Listen = listen
	}
	if rainbow {
		cfg.Rainbow = true
	}
	if printConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	appCfg := app.Config{Scene: cfg, HUD: hud}
	if configPath != "" {
		reloads, err := config.Watch(ctx, configPath, hal.NewLogger(os.Stderr))
		if err != nil {
			fatal(err)
		}
		appCfg.Reloads = reloads
	}
	if cfg.Listen != "" {
		feed := posefeed.New(hal.NewLogger(os.Stderr))
		go func() {
			if err := feed.ListenAndServe(ctx, cfg.Listen); err != nil {
				fmt.Fprintln(os.Stderr, err)
				stop()
			}
		}()
		appCfg.Poses = feed
	}

	newApp := func(h hal.HAL) (func() error, error) {
		sys, err := app.New(h, appCfg)
		if err != nil {
			return nil, err
		}
		return sys.Step, nil
	}

	screen := hal.Screen{Width: cfg.Width, Height: cfg.Height}
	switch {
	case fbdev >= 0:
		line := status.New(os.Stdout)
		appCfg.Status = line
		err = hal.RunDevice(ctx, fbdev, newApp, headless)
		line.Close()
	case headless.Enabled:
		err = hal.RunHeadless(ctx, screen, newApp, headless)
	default:
		err = hal.RunWindow(screen, newApp)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
