package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// RunHeadless renders into a heap framebuffer without opening a window.
func RunHeadless(ctx context.Context, s Screen, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	h := newHost(s)
	step, err := newApp(h)
	if err != nil {
		return err
	}
	return runTicker(ctx, step, cfg)
}

// runTicker calls step at cfg.Hz until ctx ends, cfg.Ticks steps have run,
// or step fails. ErrQuit ends the loop without error.
func runTicker(ctx context.Context, step func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
