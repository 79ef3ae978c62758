//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"os"
	"time"
)

// DefaultHz runs the loop every 50ms.
const DefaultHz = 20

// AppFunc brings the application up on h and returns one loop iteration.
type AppFunc func(h HAL) (step func() error, err error)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
}

// RunHeadless runs the app without a window. The joystick follows a fixed
// script so the sprite keeps moving.
func RunHeadless(ctx context.Context, newApp AppFunc, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = DefaultHz
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHostHAL(os.Stdout, newScriptedInput())
	step, err := newApp(h)
	if err != nil {
		return err
	}
	return runTicker(ctx, step, d, cfg.Ticks)
}

// runTicker calls step every d until ctx is done, step fails or limit steps
// have run (0 = forever).
func runTicker(ctx context.Context, step func() error, d time.Duration, limit uint64) error {
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
					return err
				}
			}
			tick++
			if limit > 0 && tick >= limit {
				return nil
			}
		}
	}
}
