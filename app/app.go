// Package app brings the board up and runs the joystick sprite loop on any
// HAL.
package app

import (
	"context"
	"fmt"

	"joysprite/hal"
	"joysprite/internal/buildinfo"
	"joysprite/internal/display"
	"joysprite/internal/joystick"
	"joysprite/internal/motion"
	"joysprite/internal/sprite"
)

// Orientation is the fixed canvas orientation of the mounted panel.
const Orientation = display.PortraitSwapped

type system struct {
	h    hal.HAL
	disp *display.Driver
	loop *motion.Loop
}

// BringUp powers the panel and joystick in the fixed boot order and leaves
// a black canvas. Any error is fatal to the caller.
func BringUp(h hal.HAL) (*display.Driver, *joystick.Sampler, error) {
	l := h.Logger()
	logf(l, "boot: joysprite %s", buildinfo.Long())
	c := h.Clocks()
	logf(l, "boot: ref %d Hz, sys %d Hz, spi %d Hz", c.ReferenceHz, c.SystemHz, c.SPIHz)

	bootStep(h, "backlight")
	h.Backlight().High()

	bootStep(h, "joystick")
	in := h.Input()
	lines := []hal.GPIOPin{in.Up(), in.Down(), in.Left(), in.Right()}
	for _, p := range lines {
		if p == nil {
			return nil, nil, fmt.Errorf("app: joystick: %w", hal.ErrNotImplemented)
		}
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, nil, fmt.Errorf("app: joystick %s: %w", p.Name(), err)
		}
	}
	js := joystick.NewSampler(lines[0], lines[1], lines[2], lines[3])

	bootStep(h, "display")
	panel := h.Display()
	if panel == nil {
		return nil, nil, fmt.Errorf("app: display: %w", hal.ErrNotImplemented)
	}
	w, ht := panel.Size()
	d := display.New(panel, w, ht)
	if err := d.Init(); err != nil {
		return nil, nil, err
	}
	if err := d.SetOrientation(Orientation); err != nil {
		return nil, nil, err
	}

	// Red flash proves the panel is alive before the LED goes on.
	if err := d.Clear(sprite.Red); err != nil {
		return nil, nil, err
	}
	h.LED().High()
	if err := d.Clear(sprite.Black); err != nil {
		return nil, nil, err
	}

	bootStep(h, "ready")
	return d, js, nil
}

func newSystem(h hal.HAL) (*system, error) {
	d, js, err := BringUp(h)
	if err != nil {
		return nil, err
	}
	w, ht := d.Size()
	loop := motion.New(motion.DefaultConfig(w, ht), d, js, h.Delay())
	return &system{h: h, disp: d, loop: loop}, nil
}

// New brings the board up, draws the sprite at its start position and
// returns one loop iteration for host runners that keep their own clock.
func New(h hal.HAL) (func() error, error) {
	s, err := newSystem(h)
	if err != nil {
		report(h, err)
		return nil, err
	}
	if err := s.loop.Start(); err != nil {
		report(h, err)
		return nil, err
	}
	return s.step, nil
}

func (s *system) step() error {
	moved, err := s.loop.Step()
	if err != nil {
		report(s.h, err)
		return err
	}
	if moved {
		p := s.loop.Position()
		logf(s.h.Logger(), "motion: %d,%d", p.X, p.Y)
	}
	return nil
}

// Run brings the board up and runs the loop forever (firmware entrypoint).
func Run(h hal.HAL) {
	s, err := newSystem(h)
	if err != nil {
		Fatal(h, err)
	}
	if err := s.loop.Run(context.Background()); err != nil {
		Fatal(h, err)
	}
	select {}
}

func logf(l hal.Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf(format, args...))
}
