// Package motion integrates joystick samples into a sprite position and
// repaints only the sprite when it moves.
package motion

import (
	"context"
	"image/color"
	"math"
	"time"

	"joysprite/internal/joystick"
	"joysprite/internal/sprite"
)

const (
	// Step is how far one asserted direction moves the sprite per iteration.
	Step int32 = 2
	// Diameter of the sprite in pixels.
	Diameter uint32 = 25
	// Interval is the delay between iterations.
	Interval = 50 * time.Millisecond
)

// Position is the sprite center in canvas pixels.
type Position struct {
	X int32
	Y int32
}

// SatAdd adds b to a, sticking at the int32 limits instead of wrapping.
func SatAdd(a, b int32) int32 {
	s := int64(a) + int64(b)
	if s > math.MaxInt32 {
		return math.MaxInt32
	}
	if s < math.MinInt32 {
		return math.MinInt32
	}
	return int32(s)
}

// Apply moves p by one step for every pressed direction. Opposing
// directions are both applied and cancel out.
func (p Position) Apply(st joystick.State, step int32) Position {
	if st.Down {
		p.Y = SatAdd(p.Y, step)
	}
	if st.Up {
		p.Y = SatAdd(p.Y, -step)
	}
	if st.Right {
		p.X = SatAdd(p.X, step)
	}
	if st.Left {
		p.X = SatAdd(p.X, -step)
	}
	return p
}

// Drawer draws one styled primitive, blocking until it is on the panel.
type Drawer interface {
	Draw(p sprite.Styled) error
}

// Sampler reports the current joystick state.
type Sampler interface {
	Sample() (joystick.State, error)
}

// Sleeper blocks for d.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleepFunc adapts a function such as time.Sleep to a Sleeper.
type SleepFunc func(d time.Duration)

func (f SleepFunc) Sleep(d time.Duration) { f(d) }

// Config holds the loop's fixed parameters.
type Config struct {
	Start      Position
	Step       int32
	Diameter   uint32
	Interval   time.Duration
	Background color.RGBA
	Accent     color.RGBA
}

// DefaultConfig centers the sprite on a w x h canvas.
func DefaultConfig(w, h int16) Config {
	return Config{
		Start:      Position{X: int32(w) / 2, Y: int32(h) / 2},
		Step:       Step,
		Diameter:   Diameter,
		Interval:   Interval,
		Background: sprite.Black,
		Accent:     sprite.Magenta,
	}
}

// Loop is the motion and render loop. It is not safe for concurrent use;
// one goroutine owns it and the display behind it.
type Loop struct {
	cfg   Config
	draw  Drawer
	input Sampler
	sleep Sleeper

	pos     Position
	prev    Position
	started bool
	frames  uint64
}

// New returns a loop that has not drawn anything yet.
func New(cfg Config, d Drawer, in Sampler, s Sleeper) *Loop {
	return &Loop{
		cfg:   cfg,
		draw:  d,
		input: in,
		sleep: s,
		pos:   cfg.Start,
		prev:  cfg.Start,
	}
}

// Position returns the current sprite position.
func (l *Loop) Position() Position { return l.pos }

// Previous returns the position of the last drawn sprite.
func (l *Loop) Previous() Position { return l.prev }

// Frames returns how many iterations redrew the sprite.
func (l *Loop) Frames() uint64 { return l.frames }

func (l *Loop) circle(p Position, c color.RGBA) sprite.Styled {
	return sprite.Circle{
		Center:   sprite.Point{X: p.X, Y: p.Y},
		Diameter: l.cfg.Diameter,
	}.Style(c)
}

// Start draws the sprite at its start position. It runs once; later calls
// do nothing.
func (l *Loop) Start() error {
	if l.started {
		return nil
	}
	if err := l.draw.Draw(l.circle(l.pos, l.cfg.Accent)); err != nil {
		return err
	}
	l.prev = l.pos
	l.started = true
	return nil
}

// Step runs one iteration without the delay. It reports whether the sprite
// was redrawn.
func (l *Loop) Step() (bool, error) {
	if !l.started {
		if err := l.Start(); err != nil {
			return false, err
		}
	}

	st, err := l.input.Sample()
	if err != nil {
		return false, err
	}
	l.pos = l.pos.Apply(st, l.cfg.Step)
	if l.pos == l.prev {
		return false, nil
	}

	if err := l.draw.Draw(l.circle(l.prev, l.cfg.Background)); err != nil {
		return false, err
	}
	if err := l.draw.Draw(l.circle(l.pos, l.cfg.Accent)); err != nil {
		return false, err
	}
	l.prev = l.pos
	l.frames++
	return true, nil
}

// Run starts the loop and iterates until an error or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Start(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := l.Step(); err != nil {
			return err
		}
		l.sleep.Sleep(l.cfg.Interval)
	}
}
