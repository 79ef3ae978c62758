package hal

import (
	"errors"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrAlreadyTaken   = errors.New("hal: peripherals already taken")
)

// Display is a framebuffer-less panel: fills go straight to controller RAM.
type Display interface {
	// Size is the native (unrotated) visible size.
	Size() (x, y int16)
	// Configure runs the reset and power-on sequence.
	Configure() error
	SetRotation(r drivers.Rotation) error
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Input provides the four joystick lines. They read high when released.
type Input interface {
	Up() GPIOPin
	Down() GPIOPin
	Left() GPIOPin
	Right() GPIOPin
}

// Delay blocks the caller.
type Delay interface {
	Sleep(d time.Duration)
}

// Clocks describes the clock tree the HAL brought up.
type Clocks struct {
	ReferenceHz uint32
	SystemHz    uint32
	SPIHz       uint32
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	Clocks() Clocks
	LED() LED
	Backlight() LED
	Display() Display
	Input() Input
	Delay() Delay
}

type sleepDelay struct{}

func (sleepDelay) Sleep(d time.Duration) { time.Sleep(d) }
