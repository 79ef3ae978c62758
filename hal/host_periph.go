//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"os"
	"time"

	"joysprite/internal/st7789"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// PeriphConfig names the bus and lines of an ST7789 panel and joystick
// wired to a Linux board.
type PeriphConfig struct {
	Hz int

	SPI       string // empty selects the first bus
	DC        string
	Reset     string
	Backlight string
	LED       string

	Up    string
	Down  string
	Left  string
	Right string
}

// DefaultPeriphConfig matches a Raspberry Pi with the panel on SPI0.
func DefaultPeriphConfig() PeriphConfig {
	return PeriphConfig{
		Hz:        DefaultHz,
		DC:        "GPIO25",
		Reset:     "GPIO27",
		Backlight: "GPIO18",
		LED:       "GPIO16",
		Up:        "GPIO5",
		Down:      "GPIO6",
		Left:      "GPIO13",
		Right:     "GPIO19",
	}
}

const periphSPIFrequency = 125 * physic.MegaHertz

type periphHAL struct {
	logger    *hostLogger
	led       LED
	backlight LED
	panel     *st7789.Device
	input     *pinInput
	port      spi.PortCloser
}

// RunPeriph drives real hardware through periph.io.
func RunPeriph(ctx context.Context, newApp AppFunc, cfg PeriphConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = DefaultHz
	}
	h, err := newPeriphHAL(cfg)
	if err != nil {
		return err
	}
	defer h.port.Close()

	step, err := newApp(h)
	if err != nil {
		return err
	}
	return runTicker(ctx, step, time.Second/time.Duration(cfg.Hz), 0)
}

func newPeriphHAL(cfg PeriphConfig) (*periphHAL, error) {
	mustTake()
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph: init: %w", err)
	}

	lookup := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("periph: gpio %q not found", name)
		}
		return p, nil
	}

	port, err := spireg.Open(cfg.SPI)
	if err != nil {
		return nil, fmt.Errorf("periph: spi %q: %w", cfg.SPI, err)
	}
	conn, err := port.Connect(periphSPIFrequency, spi.Mode3, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("periph: spi connect: %w", err)
	}

	pins := map[string]gpio.PinIO{}
	for _, name := range []string{cfg.DC, cfg.Reset, cfg.Backlight, cfg.LED, cfg.Up, cfg.Down, cfg.Left, cfg.Right} {
		p, err := lookup(name)
		if err != nil {
			port.Close()
			return nil, err
		}
		pins[name] = p
	}

	logger := &hostLogger{w: os.Stdout}
	out := func(name string) LED {
		pin := &periphPin{pin: pins[name]}
		return &gpioLED{pin: pin, logger: logger}
	}

	dc := periphLine{pins[cfg.DC]}
	rst := periphLine{pins[cfg.Reset]}
	// spidev drives chip select itself.
	panel := st7789.New(conn, dc, rst, nil, st7789.Config{
		Width:     240,
		Height:    280,
		RowOffset: 20,
	})

	return &periphHAL{
		logger:    logger,
		led:       out(cfg.LED),
		backlight: out(cfg.Backlight),
		panel:     panel,
		input: &pinInput{
			up:    &periphPin{pin: pins[cfg.Up]},
			down:  &periphPin{pin: pins[cfg.Down]},
			left:  &periphPin{pin: pins[cfg.Left]},
			right: &periphPin{pin: pins[cfg.Right]},
		},
		port: port,
	}, nil
}

func (h *periphHAL) Logger() Logger { return h.logger }
func (h *periphHAL) Clocks() Clocks {
	return Clocks{SPIHz: uint32(periphSPIFrequency / physic.Hertz)}
}
func (h *periphHAL) LED() LED         { return h.led }
func (h *periphHAL) Backlight() LED   { return h.backlight }
func (h *periphHAL) Display() Display { return h.panel }
func (h *periphHAL) Input() Input     { return h.input }
func (h *periphHAL) Delay() Delay     { return sleepDelay{} }

// periphLine adapts a periph output to the controller's control lines.
type periphLine struct {
	pin gpio.PinOut
}

func (l periphLine) Set(high bool) error {
	return l.pin.Out(gpio.Level(high))
}

// periphPin exposes a periph pin as a GPIOPin.
type periphPin struct {
	pin gpio.PinIO
}

func (p *periphPin) Name() string { return p.pin.Name() }
func (p *periphPin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *periphPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.Name(), p.Caps(), mode, pull); err != nil {
		return err
	}
	if mode == GPIOModeOutput {
		return p.pin.Out(gpio.Low)
	}
	pp := gpio.Float
	switch pull {
	case GPIOPullUp:
		pp = gpio.PullUp
	case GPIOPullDown:
		pp = gpio.PullDown
	}
	return p.pin.In(pp, gpio.NoEdge)
}

func (p *periphPin) Read() (bool, error) {
	return bool(p.pin.Read()), nil
}

func (p *periphPin) Write(level bool) error {
	return p.pin.Out(gpio.Level(level))
}
