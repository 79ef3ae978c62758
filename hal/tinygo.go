//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7789"
)

// PicoBoy Color wiring.
const (
	pinSCK   = machine.GP18
	pinSDO   = machine.GP19
	pinSDI   = machine.GP16
	pinDC    = machine.GP8
	pinCS    = machine.GP9
	pinRST   = machine.GP12
	pinBL    = machine.GP13
	pinLED   = machine.GP14
	pinUp    = machine.GP1
	pinDown  = machine.GP3
	pinLeft  = machine.GP4
	pinRight = machine.GP2
)

const (
	referenceHz = 12_000_000
	// The RP2040 SPI prescaler divides the peripheral clock by at least 2,
	// so a 125 MHz request lands on 62.5 MHz.
	spiRequestHz = 125_000_000
	spiMaxHz     = 62_500_000

	panelWidth     = 240
	panelHeight    = 280
	panelRowOffset = 20
)

type tinyGoHAL struct {
	logger    printLogger
	clocks    Clocks
	led       *machinePin
	backlight *machinePin
	panel     *st7789Panel
	input     *pinInput
}

// New returns the PicoBoy Color (RP2040) HAL. The runtime has already
// locked the PLLs to the 12 MHz crystal by the time main runs.
func New() HAL {
	mustTake()

	spiHz := uint32(spiRequestHz)
	if spiHz > spiMaxHz {
		spiHz = spiMaxHz
	}

	h := &tinyGoHAL{
		clocks: Clocks{
			ReferenceHz: referenceHz,
			SystemHz:    machine.CPUFrequency(),
			SPIHz:       spiHz,
		},
		led:       newMachinePin("LED", pinLED),
		backlight: newMachinePin("BL", pinBL),
		input: &pinInput{
			up:    newMachinePin("JOY_UP", pinUp),
			down:  newMachinePin("JOY_DOWN", pinDown),
			left:  newMachinePin("JOY_LEFT", pinLeft),
			right: newMachinePin("JOY_RIGHT", pinRight),
		},
	}
	h.panel = &st7789Panel{spiHz: spiHz}
	return h
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Clocks() Clocks   { return h.clocks }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) Backlight() LED   { return h.backlight }
func (h *tinyGoHAL) Display() Display { return h.panel }
func (h *tinyGoHAL) Input() Input     { return h.input }
func (h *tinyGoHAL) Delay() Delay     { return sleepDelay{} }

// st7789Panel configures SPI0 and the controller on first Configure.
type st7789Panel struct {
	spiHz uint32
	dev   *st7789.Device
}

func (p *st7789Panel) Size() (x, y int16) { return panelWidth, panelHeight }

func (p *st7789Panel) Configure() error {
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: p.spiHz,
		SCK:       pinSCK,
		SDO:       pinSDO,
		SDI:       pinSDI,
		Mode:      3,
	})
	if err != nil {
		return err
	}

	// The backlight is a HAL line of its own, so the driver gets NoPin.
	dev := st7789.New(machine.SPI0, pinRST, pinDC, pinCS, machine.NoPin)
	dev.Configure(st7789.Config{
		Width:     panelWidth,
		Height:    panelHeight,
		RowOffset: panelRowOffset,
		Rotation:  drivers.Rotation0,
	})
	p.dev = &dev
	return nil
}

func (p *st7789Panel) SetRotation(r drivers.Rotation) error {
	if p.dev == nil {
		return ErrNotImplemented
	}
	return p.dev.SetRotation(r)
}

func (p *st7789Panel) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if p.dev == nil {
		return ErrNotImplemented
	}
	return p.dev.FillRectangle(x, y, width, height, c)
}

// machinePin is a GPIOPin on an RP2040 pad.
type machinePin struct {
	name string
	pin  machine.Pin
}

func newMachinePin(name string, pin machine.Pin) *machinePin {
	return &machinePin{name: name, pin: pin}
}

func (p *machinePin) Name() string { return p.name }
func (p *machinePin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	m := machine.PinInput
	switch {
	case mode == GPIOModeOutput:
		m = machine.PinOutput
	case pull == GPIOPullUp:
		m = machine.PinInputPullup
	case pull == GPIOPullDown:
		m = machine.PinInputPulldown
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	p.pin.Set(level)
	return nil
}

// High and Low let output pins double as LEDs. RP2040 pad writes cannot fail.
func (p *machinePin) High() {
	p.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.pin.High()
}

func (p *machinePin) Low() {
	p.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.pin.Low()
}
