// Package st7789 speaks the ST7789 command set over a plain byte bus.
//
// It is used where the tinygo drivers cannot run (Linux boards through
// periph.io). Only what a framebuffer-less sprite demo needs is here:
// reset, power-on, rotation and rectangle fills.
package st7789

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
)

// Command bytes.
const (
	cmdSWRESET = 0x01
	cmdSLPOUT  = 0x11
	cmdNORON   = 0x13
	cmdINVON   = 0x21
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdRASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36
	cmdCOLMOD  = 0x3A
)

// MADCTL bits.
const (
	madMY = 0x80
	madMX = 0x40
	madMV = 0x20
)

// Controller RAM size.
const (
	ramWidth  = 240
	ramHeight = 320
)

// maxChunk bounds one pixel transfer. Linux spidev rejects larger ones by
// default.
const maxChunk = 4096

var (
	ErrBadWindow = errors.New("st7789: invalid window")
	ErrRotation  = errors.New("st7789: invalid rotation")
)

// Bus writes bytes to the controller. periph's spi.Conn satisfies it.
type Bus interface {
	Tx(w, r []byte) error
}

// Pin drives one control line.
type Pin interface {
	Set(high bool) error
}

// Config describes the glass behind the controller.
type Config struct {
	// Width and Height are the visible size in portrait.
	Width  int16
	Height int16
	// RowOffset and ColumnOffset place the glass inside controller RAM.
	RowOffset    int16
	ColumnOffset int16
}

// Device is an ST7789 on a Bus.
type Device struct {
	bus Bus
	dc  Pin
	rst Pin
	cs  Pin

	cfg      Config
	rotation drivers.Rotation
	xOff     int16
	yOff     int16

	buf   []byte
	sleep func(time.Duration)
}

// New returns a device. rst and cs may be nil when the board ties them off
// or the bus drives chip select itself.
func New(bus Bus, dc, rst, cs Pin, cfg Config) *Device {
	if cfg.Width <= 0 {
		cfg.Width = ramWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = ramHeight
	}
	d := &Device{
		bus:   bus,
		dc:    dc,
		rst:   rst,
		cs:    cs,
		cfg:   cfg,
		buf:   make([]byte, maxChunk),
		sleep: time.Sleep,
	}
	d.updateOffsets()
	return d
}

// Size returns the visible size for the current rotation.
func (d *Device) Size() (x, y int16) {
	if d.rotation == drivers.Rotation90 || d.rotation == drivers.Rotation270 {
		return d.cfg.Height, d.cfg.Width
	}
	return d.cfg.Width, d.cfg.Height
}

// Configure pulses reset and runs the power-on sequence.
func (d *Device) Configure() error {
	if d.rst != nil {
		for _, step := range []struct {
			level bool
			wait  time.Duration
		}{
			{true, time.Millisecond},
			{false, 10 * time.Millisecond},
			{true, 120 * time.Millisecond},
		} {
			if err := d.rst.Set(step.level); err != nil {
				return fmt.Errorf("st7789: reset line: %w", err)
			}
			d.sleep(step.wait)
		}
	}

	if err := d.cmd(cmdSWRESET); err != nil {
		return err
	}
	d.sleep(150 * time.Millisecond)
	if err := d.cmd(cmdSLPOUT); err != nil {
		return err
	}
	d.sleep(10 * time.Millisecond)

	if err := d.cmd(cmdCOLMOD, 0x55); err != nil { // 16bpp
		return err
	}
	if err := d.SetRotation(d.rotation); err != nil {
		return err
	}
	if err := d.cmd(cmdINVON); err != nil { // IPS glass is inverted
		return err
	}
	if err := d.cmd(cmdNORON); err != nil {
		return err
	}
	if err := d.cmd(cmdDISPON); err != nil {
		return err
	}
	d.sleep(10 * time.Millisecond)
	return nil
}

// SetRotation programs the memory access order for r.
func (d *Device) SetRotation(r drivers.Rotation) error {
	var mad byte
	switch r {
	case drivers.Rotation0:
	case drivers.Rotation90:
		mad = madMX | madMV
	case drivers.Rotation180:
		mad = madMX | madMY
	case drivers.Rotation270:
		mad = madMY | madMV
	default:
		return ErrRotation
	}
	if err := d.cmd(cmdMADCTL, mad); err != nil {
		return err
	}
	d.rotation = r
	d.updateOffsets()
	return nil
}

func (d *Device) updateOffsets() {
	c := d.cfg
	switch d.rotation {
	case drivers.Rotation90:
		d.xOff, d.yOff = c.RowOffset, c.ColumnOffset
	case drivers.Rotation180:
		d.xOff, d.yOff = ramWidth-c.Width-c.ColumnOffset, ramHeight-c.Height-c.RowOffset
	case drivers.Rotation270:
		d.xOff, d.yOff = ramHeight-c.Height-c.RowOffset, ramWidth-c.Width-c.ColumnOffset
	default:
		d.xOff, d.yOff = c.ColumnOffset, c.RowOffset
	}
}

// FillRectangle fills a rectangle given in visible coordinates.
func (d *Device) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	w, h := d.Size()
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x+width > w || y+height > h {
		return ErrBadWindow
	}
	if err := d.setWindow(x, y, width, height); err != nil {
		return err
	}

	pixel := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
	hi, lo := byte(pixel>>8), byte(pixel)
	for i := 0; i+1 < len(d.buf); i += 2 {
		d.buf[i] = hi
		d.buf[i+1] = lo
	}

	return d.transaction(func() error {
		for remain := int(width) * int(height) * 2; remain > 0; {
			n := len(d.buf)
			if n > remain {
				n = remain
			}
			if err := d.bus.Tx(d.buf[:n], nil); err != nil {
				return fmt.Errorf("st7789: pixel data: %w", err)
			}
			remain -= n
		}
		return nil
	})
}

func (d *Device) setWindow(x, y, width, height int16) error {
	x0 := uint16(x + d.xOff)
	x1 := uint16(x + d.xOff + width - 1)
	y0 := uint16(y + d.yOff)
	y1 := uint16(y + d.yOff + height - 1)
	if err := d.cmd(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.cmd(cmdRASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	return d.cmd(cmdRAMWR)
}

// cmd sends a command byte followed by its parameters. D/C is left high so
// pixel data can follow a RAMWR directly.
func (d *Device) cmd(c byte, data ...byte) error {
	return d.transaction(func() error {
		if err := d.dc.Set(false); err != nil {
			return fmt.Errorf("st7789: dc line: %w", err)
		}
		if err := d.bus.Tx([]byte{c}, nil); err != nil {
			return fmt.Errorf("st7789: command %#02x: %w", c, err)
		}
		if err := d.dc.Set(true); err != nil {
			return fmt.Errorf("st7789: dc line: %w", err)
		}
		if len(data) > 0 {
			if err := d.bus.Tx(data, nil); err != nil {
				return fmt.Errorf("st7789: command %#02x data: %w", c, err)
			}
		}
		return nil
	})
}

func (d *Device) transaction(fn func() error) error {
	if d.cs != nil {
		if err := d.cs.Set(false); err != nil {
			return fmt.Errorf("st7789: cs line: %w", err)
		}
	}
	err := fn()
	if d.cs != nil {
		if cerr := d.cs.Set(true); err == nil && cerr != nil {
			err = fmt.Errorf("st7789: cs line: %w", cerr)
		}
	}
	return err
}
