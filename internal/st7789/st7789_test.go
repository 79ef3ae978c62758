package st7789

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"joysprite/internal/sprite"

	"tinygo.org/x/drivers"
)

// wire records what the controller would see: each Tx tagged with the D/C
// level at the time.
type wire struct {
	dc   bool
	cmds []byte
	args map[byte][]byte
	data int
	last byte
	err  error
}

func newWire() *wire { return &wire{args: map[byte][]byte{}} }

func (w *wire) Tx(b, _ []byte) error {
	if w.err != nil {
		return w.err
	}
	if !w.dc {
		w.last = b[0]
		w.cmds = append(w.cmds, b[0])
		w.args[b[0]] = nil
		return nil
	}
	if w.last == cmdRAMWR {
		w.data += len(b)
		return nil
	}
	w.args[w.last] = append([]byte(nil), b...)
	return nil
}

type dcPin struct{ w *wire }

func (p dcPin) Set(high bool) error {
	p.w.dc = high
	return nil
}

type levelPin struct{ levels []bool }

func (p *levelPin) Set(high bool) error {
	p.levels = append(p.levels, high)
	return nil
}

func newDevice(w *wire, rst Pin) *Device {
	d := New(w, dcPin{w}, rst, nil, Config{Width: 240, Height: 280, RowOffset: 20})
	d.sleep = func(time.Duration) {}
	return d
}

func TestConfigureSequence(t *testing.T) {
	w := newWire()
	rst := &levelPin{}
	d := newDevice(w, rst)

	if err := d.Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	want := []byte{cmdSWRESET, cmdSLPOUT, cmdCOLMOD, cmdMADCTL, cmdINVON, cmdNORON, cmdDISPON}
	if !bytes.Equal(w.cmds, want) {
		t.Fatalf("commands = % x, want % x", w.cmds, want)
	}
	if got := w.args[cmdCOLMOD]; !bytes.Equal(got, []byte{0x55}) {
		t.Fatalf("COLMOD args = % x", got)
	}
	if len(rst.levels) != 3 || rst.levels[0] != true || rst.levels[1] != false || rst.levels[2] != true {
		t.Fatalf("unexpected reset pulse %v", rst.levels)
	}
}

func TestRotationAndOffsets(t *testing.T) {
	tests := []struct {
		rot   drivers.Rotation
		mad   byte
		w, h  int16
		caset []byte
		raset []byte
	}{
		{drivers.Rotation0, 0x00, 240, 280, []byte{0, 0, 0, 0}, []byte{0, 20, 0, 20}},
		{drivers.Rotation90, 0x60, 280, 240, []byte{0, 20, 0, 20}, []byte{0, 0, 0, 0}},
		{drivers.Rotation180, 0xC0, 240, 280, []byte{0, 0, 0, 0}, []byte{0, 20, 0, 20}},
		{drivers.Rotation270, 0xA0, 280, 240, []byte{0, 20, 0, 20}, []byte{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		w := newWire()
		d := newDevice(w, nil)
		if err := d.SetRotation(tt.rot); err != nil {
			t.Fatalf("SetRotation(%d): %v", tt.rot, err)
		}
		if got := w.args[cmdMADCTL]; !bytes.Equal(got, []byte{tt.mad}) {
			t.Fatalf("rotation %d: MADCTL = % x, want %02x", tt.rot, got, tt.mad)
		}
		if x, y := d.Size(); x != tt.w || y != tt.h {
			t.Fatalf("rotation %d: size %dx%d", tt.rot, x, y)
		}
		if err := d.FillRectangle(0, 0, 1, 1, sprite.White); err != nil {
			t.Fatalf("FillRectangle: %v", err)
		}
		if got := w.args[cmdCASET]; !bytes.Equal(got, tt.caset) {
			t.Fatalf("rotation %d: CASET = % x, want % x", tt.rot, got, tt.caset)
		}
		if got := w.args[cmdRASET]; !bytes.Equal(got, tt.raset) {
			t.Fatalf("rotation %d: RASET = % x, want % x", tt.rot, got, tt.raset)
		}
	}

	if err := newDevice(newWire(), nil).SetRotation(drivers.Rotation(7)); !errors.Is(err, ErrRotation) {
		t.Fatalf("expected ErrRotation, got %v", err)
	}
}

func TestFillRectangleStreamsPixels(t *testing.T) {
	w := newWire()
	d := newDevice(w, nil)

	if err := d.FillRectangle(0, 0, 240, 280, sprite.Magenta); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	if w.data != 240*280*2 {
		t.Fatalf("expected %d pixel bytes, got %d", 240*280*2, w.data)
	}
	if d.buf[0] != 0xF8 || d.buf[1] != 0x1F {
		t.Fatalf("expected big-endian magenta, got % x", d.buf[:2])
	}
	if got := w.args[cmdRASET]; !bytes.Equal(got, []byte{0, 20, 0x01, 0x2B}) {
		t.Fatalf("RASET = % x", got)
	}
}

func TestFillRectangleRejectsBadWindow(t *testing.T) {
	d := newDevice(newWire(), nil)
	for _, r := range [][4]int16{
		{0, 0, 0, 1},
		{-1, 0, 1, 1},
		{239, 0, 2, 1},
		{0, 279, 1, 2},
	} {
		if err := d.FillRectangle(r[0], r[1], r[2], r[3], sprite.Black); !errors.Is(err, ErrBadWindow) {
			t.Fatalf("%v: expected ErrBadWindow, got %v", r, err)
		}
	}
}

func TestBusErrorsPropagate(t *testing.T) {
	w := newWire()
	w.err = errors.New("spidev: EIO")
	d := newDevice(w, nil)
	if err := d.Configure(); !errors.Is(err, w.err) {
		t.Fatalf("expected bus error, got %v", err)
	}
}
