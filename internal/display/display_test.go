package display

import (
	"errors"
	"image/color"
	"testing"

	"joysprite/internal/sprite"

	"tinygo.org/x/drivers"
)

// memPanel is an in-memory panel that stores logical pixels.
type memPanel struct {
	w, h       int16
	rot        drivers.Rotation
	configured int
	fills      int
	pix        map[[2]int16]color.RGBA
	err        error
}

func newMemPanel(w, h int16) *memPanel {
	return &memPanel{w: w, h: h, pix: map[[2]int16]color.RGBA{}}
}

func (p *memPanel) Configure() error {
	p.configured++
	return p.err
}

func (p *memPanel) SetRotation(r drivers.Rotation) error {
	p.rot = r
	return p.err
}

func (p *memPanel) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if p.err != nil {
		return p.err
	}
	p.fills++
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			p.pix[[2]int16{px, py}] = c
		}
	}
	return nil
}

func (p *memPanel) snapshot() map[[2]int16]color.RGBA {
	out := make(map[[2]int16]color.RGBA, len(p.pix))
	for k, v := range p.pix {
		out[k] = v
	}
	return out
}

func TestSetOrientation(t *testing.T) {
	p := newMemPanel(240, 280)
	d := New(p, 240, 280)
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if p.configured != 1 {
		t.Fatalf("expected one Configure call, got %d", p.configured)
	}

	if err := d.SetOrientation(PortraitSwapped); err != nil {
		t.Fatalf("SetOrientation: %v", err)
	}
	if p.rot != drivers.Rotation180 {
		t.Fatalf("expected Rotation180, got %d", p.rot)
	}
	if w, h := d.Size(); w != 240 || h != 280 {
		t.Fatalf("expected 240x280, got %dx%d", w, h)
	}

	if err := d.SetOrientation(Landscape); err != nil {
		t.Fatalf("SetOrientation: %v", err)
	}
	if w, h := d.Size(); w != 280 || h != 240 {
		t.Fatalf("expected 280x240 in landscape, got %dx%d", w, h)
	}

	if err := d.SetOrientation(Orientation(9)); err == nil {
		t.Fatal("expected error for invalid orientation")
	}
}

func TestClearIdempotent(t *testing.T) {
	p := newMemPanel(24, 28)
	d := New(p, 24, 28)

	if err := d.Clear(sprite.Red); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	once := p.snapshot()
	if err := d.Clear(sprite.Red); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	twice := p.snapshot()

	if len(once) != 24*28 || len(twice) != len(once) {
		t.Fatalf("unexpected canvas sizes %d / %d", len(once), len(twice))
	}
	for k, v := range once {
		if twice[k] != v {
			t.Fatalf("pixel %v changed on second clear", k)
		}
	}
}

func TestDrawCircle(t *testing.T) {
	p := newMemPanel(240, 280)
	d := New(p, 240, 280)

	c := sprite.Circle{Center: sprite.Point{X: 120, Y: 140}, Diameter: 25}
	if err := d.Draw(c.Style(sprite.Magenta)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if p.fills != 25 {
		t.Fatalf("expected one fill per row, got %d", p.fills)
	}
	if got := p.pix[[2]int16{120, 140}]; got != sprite.Magenta {
		t.Fatalf("center not filled: %+v", got)
	}
	if _, ok := p.pix[[2]int16{108, 128}]; ok {
		t.Fatal("bounding box corner should stay untouched")
	}
}

func TestDrawOffCanvasIsClipped(t *testing.T) {
	p := newMemPanel(240, 280)
	d := New(p, 240, 280)

	c := sprite.Circle{Center: sprite.Point{X: -100, Y: -100}, Diameter: 25}
	if err := d.Draw(c.Style(sprite.Magenta)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if p.fills != 0 {
		t.Fatalf("expected no transfers, got %d", p.fills)
	}

	edge := sprite.Circle{Center: sprite.Point{X: 239, Y: 279}, Diameter: 25}
	if err := d.Draw(edge.Style(sprite.Magenta)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	for k := range p.pix {
		if k[0] < 0 || k[0] >= 240 || k[1] < 0 || k[1] >= 280 {
			t.Fatalf("pixel %v outside canvas", k)
		}
	}
}

func TestTransportErrorsPropagate(t *testing.T) {
	p := newMemPanel(10, 10)
	p.err = errors.New("spi: bus fault")
	d := New(p, 10, 10)

	if err := d.Init(); !errors.Is(err, p.err) {
		t.Fatalf("Init: expected wrapped transport error, got %v", err)
	}
	if err := d.Clear(sprite.Black); !errors.Is(err, p.err) {
		t.Fatalf("Clear: expected wrapped transport error, got %v", err)
	}
	c := sprite.Circle{Center: sprite.Point{X: 5, Y: 5}, Diameter: 5}
	if err := d.Draw(c.Style(sprite.Black)); !errors.Is(err, p.err) {
		t.Fatalf("Draw: expected wrapped transport error, got %v", err)
	}
}

func TestSetPixelClips(t *testing.T) {
	p := newMemPanel(4, 4)
	d := New(p, 4, 4)
	d.SetPixel(-1, 0, sprite.White)
	d.SetPixel(4, 4, sprite.White)
	d.SetPixel(1, 2, sprite.White)
	if len(p.pix) != 1 || p.pix[[2]int16{1, 2}] != sprite.White {
		t.Fatalf("unexpected pixels: %v", p.pix)
	}
}
