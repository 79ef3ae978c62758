// Package display wraps a framebuffer-less panel with the small drawing
// surface the demo needs: init, orientation, full clears and filled circles.
//
// Every call goes straight to the controller over its transport and blocks
// until the transfer is done.
package display

import (
	"fmt"
	"image"
	"image/color"

	"joysprite/internal/sprite"

	"tinygo.org/x/drivers"
)

// Orientation is the logical rotation/mirror mode of the canvas.
type Orientation uint8

const (
	Portrait Orientation = iota
	Landscape
	PortraitSwapped
	LandscapeSwapped
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case PortraitSwapped:
		return "portrait-swapped"
	case LandscapeSwapped:
		return "landscape-swapped"
	default:
		return fmt.Sprintf("orientation(%d)", uint8(o))
	}
}

// Rotation maps o to the controller rotation used by tinygo drivers.
func (o Orientation) Rotation() drivers.Rotation {
	switch o {
	case Landscape:
		return drivers.Rotation90
	case PortraitSwapped:
		return drivers.Rotation180
	case LandscapeSwapped:
		return drivers.Rotation270
	default:
		return drivers.Rotation0
	}
}

// Swapped reports whether o exchanges the panel's width and height.
func (o Orientation) Swapped() bool {
	return o == Landscape || o == LandscapeSwapped
}

// Panel is the controller plus its transport. Coordinates are logical,
// after rotation; the panel does its own addressing.
type Panel interface {
	// Configure runs the controller's reset and power-on sequence.
	Configure() error
	SetRotation(r drivers.Rotation) error
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Driver draws on a Panel of a fixed native size.
type Driver struct {
	panel  Panel
	width  int16
	height int16
	orient Orientation
}

// New returns a driver for a panel whose native (portrait) size is w x h.
func New(p Panel, w, h int16) *Driver {
	return &Driver{panel: p, width: w, height: h}
}

// Init resets the controller.
func (d *Driver) Init() error {
	if err := d.panel.Configure(); err != nil {
		return fmt.Errorf("display: init: %w", err)
	}
	return nil
}

// SetOrientation applies o and updates the logical size.
func (d *Driver) SetOrientation(o Orientation) error {
	if o > LandscapeSwapped {
		return fmt.Errorf("display: invalid %s", o)
	}
	if err := d.panel.SetRotation(o.Rotation()); err != nil {
		return fmt.Errorf("display: set %s: %w", o, err)
	}
	d.orient = o
	return nil
}

// Orientation returns the mode last applied.
func (d *Driver) Orientation() Orientation { return d.orient }

// Size returns the logical canvas size.
func (d *Driver) Size() (x, y int16) {
	if d.orient.Swapped() {
		return d.height, d.width
	}
	return d.width, d.height
}

// Bounds returns the logical canvas as a rectangle.
func (d *Driver) Bounds() image.Rectangle {
	w, h := d.Size()
	return image.Rect(0, 0, int(w), int(h))
}

// Clear fills the whole canvas with c.
func (d *Driver) Clear(c color.RGBA) error {
	w, h := d.Size()
	if err := d.panel.FillRectangle(0, 0, w, h, c); err != nil {
		return fmt.Errorf("display: clear: %w", err)
	}
	return nil
}

// Draw rasterizes a filled circle. Parts outside the canvas are dropped.
func (d *Driver) Draw(p sprite.Styled) error {
	err := p.Spans(d.Bounds(), func(x, y, w int) error {
		return d.panel.FillRectangle(int16(x), int16(y), int16(w), 1, p.Fill)
	})
	if err != nil {
		return fmt.Errorf("display: draw: %w", err)
	}
	return nil
}

// FillRectangle fills a clipped rectangle.
func (d *Driver) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Intersect(d.Bounds())
	if r.Empty() {
		return nil
	}
	return d.panel.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), c)
}

// SetPixel sets one pixel; it lets tinyfont render on the driver.
func (d *Driver) SetPixel(x, y int16, c color.RGBA) {
	_ = d.FillRectangle(x, y, 1, 1, c)
}

// Display is a no-op: there is no framebuffer to flush.
func (d *Driver) Display() error { return nil }

var _ drivers.Displayer = (*Driver)(nil)
