// Package sprite holds the drawable primitives of the demo: a filled circle
// and the span rasterizer that turns it into rectangle fills.
package sprite

import (
	"image"
	"image/color"
)

// Point is a pixel coordinate on the logical canvas.
type Point struct {
	X int32
	Y int32
}

// Circle is a circle given by its center and its diameter in pixels.
type Circle struct {
	Center   Point
	Diameter uint32
}

// Styled is a circle with a solid fill.
type Styled struct {
	Circle
	Fill color.RGBA
}

// Style returns c filled with col.
func (c Circle) Style(col color.RGBA) Styled {
	return Styled{Circle: c, Fill: col}
}

// TopLeft returns the corner of the circle's bounding box.
func (c Circle) TopLeft() (x, y int64) {
	off := int64(0)
	if c.Diameter > 0 {
		off = int64(c.Diameter-1) / 2
	}
	return int64(c.Center.X) - off, int64(c.Center.Y) - off
}

// center2x is the center in doubled coordinates so even diameters stay exact.
func (c Circle) center2x() (x, y int64) {
	tx, ty := c.TopLeft()
	d := int64(c.Diameter)
	return tx*2 + d - 1, ty*2 + d - 1
}

// threshold is the squared doubled radius a pixel center must stay under.
// Small circles are shrunk a little so a 3px circle is a plus, not a square.
func (c Circle) threshold() int64 {
	d := int64(c.Diameter)
	if d <= 4 {
		return d*d - d/2
	}
	return d * d
}

// Contains reports whether the pixel at p is covered by the filled circle.
func (c Circle) Contains(x, y int64) bool {
	cx, cy := c.center2x()
	dx := cx - 2*x
	dy := cy - 2*y
	return dx*dx+dy*dy < c.threshold()
}

// Spans calls fn once per covered row with the visible part of that row,
// clipped to bounds. Rows fully outside bounds are skipped. Iteration stops
// at the first error.
func (c Circle) Spans(bounds image.Rectangle, fn func(x, y, w int) error) error {
	if c.Diameter == 0 || bounds.Empty() {
		return nil
	}
	tx, ty := c.TopLeft()
	d := int64(c.Diameter)
	cx, cy := c.center2x()
	th := c.threshold()

	for row := int64(0); row < d; row++ {
		y := ty + row
		if y < int64(bounds.Min.Y) || y >= int64(bounds.Max.Y) {
			continue
		}
		dy := cy - 2*y
		rem := th - dy*dy
		if rem <= 0 {
			continue
		}

		// Rows are symmetric around the center: find the first covered
		// column and mirror it.
		first := int64(-1)
		for col := int64(0); col < d; col++ {
			dx := cx - 2*(tx+col)
			if dx*dx < rem {
				first = col
				break
			}
		}
		if first < 0 {
			continue
		}
		x0 := tx + first
		x1 := tx + d - first

		if x0 < int64(bounds.Min.X) {
			x0 = int64(bounds.Min.X)
		}
		if x1 > int64(bounds.Max.X) {
			x1 = int64(bounds.Max.X)
		}
		if x0 >= x1 {
			continue
		}
		if err := fn(int(x0), int(y), int(x1-x0)); err != nil {
			return err
		}
	}
	return nil
}
