package sprite

import (
	"image"
	"math"
	"testing"
)

type span struct{ x, y, w int }

func collect(t *testing.T, c Circle, bounds image.Rectangle) []span {
	t.Helper()
	var out []span
	err := c.Spans(bounds, func(x, y, w int) error {
		out = append(out, span{x, y, w})
		return nil
	})
	if err != nil {
		t.Fatalf("Spans: %v", err)
	}
	return out
}

func TestCircleSpansSymmetric(t *testing.T) {
	c := Circle{Center: Point{X: 120, Y: 140}, Diameter: 25}
	spans := collect(t, c, image.Rect(0, 0, 240, 280))
	if len(spans) != 25 {
		t.Fatalf("expected 25 rows, got %d", len(spans))
	}

	widest := 0
	for _, s := range spans {
		left := 120 - s.x
		right := s.x + s.w - 1 - 120
		if left != right {
			t.Fatalf("row %d not symmetric: left=%d right=%d", s.y, left, right)
		}
		if s.w > widest {
			widest = s.w
		}
	}
	if widest != 25 {
		t.Fatalf("expected 25px across, got %d", widest)
	}
	if spans[0].y != 128 || spans[len(spans)-1].y != 152 {
		t.Fatalf("unexpected row range %d..%d", spans[0].y, spans[len(spans)-1].y)
	}
}

func TestCircleSpansMatchContains(t *testing.T) {
	c := Circle{Center: Point{X: 10, Y: 10}, Diameter: 8}
	covered := map[[2]int]bool{}
	for _, s := range collect(t, c, image.Rect(0, 0, 64, 64)) {
		for x := s.x; x < s.x+s.w; x++ {
			covered[[2]int{x, s.y}] = true
		}
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if covered[[2]int{x, y}] != c.Contains(int64(x), int64(y)) {
				t.Fatalf("span/contains mismatch at %d,%d", x, y)
			}
		}
	}
}

func TestCircleSpansClipped(t *testing.T) {
	c := Circle{Center: Point{X: 0, Y: 0}, Diameter: 25}
	for _, s := range collect(t, c, image.Rect(0, 0, 240, 280)) {
		if s.x < 0 || s.y < 0 || s.w <= 0 || s.x+s.w > 240 {
			t.Fatalf("span escaped bounds: %+v", s)
		}
	}

	off := Circle{Center: Point{X: -500, Y: 9000}, Diameter: 25}
	if spans := collect(t, off, image.Rect(0, 0, 240, 280)); len(spans) != 0 {
		t.Fatalf("expected no spans off-canvas, got %d", len(spans))
	}
}

func TestCircleSpansNearIntLimits(t *testing.T) {
	for _, p := range []Point{
		{X: math.MaxInt32, Y: math.MaxInt32},
		{X: math.MinInt32, Y: math.MinInt32},
	} {
		c := Circle{Center: p, Diameter: 25}
		if spans := collect(t, c, image.Rect(0, 0, 240, 280)); len(spans) != 0 {
			t.Fatalf("expected no visible spans at %+v, got %d", p, len(spans))
		}
	}
}

func TestSmallCircleIsPlus(t *testing.T) {
	c := Circle{Center: Point{X: 5, Y: 5}, Diameter: 3}
	if c.Contains(4, 4) || c.Contains(6, 6) {
		t.Fatal("corners should be outside a 3px circle")
	}
	if !c.Contains(5, 5) || !c.Contains(4, 5) || !c.Contains(5, 6) {
		t.Fatal("plus arms should be inside a 3px circle")
	}
}

func TestRGB565(t *testing.T) {
	if got := RGB565(Magenta); got != 0xF81F {
		t.Fatalf("magenta: got %#04x", got)
	}
	if got := RGB565(Red); got != 0xF800 {
		t.Fatalf("red: got %#04x", got)
	}
	if got := FromRGB565(0xFFFF); got != White {
		t.Fatalf("white round trip: got %+v", got)
	}
}
