package hal

import (
	"errors"
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
)

// framebufferPanel simulates a panel in memory for hosted targets. It keeps
// logical (rotated) pixels, so a viewer shows the canvas the way a user
// facing the mounted glass would see it.
type framebufferPanel struct {
	mu       sync.Mutex
	width    int16
	height   int16
	rotation drivers.Rotation
	stride   int
	buf      []byte
	gen      uint64
	fills    uint64
}

func newFramebufferPanel(width, height int16) *framebufferPanel {
	f := &framebufferPanel{width: width, height: height}
	f.resize()
	return f
}

func (f *framebufferPanel) logicalSize() (int16, int16) {
	if f.rotation == drivers.Rotation90 || f.rotation == drivers.Rotation270 {
		return f.height, f.width
	}
	return f.width, f.height
}

// viewSize is logicalSize for callers outside the lock.
func (f *framebufferPanel) viewSize() (int16, int16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logicalSize()
}

func (f *framebufferPanel) resize() {
	w, h := f.logicalSize()
	f.stride = int(w) * 2
	f.buf = make([]byte, f.stride*int(h))
}

func (f *framebufferPanel) Size() (x, y int16) { return f.width, f.height }

func (f *framebufferPanel) Configure() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rotation = drivers.Rotation0
	f.resize()
	f.gen++
	return nil
}

func (f *framebufferPanel) SetRotation(r drivers.Rotation) error {
	if r > drivers.Rotation270 {
		return errors.New("framebuffer: invalid rotation")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r == f.rotation {
		return nil
	}
	f.rotation = r
	// Controller RAM is not remapped on a real panel either; start blank.
	f.resize()
	f.gen++
	return nil
}

func (f *framebufferPanel) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	w, h := f.logicalSize()
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x+width > w || y+height > h {
		return errors.New("framebuffer: invalid window")
	}

	pixel := rgb565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for py := int(y); py < int(y)+int(height); py++ {
		row := py * f.stride
		for px := int(x); px < int(x)+int(width); px++ {
			off := row + px*2
			f.buf[off] = lo
			f.buf[off+1] = hi
		}
	}
	f.gen++
	f.fills++
	return nil
}

// generation changes whenever the pixels may have changed.
func (f *framebufferPanel) generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

// snapshotRGBA copies the canvas into dst as 8-bit RGBA and returns the
// logical size. dst is grown when needed.
func (f *framebufferPanel) snapshotRGBA(dst []byte) ([]byte, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w, h := f.logicalSize()
	n := int(w) * int(h) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, j := 0, 0; i+1 < len(f.buf); i, j = i+2, j+4 {
		r, g, b := rgb888From565(uint16(f.buf[i]) | uint16(f.buf[i+1])<<8)
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
	return dst, int(w), int(h)
}

// at returns the pixel at logical (x, y).
func (f *framebufferPanel) at(x, y int) color.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	if x < 0 || y < 0 || off < 0 || off+1 >= len(f.buf) || x*2 >= f.stride {
		return color.RGBA{}
	}
	r, g, b := rgb888From565(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}
