//go:build !tinygo && cgo

package hal

import (
	"os"

	"joysprite/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that shows the panel and maps the arrow
// keys to the joystick. It runs one loop iteration per tick at hz and blocks
// until the window closes or the app fails.
func RunWindow(newApp AppFunc, hz int) error {
	if hz <= 0 {
		hz = DefaultHz
	}
	h := newHostHAL(os.Stdout, newSwitchInput())
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	w, ht := h.panel.Size()
	ebiten.SetWindowTitle("joysprite (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(int(w)*2, int(ht)*2)
	ebiten.SetTPS(hz)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	gen     uint64
	step    func() error
}

func (g *hostGame) Update() error {
	pollJoystick(g.h.input)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.panel
	if gen := fb.generation(); g.fbImg == nil || gen != g.gen {
		var w, h int
		g.scratch, w, h = fb.snapshotRGBA(g.scratch)
		if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
			if g.fbImg != nil {
				g.fbImg.Deallocate()
			}
			g.fbImg = ebiten.NewImage(w, h)
		}
		g.fbImg.WritePixels(g.scratch)
		g.gen = gen
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.h.panel.viewSize()
	return int(w), int(h)
}
