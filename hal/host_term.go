//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Terminals only report key presses (with auto-repeat), never releases; a
// press keeps its switch closed for this long.
const termHold = 150 * time.Millisecond

// TermConfig controls the terminal runner.
type TermConfig struct {
	Hz int
	// Scale is how many panel pixels map to one terminal column.
	Scale int
}

// RunTerm draws the panel in the terminal with half-block characters and
// maps arrow keys to the joystick. Esc, q or Ctrl-C quits.
func RunTerm(ctx context.Context, newApp AppFunc, cfg TermConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = DefaultHz
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 4
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: %w", err)
	}
	defer screen.Fini()

	// Log lines would scribble over the canvas; keep the last one for the
	// status row instead.
	status := &statusLine{}
	h := newHostHAL(status, newSwitchInput())
	step, err := newApp(h)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := newTermKeys()
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					cancel()
					return
				}
				keys.press(ev.Key(), time.Now())
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	r := &termRenderer{screen: screen, fb: h.panel, scale: cfg.Scale, status: status}
	d := time.Second / time.Duration(cfg.Hz)
	err = runTicker(ctx, func() error {
		h.input.setSwitches(keys.held(time.Now()))
		if err := step(); err != nil {
			return err
		}
		r.render()
		return nil
	}, d, 0)
	if err == context.Canceled {
		return nil
	}
	return err
}

type termKeys struct {
	mu    sync.Mutex
	until map[tcell.Key]time.Time
}

func newTermKeys() *termKeys {
	return &termKeys{until: map[tcell.Key]time.Time{}}
}

func (k *termKeys) press(key tcell.Key, now time.Time) {
	switch key {
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
	default:
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.until[key] = now.Add(termHold)
}

func (k *termKeys) held(now time.Time) (up, down, left, right bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	on := func(key tcell.Key) bool { return now.Before(k.until[key]) }
	return on(tcell.KeyUp), on(tcell.KeyDown), on(tcell.KeyLeft), on(tcell.KeyRight)
}

type statusLine struct {
	mu   sync.Mutex
	last string
}

var _ io.Writer = (*statusLine)(nil)

func (s *statusLine) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := string(p)
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	if line != "" {
		s.last = line
	}
	return len(p), nil
}

func (s *statusLine) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

type termRenderer struct {
	screen tcell.Screen
	fb     *framebufferPanel
	scale  int
	status *statusLine
	gen    uint64
	drawn  bool
}

// render paints two panel rows per terminal row: '▀' with the upper sample
// as foreground and the lower one as background.
func (r *termRenderer) render() {
	gen := r.fb.generation()
	if r.drawn && gen == r.gen {
		return
	}
	r.gen = gen
	r.drawn = true

	w, h := r.fb.viewSize()
	cols := int(w) / r.scale
	rows := int(h) / (2 * r.scale)
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			top := r.fb.at(tx*r.scale, 2*ty*r.scale)
			bot := r.fb.at(tx*r.scale, (2*ty+1)*r.scale)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			r.screen.SetContent(tx, ty, '▀', nil, style)
		}
	}

	line := []rune(r.status.String())
	sw, _ := r.screen.Size()
	for x := 0; x < sw; x++ {
		ch := ' '
		if x < len(line) {
			ch = line[x]
		}
		r.screen.SetContent(x, rows, ch, nil, tcell.StyleDefault)
	}
	r.screen.Show()
}
