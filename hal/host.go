//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Native size of the simulated panel.
const (
	hostPanelWidth  = 240
	hostPanelHeight = 280
)

type hostHAL struct {
	logger    *hostLogger
	led       *hostLED
	backlight *hostLED
	panel     *framebufferPanel
	input     *pinInput
}

// New returns a host HAL: an in-memory panel and four joystick switches
// that stay released until a backend closes them.
func New() HAL {
	return newHostHAL(os.Stdout, newSwitchInput())
}

func newHostHAL(w io.Writer, in *pinInput) *hostHAL {
	mustTake()
	logger := &hostLogger{w: w}
	return &hostHAL{
		logger:    logger,
		led:       &hostLED{name: "led", logger: logger},
		backlight: &hostLED{name: "backlight", logger: logger},
		panel:     newFramebufferPanel(hostPanelWidth, hostPanelHeight),
		input:     in,
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) Clocks() Clocks {
	return Clocks{ReferenceHz: 12_000_000, SystemHz: 125_000_000, SPIHz: 125_000_000}
}
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) Backlight() LED   { return h.backlight }
func (h *hostHAL) Display() Display { return h.panel }
func (h *hostHAL) Input() Input     { return h.input }
func (h *hostHAL) Delay() Delay     { return sleepDelay{} }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	name   string
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString(l.name + ": HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString(l.name + ": LOW")
}
