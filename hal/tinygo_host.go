//go:build tinygo && !baremetal

package hal

import (
	"fmt"
	"runtime"
)

type tinyGoHostHAL struct {
	logger    printLogger
	led       *tinyGoHostLED
	backlight *tinyGoHostLED
	panel     *framebufferPanel
	input     *pinInput
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping. The joystick follows a fixed script.
func New() HAL {
	mustTake()
	return &tinyGoHostHAL{
		led:       &tinyGoHostLED{name: "led"},
		backlight: &tinyGoHostLED{name: "backlight"},
		panel:     newFramebufferPanel(240, 280),
		input:     newScriptedInput(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger { return h.logger }
func (h *tinyGoHostHAL) Clocks() Clocks {
	return Clocks{ReferenceHz: 12_000_000, SystemHz: 125_000_000, SPIHz: 125_000_000}
}
func (h *tinyGoHostHAL) LED() LED         { return h.led }
func (h *tinyGoHostHAL) Backlight() LED   { return h.backlight }
func (h *tinyGoHostHAL) Display() Display { return h.panel }
func (h *tinyGoHostHAL) Input() Input     { return h.input }
func (h *tinyGoHostHAL) Delay() Delay     { return sleepDelay{} }

type tinyGoHostLED struct {
	name string
	on   bool
}

func (l *tinyGoHostLED) High() {
	l.on = true
	println(fmt.Sprintf("%s: HIGH (tinygo/%s)", l.name, runtime.GOOS))
}

func (l *tinyGoHostLED) Low() {
	l.on = false
	println(fmt.Sprintf("%s: LOW (tinygo/%s)", l.name, runtime.GOOS))
}
