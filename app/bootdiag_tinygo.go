//go:build tinygo && bootdebug

package app

import (
	"machine"
	"sync"
	"time"

	"joysprite/hal"
)

var (
	bootDiagMu      sync.Mutex
	bootDiagStep    string
	bootDiagStarted bool
)

// bootStep records the bring-up stage and, on first use, starts repeating
// it to USB CDC so a late-attached console still sees where boot stopped.
func bootStep(h hal.HAL, msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	start := !bootDiagStarted
	bootDiagStarted = true
	bootDiagMu.Unlock()

	if start {
		go bootDiagLoop()
	}
	logf(h.Logger(), "bootdiag: %s", msg)
}

func bootDiagLoop() {
	for {
		bootDiagMu.Lock()
		step := bootDiagStep
		bootDiagMu.Unlock()

		if usb := machine.USBCDC; usb != nil {
			_, _ = usb.Write([]byte("bootdiag: " + step + "\r\n"))
		}
		time.Sleep(250 * time.Millisecond)
	}
}
