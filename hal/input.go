package hal

import "time"

// pinInput groups the four joystick lines.
type pinInput struct {
	up, down, left, right GPIOPin
}

func (in *pinInput) Up() GPIOPin    { return in.up }
func (in *pinInput) Down() GPIOPin  { return in.down }
func (in *pinInput) Left() GPIOPin  { return in.left }
func (in *pinInput) Right() GPIOPin { return in.right }

func newSwitchInput() *pinInput {
	return &pinInput{
		up:    newSwitchPin("JOY_UP"),
		down:  newSwitchPin("JOY_DOWN"),
		left:  newSwitchPin("JOY_LEFT"),
		right: newSwitchPin("JOY_RIGHT"),
	}
}

// newScriptedInput walks the joystick right, down, left and up, one second
// each, so a headless run traces a square.
func newScriptedInput() *pinInput {
	const period = 4 * time.Second
	return &pinInput{
		right: newSignalPin("JOY_RIGHT", period, 0, time.Second),
		down:  newSignalPin("JOY_DOWN", period, 1*time.Second, time.Second),
		left:  newSignalPin("JOY_LEFT", period, 2*time.Second, time.Second),
		up:    newSignalPin("JOY_UP", period, 3*time.Second, time.Second),
	}
}

// setSwitches closes the switches of a keyboard-driven input.
func (in *pinInput) setSwitches(up, down, left, right bool) {
	for _, s := range []struct {
		pin    GPIOPin
		closed bool
	}{{in.up, up}, {in.down, down}, {in.left, left}, {in.right, right}} {
		if sw, ok := s.pin.(*switchPin); ok {
			sw.setClosed(s.closed)
		}
	}
}
