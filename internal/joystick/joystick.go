// Package joystick samples a four-way joystick built from momentary
// switches that pull their line to ground when pressed.
package joystick

import "fmt"

// Direction names one of the four switches.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Line reads the instantaneous level of one input; true is logic high.
type Line interface {
	Read() (level bool, err error)
}

// State is one sample of all four switches; true means pressed.
type State struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Any reports whether at least one switch is pressed.
func (s State) Any() bool { return s.Up || s.Down || s.Left || s.Right }

// Sampler reads the switches. It keeps no state between calls and does not
// debounce.
type Sampler struct {
	lines [4]Line
}

// NewSampler returns a sampler over the four lines.
func NewSampler(up, down, left, right Line) *Sampler {
	return &Sampler{lines: [4]Line{up, down, left, right}}
}

// IsAsserted reports whether the switch for d is pressed, i.e. its line
// reads low.
func (s *Sampler) IsAsserted(d Direction) (bool, error) {
	if int(d) >= len(s.lines) {
		return false, fmt.Errorf("joystick: invalid %s", d)
	}
	l := s.lines[d]
	if l == nil {
		return false, fmt.Errorf("joystick: %s: no line", d)
	}
	level, err := l.Read()
	if err != nil {
		return false, fmt.Errorf("joystick: %s: %w", d, err)
	}
	return !level, nil
}

// Sample reads all four switches in order up, down, left, right.
func (s *Sampler) Sample() (State, error) {
	var st State
	var err error
	if st.Up, err = s.IsAsserted(Up); err != nil {
		return State{}, err
	}
	if st.Down, err = s.IsAsserted(Down); err != nil {
		return State{}, err
	}
	if st.Left, err = s.IsAsserted(Left); err != nil {
		return State{}, err
	}
	if st.Right, err = s.IsAsserted(Right); err != nil {
		return State{}, err
	}
	return st, nil
}
