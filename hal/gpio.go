package hal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

func checkConfig(name string, caps GPIOCaps, mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeInput:
		if caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", name)
		}
	case GPIOModeOutput:
		if caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", name)
		}
	case GPIOPullDown:
		if caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}
	return nil
}

// switchPin is an input wired to a normally-open switch to ground. A host
// backend closes the switch from keyboard state.
type switchPin struct {
	mu         sync.Mutex
	name       string
	configured bool
	pull       GPIOPull
	closed     bool
}

func newSwitchPin(name string) *switchPin {
	return &switchPin{name: name}
}

func (p *switchPin) Name() string { return p.name }
func (p *switchPin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *switchPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configured = true
	p.pull = pull
	return nil
}

// setClosed presses (true) or releases the switch.
func (p *switchPin) setClosed(closed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = closed
}

func (p *switchPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	if p.closed {
		return false, nil
	}
	// A released switch leaves the line to the pull resistor; a floating
	// line reads high on this hardware.
	return p.pull != GPIOPullDown, nil
}

func (p *switchPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// signalPin is a switch pressed on a fixed schedule: closed for `hold`
// starting at `phase` within every `period`.
type signalPin struct {
	mu   sync.Mutex
	name string

	configured bool

	t0     time.Time
	now    func() time.Time
	period time.Duration
	phase  time.Duration
	hold   time.Duration
}

func newSignalPin(name string, period, phase, hold time.Duration) GPIOPin {
	return newSignalPinWithClock(name, period, phase, hold, time.Now)
}

func newSignalPinWithClock(name string, period, phase, hold time.Duration, now func() time.Time) GPIOPin {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = 1 * time.Second
	}
	phase %= period
	if phase < 0 {
		phase += period
	}
	if hold < 0 {
		hold = 0
	}
	if hold > period {
		hold = period
	}
	return &signalPin{
		name:   name,
		t0:     now(),
		now:    now,
		period: period,
		phase:  phase,
		hold:   hold,
	}
}

func (p *signalPin) Name() string   { return p.name }
func (p *signalPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *signalPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: only input supported", p.name)
	}
	if pull != GPIOPullUp {
		return fmt.Errorf("gpio: pin %s: needs pull-up", p.name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configured = true
	return nil
}

func (p *signalPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured for input", p.name)
	}

	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	at := (elapsed%p.period - p.phase + p.period) % p.period
	return at >= p.hold, nil
}

func (p *signalPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// gpioLED drives an LED through an output-capable GPIOPin, logging failures
// since LED has no error path.
type gpioLED struct {
	pin    GPIOPin
	logger Logger
}

func (l *gpioLED) set(level bool) {
	if err := l.pin.Write(level); err != nil && l.logger != nil {
		l.logger.WriteLineString(err.Error())
	}
}

func (l *gpioLED) High() { l.set(true) }
func (l *gpioLED) Low()  { l.set(false) }
