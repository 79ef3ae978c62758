package hal

import (
	"testing"
	"time"
)

func TestSignalPinRead(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	pin := newSignalPinWithClock("SIG", 10*time.Second, 4*time.Second, 2*time.Second, clock)
	if pin == nil {
		t.Fatal("expected pin")
	}

	if _, err := pin.Read(); err == nil {
		t.Fatal("expected error before Configure")
	}
	if err := pin.Configure(GPIOModeInput, GPIOPullNone); err == nil {
		t.Fatal("expected error without pull-up")
	}
	if err := pin.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	level, err := pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected released (high) at t=0")
	}

	now = now.Add(5 * time.Second)
	level, err = pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if level {
		t.Fatal("expected pressed (low) at t=5s")
	}

	now = now.Add(2 * time.Second) // t=7s, past the hold window
	level, err = pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected released at t=7s")
	}

	now = now.Add(8 * time.Second) // t=15s => phase 5s, pressed again
	level, err = pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if level {
		t.Fatal("expected pressed at t=15s")
	}
}

func TestSwitchPinActiveLow(t *testing.T) {
	p := newSwitchPin("JOY_UP")
	if _, err := p.Read(); err == nil {
		t.Fatal("expected error before Configure")
	}
	if err := p.Configure(GPIOModeOutput, GPIOPullNone); err == nil {
		t.Fatal("expected output mode to be rejected")
	}
	if err := p.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	level, err := p.Read()
	if err != nil || !level {
		t.Fatalf("expected pulled-up high when released, got %v, %v", level, err)
	}

	p.setClosed(true)
	if level, _ := p.Read(); level {
		t.Fatal("expected low while pressed")
	}

	p.setClosed(false)
	if err := p.Configure(GPIOModeInput, GPIOPullDown); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if level, _ := p.Read(); level {
		t.Fatal("expected pulled-down low when released")
	}
}

func TestSetSwitches(t *testing.T) {
	in := newSwitchInput()
	for _, p := range []GPIOPin{in.Up(), in.Down(), in.Left(), in.Right()} {
		if err := p.Configure(GPIOModeInput, GPIOPullUp); err != nil {
			t.Fatalf("Configure %s: %v", p.Name(), err)
		}
	}

	in.setSwitches(false, true, true, false)
	want := map[string]bool{"JOY_UP": true, "JOY_DOWN": false, "JOY_LEFT": false, "JOY_RIGHT": true}
	for _, p := range []GPIOPin{in.Up(), in.Down(), in.Left(), in.Right()} {
		level, err := p.Read()
		if err != nil {
			t.Fatalf("Read %s: %v", p.Name(), err)
		}
		if level != want[p.Name()] {
			t.Fatalf("%s: level %v, want %v", p.Name(), level, want[p.Name()])
		}
	}
}

type recordPin struct {
	levels []bool
}

func (p *recordPin) Name() string                       { return "REC" }
func (p *recordPin) Caps() GPIOCaps                     { return GPIOCapOutput }
func (p *recordPin) Configure(GPIOMode, GPIOPull) error { return nil }
func (p *recordPin) Read() (bool, error)                { return false, nil }
func (p *recordPin) Write(level bool) error {
	p.levels = append(p.levels, level)
	return nil
}

func TestGPIOLED(t *testing.T) {
	p := &recordPin{}
	l := &gpioLED{pin: p}
	l.High()
	l.Low()
	if len(p.levels) != 2 || !p.levels[0] || p.levels[1] {
		t.Fatalf("unexpected writes %v", p.levels)
	}
}
