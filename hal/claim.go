package hal

import "sync"

// claim hands out the peripheral set once per process.
type claim struct {
	mu    sync.Mutex
	taken bool
}

var peripherals claim

func (c *claim) take() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.taken {
		return ErrAlreadyTaken
	}
	c.taken = true
	return nil
}

// mustTake panics on a second acquisition; that is a programming error.
func mustTake() {
	if err := peripherals.take(); err != nil {
		panic(err)
	}
}
