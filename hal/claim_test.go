package hal

import (
	"errors"
	"testing"
)

func TestClaimOnce(t *testing.T) {
	var c claim
	if err := c.take(); err != nil {
		t.Fatalf("first take: %v", err)
	}
	if err := c.take(); !errors.Is(err, ErrAlreadyTaken) {
		t.Fatalf("expected ErrAlreadyTaken, got %v", err)
	}
}
