package bridge

import "testing"

func TestNop(t *testing.T) {
	if got := Nop(); got != StatusOK {
		t.Fatalf("expected %q, got %q", StatusOK, got)
	}
}
