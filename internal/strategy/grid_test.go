package strategy

import (
	"testing"

	"joltshark-go/internal/state"
)

var testGrid = GridConfig[float64]{BasePrice: 100, UpperPrice: 120, LowerPrice: 80, Spacing: 2.5}

func TestEvaluateGridExitOnJolt(t *testing.T) {
	cmd := EvaluateGrid(state.MustNew(105.0, 1, 0.5, -12), testGrid, 10)
	if cmd.Action != GridExit {
		t.Fatalf("expected exit, got %s", cmd.Action)
	}
}

func TestEvaluateGridHoldReportsLevel(t *testing.T) {
	cmd := EvaluateGrid(state.MustNew(105.0, 1, 0.5, 3), testGrid, 10)
	if cmd.Action != GridHold {
		t.Fatalf("expected hold, got %s", cmd.Action)
	}
	if cmd.Level != 2 {
		t.Fatalf("expected level 2, got %.2f", cmd.Level)
	}
}

func TestEvaluateGridWithoutJoltSkipsCutoff(t *testing.T) {
	cmd := EvaluateGrid(state.MustNew(95.0, 1e6), testGrid, 10)
	if cmd.Action != GridHold {
		t.Fatalf("expected hold without jolt term, got %s", cmd.Action)
	}
	if cmd.Level != -2 {
		t.Fatalf("expected level -2, got %.2f", cmd.Level)
	}
}

func TestEvaluateGridWaitsWithoutPosition(t *testing.T) {
	cmd := EvaluateGrid(state.MustNew[float64](), testGrid, 10)
	if cmd.Action != GridWait {
		t.Fatalf("expected wait, got %s", cmd.Action)
	}
}

func TestGridValidate(t *testing.T) {
	if err := testGrid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := testGrid
	bad.Spacing = 0
	if bad.Validate() == nil {
		t.Fatalf("expected zero spacing to fail")
	}
}

func TestGridCommandConstructors(t *testing.T) {
	buy := NewGridBuy(float32(99.5))
	if buy.Action != GridBuy || buy.Price != 99.5 {
		t.Fatalf("unexpected buy %+v", buy)
	}
	sell := NewGridSell(101.0)
	if sell.Action != GridSell || sell.Price != 101 {
		t.Fatalf("unexpected sell %+v", sell)
	}
}
