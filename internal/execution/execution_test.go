package execution

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"joltshark-go/internal/strategy"
)

func TestSubmitLogsDecision(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	exec := NewExecutor(logger)
	err := exec.Submit("SOLUSDT", strategy.Decision{
		Policy:    strategy.ModeTickRange,
		Action:    string(strategy.Rebalance),
		TickLower: -120,
		TickUpper: 80,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"SOLUSDT", `"action":"REBALANCE"`, `"tick_lower":-120`, "submit command"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log does not contain %s: %s", want, out)
		}
	}
}

func TestSubmitLogsGridPrice(t *testing.T) {
	var buf bytes.Buffer
	exec := NewExecutor(zerolog.New(&buf))
	if err := exec.Submit("BTCUSDT", strategy.Decision{Policy: strategy.ModeGrid, Action: string(strategy.GridBuy), Price: 99.5}); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"px":99.5`) {
		t.Fatalf("log does not contain price: %s", buf.String())
	}
}
