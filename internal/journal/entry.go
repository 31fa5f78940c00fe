// Package journal keeps a record of every evaluated decision.
package journal

import (
	"time"

	"joltshark-go/internal/strategy"
)

// Pulse is the event-pulse reading of one scheduled event at decision time.
type Pulse struct {
	Event  string  `json:"event"`
	Region string  `json:"region"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Entry is one evaluation of the engine.
type Entry struct {
	Symbol      string            `json:"symbol"`
	Ts          time.Time         `json:"ts"`
	Derivatives []float64         `json:"derivatives"`
	Decision    strategy.Decision `json:"decision"`
	Pulses      []Pulse           `json:"pulses,omitempty"`
}

// Recorder captures entries for later inspection.
type Recorder interface {
	Record(Entry)
}
