// Package market standardizes the price payload shared between feeds and the engine.
package market

import "time"

// Tick models the essential pieces of market data consumed by the engine.
type Tick struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	Size   float64   `json:"size"`
	Side   int       `json:"side"` // +1 buy, -1 sell (aggressor)
	Ts     time.Time `json:"ts"`
}
