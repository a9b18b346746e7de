// Package progress implements the §6/§9 progress model: a small polymorphic
// capability the orchestrator can swap between phases, composed from
// sub-ranges via a linear filter adapter.
package progress

import "sync"

// Observable is the capability §6 specifies: a fraction in [-1,1] (-1 means
// indeterminate) plus a localized status string.
type Observable interface {
	Fraction() float64
	Status() string
}

// Snapshot is a plain Observable value.
type Snapshot struct {
	F float64
	S string
}

func (s Snapshot) Fraction() float64 { return s.F }
func (s Snapshot) Status() string    { return s.S }

// Indeterminate is the Snapshot used before any concrete progress exists.
func Indeterminate(status string) Snapshot {
	return Snapshot{F: -1, S: status}
}

// Sink is what a phase reports progress into.
type Sink func(fraction float64, status string)

// Filter linearly maps a phase's own [0,1] fraction into [lo,hi] before
// forwarding to inner -- the ProgressFilter adapter from §9, used to
// compose the downloader's [0,1] into the orchestrator's [0, 0.98] and the
// install phase's [0.98, 1].
func Filter(lo, hi float64, inner Sink) Sink {
	return func(fraction float64, status string) {
		if inner == nil {
			return
		}
		if fraction < 0 {
			inner(-1, status)
			return
		}
		inner(lo+fraction*(hi-lo), status)
	}
}

// Cell is the "pointer-to-capability cell" §9 calls for: single-writer
// (whoever owns it swaps the Observable between phases), many-reader (a UI
// polling it).
type Cell struct {
	mu      sync.RWMutex
	current Observable
}

// NewCell returns a Cell starting out indeterminate.
func NewCell() *Cell {
	return &Cell{current: Indeterminate("")}
}

// Set swaps the current Observable.
func (c *Cell) Set(o Observable) {
	c.mu.Lock()
	c.current = o
	c.mu.Unlock()
}

// Get returns the current Observable.
func (c *Cell) Get() Observable {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Sink returns a Sink that writes directly into the cell.
func (c *Cell) Sink() Sink {
	return func(fraction float64, status string) {
		c.Set(Snapshot{F: fraction, S: status})
	}
}
