package progress

import (
	"sync"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// barScale is the internal resolution a mpb.Bar is driven at; Sink reports
// fractions, mpb wants integer increments.
const barScale = 10000

// NewRenderer starts a new multi-bar terminal renderer for a CLI run.
func NewRenderer() *mpb.Progress {
	return mpb.New(mpb.WithWidth(48))
}

// Bar adapts one phase's Sink onto a live mpb.Bar, so the CLI can render
// the same Observable the orchestrator composes internally.
type Bar struct {
	mu       sync.Mutex
	bar      *mpb.Bar
	reported int64
}

// NewBar adds a labeled bar to renderer.
func NewBar(renderer *mpb.Progress, label string) *Bar {
	bar := renderer.AddBar(barScale,
		mpb.PrependDecorators(decor.Name(label)),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return &Bar{bar: bar}
}

// Sink returns the progress.Sink this bar should be fed.
func (b *Bar) Sink() Sink {
	return func(fraction float64, _ string) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if fraction < 0 {
			return
		}
		target := int64(fraction * barScale)
		if delta := target - b.reported; delta > 0 {
			b.bar.IncrBy(int(delta))
			b.reported = target
		}
	}
}

// Complete fills the bar to 100%, for phases that finish without ever
// reporting fraction == 1 exactly (e.g. zero-task plans).
func (b *Bar) Complete() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if remaining := barScale - b.reported; remaining > 0 {
		b.bar.IncrBy(int(remaining))
		b.reported = barScale
	}
}
