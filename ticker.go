package snowfall

import "time"

// Ticker delivers scheduling ticks to a Renderer.
//
// Implementations must not buffer more than one pending tick; the renderer
// relies on this to drop beats instead of building a backlog.
type Ticker interface {
	// C returns the channel ticks are delivered on.
	C() <-chan time.Time

	// Stop releases the ticker. No ticks are delivered after Stop.
	Stop()
}

// timeTicker adapts time.Ticker, whose channel has a buffer of one.
type timeTicker struct {
	t *time.Ticker
}

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }
