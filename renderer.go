package snowfall

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickInterval is the scheduling interval used when Start is given a
// non-positive interval (50 Hz).
const DefaultTickInterval = 20 * time.Millisecond

// Canvas is the immediate-mode drawing subset the renderer needs.
// *gg.Context satisfies it, as do the record and term canvases.
type Canvas interface {
	// SetColor sets the color used by subsequent fills.
	SetColor(c color.Color)

	// DrawCircle appends a circle centered at (x, y) to the current path.
	DrawCircle(x, y, r float64)

	// Fill fills and clears the current path.
	Fill() error
}

// Renderer drives a Field on a fixed tick and draws particle snapshots.
//
// A Renderer can be started again after Stop. The zero value is not usable;
// create one with NewRenderer.
type Renderer struct {
	color     color.Color
	newTicker func(time.Duration) Ticker

	// life serializes Start and Stop, so a Start cannot begin while a Stop
	// still waits for the previous loop.
	life sync.Mutex

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}

	ticks atomic.Uint64
}

// NewRenderer creates a renderer that fills flakes in white unless
// configured otherwise.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		color:     o.color,
		newTicker: o.newTicker,
	}
}

// Color returns the flake fill color.
func (r *Renderer) Color() color.Color {
	return r.color
}

// Start schedules field to advance every interval and calls onFrame with the
// new snapshot after each advance. A non-positive interval means
// DefaultTickInterval.
//
// Ticks run one at a time on a dedicated goroutine and never queue: if
// onFrame is still busy when the next tick is due, that beat is dropped.
// The slice passed to onFrame is reused by the next tick; copy it to retain
// it past the callback.
//
// Returns an error wrapping ErrInvalidConfiguration for a nil field or
// callback, and ErrRunning if the renderer is already started. A Start that
// races a Stop waits for it to finish. Start must not be called from inside
// onFrame.
func (r *Renderer) Start(field *Field, interval time.Duration, onFrame func([]Particle)) error {
	if field == nil {
		return fmt.Errorf("%w: nil field", ErrInvalidConfiguration)
	}
	if onFrame == nil {
		return fmt.Errorf("%w: nil frame callback", ErrInvalidConfiguration)
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	r.life.Lock()
	defer r.life.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return ErrRunning
	}

	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.loop(field, r.newTicker(interval), onFrame, r.stop, r.done)

	Logger().Info("snowfall: renderer started", "interval", interval, "particles", field.Len())
	return nil
}

// Stop cancels the schedule and waits for an in-flight tick to finish, so no
// onFrame call happens after Stop returns. Stop is idempotent and safe to call
// before Start. It must not be called from inside onFrame.
func (r *Renderer) Stop() {
	r.life.Lock()
	defer r.life.Unlock()

	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done

	Logger().Info("snowfall: renderer stopped", "ticks", r.ticks.Load())
}

// Running reports whether the renderer is scheduled.
func (r *Renderer) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

// Ticks returns the number of ticks processed since the renderer was created.
func (r *Renderer) Ticks() uint64 {
	return r.ticks.Load()
}

func (r *Renderer) loop(field *Field, t Ticker, onFrame func([]Particle), stop, done chan struct{}) {
	defer close(done)
	defer t.Stop()

	var buf []Particle
	for {
		select {
		case <-stop:
			return
		case <-t.C():
		}

		// Stop may have raced a pending tick.
		select {
		case <-stop:
			return
		default:
		}

		field.Advance(1)
		buf = field.SnapshotInto(buf)
		r.ticks.Add(1)
		onFrame(buf)
	}
}

// Draw issues one filled circle per particle, in sequence order, centered at
// (X, Y) with radius Radius, in the renderer color.
//
// The first Fill error aborts the frame and is returned.
func (r *Renderer) Draw(particles []Particle, c Canvas) error {
	c.SetColor(r.color)
	for i, p := range particles {
		c.DrawCircle(p.X, p.Y, p.Radius)
		if err := c.Fill(); err != nil {
			return fmt.Errorf("snowfall: draw particle %d: %w", i, err)
		}
	}
	return nil
}
