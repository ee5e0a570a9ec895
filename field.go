package snowfall

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// DefaultCount is the number of particles in a default field.
const DefaultCount = 100

// Field is a fixed-size pool of falling particles.
//
// The particle count is chosen at construction and never changes: particles
// that fall past the bottom of the surface are recycled in place to the top.
// Advance is O(N) and allocation-free.
//
// Field is safe for concurrent use. Advance, Resize and Snapshot serialize on
// an internal mutex, so a resize signalled from a host goroutine is fully
// visible before the next Advance.
type Field struct {
	mu        sync.Mutex
	particles []Particle
	width     float64
	height    float64
	size      Range
	speed     Range
	recycled  uint64

	recycleY         float64
	respawnVariation bool
	rng              *rand.Rand
}

// NewField creates a field of n particles on a width x height surface.
//
// Particles are placed with X uniform in [0, width] and Y uniform in
// [-height, height], so the field already looks populated on the first frame.
// Radius is drawn from size and FallSpeed from speed.
//
// Returns an error wrapping ErrInvalidConfiguration if n <= 0, if width or
// height is not a positive finite number, or if either range is invalid.
func NewField(n int, width, height float64, size, speed Range, opts ...FieldOption) (*Field, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: particle count %d must be positive", ErrInvalidConfiguration, n)
	}
	if !finite(width) || !finite(height) || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%v, height=%v", ErrInvalidConfiguration, width, height)
	}
	if err := size.Validate(); err != nil {
		return nil, fmt.Errorf("size: %w", err)
	}
	if err := speed.Validate(); err != nil {
		return nil, fmt.Errorf("speed: %w", err)
	}

	o := defaultFieldOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	f := &Field{
		particles:        make([]Particle, n),
		width:            width,
		height:           height,
		size:             size,
		speed:            speed,
		recycleY:         o.recycleY,
		respawnVariation: o.respawnVariation,
		rng:              o.rng,
	}
	for i := range f.particles {
		f.particles[i] = Particle{
			X:         uniform(f.rng, 0, width),
			Y:         uniform(f.rng, -height, height),
			Radius:    size.sample(f.rng),
			FallSpeed: speed.sample(f.rng),
		}
	}

	Logger().Debug("snowfall: field created",
		"count", n, "width", width, "height", height,
		"size", size, "speed", speed, "recycleY", f.recycleY)
	return f, nil
}

// Advance moves every particle down by FallSpeed*dt and recycles the ones
// that fell below the surface.
//
// dt is the logical tick scale: FallSpeed already encodes the displacement of
// one tick, so the scheduler always passes 1. Non-positive or non-finite dt
// leaves the field untouched.
//
// While the surface has no valid size (width or height <= 0) the recycle
// check is skipped and particles simply keep falling.
func (f *Field) Advance(dt float64) {
	if !finite(dt) || dt <= 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	canRecycle := f.width > 0 && f.height > 0
	for i := range f.particles {
		p := &f.particles[i]
		p.Y += p.FallSpeed * dt
		if canRecycle && p.Y > f.height {
			f.recycle(p)
		}
	}
}

// recycle moves p back to the top at a new horizontal position.
// Must be called with f.mu held.
func (f *Field) recycle(p *Particle) {
	p.Y = f.recycleY
	p.X = uniform(f.rng, 0, f.width)
	if f.respawnVariation {
		p.Radius = f.size.sample(f.rng)
		p.FallSpeed = f.speed.sample(f.rng)
	}
	f.recycled++
}

// Snapshot returns a copy of the current particles in sequence order.
// The caller owns the returned slice.
func (f *Field) Snapshot() []Particle {
	return f.SnapshotInto(nil)
}

// SnapshotInto copies the current particles into dst, growing it if needed,
// and returns the result. Reusing the returned slice across frames keeps the
// steady state allocation-free.
func (f *Field) SnapshotInto(dst []Particle) []Particle {
	f.mu.Lock()
	defer f.mu.Unlock()

	dst = append(dst[:0], f.particles...)
	return dst
}

// Resize updates the surface dimensions used for recycling.
// Existing particles are not moved. Negative or NaN dimensions are stored as
// zero, which disables recycling until a valid size is observed.
func (f *Field) Resize(width, height float64) {
	width, height = sanitizeDim(width), sanitizeDim(height)

	f.mu.Lock()
	f.width, f.height = width, height
	f.mu.Unlock()

	Logger().Debug("snowfall: field resized", "width", width, "height", height)
}

// Size returns the last known surface dimensions.
func (f *Field) Size() (width, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

// Len returns the particle count. It never changes after construction.
func (f *Field) Len() int {
	return len(f.particles)
}

// RecycleY returns the Y coordinate recycled particles restart from.
func (f *Field) RecycleY() float64 {
	return f.recycleY
}

// Recycled returns the total number of recycles since construction.
func (f *Field) Recycled() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recycled
}

func sanitizeDim(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}
