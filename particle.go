package snowfall

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Particle is one simulated snowflake.
//
// X and Y are surface coordinates with the origin at the top-left corner and
// Y increasing down. Radius and FallSpeed are fixed when the particle is
// created; FallSpeed is the distance covered per logical tick.
type Particle struct {
	X, Y      float64
	Radius    float64
	FallSpeed float64
}

// Range is a closed interval [Min, Max] of positive values.
type Range struct {
	Min, Max float64
}

// Default simulation parameters.
var (
	// DefaultSizeRange is the radius range of a default field.
	DefaultSizeRange = Range{Min: 2, Max: 6}

	// DefaultSpeedRange is the per-tick fall distance range of a default field.
	DefaultSpeedRange = Range{Min: 2, Max: 6}
)

// Validate reports whether r is usable as a particle attribute range.
func (r Range) Validate() error {
	if !finite(r.Min) || !finite(r.Max) {
		return fmt.Errorf("%w: range [%v, %v] is not finite", ErrInvalidConfiguration, r.Min, r.Max)
	}
	if r.Min <= 0 {
		return fmt.Errorf("%w: range min %v must be positive", ErrInvalidConfiguration, r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: range min %v exceeds max %v", ErrInvalidConfiguration, r.Min, r.Max)
	}
	return nil
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// sample draws a uniform value from r.
func (r Range) sample(rng *rand.Rand) float64 {
	return uniform(rng, r.Min, r.Max)
}

// uniform returns a value in [lo, hi]. Degenerate intervals return lo.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	// hi-lo may overflow for huge surfaces; interpolate the endpoints instead.
	u := rng.Float64()
	return min(max(lo*(1-u)+hi*u, lo), hi)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
