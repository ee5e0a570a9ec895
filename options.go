package snowfall

import (
	"image/color"
	"math/rand/v2"
	"time"
)

// FieldOption configures a Field during creation.
//
// Example:
//
//	// Default recycling at y = -10 with a random seed
//	f, err := snowfall.NewField(100, 390, 844, snowfall.DefaultSizeRange, snowfall.DefaultSpeedRange)
//
//	// Reproducible field for captures and tests
//	f, err := snowfall.NewField(100, 390, 844, size, speed, snowfall.WithSeed(42))
type FieldOption func(*fieldOptions)

// fieldOptions holds optional configuration for Field creation.
type fieldOptions struct {
	recycleY         float64
	rng              *rand.Rand
	respawnVariation bool
}

// DefaultRecycleY is the Y coordinate a recycled particle restarts from.
// It is slightly above the visible area so the particle slides in.
const DefaultRecycleY = -10.0

func defaultFieldOptions() fieldOptions {
	return fieldOptions{
		recycleY: DefaultRecycleY,
		rng:      nil, // seeded from the runtime source if nil
	}
}

// WithRecycleY sets the Y coordinate recycled particles restart from.
// Non-finite values are ignored.
func WithRecycleY(y float64) FieldOption {
	return func(o *fieldOptions) {
		if finite(y) {
			o.recycleY = y
		}
	}
}

// WithRand sets the random source used for placement and recycling.
// The Field takes ownership of r; it must not be shared with other goroutines.
func WithRand(r *rand.Rand) FieldOption {
	return func(o *fieldOptions) {
		o.rng = r
	}
}

// WithSeed makes placement and recycling reproducible.
// It is shorthand for WithRand with a PCG source seeded by seed.
func WithSeed(seed uint64) FieldOption {
	return func(o *fieldOptions) {
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRespawnVariation re-draws Radius and FallSpeed from their ranges each
// time a particle is recycled. By default both are kept for the particle's
// whole lifetime and only X changes on recycle.
func WithRespawnVariation(enabled bool) FieldOption {
	return func(o *fieldOptions) {
		o.respawnVariation = enabled
	}
}

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r := snowfall.NewRenderer(snowfall.WithColor(color.RGBA{200, 220, 255, 255}))
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	color     color.Color
	newTicker func(time.Duration) Ticker
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		color:     color.White,
		newTicker: newTimeTicker,
	}
}

// WithColor sets the fill color for every flake. The default is white.
func WithColor(c color.Color) RendererOption {
	return func(o *rendererOptions) {
		if c != nil {
			o.color = c
		}
	}
}

// WithTickerFunc replaces the clock that drives Start.
// Use this to step the scheduler manually in tests, or to slave it to a host
// timer that exposes a channel.
func WithTickerFunc(fn func(time.Duration) Ticker) RendererOption {
	return func(o *rendererOptions) {
		if fn != nil {
			o.newTicker = fn
		}
	}
}
