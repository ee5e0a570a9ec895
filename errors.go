package snowfall

import "errors"

// Common errors returned by Field and Renderer.
var (
	// ErrInvalidConfiguration is returned when construction parameters are
	// out of range. No partial Field is created.
	ErrInvalidConfiguration = errors.New("snowfall: invalid configuration")

	// ErrRunning is returned by Start when the renderer is already scheduled.
	ErrRunning = errors.New("snowfall: renderer already running")
)
