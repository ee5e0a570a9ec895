// Command snowfall renders a falling-snow effect to PNG, GIF, a terminal or
// a GPU window.
//
// Usage:
//
//	snowfall png -o snow.png
//	snowfall gif -o snow.gif --frames 100 --scale 0.5
//	snowfall term --count 300
//	snowfall window --width 1280 --height 720
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
