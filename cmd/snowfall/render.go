package main

import (
	"fmt"
	"os"

	"github.com/gogpu/snowfall/capture"
	"github.com/spf13/cobra"
)

func newPNGCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "png",
		Short: "Render one frame to a PNG file",
		Long:  "Advance the field by --skip ticks and write the frame to --output (default snow.png).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := e.newCapture()
			if err != nil {
				return report(cmd, err)
			}
			defer c.Close()

			path := e.outputPath("snow.png")
			if err := c.WritePNG(path); err != nil {
				return report(cmd, err)
			}
			e.logger.Info("png written", "path", path, "width", e.cfg.Width, "height", e.cfg.Height)
			return nil
		},
	}
}

func newGIFCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "gif",
		Short: "Render an animated GIF",
		Long:  "Advance the field by --skip ticks, then write --frames frames one tick apart to --output (default snow.gif).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := e.newCapture()
			if err != nil {
				return report(cmd, err)
			}
			defer c.Close()

			path := e.outputPath("snow.gif")
			f, err := os.Create(path)
			if err != nil {
				return report(cmd, fmt.Errorf("create %s: %w", path, err))
			}
			if err := c.WriteGIF(f); err != nil {
				f.Close()
				return report(cmd, err)
			}
			if err := f.Close(); err != nil {
				return report(cmd, fmt.Errorf("close %s: %w", path, err))
			}
			e.logger.Info("gif written", "path", path, "frames", e.cfg.Frames, "scale", e.cfg.Scale)
			return nil
		},
	}
}

func (e *env) newCapture() (*capture.Capture, error) {
	field, err := e.newField()
	if err != nil {
		return nil, err
	}
	return capture.New(field, e.newRenderer(), capture.Options{
		Width:      e.cfg.Width,
		Height:     e.cfg.Height,
		Background: e.background,
		Frames:     e.cfg.Frames,
		Skip:       e.cfg.Skip,
		Delay:      e.cfg.Tick,
		Scale:      e.cfg.Scale,
	})
}
