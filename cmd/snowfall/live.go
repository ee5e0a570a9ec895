package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/snowfall"
	"github.com/gogpu/snowfall/term"
	"github.com/gogpu/snowfall/window"
	"github.com/spf13/cobra"
)

func newTermCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Animate snow in the terminal",
		Long:  "Animate snow in the terminal. Press q, Esc or Ctrl-C to quit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return report(cmd, fmt.Errorf("open terminal: %w", err))
			}

			r := e.newRenderer()
			host, err := term.NewHost(screen, r, term.Config{
				Count:        e.cfg.Count,
				Size:         e.cfg.SizeRange(),
				Speed:        e.cfg.SpeedRange(),
				Interval:     e.cfg.Tick,
				FieldOptions: e.cfg.FieldOptions(),
				Background:   e.background,
				OnField: func(f *snowfall.Field) error {
					return e.serveMetrics(cmd.Context(), r, f)
				},
			})
			if err != nil {
				return report(cmd, err)
			}
			if err := host.Run(cmd.Context()); err != nil {
				return report(cmd, err)
			}
			return nil
		},
	}
}

func newWindowCmd(e *env) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Animate snow in a GPU window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := e.newRenderer()
			host, err := window.NewHost(r, window.Options{
				Title:        title,
				Width:        e.cfg.Width,
				Height:       e.cfg.Height,
				Background:   e.background,
				Count:        e.cfg.Count,
				Size:         e.cfg.SizeRange(),
				Speed:        e.cfg.SpeedRange(),
				Interval:     e.cfg.Tick,
				FieldOptions: e.cfg.FieldOptions(),
			})
			if err != nil {
				return report(cmd, err)
			}
			if err := e.serveMetrics(cmd.Context(), r, host.Field()); err != nil {
				return report(cmd, err)
			}
			if err := host.Run(cmd.Context()); err != nil {
				return report(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", window.DefaultTitle, "window title")
	return cmd
}
