package main

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/gogpu/snowfall"
	"github.com/gogpu/snowfall/internal/config"
	"github.com/gogpu/snowfall/internal/logging"
	"github.com/gogpu/snowfall/internal/metrics"
	"github.com/spf13/cobra"
)

// env is shared by every subcommand once the root pre-run has loaded the
// configuration.
type env struct {
	cfg        config.Config
	logger     *slog.Logger
	flake      color.Color
	background color.Color
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "snowfall",
		Short:         "Falling snow particle effect",
		Long:          "Render a falling-snow particle effect to images, a terminal or a GPU window.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.load(cmd)
		},
	}
	config.DefineFlags(root)

	root.AddCommand(
		newPNGCmd(e),
		newGIFCmd(e),
		newTermCmd(e),
		newWindowCmd(e),
		newVersionCmd(),
	)
	return root
}

func (e *env) load(cmd *cobra.Command) error {
	cfg, meta, err := config.Load(cmd)
	if err != nil {
		return report(cmd, err)
	}
	if err := cfg.Validate(); err != nil {
		return report(cmd, err)
	}
	logger, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		return report(cmd, err)
	}
	if meta.FileNotFound {
		logger.Warn("config file not found, using flags and environment", "path", meta.ConfigFile)
	}

	flake, _ := cfg.FlakeColor()
	bg, _ := cfg.BackgroundColor()
	e.cfg, e.logger = cfg, logger
	e.flake, e.background = flake, bg
	return nil
}

// report prints err to the command's error stream and returns it.
func report(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "snowfall:", err)
	return err
}

func (e *env) newField() (*snowfall.Field, error) {
	return snowfall.NewField(e.cfg.Count, float64(e.cfg.Width), float64(e.cfg.Height),
		e.cfg.SizeRange(), e.cfg.SpeedRange(), e.cfg.FieldOptions()...)
}

func (e *env) newRenderer() *snowfall.Renderer {
	return snowfall.NewRenderer(snowfall.WithColor(e.flake))
}

// serveMetrics starts the Prometheus endpoint when an address is configured.
// The listener is opened before returning; the server stops with ctx.
func (e *env) serveMetrics(ctx context.Context, r *snowfall.Renderer, f *snowfall.Field) error {
	if e.cfg.MetricsAddr == "" {
		return nil
	}
	c, err := metrics.New(r, f)
	if err != nil {
		return err
	}
	ln, err := metrics.Listen(e.cfg.MetricsAddr)
	if err != nil {
		return err
	}
	go func() {
		if err := c.ServeListener(ctx, ln); err != nil {
			e.logger.Error("metrics server stopped", "err", err)
		}
	}()
	return nil
}

func (e *env) outputPath(def string) string {
	if e.cfg.Output != "" {
		return e.cfg.Output
	}
	return def
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the snowfall version",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "snowfall v%s\n", snowfall.Version)
		},
	}
}
