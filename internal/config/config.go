// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads snowfall command line configuration from flags,
// SNOWFALL_ environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gogpu/gg"
	"github.com/gogpu/snowfall"
	"github.com/gogpu/snowfall/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/image/colornames"
)

// EnvPrefix prefixes every environment variable, e.g. SNOWFALL_COUNT.
const EnvPrefix = "SNOWFALL"

// Config is the full command line configuration.
type Config struct {
	Count            int           `mapstructure:"count"`
	SizeMin          float64       `mapstructure:"size_min"`
	SizeMax          float64       `mapstructure:"size_max"`
	SpeedMin         float64       `mapstructure:"speed_min"`
	SpeedMax         float64       `mapstructure:"speed_max"`
	Tick             time.Duration `mapstructure:"tick"`
	RecycleY         float64       `mapstructure:"recycle_y"`
	RespawnVariation bool          `mapstructure:"respawn_variation"`
	Seed             uint64        `mapstructure:"seed"`
	Color            string        `mapstructure:"color"`
	Background       string        `mapstructure:"background"`
	Width            int           `mapstructure:"width"`
	Height           int           `mapstructure:"height"`
	Frames           int           `mapstructure:"frames"`
	Skip             int           `mapstructure:"skip"`
	Scale            float64       `mapstructure:"scale"`
	Output           string        `mapstructure:"output"`
	LogLevel         string        `mapstructure:"log_level"`
	MetricsAddr      string        `mapstructure:"metrics_addr"`
}

// Meta describes how the configuration was loaded.
type Meta struct {
	ConfigFile   string
	FileNotFound bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Count:      snowfall.DefaultCount,
		SizeMin:    snowfall.DefaultSizeRange.Min,
		SizeMax:    snowfall.DefaultSizeRange.Max,
		SpeedMin:   snowfall.DefaultSpeedRange.Min,
		SpeedMax:   snowfall.DefaultSpeedRange.Max,
		Tick:       snowfall.DefaultTickInterval,
		RecycleY:   snowfall.DefaultRecycleY,
		Color:      "white",
		Background: "black",
		Width:      390,
		Height:     844,
		Frames:     50,
		Skip:       120,
		Scale:      1,
		LogLevel:   "info",
	}
}

// flagNames maps config keys to their command line flags.
var flagNames = map[string]string{
	"count":             "count",
	"size_min":          "size-min",
	"size_max":          "size-max",
	"speed_min":         "speed-min",
	"speed_max":         "speed-max",
	"tick":              "tick",
	"recycle_y":         "recycle-y",
	"respawn_variation": "respawn-variation",
	"seed":              "seed",
	"color":             "color",
	"background":        "background",
	"width":             "width",
	"height":            "height",
	"frames":            "frames",
	"skip":              "skip",
	"scale":             "scale",
	"output":            "output",
	"log_level":         "log-level",
	"metrics_addr":      "metrics-addr",
}

// DefineFlags registers every configuration flag on cmd as persistent flags.
func DefineFlags(cmd *cobra.Command) {
	d := Default()
	f := cmd.PersistentFlags()
	f.StringP("config", "c", "", "optional config file (toml, yaml or json)")
	f.IntP("count", "n", d.Count, "number of snowflakes")
	f.Float64("size-min", d.SizeMin, "minimum flake radius")
	f.Float64("size-max", d.SizeMax, "maximum flake radius")
	f.Float64("speed-min", d.SpeedMin, "minimum fall distance per tick")
	f.Float64("speed-max", d.SpeedMax, "maximum fall distance per tick")
	f.Duration("tick", d.Tick, "interval between simulation ticks")
	f.Float64("recycle-y", d.RecycleY, "y coordinate recycled flakes restart from")
	f.Bool("respawn-variation", d.RespawnVariation, "re-draw radius and speed on recycle")
	f.Uint64("seed", d.Seed, "random seed, 0 picks a random one")
	f.String("color", d.Color, "flake color: a CSS color name or #rrggbb")
	f.String("background", d.Background, "background color: a CSS color name or #rrggbb")
	f.IntP("width", "W", d.Width, "surface width in pixels")
	f.IntP("height", "H", d.Height, "surface height in pixels")
	f.Int("frames", d.Frames, "number of frames in an animation")
	f.Int("skip", d.Skip, "ticks to run before the first captured frame")
	f.Float64("scale", d.Scale, "output scale factor for animations")
	f.StringP("output", "o", d.Output, "output file path")
	f.String("log-level", d.LogLevel, "log level: debug, info, warn, error or none")
	f.String("metrics-addr", d.MetricsAddr, "address to serve Prometheus metrics on, empty disables")
}

// Load resolves the configuration for cmd. Precedence from high to low:
// explicitly set flags, environment, config file, defaults.
func Load(cmd *cobra.Command) (Config, Meta, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)))

	d := Default()
	setDefaults(v, d)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	meta := Meta{}
	if cmd != nil {
		for key, flag := range flagNames {
			if fl := cmd.Flags().Lookup(flag); fl != nil {
				_ = v.BindPFlag(key, fl)
			}
		}
		if fl := cmd.Flags().Lookup("config"); fl != nil {
			meta.ConfigFile = fl.Value.String()
		}
	}

	if meta.ConfigFile != "" {
		v.SetConfigFile(meta.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return Config{}, Meta{}, fmt.Errorf("config: read %s: %w", meta.ConfigFile, err)
			}
			meta.FileNotFound = true
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, Meta{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, meta, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("count", d.Count)
	v.SetDefault("size_min", d.SizeMin)
	v.SetDefault("size_max", d.SizeMax)
	v.SetDefault("speed_min", d.SpeedMin)
	v.SetDefault("speed_max", d.SpeedMax)
	v.SetDefault("tick", d.Tick)
	v.SetDefault("recycle_y", d.RecycleY)
	v.SetDefault("respawn_variation", d.RespawnVariation)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("color", d.Color)
	v.SetDefault("background", d.Background)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("frames", d.Frames)
	v.SetDefault("skip", d.Skip)
	v.SetDefault("scale", d.Scale)
	v.SetDefault("output", d.Output)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("metrics_addr", d.MetricsAddr)
}

// SizeRange returns the configured radius range.
func (c Config) SizeRange() snowfall.Range {
	return snowfall.Range{Min: c.SizeMin, Max: c.SizeMax}
}

// SpeedRange returns the configured fall speed range.
func (c Config) SpeedRange() snowfall.Range {
	return snowfall.Range{Min: c.SpeedMin, Max: c.SpeedMax}
}

// FieldOptions returns the field options implied by the configuration.
func (c Config) FieldOptions() []snowfall.FieldOption {
	opts := []snowfall.FieldOption{
		snowfall.WithRecycleY(c.RecycleY),
		snowfall.WithRespawnVariation(c.RespawnVariation),
	}
	if c.Seed != 0 {
		opts = append(opts, snowfall.WithSeed(c.Seed))
	}
	return opts
}

// FlakeColor parses Color.
func (c Config) FlakeColor() (color.Color, error) {
	return ParseColor(c.Color)
}

// BackgroundColor parses Background.
func (c Config) BackgroundColor() (color.Color, error) {
	return ParseColor(c.Background)
}

// Validate reports the first invalid setting. Errors wrap
// snowfall.ErrInvalidConfiguration.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("%w: count %d must be positive", snowfall.ErrInvalidConfiguration, c.Count)
	}
	if err := c.SizeRange().Validate(); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	if err := c.SpeedRange().Validate(); err != nil {
		return fmt.Errorf("speed: %w", err)
	}
	if c.Tick < 0 {
		return fmt.Errorf("%w: tick %v must not be negative", snowfall.ErrInvalidConfiguration, c.Tick)
	}
	if math.IsNaN(c.RecycleY) || math.IsInf(c.RecycleY, 0) {
		return fmt.Errorf("%w: recycle_y %v must be finite", snowfall.ErrInvalidConfiguration, c.RecycleY)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", snowfall.ErrInvalidConfiguration, c.Width, c.Height)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames %d must be positive", snowfall.ErrInvalidConfiguration, c.Frames)
	}
	if c.Skip < 0 {
		return fmt.Errorf("%w: skip %d must not be negative", snowfall.ErrInvalidConfiguration, c.Skip)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 1) {
		return fmt.Errorf("%w: scale %v must be positive", snowfall.ErrInvalidConfiguration, c.Scale)
	}
	if _, err := c.FlakeColor(); err != nil {
		return err
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseColor accepts a CSS color name ("white", "lightsteelblue") or a hex
// value ("#fff", "#ffffff", "#ffffffcc").
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty color", snowfall.ErrInvalidConfiguration)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && isHex(s[1:]) {
		switch len(s) - 1 {
		case 3, 4, 6, 8:
			return gg.Hex(s).Color(), nil
		}
	}
	return nil, fmt.Errorf("%w: unknown color %q", snowfall.ErrInvalidConfiguration, s)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
