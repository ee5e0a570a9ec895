// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/snowfall"
	"github.com/spf13/cobra"
)

func newCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "snowfall"}
	DefineFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	cfg, meta, err := Load(newCommand(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want %+v", cfg, Default())
	}
	if meta.ConfigFile != "" || meta.FileNotFound {
		t.Errorf("meta = %+v, want empty", meta)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadWithoutCommand(t *testing.T) {
	cfg, _, err := Load(nil)
	if err != nil {
		t.Fatalf("Load(nil): %v", err)
	}
	if cfg.Count != snowfall.DefaultCount {
		t.Errorf("Count = %d, want %d", cfg.Count, snowfall.DefaultCount)
	}
}

func TestLoadFlags(t *testing.T) {
	cmd := newCommand(t,
		"--count", "250",
		"--size-min", "1.5",
		"--tick", "40ms",
		"--respawn-variation",
		"--seed", "9",
		"--color", "#c8dcff",
		"-o", "snow.gif",
	)
	cfg, _, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Count != 250 || cfg.SizeMin != 1.5 || cfg.Tick != 40*time.Millisecond {
		t.Errorf("count/size/tick = %d/%v/%v", cfg.Count, cfg.SizeMin, cfg.Tick)
	}
	if !cfg.RespawnVariation || cfg.Seed != 9 || cfg.Color != "#c8dcff" || cfg.Output != "snow.gif" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset flags keep their defaults.
	if cfg.SizeMax != snowfall.DefaultSizeRange.Max {
		t.Errorf("SizeMax = %v, want default", cfg.SizeMax)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SNOWFALL_COUNT", "7")
	t.Setenv("SNOWFALL_TICK", "1s")
	t.Setenv("SNOWFALL_LOG_LEVEL", "debug")

	cfg, _, err := Load(newCommand(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Count != 7 || cfg.Tick != time.Second || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}

	// An explicit flag beats the environment.
	cfg, _, err = Load(newCommand(t, "--count", "8"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Count != 8 {
		t.Errorf("Count = %d, want flag value 8", cfg.Count)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snowfall.toml")
	data := "count = 12\ntick = \"30ms\"\nbackground = \"midnightblue\"\nspeed_max = 9.5\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, meta, err := Load(newCommand(t, "--config", path, "--count", "13"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.ConfigFile != path || meta.FileNotFound {
		t.Errorf("meta = %+v", meta)
	}
	if cfg.Count != 13 {
		t.Errorf("Count = %d, want flag value 13", cfg.Count)
	}
	if cfg.Tick != 30*time.Millisecond || cfg.Background != "midnightblue" || cfg.SpeedMax != 9.5 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, meta, err := Load(newCommand(t, "--config", path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !meta.FileNotFound {
		t.Error("FileNotFound = false for a missing file")
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(newCommand(t, "--config", path)); err == nil {
		t.Error("Load(bad json) = nil error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero count", func(c *Config) { c.Count = 0 }},
		{"size min above max", func(c *Config) { c.SizeMin, c.SizeMax = 7, 2 }},
		{"zero speed", func(c *Config) { c.SpeedMin = 0 }},
		{"negative tick", func(c *Config) { c.Tick = -time.Second }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero frames", func(c *Config) { c.Frames = 0 }},
		{"negative skip", func(c *Config) { c.Skip = -1 }},
		{"zero scale", func(c *Config) { c.Scale = 0 }},
		{"bad color", func(c *Config) { c.Color = "snowish" }},
		{"bad background", func(c *Config) { c.Background = "#12" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, snowfall.ErrInvalidConfiguration) {
				t.Errorf("Validate() = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"white", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"LightSteelBlue", color.RGBA{R: 0xb0, G: 0xc4, B: 0xde, A: 0xff}},
		{"#fff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#c8dcff", color.RGBA{R: 0xc8, G: 0xdc, B: 0xff, A: 0xff}},
		{" #000000 ", color.RGBA{A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if got := color.RGBAModel.Convert(c).(color.RGBA); got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "#", "#12", "#gggggg", "blanc"} {
		if _, err := ParseColor(bad); !errors.Is(err, snowfall.ErrInvalidConfiguration) {
			t.Errorf("ParseColor(%q) = %v, want ErrInvalidConfiguration", bad, err)
		}
	}
}

func TestFieldOptions(t *testing.T) {
	cfg := Default()
	cfg.Seed = 3
	cfg.RecycleY = -25

	a, err := snowfall.NewField(5, 100, 100, cfg.SizeRange(), cfg.SpeedRange(), cfg.FieldOptions()...)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	b, err := snowfall.NewField(5, 100, 100, cfg.SizeRange(), cfg.SpeedRange(), cfg.FieldOptions()...)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	if a.RecycleY() != -25 {
		t.Errorf("RecycleY() = %v, want -25", a.RecycleY())
	}
	pa, pb := a.Snapshot(), b.Snapshot()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs with the same seed", i)
		}
	}
}
