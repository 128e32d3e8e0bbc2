// Package config reads the optional graphview.yaml configuration file.
// Every field has a default; a missing file is not an error.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kindred-app/graphview/pkg/graphview"
	"github.com/kindred-app/graphview/pkg/scene"
)

// Config represents the graphview.yaml configuration.
type Config struct {
	// Path to the snapshot data file
	Data string `yaml:"data,omitempty"`

	// Listen address for the live server
	Listen string `yaml:"listen,omitempty"`

	// Frames per second for the animation loop
	FPS int `yaml:"fps,omitempty"`

	// Physics constants; zero values fall back to the engine defaults
	Physics *PhysicsConfig `yaml:"physics,omitempty"`

	// Theme override; when unset the host environment's theme is probed
	Theme *ThemeConfig `yaml:"theme,omitempty"`

	// Edge category → hex color
	Palette map[string]string `yaml:"palette,omitempty"`
}

// PhysicsConfig tunes the force simulation.
type PhysicsConfig struct {
	Repulsion      float64 `yaml:"repulsion,omitempty"`
	Attraction     float64 `yaml:"attraction,omitempty"`
	CenterPull     float64 `yaml:"centerPull,omitempty"`
	Damping        float64 `yaml:"damping,omitempty"`
	ClickThreshold float64 `yaml:"clickThreshold,omitempty"`
	RingRadius     float64 `yaml:"ringRadius,omitempty"`
}

// ThemeConfig pins concrete colors instead of probing the terminal.
type ThemeConfig struct {
	Background string `yaml:"background,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Data:   "network.yaml",
		Listen: "127.0.0.1:8990",
		FPS:    60,
	}
}

// Load reads path if it exists and overlays it on the defaults. A missing
// file returns the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Data == "" {
		cfg.Data = "network.yaml"
	}
	if cfg.Listen == "" {
		cfg.Listen = "127.0.0.1:8990"
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	return cfg, nil
}

// Options converts the configuration into engine options.
func (c *Config) Options() *graphview.Options {
	opts := &graphview.Options{}
	if p := c.Physics; p != nil {
		opts.Repulsion = p.Repulsion
		opts.Attraction = p.Attraction
		opts.CenterPull = p.CenterPull
		opts.Damping = p.Damping
		opts.ClickThreshold = p.ClickThreshold
		opts.RingRadius = p.RingRadius
	}
	if t := c.Theme; t != nil {
		opts.Theme = scene.Theme{
			Background: scene.Color(t.Background),
			Foreground: scene.Color(t.Foreground),
		}
	}
	if len(c.Palette) > 0 {
		opts.Palette = make(map[string]scene.Color, len(c.Palette))
		for category, color := range c.Palette {
			opts.Palette[category] = scene.Color(color)
		}
	}
	return opts
}
