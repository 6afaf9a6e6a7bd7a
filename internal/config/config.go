package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the forecast chart renderer
type Config struct {
	// Canvas configuration
	Width   int     `env:"CHART_WIDTH,default=800"`
	Height  int     `env:"CHART_HEIGHT,default=400"`
	Padding float64 `env:"CHART_PADDING,default=50"`

	// Animation and interaction
	AnimationStep float64 `env:"ANIMATION_STEP,default=0.03"`
	TooltipOffset float64 `env:"TOOLTIP_OFFSET,default=40"`

	// Output configuration
	OutputDir     string `env:"OUTPUT_DIR,default=./frames"`
	OutputFormat  string `env:"OUTPUT_FORMAT,default=png"`
	RenderBackend string `env:"RENDER_BACKEND,default=gochart"`

	// Service configuration
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom loads configuration from the given lookuper
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that envconfig cannot express
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	if c.Padding < 0 {
		return fmt.Errorf("invalid padding %v", c.Padding)
	}
	if !(c.AnimationStep > 0 && c.AnimationStep <= 1) {
		return fmt.Errorf("animation step must be in (0, 1], got %v", c.AnimationStep)
	}
	switch strings.ToLower(c.OutputFormat) {
	case "png", "svg":
	default:
		return fmt.Errorf("unsupported output format: %s", c.OutputFormat)
	}
	switch strings.ToLower(c.RenderBackend) {
	case "gochart", "gg":
	default:
		return fmt.Errorf("unsupported render backend: %s", c.RenderBackend)
	}
	return nil
}
