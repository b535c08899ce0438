// Package config loads the YAML configuration shared by the plotgraph
// commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/plotgraph/pkg/postprocess"
	"github.com/dd0wney/plotgraph/pkg/validation"
)

// Config is the root configuration document.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	PostProcess PostProcessConfig `yaml:"postprocess"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Display     DisplayConfig     `yaml:"display"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
}

// PostProcessConfig toggles post-processing policies.
type PostProcessConfig struct {
	// KeepMotivation keeps a motivation annotation in the label when it
	// resolved to no vertex.
	KeepMotivation      bool `yaml:"keep_motivation"`
	TrimRepeatedActions bool `yaml:"trim_repeated_actions"`
}

// AnalysisConfig controls scoring and result publication.
type AnalysisConfig struct {
	IncludePrimitives bool   `yaml:"include_primitives"`
	Topic             string `yaml:"topic" validate:"required,max=128"`
}

// IngestConfig configures the live report listener.
type IngestConfig struct {
	Listen      string        `yaml:"listen"`
	Publish     string        `yaml:"publish"` // optional PUB endpoint for scores
	RecvTimeout time.Duration `yaml:"recv_timeout"`
	IdleTimeout time.Duration `yaml:"idle_timeout"` // unfinished runs silent this long are dropped
	MaxRuns     int           `yaml:"max_runs"`
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DisplayConfig sizes rendered layouts.
type DisplayConfig struct {
	Width   int `yaml:"width" validate:"min=1"`
	Height  int `yaml:"height" validate:"min=1"`
	Padding int `yaml:"padding" validate:"min=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		PostProcess: PostProcessConfig{
			KeepMotivation:      true,
			TrimRepeatedActions: true,
		},
		Analysis: AnalysisConfig{
			IncludePrimitives: true,
			Topic:             "tellability",
		},
		Ingest: IngestConfig{
			Listen:      "tcp://127.0.0.1:40899",
			RecvTimeout: 2 * time.Second,
			IdleTimeout: 10 * time.Minute,
			MaxRuns:     1024,
		},
		Metrics: MetricsConfig{Enabled: true, Addr: ":9464"},
		Display: DisplayConfig{Width: 1200, Height: 800, Padding: 40},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Logging.Level = validation.DefaultOr(os.Getenv("LOG_LEVEL"), c.Logging.Level)
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	ingest := validation.NewConfigValidator("ingest").
		Endpoint("listen", c.Ingest.Listen, "tcp", "ipc", "inproc").
		RangeDuration("recv_timeout", c.Ingest.RecvTimeout, 100*time.Millisecond, time.Hour).
		RangeDuration("idle_timeout", c.Ingest.IdleTimeout, time.Second, 24*time.Hour).
		RangeInt("max_runs", c.Ingest.MaxRuns, 1, 1<<20).
		When(c.Ingest.Publish != "", func(cv *validation.ConfigValidator) {
			cv.Endpoint("publish", c.Ingest.Publish, "tcp", "ipc", "inproc")
			cv.Custom("publish", func() error {
				if c.Ingest.Publish == c.Ingest.Listen {
					return errors.New("publish endpoint must differ from listen")
				}
				return nil
			})
		})

	metrics := validation.NewConfigValidator("metrics").
		When(c.Metrics.Enabled, func(cv *validation.ConfigValidator) {
			cv.Address("addr", c.Metrics.Addr)
		})

	display := validation.NewConfigValidator("display").
		Custom("padding", func() error {
			if 2*c.Display.Padding >= c.Display.Width || 2*c.Display.Padding >= c.Display.Height {
				return fmt.Errorf("padding %d leaves no drawing area in %dx%d", c.Display.Padding, c.Display.Width, c.Display.Height)
			}
			return nil
		})

	return errors.Join(
		validation.Struct(c),
		ingest.Validate(),
		metrics.Validate(),
		display.Validate(),
	)
}

// PostProcessOptions converts the postprocess section into pipeline options.
func (c *Config) PostProcessOptions() postprocess.Options {
	return postprocess.Options{
		KeepMotivation:      c.PostProcess.KeepMotivation,
		TrimRepeatedActions: c.PostProcess.TrimRepeatedActions,
	}
}
