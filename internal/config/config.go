// Package config loads converter settings from an optional YAML file with
// environment-variable overrides for the server settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Style controls how the renderer maps blocks to Word styles.
type Style struct {
	HeadingPrefix          string  `yaml:"heading_prefix"`
	MarkLowConfidence      bool    `yaml:"mark_low_confidence"`
	LowConfidenceThreshold float64 `yaml:"low_confidence_threshold"`
	LowConfidenceHighlight string  `yaml:"low_confidence_highlight"`
}

// Image controls figure embedding.
type Image struct {
	MaxWidthInches  float64 `yaml:"max_width_inches"`
	MaxHeightInches float64 `yaml:"max_height_inches"`
	PlaceholderText string  `yaml:"placeholder_text"`
}

// Duration accepts "30m"-style strings in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Server configures the HTTP conversion service.
type Server struct {
	Port           string   `yaml:"port"`
	APIKey         string   `yaml:"api_key"`
	WorkerCount    int      `yaml:"worker_count"`
	MaxQueueSize   int      `yaml:"max_queue_size"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	JobTTL         Duration `yaml:"job_ttl"`
}

// Config is the top-level converter configuration.
type Config struct {
	Style   Style  `yaml:"style"`
	Image   Image  `yaml:"image"`
	Server  Server `yaml:"server"`
	Verbose bool   `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Style: Style{
			HeadingPrefix:          "Heading",
			LowConfidenceThreshold: 0.7,
			LowConfidenceHighlight: "yellow",
		},
		Image: Image{
			MaxWidthInches:  6.0,
			MaxHeightInches: 8.0,
			PlaceholderText: "[Image not available]",
		},
		Server: Server{
			Port:           "8091",
			WorkerCount:    4,
			MaxQueueSize:   100,
			MaxUploadBytes: 52428800, // 50MB
			JobTTL:         Duration(time.Hour),
		},
	}
}

// Load reads YAML from path over the defaults, then applies environment
// overrides. An empty path loads defaults plus environment only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.clamp()
	return cfg, nil
}

// FromYAML parses a YAML document over the defaults.
func FromYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.clamp()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = envOr("DOCWEAVE_PORT", c.Server.Port)
	c.Server.APIKey = envOr("DOCWEAVE_API_KEY", c.Server.APIKey)
	c.Server.WorkerCount = envInt("DOCWEAVE_WORKER_COUNT", c.Server.WorkerCount)
	c.Server.MaxQueueSize = envInt("DOCWEAVE_MAX_QUEUE_SIZE", c.Server.MaxQueueSize)
	c.Server.MaxUploadBytes = envInt64("DOCWEAVE_MAX_UPLOAD_BYTES", c.Server.MaxUploadBytes)
	c.Server.JobTTL = Duration(envDuration("DOCWEAVE_JOB_TTL", time.Duration(c.Server.JobTTL)))
}

func (c *Config) clamp() {
	if c.Style.HeadingPrefix == "" {
		c.Style.HeadingPrefix = "Heading"
	}
	if c.Style.LowConfidenceThreshold <= 0 {
		c.Style.LowConfidenceThreshold = 0.7
	}
	if c.Style.LowConfidenceHighlight == "" {
		c.Style.LowConfidenceHighlight = "yellow"
	}
	if c.Image.MaxWidthInches <= 0 {
		c.Image.MaxWidthInches = 6.0
	}
	if c.Image.MaxHeightInches <= 0 {
		c.Image.MaxHeightInches = 8.0
	}
	if c.Server.WorkerCount <= 0 {
		c.Server.WorkerCount = 4
	}
	if c.Server.MaxQueueSize <= 0 {
		c.Server.MaxQueueSize = 100
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = 52428800
	}
	if c.Server.JobTTL <= 0 {
		c.Server.JobTTL = Duration(time.Hour)
	}
}

// ValidateServer checks the settings required to run the HTTP service.
func (c Config) ValidateServer() error {
	if c.Server.APIKey == "" {
		return fmt.Errorf("server api_key (or DOCWEAVE_API_KEY) is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
