package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with YAML unmarshaling from strings like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Config is the top-level opsdesk configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Import  ImportConfig  `yaml:"import"`
}

// ServerConfig points the CLI at a backend.
type ServerConfig struct {
	BaseURL string   `yaml:"base_url"`
	Token   string   `yaml:"token"`
	Timeout Duration `yaml:"timeout"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Color string `yaml:"color"` // auto, always, never
}

// HistoryConfig controls the local record of executed actions.
type HistoryConfig struct {
	Dir       string   `yaml:"dir"`
	Retention Duration `yaml:"retention"` // default 30 days (720h)
}

// ImportConfig controls bulk knowledge import.
type ImportConfig struct {
	Workers int `yaml:"workers"`
}

const (
	defaultTimeout   = 30 * time.Second
	defaultRetention = 30 * 24 * time.Hour // 720h
	defaultWorkers   = 4
	defaultHistory   = ".opsdesk/history"
)

// Load reads, expands env vars, parses, and validates an opsdesk config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Timeout.Duration == 0 {
		cfg.Server.Timeout.Duration = defaultTimeout
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = defaultHistory
	}
	if cfg.History.Retention.Duration == 0 {
		cfg.History.Retention.Duration = defaultRetention
	}
	if cfg.Import.Workers == 0 {
		cfg.Import.Workers = defaultWorkers
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.BaseURL == "" {
		errs = append(errs, errors.New("server.base_url is required"))
	} else if !strings.HasPrefix(cfg.Server.BaseURL, "http://") && !strings.HasPrefix(cfg.Server.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("server.base_url must start with http:// or https://, got %q", cfg.Server.BaseURL))
	}
	if cfg.Server.Timeout.Duration <= 0 {
		errs = append(errs, errors.New("server.timeout must be positive"))
	}

	switch cfg.Output.Color {
	case "auto", "always", "never":
		// valid
	default:
		errs = append(errs, fmt.Errorf("output.color must be \"auto\", \"always\" or \"never\", got %q", cfg.Output.Color))
	}

	if cfg.Import.Workers < 1 {
		errs = append(errs, errors.New("import.workers must be at least 1"))
	}

	return errors.Join(errs...)
}
