package info

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFile is the project level configuration file name
	ConfigFile = ".typedoc.yaml"

	envStyle     = "TYPEDOC_STYLE"
	defaultStyle = "rst"
	defaultQuote = `"""`
)

// ErrConfig is returned for invalid configuration
var ErrConfig = errors.New("invalid config")

type Config struct {
	Style     string   `yaml:"style"`
	Quote     string   `yaml:"quote"`
	Receivers []string `yaml:"receivers"`
	Workers   int      `yaml:"workers"`
	Include   []string `yaml:"include"`
	Exclude   []string `yaml:"exclude"`
	Check     bool     `yaml:"check"`
}

func DefaultConfig() *Config {
	return &Config{
		Style:     defaultStyle,
		Quote:     defaultQuote,
		Receivers: []string{"self", "cls"},
		Workers:   runtime.NumCPU(),
		Include:   []string{"*.py"},
	}
}

// LoadConfig decodes YAML config on top of the defaults
func LoadConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return cfg, nil
}

// LoadConfigFile loads config from URL, falling back to defaults when the file does not exist
func LoadConfigFile(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if URL == "" {
		return DefaultConfig(), nil
	}
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check config %s: %w", URL, err)
	}
	if !exists {
		return DefaultConfig(), nil
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", URL, err)
	}
	return cfg, nil
}

// ApplyEnv overrides config values with environment variables
func (c *Config) ApplyEnv() {
	if style := strings.TrimSpace(os.Getenv(envStyle)); style != "" {
		c.Style = style
	}
}

// Validate checks config values that do not depend on registered styles
func (c *Config) Validate() error {
	switch c.Quote {
	case `"""`, `'''`:
	default:
		return fmt.Errorf("%w: unsupported quote %q", ErrConfig, c.Quote)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrConfig, c.Workers)
	}
	for _, pattern := range append(append([]string{}, c.Include...), c.Exclude...) {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: bad pattern %q", ErrConfig, pattern)
		}
	}
	return nil
}

// IsReceiver returns true if name is a conventional method receiver name
func (c *Config) IsReceiver(name string) bool {
	for _, candidate := range c.Receivers {
		if candidate == name {
			return true
		}
	}
	return false
}

// Includes returns true if a file name matches include and not exclude patterns
func (c *Config) Includes(name string) bool {
	base := path.Base(name)
	for _, pattern := range c.Exclude {
		if matched, _ := path.Match(pattern, base); matched {
			return false
		}
		if matched, _ := path.Match(pattern, name); matched {
			return false
		}
	}
	for _, pattern := range c.Include {
		if matched, _ := path.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
