// Package config loads the contractus driver configuration from TOML or YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/haiman1024/Contractus/internal/frontend"
	"github.com/haiman1024/Contractus/internal/parser"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DiscoveryNames are the file names looked up, in order, when no explicit
// config path is given.
var DiscoveryNames = []string{"contractus.toml", "contractus.yaml", "contractus.yml"}

// Config holds the complete driver configuration
type Config struct {
	Limits LimitsConfig `toml:"limits" yaml:"limits"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// LimitsConfig bounds the work done per input file
type LimitsConfig struct {
	MaxSourceBytes int `toml:"max_source_bytes" yaml:"max_source_bytes"`
	MaxArrayRepeat int `toml:"max_array_repeat" yaml:"max_array_repeat"`
}

// OutputConfig controls how diagnostics are printed
type OutputConfig struct {
	Format       string `toml:"format" yaml:"format"`
	Color        string `toml:"color" yaml:"color"`
	ContextLines int    `toml:"context_lines" yaml:"context_lines"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxSourceBytes: frontend.DefaultMaxSourceBytes,
			MaxArrayRepeat: parser.DefaultMaxArrayRepeat,
		},
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
	}
}

// Load reads the configuration at path. The format is picked from the file
// extension; keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse config %s: unknown key %s", path, undecoded[0])
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q (want .toml, .yaml or .yml)", path, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover looks for one of DiscoveryNames in dir. It returns the defaults
// and an empty path when none exists.
func Discover(dir string) (*Config, string, error) {
	for _, name := range DiscoveryNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			cfg, err := Load(path)
			if err != nil {
				return nil, path, err
			}
			return cfg, path, nil
		}
	}
	return Default(), "", nil
}

// Validate checks every value and names the first offending key.
func (c *Config) Validate() error {
	if c.Limits.MaxSourceBytes < 1 {
		return fmt.Errorf("limits.max_source_bytes must be positive, got %d", c.Limits.MaxSourceBytes)
	}
	if c.Limits.MaxArrayRepeat < 1 {
		return fmt.Errorf("limits.max_array_repeat must be positive, got %d", c.Limits.MaxArrayRepeat)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format must be one of text, json, yaml, got %q", c.Output.Format)
	}

	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be one of auto, always, never, got %q", c.Output.Color)
	}

	if c.Output.ContextLines < 0 {
		return fmt.Errorf("output.context_lines must not be negative, got %d", c.Output.ContextLines)
	}
	return nil
}
