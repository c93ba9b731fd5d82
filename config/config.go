// Package config loads trailcomma settings from defaults, project files and flags.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/viant/afs"
	"github.com/viant/trailcomma/analyzer"
	"github.com/viant/trailcomma/inspector/repository"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Config represents rewrite and driver settings
type Config struct {
	RemoveComma           bool     `yaml:"removeComma" toml:"remove-comma"`
	ExitZeroEvenIfChanged bool     `yaml:"exitZeroEvenIfChanged" toml:"exit-zero-even-if-changed"`
	TargetVersion         string   `yaml:"targetVersion" toml:"target-version" validate:"omitempty,pyversion"`
	Jobs                  int      `yaml:"jobs" toml:"jobs" validate:"gte=1,lte=256"`
	Exclude               []string `yaml:"exclude" toml:"exclude" validate:"dive,required,glob"`
	CacheDir              string   `yaml:"cacheDir" toml:"cache-dir"`
	NoCache               bool     `yaml:"noCache" toml:"no-cache"`
	// Source is the file the settings were loaded from, empty for defaults
	Source string `yaml:"-" toml:"-"`
	// Project is the enclosing project found by Discover
	Project *repository.Project `yaml:"-" toml:"-" validate:"-"`
}

// Default returns default settings
func Default() *Config {
	cfg := &Config{
		Jobs:    runtime.NumCPU(),
		Exclude: []string{".git", ".tox", ".venv", "venv", "__pycache__", "node_modules"},
	}
	if dir, err := os.UserCacheDir(); err == nil {
		cfg.CacheDir = filepath.Join(dir, "trailcomma")
	} else {
		cfg.NoCache = true
	}
	return cfg
}

// Mode returns the rewrite mode
func (c *Config) Mode() analyzer.Mode {
	if c.RemoveComma {
		return analyzer.Remove
	}
	return analyzer.Add
}

// Options returns rewriter options
func (c *Config) Options() []analyzer.Option {
	return []analyzer.Option{
		analyzer.WithMode(c.Mode()),
		analyzer.WithTargetVersion(c.TargetVersion),
	}
}

// Excluded reports whether a file or directory base name matches an exclude pattern
func (c *Config) Excluded(name string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Validate checks settings
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if c.Source != "" {
			return fmt.Errorf("%s: invalid config: %w", c.Source, err)
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads settings from a .trailcomma.yaml or pyproject.toml file on top of defaults
func Load(ctx context.Context, location string) (*Config, error) {
	cfg := Default()
	cfg.Source = location
	data, err := afs.New().DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", location, err)
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".toml":
		manifest := struct {
			Tool struct {
				Trailcomma Config `toml:"trailcomma"`
			} `toml:"tool"`
		}{}
		manifest.Tool.Trailcomma = *cfg
		if _, err = toml.Decode(string(data), &manifest); err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", location, err)
		}
		*cfg = manifest.Tool.Trailcomma
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", location, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format", location)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads settings from the project enclosing start, falling back to defaults
func Discover(ctx context.Context, start string) (*Config, error) {
	project, err := repository.New().DetectProject(ctx, start)
	if err != nil {
		return Default(), nil
	}
	cfg := Default()
	if project.HasConfig() {
		if cfg, err = Load(ctx, project.ConfigURL); err != nil {
			return nil, err
		}
	}
	cfg.Project = project
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	result := validator.New()
	_ = result.RegisterValidation("pyversion", func(fl validator.FieldLevel) bool {
		return semver.IsValid(analyzer.NormalizeVersion(fl.Field().String()))
	})
	_ = result.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		_, err := filepath.Match(fl.Field().String(), "")
		return err == nil
	})
	return result
}
