// Package config loads the optional feathertk.yaml configuration and
// applies FEATHERTK_* environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "feathertk.yaml"

// DefaultIcon is the window icon used when none is configured and the file
// exists relative to the working directory.
const DefaultIcon = "assets/logo.png"

// Config represents feathertk.yaml.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	App     AppConfig     `yaml:"app"`
	Log     LogConfig     `yaml:"log"`
}

// LibraryConfig locates the Tcl and Tk shared libraries. Tcl and Tk are
// explicit file paths and take precedence over Dir.
type LibraryConfig struct {
	Dir string `yaml:"dir,omitempty"`
	Tcl string `yaml:"tcl,omitempty"`
	Tk  string `yaml:"tk,omitempty"`
}

// AppConfig contains application settings.
type AppConfig struct {
	Icon string `yaml:"icon,omitempty"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Log formats.
const (
	FormatAuto    = "auto"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "warn", Format: FormatAuto},
	}
}

// Load reads the configuration at path. The file must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadOptional reads feathertk.yaml from dir if present, and returns the
// defaults otherwise.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return parse(FileName, data)
}

func parse(name string, data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// Environment variables consulted by ApplyEnv.
const (
	EnvLibraryDir = "FEATHERTK_LIBRARY_DIR"
	EnvTclLibrary = "FEATHERTK_TCL_LIBRARY"
	EnvTkLibrary  = "FEATHERTK_TK_LIBRARY"
	EnvIcon       = "FEATHERTK_ICON"
	EnvLogLevel   = "FEATHERTK_LOG_LEVEL"
	EnvLogFormat  = "FEATHERTK_LOG_FORMAT"
)

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv. Set but empty variables clear the field.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for env, field := range map[string]*string{
		EnvLibraryDir: &c.Library.Dir,
		EnvTclLibrary: &c.Library.Tcl,
		EnvTkLibrary:  &c.Library.Tk,
		EnvIcon:       &c.App.Icon,
		EnvLogLevel:   &c.Log.Level,
		EnvLogFormat:  &c.Log.Format,
	} {
		if v, ok := lookup(env); ok {
			*field = strings.TrimSpace(v)
		}
	}
}

// Validate checks the fields that have a fixed set of values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "", FormatAuto, FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("log.format %q must be one of auto, json, console", c.Log.Format)
	}
	return nil
}

// IconPath returns the configured icon, or DefaultIcon when nothing is
// configured and that file exists. It returns "" when there is no icon.
func (c *Config) IconPath() string {
	if c.App.Icon != "" {
		return c.App.Icon
	}
	if _, err := os.Stat(DefaultIcon); err == nil {
		return DefaultIcon
	}
	return ""
}
