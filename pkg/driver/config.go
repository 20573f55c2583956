package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "lambd.yml"

// ConfigEnvVar names an explicit configuration file.
const ConfigEnvVar = "LAMBD_CONFIG"

// Config holds REPL and evaluation settings read from lambd.yml.
type Config struct {
	Path               string
	Prompt             string
	ContinuationPrompt string
	HistoryFile        string
	Color              ColorMode
	MaxCallDepth       int
}

// ColorMode selects when diagnostics are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the color mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// DefaultConfig returns the settings used when no lambd.yml exists.
func DefaultConfig() *Config {
	return &Config{
		Prompt:             "λ> ",
		ContinuationPrompt: ".. ",
		HistoryFile:        defaultHistoryFile(),
		Color:              ColorAuto,
		MaxCallDepth:       10000,
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".lambd_history")
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// ResolveConfig picks the configuration file to load: the explicit path,
// then $LAMBD_CONFIG, then the nearest lambd.yml above the working
// directory. With none of these it returns the defaults.
func ResolveConfig(explicit string) (*Config, error) {
	path := strings.TrimSpace(explicit)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(ConfigEnvVar))
	}
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("config: working directory: %w", err)
		}
		found, ok, err := FindConfig(wd)
		if err != nil {
			return nil, err
		}
		if !ok {
			return DefaultConfig(), nil
		}
		path = found
	}
	return LoadConfig(path)
}

// FindConfig walks from start towards the filesystem root looking for
// lambd.yml.
func FindConfig(start string) (string, bool, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadConfig parses a configuration file, filling unset fields with defaults.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			cfg := DefaultConfig()
			cfg.Path = absPath
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must be a non-empty string")
	}
	if !c.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never (got %q)", c.Color))
	}
	if c.MaxCallDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive (got %d)", c.MaxCallDepth))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type configFile struct {
	Prompt             *string `yaml:"prompt"`
	ContinuationPrompt *string `yaml:"continuation_prompt"`
	HistoryFile        *string `yaml:"history_file"`
	Color              *string `yaml:"color"`
	MaxCallDepth       *int    `yaml:"max_call_depth"`
}

func (cf configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if cf.Prompt != nil {
		cfg.Prompt = *cf.Prompt
	}
	if cf.ContinuationPrompt != nil {
		cfg.ContinuationPrompt = *cf.ContinuationPrompt
	}
	if cf.HistoryFile != nil {
		cfg.HistoryFile = expandHome(strings.TrimSpace(*cf.HistoryFile))
	}
	if cf.Color != nil {
		cfg.Color = ColorMode(strings.ToLower(strings.TrimSpace(*cf.Color)))
	}
	if cf.MaxCallDepth != nil {
		cfg.MaxCallDepth = *cf.MaxCallDepth
	}
	return cfg
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
