// Package config loads ai-skills settings from a YAML file, AISKILLS_
// environment variables and command-line overrides.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/errors"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "AISKILLS_"

const maxConfigFileSize = 1024 * 1024

// Config holds every setting
type Config struct {
	Log        LogConfig        `koanf:"log" json:"log" yaml:"log"`
	Output     OutputConfig     `koanf:"output" json:"output" yaml:"output"`
	Guide      GuideConfig      `koanf:"guide" json:"guide" yaml:"guide"`
	Detect     DetectConfig     `koanf:"detect" json:"detect" yaml:"detect"`
	Install    InstallConfig    `koanf:"install" json:"install" yaml:"install"`
	Transcript TranscriptConfig `koanf:"transcript" json:"transcript" yaml:"transcript"`
}

// LogConfig configures internal/log
type LogConfig struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// OutputConfig configures command output
type OutputConfig struct {
	// Format is text, json or yaml
	Format string `koanf:"format" json:"format" yaml:"format"`
	// Style is auto, dark, light or plain
	Style string `koanf:"style" json:"style" yaml:"style"`
}

// GuideConfig configures the reference loader
type GuideConfig struct {
	// Dir holds <id>.md files that replace the built-in guidance
	Dir string `koanf:"dir" json:"dir,omitempty" yaml:"dir,omitempty"`
}

// DetectConfig configures the context detector
type DetectConfig struct {
	MaxDepth int `koanf:"max_depth" json:"max_depth" yaml:"max_depth"`
	// Extra adds marker patterns per flag
	Extra map[string][]string `koanf:"extra" json:"extra,omitempty" yaml:"extra,omitempty"`
}

// InstallConfig configures the skill installer
type InstallConfig struct {
	Harness string `koanf:"harness" json:"harness" yaml:"harness"`
}

// TranscriptConfig configures transcript storage
type TranscriptConfig struct {
	Dir string `koanf:"dir" json:"dir" yaml:"dir"`
}

// Default returns the built-in settings
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// DefaultDir returns ~/.config/ai-skills
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigLoad, "failed to get home directory", err)
	}
	return filepath.Join(home, ".config", "ai-skills"), nil
}

// DefaultPath returns ~/.config/ai-skills/config.yaml
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration.
//
// Precedence (highest to lowest):
//  1. overrides, keyed by dotted path (log.level, output.format, ...)
//  2. AISKILLS_ environment variables (AISKILLS_LOG_LEVEL -> log.level)
//  3. YAML file at path, or DefaultPath when empty. A missing file is fine.
//  4. Defaults
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := loadFile(k, path); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to load environment variables", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigLoad, fmt.Sprintf("failed to set %s", key), err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to unmarshal config", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeConfigLoad, fmt.Sprintf("failed to open config file %s", path), err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigLoad, "failed to read config file", err)
	}
	if len(content) > maxConfigFileSize {
		return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("config file too large (max %d bytes)", maxConfigFileSize))
	}

	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return errors.Wrap(errors.ErrCodeConfigLoad, fmt.Sprintf("failed to load config file %s", path), err)
	}
	return nil
}

// envKey maps AISKILLS_SECTION_FIELD_NAME to section.field_name.
// AISKILLS_DETECT_EXTRA_<FLAG> maps to detect.extra.<flag>.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	section, field := parts[0], parts[1]
	if section == "detect" && strings.HasPrefix(field, "extra_") {
		return "detect.extra." + strings.TrimPrefix(field, "extra_")
	}
	return section + "." + field
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Output.Style == "" {
		cfg.Output.Style = "auto"
	}
	if cfg.Detect.MaxDepth == 0 {
		cfg.Detect.MaxDepth = detect.DefaultScanOptions().MaxDepth
	}
	if cfg.Install.Harness == "" {
		cfg.Install.Harness = "claude"
	}
	if cfg.Transcript.Dir == "" {
		if dir, err := DefaultDir(); err == nil {
			cfg.Transcript.Dir = filepath.Join(dir, "transcripts")
		}
	}

	// env values arrive as one comma separated string
	for flag, patterns := range cfg.Detect.Extra {
		var split []string
		for _, p := range patterns {
			for _, part := range strings.Split(p, ",") {
				if part = strings.TrimSpace(part); part != "" {
					split = append(split, part)
				}
			}
		}
		cfg.Detect.Extra[flag] = split
	}
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	checks := []struct {
		key     string
		value   string
		allowed []string
	}{
		{"log.level", c.Log.Level, []string{"debug", "info", "warn", "warning", "error"}},
		{"log.format", c.Log.Format, []string{"text", "json"}},
		{"output.format", c.Output.Format, []string{"text", "json", "yaml"}},
		{"output.style", c.Output.Style, []string{"auto", "dark", "light", "plain"}},
		{"install.harness", c.Install.Harness, []string{"claude", "opencode"}},
	}

	for _, check := range checks {
		if !contains(check.allowed, strings.ToLower(check.value)) {
			return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid %s: %q", check.key, check.value)).
				WithSuggestion("Allowed values: " + strings.Join(check.allowed, ", "))
		}
	}

	if c.Detect.MaxDepth < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "detect.max_depth must not be negative")
	}
	for flag := range c.Detect.Extra {
		if _, err := detect.ParseFlag(flag); err != nil {
			return errors.Wrap(errors.ErrCodeConfigInvalid, "invalid detect.extra key", err)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
