package log

import (
	"io"
	"os"
	"strings"
)

// Format represents the output format for logs
type Format int

const (
	// FormatText is the default; the CLI is read by people first.
	FormatText Format = iota
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a string into a Format
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Config holds configuration for the logger
type Config struct {
	Level  Level
	Format Format

	// Output defaults to stderr. Stdout carries workflow responses.
	Output io.Writer

	AddSource bool

	// ServiceName is attached to every record as "service"
	ServiceName    string
	ServiceVersion string
}

// DefaultConfig logs warnings and above as text to stderr
func DefaultConfig() Config {
	return Config{
		Level:       LevelWarn,
		Format:      FormatText,
		Output:      os.Stderr,
		ServiceName: "ai-skills",
	}
}

// FromSettings builds a Config from the string settings found in the
// configuration file, environment and flags.
func FromSettings(level, format, version string) Config {
	cfg := DefaultConfig()
	if level != "" {
		cfg.Level = ParseLevel(level)
	}
	if format != "" {
		cfg.Format = ParseFormat(format)
	}
	cfg.AddSource = cfg.Level == LevelDebug
	cfg.ServiceVersion = version
	return cfg
}
