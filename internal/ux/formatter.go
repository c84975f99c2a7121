package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formatter writes command results in one output format
type Formatter interface {
	Format(data interface{}) error
}

// Formats lists the supported output formats
var Formats = []string{"text", "json", "yaml"}

// FormatterOptions contains configuration for formatters
type FormatterOptions struct {
	// Writer is where output is written (defaults to os.Stdout)
	Writer io.Writer
	// Compact disables indentation for JSON
	Compact bool
}

// NewFormatter creates a formatter based on the format string
func NewFormatter(format string, opts *FormatterOptions) (Formatter, error) {
	if opts == nil {
		opts = &FormatterOptions{}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{opts: opts}, nil
	case "yaml", "yml":
		return &YAMLFormatter{opts: opts}, nil
	case "text", "":
		return &TextFormatter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	opts *FormatterOptions
}

// Format writes data as JSON
func (f *JSONFormatter) Format(data interface{}) error {
	encoder := json.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	opts *FormatterOptions
}

// Format writes data as YAML
func (f *YAMLFormatter) Format(data interface{}) error {
	encoder := yaml.NewEncoder(f.opts.Writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

// TextFormatter formats output as human-readable text.
// Data must be a string, a string slice or implement fmt.Stringer.
type TextFormatter struct {
	opts *FormatterOptions
}

// Format writes data as text
func (f *TextFormatter) Format(data interface{}) error {
	var err error
	switch v := data.(type) {
	case string:
		_, err = fmt.Fprintln(f.opts.Writer, strings.TrimRight(v, "\n"))
	case []string:
		for _, line := range v {
			if _, err = fmt.Fprintln(f.opts.Writer, line); err != nil {
				break
			}
		}
	case fmt.Stringer:
		_, err = fmt.Fprintln(f.opts.Writer, strings.TrimRight(v.String(), "\n"))
	default:
		err = fmt.Errorf("text output is not available for %T, use --output json or yaml", data)
	}
	return err
}

var (
	_ Formatter = (*JSONFormatter)(nil)
	_ Formatter = (*YAMLFormatter)(nil)
	_ Formatter = (*TextFormatter)(nil)
)
