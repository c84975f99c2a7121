package ux

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func (r report) String() string { return fmt.Sprintf("%s has %d", r.Name, r.Count) }

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"text", "", "json", "yaml", "YML"} {
		_, err := NewFormatter(format, nil)
		assert.NoError(t, err, format)
	}

	_, err := NewFormatter("xml", nil)
	assert.ErrorContains(t, err, "supported: text, json, yaml")
}

func TestFormats(t *testing.T) {
	data := report{Name: "quarkus", Count: 2}

	tests := []struct {
		format string
		want   string
	}{
		{"json", "{\n  \"name\": \"quarkus\",\n  \"count\": 2\n}\n"},
		{"yaml", "name: quarkus\ncount: 2\n"},
		{"text", "quarkus has 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			f, err := NewFormatter(tt.format, &FormatterOptions{Writer: &buf})
			require.NoError(t, err)
			require.NoError(t, f.Format(data))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{opts: &FormatterOptions{Writer: &buf}}

	require.NoError(t, f.Format([]string{"a", "b"}))
	require.NoError(t, f.Format("c\n"))
	assert.Equal(t, "a\nb\nc\n", buf.String())

	assert.Error(t, f.Format(map[string]int{"x": 1}))
}

func TestCompactJSON(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf, Compact: true})
	require.NoError(t, err)
	require.NoError(t, f.Format(report{Name: "x"}))
	assert.Equal(t, "{\"name\":\"x\",\"count\":0}\n", buf.String())
}
