package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPhaseOrder(t *testing.T) {
	for i, p := range Phases[:len(Phases)-1] {
		next, ok := p.Next()
		require.True(t, ok)
		assert.Equal(t, Phases[i+1], next)
	}

	_, ok := Validation.Next()
	assert.False(t, ok)
}

func TestPhaseEncoding(t *testing.T) {
	data, err := json.Marshal(Event{Kind: EventPhaseEntered, Phase: Planning})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"phase":"Planning"`)

	var e Event
	require.NoError(t, yaml.Unmarshal([]byte("kind: halted\nphase: GitCheck\n"), &e))
	assert.Equal(t, GitCheck, e.Phase)

	var p Phase
	assert.Error(t, p.UnmarshalText([]byte("Deploy")))
	assert.Equal(t, "Phase(9)", Phase(9).String())
}

func TestSummaryString(t *testing.T) {
	s := Summary{ID: "abc", Phase: Planning, Halted: true, HaltReason: "stop"}
	out := s.String()
	assert.Contains(t, out, "Planning")
	assert.Contains(t, out, "halted (stop)")
	assert.Contains(t, out, "Stack: none")
}
