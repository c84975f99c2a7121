package workflow

import "fmt"

// Phase is one of the five ordered workflow stages
type Phase int

const (
	Gathering Phase = iota
	GitCheck
	Planning
	Implementation
	Validation
)

// Phases lists every phase in execution order
var Phases = []Phase{Gathering, GitCheck, Planning, Implementation, Validation}

var phaseNames = map[Phase]string{
	Gathering:      "Gathering",
	GitCheck:       "GitCheck",
	Planning:       "Planning",
	Implementation: "Implementation",
	Validation:     "Validation",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Next returns the phase that follows p. Validation has no successor.
func (p Phase) Next() (Phase, bool) {
	if p >= Validation {
		return p, false
	}
	return p + 1, true
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
