package detect

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philippart-s/ai-skills/internal/errors"
)

// Flag identifies a stack whose guidance applies to the project
type Flag string

const (
	Quarkus     Flag = "quarkus"
	JBang       Flag = "jbang"
	LangChain4j Flag = "langchain4j"
)

// AllFlags lists every known flag in display order
var AllFlags = []Flag{Quarkus, JBang, LangChain4j}

// ParseFlag converts user input into a Flag
func ParseFlag(s string) (Flag, error) {
	f := Flag(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFlags {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeDetectUnknownFlag, fmt.Sprintf("unknown stack flag: %q", s)).
		WithSuggestion("Use one of: quarkus, jbang, langchain4j")
}

// FlagSet is an unordered set of flags
type FlagSet map[Flag]struct{}

// NewFlagSet builds a set from the given flags
func NewFlagSet(flags ...Flag) FlagSet {
	s := make(FlagSet, len(flags))
	for _, f := range flags {
		s[f] = struct{}{}
	}
	return s
}

// Has reports whether f is in the set
func (s FlagSet) Has(f Flag) bool {
	_, ok := s[f]
	return ok
}

// Empty reports whether no flag is set
func (s FlagSet) Empty() bool {
	return len(s) == 0
}

// Slice returns the flags in a stable, sorted order
func (s FlagSet) Slice() []Flag {
	out := make([]Flag, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted flag names
func (s FlagSet) Strings() []string {
	flags := s.Slice()
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}

func (s FlagSet) String() string {
	if s.Empty() {
		return "none"
	}
	return strings.Join(s.Strings(), ", ")
}

// MarshalJSON encodes the set as a sorted list of names
func (s FlagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON decodes a list of flag names
func (s *FlagSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	return s.fromNames(names)
}

// MarshalYAML encodes the set as a sorted list of names
func (s FlagSet) MarshalYAML() (interface{}, error) {
	return s.Strings(), nil
}

// UnmarshalYAML decodes a list of flag names
func (s *FlagSet) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	return s.fromNames(names)
}

func (s *FlagSet) fromNames(names []string) error {
	out := make(FlagSet, len(names))
	for _, name := range names {
		f, err := ParseFlag(name)
		if err != nil {
			return err
		}
		out[f] = struct{}{}
	}
	*s = out
	return nil
}

// Rules maps each flag to the lowercase substrings that activate it
type Rules map[Flag][]string

// DefaultRules are the built-in marker patterns
func DefaultRules() Rules {
	return Rules{
		Quarkus: {
			"io.quarkus",
			"quarkus-bom",
			"quarkus-maven-plugin",
			"quarkus-core",
			"quarkus-rest",
			"quarkus-arc",
		},
		JBang: {
			"jbang-catalog.json",
			"///usr/bin/env jbang",
			"//deps ",
			"//java ",
			"//sources ",
			"jbang",
		},
		LangChain4j: {
			"langchain4j",
		},
	}
}

// With returns a copy of r with extra patterns appended per flag.
// Unknown flags in extra are ignored.
func (r Rules) With(extra map[string][]string) Rules {
	out := make(Rules, len(r))
	for f, patterns := range r {
		out[f] = append([]string(nil), patterns...)
	}
	for name, patterns := range extra {
		f, err := ParseFlag(name)
		if err != nil {
			continue
		}
		for _, p := range patterns {
			p = strings.ToLower(strings.TrimSpace(p))
			if p != "" {
				out[f] = append(out[f], p)
			}
		}
	}
	return out
}

// Match records which pattern activated a flag, for reporting
type Match struct {
	Flag    Flag   `json:"flag" yaml:"flag"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Marker  string `json:"marker" yaml:"marker"`
}

// Result is the outcome of a detection run
type Result struct {
	Flags   FlagSet `json:"flags" yaml:"flags"`
	Matches []Match `json:"matches,omitempty" yaml:"matches,omitempty"`

	// Inconclusive is set when nothing matched. The caller must ask the
	// human which stack applies instead of guessing.
	Inconclusive bool `json:"inconclusive" yaml:"inconclusive"`
}

// Detector matches markers against rules
type Detector struct {
	rules Rules
}

// NewDetector creates a detector using rules, or DefaultRules when nil.
// Patterns are matched lowercased and trimmed; blank patterns are dropped.
func NewDetector(rules Rules) *Detector {
	if rules == nil {
		rules = DefaultRules()
	}
	normalized := make(Rules, len(rules))
	for f, patterns := range rules {
		for _, p := range patterns {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				normalized[f] = append(normalized[f], p)
			}
		}
	}
	return &Detector{rules: normalized}
}

// Detect returns the flags whose patterns occur in any marker
func (d *Detector) Detect(markers []string) Result {
	res := Result{Flags: FlagSet{}}

	for _, marker := range markers {
		lower := strings.ToLower(marker)
		for _, f := range AllFlags {
			if res.Flags.Has(f) {
				continue
			}
			for _, pattern := range d.rules[f] {
				if strings.Contains(lower, pattern) {
					res.Flags[f] = struct{}{}
					res.Matches = append(res.Matches, Match{Flag: f, Pattern: pattern, Marker: excerpt(marker, pattern)})
					break
				}
			}
		}
	}

	res.Inconclusive = res.Flags.Empty()
	return res
}

// Detect runs the default detector over markers
func Detect(markers []string) Result {
	return NewDetector(nil).Detect(markers)
}

// Summary returns a human-readable summary of the result
func (r Result) Summary() string {
	var sb strings.Builder

	sb.WriteString("Detected Context:\n\n")
	if r.Inconclusive {
		sb.WriteString("  Stack: inconclusive (you will be asked which stack applies)\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "  Stack: %s\n", r.Flags)
	for _, m := range r.Matches {
		fmt.Fprintf(&sb, "    ✓ %s (matched %q in %q)\n", m.Flag, m.Pattern, m.Marker)
	}
	return sb.String()
}

// excerpt returns the line of marker that contains pattern, trimmed
func excerpt(marker, pattern string) string {
	for _, line := range strings.Split(marker, "\n") {
		if strings.Contains(strings.ToLower(line), pattern) {
			line = strings.TrimSpace(line)
			if len(line) > 120 {
				line = line[:117] + "..."
			}
			return line
		}
	}
	return strings.TrimSpace(marker)
}
