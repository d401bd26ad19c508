package codec

import (
	"errors"
	"fmt"
	"os"

	"attrstore/internal/path"
)

// ErrEmptyStep is returned for a step that neither sets nor unsets paths.
var ErrEmptyStep = errors.New("empty step")

// Script is an ordered list of write batches.
type Script struct {
	Steps []Step `yaml:"steps" json:"steps"`
}

// Step is one batch. A step either sets or unsets paths.
type Step struct {
	Set    map[string]any `yaml:"set,omitempty" json:"set,omitempty"`
	Unset  []string       `yaml:"unset,omitempty" json:"unset,omitempty"`
	Silent bool           `yaml:"silent,omitempty" json:"silent,omitempty"`
}

// Attributes returns the batch to write: the Set mapping, or the Unset
// paths mapped to nil.
func (s Step) Attributes() path.Record {
	if len(s.Unset) == 0 {
		return s.Set
	}

	out := make(path.Record, len(s.Unset))
	for _, p := range s.Unset {
		out[p] = nil
	}

	return out
}

// IsUnset reports whether the step deletes paths.
func (s Step) IsUnset() bool {
	return len(s.Unset) > 0
}

// ParseScript decodes a script.
func ParseScript(data []byte, format Format) (*Script, error) {
	var sc Script

	err := unmarshal(data, format, &sc)
	if err != nil {
		return nil, err
	}

	for i := range sc.Steps {
		step := &sc.Steps[i]
		if len(step.Set) > 0 && len(step.Unset) > 0 {
			return nil, fmt.Errorf("step %d: set and unset are mutually exclusive", i+1)
		}

		if len(step.Set) == 0 && len(step.Unset) == 0 {
			return nil, fmt.Errorf("step %d: %w", i+1, ErrEmptyStep)
		}

		if step.Set != nil {
			step.Set, _ = Normalize(step.Set).(map[string]any)
		}
	}

	return &sc, nil
}

// LoadScript reads a script file; the format follows the extension,
// falling back to fallback when it cannot be detected.
func LoadScript(file string, fallback Format) (*Script, error) {
	format, err := FormatFromPath(file, fallback)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file %s: %w", file, err)
	}

	sc, err := ParseScript(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script file %s: %w", file, err)
	}

	return sc, nil
}
