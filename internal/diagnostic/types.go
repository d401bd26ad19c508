package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"attrstore/internal/common"
)

// Codes used by the CLI.
const (
	CodeInvalidPath = "invalid-path"
	CodeMissingPath = "missing-path"
	CodeNoChange    = "no-change"
	CodeClobber     = "clobber"
)

// Diagnostics holds all diagnostic information from a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Step is the 1-based script step, or 0 when not tied to a step.
	Step int
	// Path identifies which attribute this relates to (if any).
	Path string
	// Suggestions are similar known paths.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic and returns it for further decoration.
func (d *Diagnostics) AddError(code, message string, step int, p string) *Diagnostic {
	d.Errors = append(d.Errors, newDiagnostic(SeverityError, code, message, step, p))

	return &d.Errors[len(d.Errors)-1]
}

// AddWarning adds a warning diagnostic and returns it for further decoration.
func (d *Diagnostics) AddWarning(code, message string, step int, p string) *Diagnostic {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, message, step, p))

	return &d.Warnings[len(d.Warnings)-1]
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, step int, p string) {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, message, step, p))
}

func newDiagnostic(sev Severity, code, message string, step int, p string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Step:     step,
		Path:     p,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Step > 0 {
		prefix = append(prefix, fmt.Sprintf("[step %d]", d.Step))
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
