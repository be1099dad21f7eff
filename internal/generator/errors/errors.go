// Package errors provides structured diagnostics for the wideptr generator.
// Every rejection the generator can produce carries a stable code, a source
// location, and an actionable message, formatted for terminal output or as
// JSON for tooling.
package errors

import (
	"encoding/json"
	"go/token"
)

// Code is a unique diagnostic code, stable across releases.
type Code string

// Category groups diagnostics by generator phase.
type Category string

const (
	// CategorySource covers loading and parsing the target package (SRC000-099).
	CategorySource Category = "source"
	// CategoryAnalysis covers directive and sizedness analysis (ANA100-199).
	CategoryAnalysis Category = "analysis"
	// CategoryCodeGen covers capability emission (GEN200-299).
	CategoryCodeGen Category = "codegen"
)

// Severity is the diagnostic severity level.
type Severity string

const (
	// SeverityError prevents any output from being written.
	SeverityError Severity = "error"
	// SeverityWarning reports a suspicious declaration without failing the run.
	SeverityWarning Severity = "warning"
)

// GenError is a single generator diagnostic.
type GenError struct {
	// Code is the stable diagnostic code, e.g. "ANA102".
	Code Code `json:"code"`
	// Category is the generator phase that produced the diagnostic.
	Category Category `json:"category"`
	// Severity is the diagnostic severity.
	Severity Severity `json:"severity"`
	// Message is the primary message, naming the offending type.
	Message string `json:"message"`
	// Pos is the source position of the rejected declaration.
	Pos Position `json:"pos"`
	// Suggestion hints at a fix, when one exists.
	Suggestion string `json:"suggestion,omitempty"`
}

// Position is a plain serializable source position.
type Position struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// At converts a token.Position into a Position.
func At(pos token.Position) Position {
	return Position{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

// Error implements the error interface.
func (e *GenError) Error() string {
	return Format(e)
}

// WithSuggestion attaches a fix hint to the diagnostic.
func (e *GenError) WithSuggestion(s string) *GenError {
	e.Suggestion = s
	return e
}

func newError(code Code, cat Category, sev Severity, msg string, pos Position) *GenError {
	return &GenError{
		Code:     code,
		Category: cat,
		Severity: sev,
		Message:  msg,
		Pos:      pos,
	}
}

// List aggregates the diagnostics of one generator run.
type List []*GenError

// HasErrors reports whether the list contains at least one error-severity
// diagnostic.
func (l List) HasErrors() bool {
	for _, e := range l {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of errors and warnings in the list.
func (l List) Counts() (errs, warns int) {
	for _, e := range l {
		switch e.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warns++
		}
	}
	return errs, warns
}

// Error implements the error interface over the whole list.
func (l List) Error() string {
	return FormatList(l)
}

// ToJSON renders the list as indented JSON for machine consumption.
func (l List) ToJSON() (string, error) {
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
