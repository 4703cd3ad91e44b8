// Package diag carries the use-site diagnostics the inference engine and
// its collaborators append for the caller. The engine never branches on
// the sink's contents; it only reports.
package diag

import (
	"fmt"

	"go.uber.org/multierr"
)

// Code identifies a diagnostic category.
type Code string

const (
	CodeNoBounds         Code = "no-bounds"
	CodeAmbiguousBounds  Code = "ambiguous-bounds"
	CodeConflictingExact Code = "conflicting-exact-bounds"
	CodeNoProgress       Code = "no-progress"
	CodeNoFormals        Code = "no-formal-parameters"
)

// Diagnostic is a single use-site message about an inference.
type Diagnostic struct {
	Code    Code
	Subject string // usually a type parameter name
	Message string
}

func (d Diagnostic) Error() string {
	if d.Subject != "" {
		return fmt.Sprintf("%s: %s: %s", d.Code, d.Subject, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Sink accumulates diagnostics. The zero value is ready to use; a nil
// *Sink discards everything, so callers that don't care can pass nil.
type Sink struct {
	diags []Diagnostic
}

// Add appends a diagnostic.
func (s *Sink) Add(code Code, subject, format string, args ...any) {
	if s == nil {
		return
	}
	s.diags = append(s.diags, Diagnostic{Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// All returns the accumulated diagnostics in append order.
func (s *Sink) All() []Diagnostic {
	if s == nil {
		return nil
	}
	return s.diags
}

// Err combines the accumulated diagnostics into a single error, or nil
// when the sink is empty.
func (s *Sink) Err() error {
	if s == nil {
		return nil
	}
	var err error
	for _, d := range s.diags {
		err = multierr.Append(err, d)
	}
	return err
}
