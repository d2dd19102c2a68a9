package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"yaml2lua/internal/loader"
	"yaml2lua/luatable"
	"yaml2lua/value"
)

// Diagnostic codes.
const (
	CodeYAML        = "yaml"
	CodeKeyType     = "key-type"
	CodeTaggedValue = "tagged-value"
	CodeIO          = "io"
	CodeEmpty       = "empty"
	CodeInternal    = "internal"
)

// Diagnostics holds all diagnostic information from a conversion run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// File is the input the diagnostic relates to (if any).
	File string
	// Path locates the offending value inside the document (if any).
	Path string
	// Pos is the source position of the offending value (if known).
	Pos value.Pos
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// FromError classifies a conversion error for file.
func FromError(file string, err error) Diagnostic {
	d := Diagnostic{
		Severity: SeverityError,
		Code:     CodeInternal,
		Message:  err.Error(),
		File:     file,
	}

	var (
		lerr *loader.Error
		kerr *luatable.UnsupportedKeyTypeError
		terr *luatable.UnsupportedTaggedValueError
	)

	switch {
	case errors.As(err, &lerr):
		d.Code = CodeYAML
		d.Pos = lerr.Pos
	case errors.As(err, &kerr):
		d.Code = CodeKeyType
		d.Message = fmt.Sprintf("mapping key of kind %s is not supported", kerr.Kind)
		d.Path = kerr.Path.String()
		d.Pos = kerr.Pos
	case errors.As(err, &terr):
		d.Code = CodeTaggedValue
		d.Message = fmt.Sprintf("tagged value %s is not supported", terr.Tag)
		d.Path = terr.Path.String()
		d.Pos = terr.Pos
	}

	return d
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	if diag.Severity == SeverityError {
		d.Errors = append(d.Errors, diag)
		return
	}

	d.Warnings = append(d.Warnings, diag)
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, file string) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, File: file})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, file string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, File: file})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// All returns errors, then warnings.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings))
	all = append(all, d.Errors...)

	return append(all, d.Warnings...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.File != "" {
		prefix = append(prefix, d.File)
	}

	if !d.Pos.IsZero() {
		prefix = append(prefix, fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column))
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, ": ") + ": " + msg
	}

	return msg
}
