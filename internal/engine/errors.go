package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a planned input or artifact that does not exist.
	ErrNotFound = errors.New("not found")

	ErrColumnNotFound    = errors.New("column not found")
	ErrEmptyPool         = errors.New("empty key pool")
	ErrLengthMismatch    = errors.New("length mismatch")
	ErrMissingAuthSource = errors.New("missing credential source")
	ErrMalformedInput    = errors.New("malformed input")
)

// SkipError is the only tolerable failure: the table is left out of the run.
type SkipError struct {
	Table string
	Err   error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skipping %s: %v", e.Table, e.Err)
}

func (e *SkipError) Unwrap() error { return e.Err }

// IsSkip reports whether err asks the caller to skip a table rather than abort.
func IsSkip(err error) bool {
	var se *SkipError
	return errors.As(err, &se)
}

// TransportError is returned when the remote generator call fails.
type TransportError struct {
	Table  string
	Status int    // HTTP status, 0 when no response was received
	Output string // diagnostic output of the call
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: generator returned status %d: %s", e.Table, e.Status, e.Output)
	}
	return fmt.Sprintf("fetch %s: %v", e.Table, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError signals a schema declaration or ordering bug. Never retried.
type ValidationError struct {
	Table  string
	Column string
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	msg := e.Err.Error()
	if e.Table != "" && e.Column != "" {
		msg = fmt.Sprintf("%s.%s: %s", e.Table, e.Column, msg)
	} else if e.Table != "" {
		msg = fmt.Sprintf("%s: %s", e.Table, msg)
	} else if e.Column != "" {
		msg = fmt.Sprintf("%s: %s", e.Column, msg)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// LoadError carries the artifact whose statements the store rejected.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
