// Package errors provides structured error handling for anima.
//
// Playback failures are deliberately non-fatal: a resource that fails to
// load or decode leaves the driver showing whatever was last displayed.
// Those failures are reported here instead of crossing the prepare boundary
// as returned errors.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindDecode indicates image data that could not be decoded.
	KindDecode
	// KindResource indicates a named resource that could not be loaded.
	KindResource
	// KindPlayback indicates a playback lifecycle error.
	KindPlayback
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindResource:
		return "resource"
	case KindPlayback:
		return "playback"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured error in anima.
type Error struct {
	// Op is the operation that failed (e.g., "playback.PrepareForAnimation").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Resource is the named resource involved, if applicable.
	Resource string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s [%s] resource=%s: %v", e.Op, e.Kind, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "playback.update").
	Op string
	// Value is the value passed to panic().
	Value any
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by anima.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
