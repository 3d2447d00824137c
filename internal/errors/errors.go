// Package errors provides structured error types for darkchat.
// These errors carry which operation failed and what category of failure
// it was, so callers can tell a transport failure from a server rejection
// without parsing strings.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindConfig
	KindRejected
	KindMalformed
	KindTimeout
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindRejected:
		return "rejected by server"
	case KindMalformed:
		return "malformed response"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for darkchat.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// GetKind returns the Kind of the outermost structured error in the chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// As is errors.As, re-exported so callers importing this package under the
// errors name do not need the standard library package as well.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(err error) error {
	return E(Op("config.Validate"), KindInvalid, err)
}

// Backend request errors
func RequestFailed(endpoint string, err error) error {
	return E(Op("api.Post"), KindNetwork, fmt.Sprintf("request to %s failed", endpoint), err)
}

func RequestTimeout(endpoint string, err error) error {
	return E(Op("api.Post"), KindTimeout, fmt.Sprintf("no response from %s", endpoint), err)
}

func RequestCanceled(endpoint string, err error) error {
	return E(Op("api.Post"), KindCanceled, fmt.Sprintf("request to %s canceled", endpoint), err)
}

func RequestRejected(endpoint string, err error) error {
	return E(Op("api.Post"), KindRejected, fmt.Sprintf("%s rejected the request", endpoint), err)
}

func ResponseMalformed(endpoint string, err error) error {
	return E(Op("api.Decode"), KindMalformed, fmt.Sprintf("unexpected response from %s", endpoint), err)
}

// Auth session storage errors
func SessionLoadFailed(path string, err error) error {
	return E(Op("auth.Load"), KindIO, fmt.Sprintf("failed to read session from %s", path), err)
}

func SessionSaveFailed(path string, err error) error {
	return E(Op("auth.Save"), KindIO, fmt.Sprintf("failed to write session to %s", path), err)
}
