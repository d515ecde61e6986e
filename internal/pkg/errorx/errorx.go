// Package errorx defines the error taxonomy surfaced at the tool boundary.
package errorx

import (
	"errors"
	"fmt"
)

// Kind classifies an error by where it originated.
type Kind int

const (
	// KindUnknown is reported for errors that did not pass through this package.
	KindUnknown Kind = iota
	// KindConfiguration is a missing or invalid setting.
	KindConfiguration
	// KindNetwork is an unreachable host or a non-2xx HTTP response.
	KindNetwork
	// KindAPI is a non-zero status code in the upstream status envelope,
	// or a body that could not be decoded.
	KindAPI
	// KindIO is a local file that could not be read.
	KindIO
	// KindInvalidInput is a tool argument that is missing or malformed.
	KindInvalidInput
)

var kindNames = map[Kind]string{
	KindUnknown:       "Unknown",
	KindConfiguration: "Configuration",
	KindNetwork:       "Network",
	KindAPI:           "API",
	KindIO:            "IO",
	KindInvalidInput:  "InvalidInput",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified error with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	// Code is the HTTP status for network errors or the envelope status
	// code for API errors. Zero when not applicable.
	Code  int
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error without a cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause. A nil cause yields a plain Error.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithCode sets Code and returns the receiver.
func (e *Error) WithCode(code int) *Error {
	e.Code = code
	return e
}

func Configuration(format string, args ...interface{}) *Error {
	return New(KindConfiguration, format, args...)
}

func Network(cause error, format string, args ...interface{}) *Error {
	return Wrap(KindNetwork, cause, format, args...)
}

func API(code int, format string, args ...interface{}) *Error {
	return New(KindAPI, format, args...).WithCode(code)
}

func IO(cause error, format string, args ...interface{}) *Error {
	return Wrap(KindIO, cause, format, args...)
}

func InvalidInput(format string, args ...interface{}) *Error {
	return New(KindInvalidInput, format, args...)
}

// KindOf returns the Kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err's chain contains an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
