package plugin

import (
	"fmt"
	"strings"
)

// Code is the load outcome of a plugin factory.
type Code int

const (
	// Success means the plugin was instantiated and initialized.
	Success Code = iota
	// Error means the factory or Init failed.
	Error
	// Skip means the plugin was not loaded on purpose.
	Skip
)

var codeNames = map[Code]string{
	Success: "Success",
	Error:   "Error",
	Skip:    "Skip",
}

// String returns the human-readable name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Status is the result of loading one plugin.
type Status struct {
	code    Code
	reasons []string
	err     error
	plugin  string
}

// NewStatus creates a new Status with the given code and reasons.
func NewStatus(code Code, reasons ...string) *Status {
	return &Status{
		code:    code,
		reasons: reasons,
	}
}

// NewStatusWithError creates an error Status from an error.
func NewStatusWithError(err error) *Status {
	return &Status{
		code:    Error,
		reasons: []string{err.Error()},
		err:     err,
	}
}

// Code returns the status code. A nil Status is Success.
func (s *Status) Code() Code {
	if s == nil {
		return Success
	}
	return s.code
}

// IsSuccess returns true if the status code is Success.
func (s *Status) IsSuccess() bool {
	return s.Code() == Success
}

// Message joins the reasons, or returns the code name when there are none.
func (s *Status) Message() string {
	if s == nil {
		return ""
	}
	if len(s.reasons) == 0 {
		return s.code.String()
	}
	return strings.Join(s.reasons, ", ")
}

// Err returns the underlying error. Success and Skip have none.
func (s *Status) Err() error {
	if s == nil {
		return nil
	}
	if s.err != nil {
		return s.err
	}
	if s.code == Success || s.code == Skip {
		return nil
	}
	return fmt.Errorf("plugin %q returned status %s: %s", s.plugin, s.code, s.Message())
}

// Plugin returns the plugin ID the status belongs to.
func (s *Status) Plugin() string {
	if s == nil {
		return ""
	}
	return s.plugin
}

// WithPlugin sets the plugin name on the status (for diagnostics).
func (s *Status) WithPlugin(name string) *Status {
	if s == nil {
		return nil
	}
	s.plugin = name
	return s
}
