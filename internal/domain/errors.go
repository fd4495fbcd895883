package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every typed error below matches exactly one of these with errors.Is.
var (
	ErrInvalidName          = errors.New("invalid name")
	ErrUnknownArchitecture  = errors.New("unknown architecture")
	ErrUnsupportedDirection = errors.New("unsupported direction")
	ErrMissingContextValue  = errors.New("missing context value")
)

// NameError reports a value that violates a naming invariant.
type NameError struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (e *NameError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	if e.Suggestion != "" && e.Suggestion != e.Value {
		msg += fmt.Sprintf(" (try %q)", e.Suggestion)
	}
	return msg
}

func (e *NameError) Is(target error) bool { return target == ErrInvalidName }

// UnknownArchitectureError is returned when a value is outside the ArchitectureType enumeration.
type UnknownArchitectureError struct {
	Value string `json:"value"`
}

func (e *UnknownArchitectureError) Error() string {
	valid := make([]string, 0, len(ValidArchitectures))
	for _, a := range ValidArchitectures {
		valid = append(valid, string(a))
	}
	return fmt.Sprintf("unknown architecture %q (valid: %s)", e.Value, strings.Join(valid, ", "))
}

func (e *UnknownArchitectureError) Is(target error) bool { return target == ErrUnknownArchitecture }

// UnsupportedDirectionError is returned when an architecture has no path
// template for the requested direction key.
type UnsupportedDirectionError struct {
	Architecture ArchitectureType `json:"architecture"`
	Direction    string           `json:"direction"`
	Supported    []string         `json:"supported,omitempty"`
}

func (e *UnsupportedDirectionError) Error() string {
	msg := fmt.Sprintf("no path template for direction %q in architecture %q", e.Direction, e.Architecture)
	if len(e.Supported) > 0 {
		msg += fmt.Sprintf(" (supported: %s)", strings.Join(e.Supported, ", "))
	}
	return msg
}

func (e *UnsupportedDirectionError) Is(target error) bool { return target == ErrUnsupportedDirection }

// MissingContextValueError is returned when a path template references a
// placeholder that the substitution context does not provide.
type MissingContextValueError struct {
	Architecture ArchitectureType `json:"architecture"`
	Placeholder  string           `json:"placeholder"`
	Template     string           `json:"template"`
	Hint         string           `json:"hint,omitempty"`
}

func (e *MissingContextValueError) Error() string {
	msg := fmt.Sprintf("path template %q for architecture %q needs a value for {%s}", e.Template, e.Architecture, e.Placeholder)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

func (e *MissingContextValueError) Is(target error) bool { return target == ErrMissingContextValue }
