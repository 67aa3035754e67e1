package streams

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories for rendering operations.
var (
	// ErrConfig indicates invalid static configuration.
	ErrConfig = errors.New("streams: invalid configuration")

	// ErrDomain indicates a value outside the domain of a scale.
	ErrDomain = errors.New("streams: value outside scale domain")

	// ErrUnknownStream indicates an active id that is not in the stream universe.
	ErrUnknownStream = errors.New("streams: unknown stream id")

	// ErrIncompleteConfig indicates the requested quantity has no color-domain bounds.
	ErrIncompleteConfig = errors.New("streams: incomplete configuration")
)

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// NewConfigError formats a ConfigError for field.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DomainError reports a value that a scale cannot map.
type DomainError struct {
	Scale    string
	Value    float64
	Min, Max float64
	Reason   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%v: %s scale, value=%g domain=[%g, %g]: %s",
		ErrDomain, e.Scale, e.Value, e.Min, e.Max, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// UnknownStreamError lists every active id missing from the universe, ascending.
type UnknownStreamError struct {
	IDs []StreamID
}

func (e *UnknownStreamError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%v: %s", ErrUnknownStream, strings.Join(ids, ", "))
}

func (e *UnknownStreamError) Unwrap() error {
	return ErrUnknownStream
}

// IncompleteConfigError names the quantity that lacks bounds.
type IncompleteConfigError struct {
	Quantity string
}

func (e *IncompleteConfigError) Error() string {
	if e.Quantity == "" {
		return fmt.Sprintf("%v: no quantity selected", ErrIncompleteConfig)
	}
	return fmt.Sprintf("%v: no color-domain bounds for %q", ErrIncompleteConfig, e.Quantity)
}

func (e *IncompleteConfigError) Unwrap() error {
	return ErrIncompleteConfig
}
