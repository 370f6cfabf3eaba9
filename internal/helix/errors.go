package helix

import (
	"errors"
	"fmt"
)

// Configuration errors, reported before any geometry is built.
var (
	// ErrInvalidConfig indicates a parameter outside its valid range.
	ErrInvalidConfig = errors.New("helix: invalid configuration")

	// ErrInvalidColor indicates a colour string that is not #rgb or #rrggbb.
	ErrInvalidColor = errors.New("helix: malformed color")
)

// ConfigError names the offending field of a rejected configuration.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s = %v", e.Wrapped, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

func invalid(field string, value any) error {
	return &ConfigError{Field: field, Value: value, Wrapped: ErrInvalidConfig}
}
