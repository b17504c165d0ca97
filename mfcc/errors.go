package mfcc

import "fmt"
import "github.com/pkg/errors"

var (
	// ErrConfiguration is returned for an invalid parameter combination.
	// It is always detected before any buffer is allocated.
	ErrConfiguration = errors.New("invalidConfiguration")

	// ErrAllocation is returned when an intermediate or output buffer
	// cannot be allocated within MaxElements.
	ErrAllocation = errors.New("allocationFailed")

	// ErrDoubleRelease is returned when a buffer is released twice.
	ErrDoubleRelease = errors.New("bufferAlreadyReleased")

	// ErrForeignBuffer is returned when releasing a buffer this package did not allocate.
	ErrForeignBuffer = errors.New("bufferNotOwned")

	// ErrUnknownHandle is returned for a handle that is not live in the registry.
	ErrUnknownHandle = errors.New("unknownHandle")
)

// ConfigError describes which parameter was rejected and why.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrConfiguration) hold.
func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// Cause lets github.com/pkg/errors.Cause reach the sentinel.
func (e *ConfigError) Cause() error {
	return ErrConfiguration
}

func configError(field string, value interface{}, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
