package estimator

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotTrained is returned by Predict, Proba, and delegating calls invoked
// before any successful Train.
var ErrNotTrained = errors.New("estimator has not been trained")

// ConfigError reports invalid construction arguments. It is raised
// synchronously at construction and never recovered internally.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// NewConfigError returns a ConfigError with a formatted message.
func NewConfigError(format string, args ...interface{}) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether any error in err's chain is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// InputError reports a Train call made with a dataset lacking required
// labels or capabilities. The caller must supply a corrected dataset; there
// is nothing to retry.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

// NewInputError returns an InputError with a formatted message.
func NewInputError(format string, args ...interface{}) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether any error in err's chain is an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
