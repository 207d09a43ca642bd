package dbfader

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every ConfigError via errors.Is
var ErrConfig = errors.New("invalid fader configuration")

// ConfigError reports a fader configuration that must not be used
// These are programming mistakes, so they are raised at construction time and never at tick time
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
