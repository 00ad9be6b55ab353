package round

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks a round configuration the engine cannot run.
	ErrInvalidConfig = errors.New("invalid round config")
	// ErrIllegalTransition marks an operation invoked from a state that forbids it.
	ErrIllegalTransition = errors.New("illegal round transition")
	// ErrClockNotStarted is reported by Clock.Elapsed before Start.
	ErrClockNotStarted = errors.New("clock not started")
)

// ConfigError explains why a configuration was rejected.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// TransitionError names the operation and the state that refused it.
type TransitionError struct {
	Op   string
	From Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a %s round", ErrIllegalTransition, e.Op, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

func illegal(op string, from Status) error {
	return &TransitionError{Op: op, From: from}
}
