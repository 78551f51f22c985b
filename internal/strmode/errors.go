package strmode

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter indicates a numeric input outside its valid domain.
var ErrInvalidParameter = errors.New("strmode: invalid parameter")

// ParamError names the offending input.
type ParamError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%g %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(name string, value float64, reason string) error {
	return &ParamError{Name: name, Value: value, Reason: reason}
}
