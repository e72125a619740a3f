package collector

import (
	"errors"
	"fmt"
)

// Failure classes a ThreadSource reports. Wrap them with %w.
var (
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("unexpected http status")
	ErrFormat    = errors.New("unexpected thread format")
)

func transportErr(err error) error {
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

func formatErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}
