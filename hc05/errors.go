package hc05

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a required argument is missing or
	// malformed, for example a Driver built without a Transport or a
	// configuration value containing line terminators.
	//
	// The call is rejected before anything is written to the module.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransport wraps failures of the underlying serial channel or the
	// enable line: transmit errors, baud rate reconfiguration errors and
	// failures to arm asynchronous reception.
	//
	// There is no automatic retry.
	ErrTransport = errors.New("transport error")

	// ErrTimeout is returned when the module did not answer a configuration
	// command within the requested bound.
	ErrTimeout = errors.New("timeout")

	// ErrBusy is returned by TakeLine when no complete line is buffered.
	//
	// It is expected during polling; callers simply try again later.
	ErrBusy = errors.New("no line available")

	// ErrAlreadyClosed is returned when an operation is attempted on a Driver
	// that has been closed.
	ErrAlreadyClosed = errors.New("driver already closed")

	// ErrReceivePending is returned by a Transport when a one-byte receive is
	// requested while another one is still outstanding.
	ErrReceivePending = errors.New("receive already pending")
)

// CommandError reports an error result returned by the module in
// configuration mode, e.g. "ERROR:(1D)".
type CommandError struct {
	Command string
	Code    string
}

// Error implements error.
func (e *CommandError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("command %q rejected", e.Command)
	}
	return fmt.Sprintf("command %q rejected with code %s", e.Command, e.Code)
}

func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
