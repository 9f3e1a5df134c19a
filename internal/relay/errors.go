package relay

import "errors"

var (
	// ErrInvalidCommand is returned when a command is missing a required field.
	ErrInvalidCommand = errors.New("relay: invalid command")

	// ErrUnknownCommand is returned for a command kind the relay does not handle.
	ErrUnknownCommand = errors.New("relay: unknown command")
)
