package midi

import (
	"errors"
	"strings"
)

// Sentinel errors for every failure the shell can report. Their text is what
// the operator sees, so they keep the capitalisation of a printed sentence.
var (
	ErrTransportUnavailable = errors.New("MIDI not supported or port access refused")
	ErrInvalidByteSequence  = errors.New("Invalid byte sequence")
	ErrMissingStatusByte    = errors.New("Commands must start with a status byte")
	ErrUnterminatedSysEx    = errors.New("System exclusive messages must end with f7")
	ErrTransmitRejected     = errors.New("Invalid MIDI command")
	ErrNoInputs             = errors.New("Warning: no MIDI inputs found")
	ErrNoOutputs            = errors.New("Warning: no MIDI outputs found")
)

// ErrMalformedMessage is returned by the transport for bytes a driver would
// refuse to send. The shell reports it as ErrTransmitRejected.
var ErrMalformedMessage = errors.New("malformed MIDI message")

// CommandError ties a validation or transmit failure to the line that caused it.
type CommandError struct {
	Err  error
	Line string
}

func (e *CommandError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	if errors.Is(e.Err, ErrInvalidByteSequence) || errors.Is(e.Err, ErrTransmitRejected) {
		return e.Err.Error() + ": " + strings.TrimSpace(e.Line)
	}
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func lineError(err error, line string) error {
	return &CommandError{Err: err, Line: line}
}
