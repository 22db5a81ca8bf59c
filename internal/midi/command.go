package midi

import (
	"strconv"
	"strings"
)

const (
	StatusBit     byte = 0x80
	SysExStart    byte = 0xf0
	SysExEnd      byte = 0xf7
	RealtimeFirst byte = 0xf8
)

// Tokenize splits a command line on whitespace and drops empty tokens.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// ParseBytes converts hexadecimal tokens into bytes. Tokens carry no 0x
// prefix; a token that is not hex, or exceeds 0xff, rejects the whole line.
func ParseBytes(tokens []string, line string) ([]byte, error) {
	out := make([]byte, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseUint(tok, 16, 64)
		if err != nil || v > 0xff {
			return nil, lineError(ErrInvalidByteSequence, line)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// Validate applies the framing rules to a parsed command. An empty command is
// valid and simply has nothing to send.
//
// With strict unset the status byte is not checked at all. This mirrors the
// historical check `bytes[0] & 0x80 == 0`, where the comparison binds before
// the mask and the condition can never hold. Strict mode performs the check
// that expression was meant to express.
func Validate(msg []byte, strict bool, line string) error {
	if len(msg) == 0 {
		return nil
	}
	if strict && msg[0]&StatusBit == 0 {
		return lineError(ErrMissingStatusByte, line)
	}
	if msg[0] == SysExStart && msg[len(msg)-1] != SysExEnd {
		return lineError(ErrUnterminatedSysEx, line)
	}
	return nil
}

// ParseCommand tokenizes, parses and validates one line.
func ParseCommand(line string, strict bool) ([]byte, error) {
	msg, err := ParseBytes(Tokenize(line), line)
	if err != nil {
		return nil, err
	}
	if err := Validate(msg, strict, line); err != nil {
		return nil, err
	}
	return msg, nil
}

// RejectTransmit wraps a lower-level send failure for the given line.
func RejectTransmit(line string) error {
	return lineError(ErrTransmitRejected, line)
}
