package midi

import "fmt"

// SplitMessages breaks a transmit buffer into complete MIDI messages, the
// way a driver send does before writing. It refuses running status, data
// bytes with the status bit set, undefined status bytes and messages cut
// short, so a listener on the other end never sees a partial message.
func SplitMessages(buf []byte) ([][]byte, error) {
	var out [][]byte
	for i := 0; i < len(buf); {
		status := buf[i]
		if status == SysExStart {
			end := i + 1
			for end < len(buf) && buf[end] < StatusBit {
				end++
			}
			if end == len(buf) || buf[end] != SysExEnd {
				return nil, malformed(i, "unterminated system exclusive")
			}
			out = append(out, buf[i:end+1])
			i = end + 1
			continue
		}
		size := messageLength(status)
		if size == 0 {
			return nil, malformed(i, fmt.Sprintf("unexpected byte %02x", status))
		}
		if i+size > len(buf) {
			return nil, malformed(i, fmt.Sprintf("status %02x needs %d bytes", status, size))
		}
		for j := i + 1; j < i+size; j++ {
			if buf[j]&StatusBit != 0 {
				return nil, malformed(j, fmt.Sprintf("data byte %02x has the status bit set", buf[j]))
			}
		}
		out = append(out, buf[i:i+size])
		i += size
	}
	return out, nil
}

// messageLength is the full length of a message led by status, or 0 when
// status cannot start one.
func messageLength(status byte) int {
	switch {
	case status < StatusBit:
		return 0
	case status < 0xc0, status >= 0xe0 && status < SysExStart:
		return 3
	case status < 0xe0:
		return 2
	}
	switch status {
	case 0xf1, 0xf3:
		return 2
	case 0xf2:
		return 3
	case 0xf6, 0xf8, 0xfa, 0xfb, 0xfc, 0xfe, 0xff:
		return 1
	}
	return 0
}

func malformed(offset int, detail string) error {
	return fmt.Errorf("%w at byte %d: %s", ErrMalformedMessage, offset, detail)
}
