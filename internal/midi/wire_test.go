package midi

import (
	"bytes"
	"errors"
	"testing"
)

func TestSplitMessagesAcceptsCompleteMessages(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		want [][]byte
	}{
		{"note on", []byte{0x90, 0x3c, 0x7f}, [][]byte{{0x90, 0x3c, 0x7f}}},
		{"program change", []byte{0xc0, 0x05}, [][]byte{{0xc0, 0x05}}},
		{"pitch bend", []byte{0xe0, 0x00, 0x40}, [][]byte{{0xe0, 0x00, 0x40}}},
		{"song position", []byte{0xf2, 0x01, 0x02}, [][]byte{{0xf2, 0x01, 0x02}}},
		{"clock", []byte{0xf8}, [][]byte{{0xf8}}},
		{"sysex", []byte{0xf0, 0x7e, 0x00, 0x06, 0x01, 0xf7}, [][]byte{{0xf0, 0x7e, 0x00, 0x06, 0x01, 0xf7}}},
		{"concatenated", []byte{0x90, 0x3c, 0x7f, 0x80, 0x3c, 0x00, 0xfe}, [][]byte{{0x90, 0x3c, 0x7f}, {0x80, 0x3c, 0x00}, {0xfe}}},
	}
	for _, tc := range cases {
		got, err := SplitMessages(tc.buf)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %d messages, got % x", tc.name, len(tc.want), got)
		}
		for i := range got {
			if !bytes.Equal(got[i], tc.want[i]) {
				t.Fatalf("%s: message %d expected % x, got % x", tc.name, i, tc.want[i], got[i])
			}
		}
	}
}

func TestSplitMessagesRejectsMalformed(t *testing.T) {
	cases := map[string][]byte{
		"truncated note":       {0x90},
		"truncated note data":  {0x90, 0x3c},
		"running status":       {0x3c, 0x7f},
		"lone end of sysex":    {0xf7},
		"undefined status":     {0xf4},
		"status inside data":   {0x90, 0x3c, 0x80},
		"unterminated sysex":   {0xf0, 0x01},
		"status inside sysex":  {0xf0, 0x01, 0x90, 0xf7},
		"truncated after good": {0xc0, 0x01, 0xb0, 0x07},
	}
	for name, buf := range cases {
		if _, err := SplitMessages(buf); !errors.Is(err, ErrMalformedMessage) {
			t.Fatalf("%s: expected malformed message error, got %v", name, err)
		}
	}
}
