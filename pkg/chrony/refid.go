package chrony

import (
	"bytes"
	"strconv"
)

// FormatRefID renders a 32-bit NTP reference identifier as a human-readable
// name. Reference clocks encode an ASCII tag ("GPS", "PPS", "LOCL"); NTP
// sources carry their IPv4 address in network byte order. If every byte is
// null or printable ASCII the value is treated as a tag with trailing nulls
// stripped, otherwise it is formatted as a dotted quad. A zero identifier
// yields the empty string.
func FormatRefID(refID uint32) string {
	b := [4]byte{
		byte(refID >> 24),
		byte(refID >> 16),
		byte(refID >> 8),
		byte(refID),
	}

	ascii := true
	for _, c := range b {
		if c != 0 && (c < 32 || c > 126) {
			ascii = false
			break
		}
	}
	if ascii {
		return string(bytes.TrimRight(b[:], "\x00"))
	}

	return strconv.Itoa(int(b[0])) + "." +
		strconv.Itoa(int(b[1])) + "." +
		strconv.Itoa(int(b[2])) + "." +
		strconv.Itoa(int(b[3]))
}
