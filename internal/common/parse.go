package common

import (
	"strings"
)

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ShortHash shortens a 0x-prefixed hex string for log output: 0x1234…cdef.
func ShortHash(hex string) string {
	const keep = 6
	if len(hex) <= 2*keep+2 {
		return hex
	}
	return hex[:keep+2] + "…" + hex[len(hex)-keep:]
}
