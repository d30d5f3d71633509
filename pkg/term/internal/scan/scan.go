// ABOUTME: Byte-boundary scanner that delimits one escape sequence or one grapheme per call.
// ABOUTME: Lets callers walk mixed text/CSI output without decoding sequences themselves.

package scan

import "github.com/rivo/uniseg"

const esc = 0x1b

// NextOffset returns the byte length of the next unit in b starting at pos.
// A unit is either one complete escape sequence (CSI or two-byte) or one
// grapheme cluster. Returns 0 when pos is at or past the end of b.
//
// Malformed or truncated escapes are not an error: the lone ESC byte is
// returned as a one-byte unit so callers can pass it through unchanged.
func NextOffset(b []byte, pos int) int {
	if pos < 0 || pos >= len(b) {
		return 0
	}
	if b[pos] == esc {
		return escapeLen(b[pos:])
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(b[pos:], -1)
	if len(cluster) == 0 {
		return 1
	}
	return len(cluster)
}

// escapeLen measures the escape sequence starting at b[0] == ESC.
// CSI sequences run ESC '[' <param bytes 0x30-0x3F> <intermediate bytes
// 0x20-0x2F> <final byte 0x40-0x7E>. Anything else is treated as a
// two-byte escape; a truncated sequence yields just the ESC byte.
func escapeLen(b []byte) int {
	if len(b) < 2 {
		return 1
	}
	if b[1] != '[' {
		return 2
	}
	i := 2
	for i < len(b) && b[i] >= 0x30 && b[i] <= 0x3f {
		i++
	}
	for i < len(b) && b[i] >= 0x20 && b[i] <= 0x2f {
		i++
	}
	if i < len(b) && b[i] >= 0x40 && b[i] <= 0x7e {
		return i + 1
	}
	// No final byte: truncated CSI, surface the ESC alone.
	return 1
}

// IsCSI reports whether seq is a complete CSI sequence.
func IsCSI(seq []byte) bool {
	return len(seq) >= 3 && seq[0] == esc && seq[1] == '[' &&
		seq[len(seq)-1] >= 0x40 && seq[len(seq)-1] <= 0x7e
}
