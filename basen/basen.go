// Package basen encodes non-negative integers into fixed-width base-36
// blocks.
//
// Every block of a token is produced by Pad, which right-anchors the encoded
// value: short values are left-padded with '0' and long values keep only
// their rightmost digits. The truncation is lossy on purpose. Callers that
// need the full value must keep it below Ceiling(width).
package basen

import "log"

// Radix is the encoding base.
const Radix = 36

// Alphabet holds the digits used by Encode, in ascending order.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Encode returns the base-36 representation of v, most significant digit
// first.
func Encode(v uint64) string {
	if v == 0 {
		return "0"
	}

	var out [13]byte
	i := len(out)
	for v > 0 {
		i--
		out[i] = Alphabet[v%Radix]
		v /= Radix
	}

	return string(out[i:])
}

// Normalize forces s to exactly width characters. Shorter strings are padded
// on the left with '0'. Longer strings lose their leftmost characters.
func Normalize(s string, width int) string {
	if width < 0 {
		log.Panicf("basen: negative width %d", width)
	}

	if len(s) >= width {
		return s[len(s)-width:]
	}

	buf := make([]byte, width)
	pad := width - len(s)
	for i := 0; i < pad; i++ {
		buf[i] = '0'
	}
	copy(buf[pad:], s)

	return string(buf)
}

// Pad encodes v and normalizes the result to width characters.
func Pad(v uint64, width int) string {
	return Normalize(Encode(v), width)
}

// Ceiling returns Radix^width, the smallest value that no longer fits in a
// block of the given width.
func Ceiling(width int) uint64 {
	c := uint64(1)
	for i := 0; i < width; i++ {
		c *= Radix
	}

	return c
}

// IsEncoded reports whether every byte of s belongs to Alphabet.
func IsEncoded(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}

	return true
}
