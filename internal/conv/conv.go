// Package conv provides checked integer conversions between Go's int offsets
// and the unsigned offsets stored in an engine's ovector.
//
// A conversion that would overflow indicates a driver bug (an ovector entry
// beyond any addressable subject), so these helpers panic rather than
// silently wrapping.
package conv

import "math"

// IntToUint converts a non-negative int to uint.
// Panics if n < 0.
//
//go:inline
func IntToUint(n int) uint {
	if n < 0 {
		panic("integer overflow: negative int converted to uint")
	}
	return uint(n)
}

// UintToInt converts a uint to int.
// Panics if u > math.MaxInt.
//
//go:inline
func UintToInt(u uint) int {
	if u > math.MaxInt {
		panic("integer overflow: uint value out of int range")
	}
	return int(u)
}

// OffsetPair converts an ovector pair to int offsets. ok is false when
// either entry is unset (all bits set) or the pair is inverted.
func OffsetPair(start, end uint) (s, e int, ok bool) {
	if start == math.MaxUint || end == math.MaxUint || start > end {
		return -1, -1, false
	}
	return UintToInt(start), UintToInt(end), true
}
