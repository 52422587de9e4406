package parser

import "encoding/binary"

// Uint16LE reads the little-endian 16-bit value at offset. The boolean is
// false when fewer than two bytes remain; callers surface that as a data
// format error instead of slicing out of range.
func Uint16LE(data []byte, offset int) (uint16, bool) {
	if offset < 0 || offset+2 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(data[offset : offset+2]), true
}

// Uint32LE reads the little-endian 32-bit value at offset. The boolean is
// false when fewer than four bytes remain.
func Uint32LE(data []byte, offset int) (uint32, bool) {
	if offset < 0 || offset+4 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[offset : offset+4]), true
}
