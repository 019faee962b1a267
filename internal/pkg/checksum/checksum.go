// Package checksum computes the CRC-32 trailers carried by event frames.
package checksum

import (
	"errors"
	"hash/crc32"
)

// ErrChecksumMismatch is returned when a stored trailer does not match the computed one.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Size is the number of bytes a checksum occupies on the wire.
const Size = 4

// Sum returns the IEEE CRC-32 of the concatenation of the given byte slices.
// The polynomial is the one zlib uses, so clients built on zlib agree with it.
func Sum(parts ...[]byte) uint32 {
	var sum uint32
	for _, p := range parts {
		sum = crc32.Update(sum, crc32.IEEETable, p)
	}
	return sum
}

// Verify checks data against the expected checksum.
func Verify(data []byte, want uint32) error {
	if Sum(data) != want {
		return ErrChecksumMismatch
	}
	return nil
}
