package parse

import "hash/crc32"

// Checksum returns the CRC-32 (IEEE) of b, the variant used by 7z for
// both the start header and stream digests.
func Checksum(b []byte) uint32 { return crc32.ChecksumIEEE(b) }

// Verify returns a *ChecksumError when actual differs from expected.
func Verify(expected, actual uint32) error {
	if expected != actual {
		return &ChecksumError{Expected: expected, Actual: actual}
	}
	return nil
}
