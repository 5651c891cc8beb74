package parse

import "encoding/binary"

// ReadUint32LE reads a little-endian uint32.
func ReadUint32LE(b []byte) (uint32, int, error) {
	if len(b) < 4 {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint32(b), 4, nil
}

// ReadUint64LE reads a little-endian uint64.
func ReadUint64LE(b []byte) (uint64, int, error) {
	if len(b) < 8 {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint64(b), 8, nil
}

// ReadBool reads a byte that must be 0 or 1.
func ReadBool(b []byte) (bool, int, error) {
	if len(b) == 0 {
		return false, 0, ErrTruncated
	}
	switch b[0] {
	case 0:
		return false, 1, nil
	case 1:
		return true, 1, nil
	}
	return false, 0, ErrInvalidBooleanByte
}
