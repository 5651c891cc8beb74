package parse

import (
	"errors"
	"fmt"
)

// Errors reported by the primitive decoders.
var (
	ErrTruncated          = errors.New("truncated input")
	ErrSizeOverflow       = errors.New("value does not fit in a size")
	ErrInvalidBooleanByte = errors.New("boolean byte is neither 0 nor 1")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
)

// ChecksumError reports a CRC that does not match its stored value.
type ChecksumError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected %08x, got %08x", e.Expected, e.Actual)
}

func (e *ChecksumError) Is(target error) bool { return target == ErrChecksumMismatch }
