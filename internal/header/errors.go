package header

import (
	"errors"
	"fmt"

	"github.com/javi11/sevenzlist/internal/parse"
)

// Primitive errors surfaced through the header decoders.
var (
	ErrTruncated          = parse.ErrTruncated
	ErrSizeOverflow       = parse.ErrSizeOverflow
	ErrInvalidBooleanByte = parse.ErrInvalidBooleanByte
	ErrChecksumMismatch   = parse.ErrChecksumMismatch
)

// Structural errors.
var (
	ErrBadMagic                          = errors.New("not a 7z archive")
	ErrInvalidPropertyID                 = errors.New("invalid property id")
	ErrInvalidTag                        = errors.New("unexpected property")
	ErrStreamCountUnderflow              = errors.New("folder stream counts underflow")
	ErrCouldNotDetermineNumFolders       = errors.New("could not determine number of folders")
	ErrCouldNotDetermineNumUnpackStreams = errors.New("could not determine number of unpack streams")
	ErrDummyNotAllZeroes                 = errors.New("dummy property is not all zeroes")
	ErrEmptyFileBeforeEmptyStream        = errors.New("EmptyFile property before EmptyStream")
	ErrAntiBeforeEmptyStream             = errors.New("Anti property before EmptyStream")
	ErrUnsupported                       = errors.New("unsupported")
	ErrExternalDataUnsupported           = errors.New("external data unsupported")
)

// ChecksumError is the CRC mismatch error type.
type ChecksumError = parse.ChecksumError

// UnsupportedError marks a valid format feature this package does not
// implement. It matches ErrUnsupported, and ErrExternalDataUnsupported when
// External is set.
type UnsupportedError struct {
	Feature  string
	External bool
}

func (e *UnsupportedError) Error() string { return "unsupported: " + e.Feature }

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported || (e.External && target == ErrExternalDataUnsupported)
}

// ParseError locates a decoding failure within the archive bytes.
type ParseError struct {
	Section string
	Offset  int64
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("7z %s at offset %d: %v", e.Section, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func errAt(section string, pos int, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Section: section, Offset: int64(pos), Err: err}
}
