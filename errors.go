package sevenzlist

import (
	"errors"

	"github.com/javi11/sevenzlist/codec"
	"github.com/javi11/sevenzlist/internal/header"
)

// Decoding errors. Use errors.Is to test for them; errors returned by
// Parse carry section and offset details in a *ParseError.
var (
	ErrTruncated                         = header.ErrTruncated
	ErrBadMagic                          = header.ErrBadMagic
	ErrInvalidPropertyID                 = header.ErrInvalidPropertyID
	ErrInvalidTag                        = header.ErrInvalidTag
	ErrChecksumMismatch                  = header.ErrChecksumMismatch
	ErrInvalidBooleanByte                = header.ErrInvalidBooleanByte
	ErrSizeOverflow                      = header.ErrSizeOverflow
	ErrStreamCountUnderflow              = header.ErrStreamCountUnderflow
	ErrCouldNotDetermineNumFolders       = header.ErrCouldNotDetermineNumFolders
	ErrCouldNotDetermineNumUnpackStreams = header.ErrCouldNotDetermineNumUnpackStreams
	ErrDummyNotAllZeroes                 = header.ErrDummyNotAllZeroes
	ErrEmptyFileBeforeEmptyStream        = header.ErrEmptyFileBeforeEmptyStream
	ErrAntiBeforeEmptyStream             = header.ErrAntiBeforeEmptyStream
	ErrUnsupported                       = header.ErrUnsupported
	ErrExternalDataUnsupported           = header.ErrExternalDataUnsupported
	ErrUnsupportedCodec                  = codec.ErrUnsupportedCodec
)

// Errors from projection and extraction.
var (
	ErrNoSuchFileName  = errors.New("no such file name")
	ErrMissingNames    = errors.New("files info has no names")
	ErrStreamMapping   = errors.New("streams do not match files")
	ErrArchiveTooLarge = errors.New("archive exceeds size limit")
)

type (
	ParseError            = header.ParseError
	ChecksumError         = header.ChecksumError
	UnsupportedError      = header.UnsupportedError
	UnsupportedCodecError = codec.UnsupportedCodecError
)
