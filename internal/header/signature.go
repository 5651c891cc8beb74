package header

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/javi11/sevenzlist/internal/parse"
)

// MaxMajorVersion is the newest major format version understood.
const MaxMajorVersion = 0

// DecodeSignatureHeader decodes and verifies the 32-byte header at the
// start of b. The start header CRC is checked before any other field is
// trusted.
func DecodeSignatureHeader(b []byte) (SignatureHeader, error) {
	var sh SignatureHeader
	if len(b) < SignatureHeaderSize {
		return sh, errAt("signature header", len(b), ErrTruncated)
	}
	if !bytes.Equal(b[:6], Magic[:]) {
		return sh, errAt("signature header", 0, ErrBadMagic)
	}
	copy(sh.Magic[:], b[:6])
	sh.Version = ArchiveVersion{Major: b[6], Minor: b[7]}
	sh.StartHeaderCRC = binary.LittleEndian.Uint32(b[8:12])

	raw := b[12:SignatureHeaderSize]
	if err := parse.Verify(sh.StartHeaderCRC, parse.Checksum(raw)); err != nil {
		return sh, errAt("start header", 12, err)
	}
	if sh.Version.Major > MaxMajorVersion {
		return sh, errAt("signature header", 6, &UnsupportedError{
			Feature: fmt.Sprintf("archive version %d.%d", sh.Version.Major, sh.Version.Minor),
		})
	}
	sh.StartHeader = StartHeader{
		NextHeaderOffset: binary.LittleEndian.Uint64(raw[0:8]),
		NextHeaderSize:   binary.LittleEndian.Uint64(raw[8:16]),
		NextHeaderCRC:    binary.LittleEndian.Uint32(raw[16:20]),
	}
	return sh, nil
}
