package header

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/javi11/sevenzlist/internal/parse"
)

// state tracks the assembler's progress through the header grammar.
type state int

const (
	stateSignatureHeaderRead state = iota
	statePropertiesRead
	stateAdditionalStreamsRead
	stateMainStreamsRead
	stateFilesRead
	stateDone
)

func (s state) String() string {
	switch s {
	case stateSignatureHeaderRead:
		return "SignatureHeaderRead"
	case statePropertiesRead:
		return "PropertiesRead"
	case stateAdditionalStreamsRead:
		return "AdditionalStreamsRead"
	case stateMainStreamsRead:
		return "MainStreamsRead"
	case stateFilesRead:
		return "FilesRead"
	case stateDone:
		return "Done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Decode decodes the metadata tree of the archive held in data. Nothing is
// returned on failure.
func Decode(data []byte, log zerolog.Logger) (*Archive, error) {
	sh, err := DecodeSignatureHeader(data)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Uint8("major", sh.Version.Major).
		Uint8("minor", sh.Version.Minor).
		Uint64("next_header_offset", sh.StartHeader.NextHeaderOffset).
		Uint64("next_header_size", sh.StartHeader.NextHeaderSize).
		Msg("signature header")

	ar := &Archive{Signature: sh}
	if sh.StartHeader.NextHeaderSize == 0 {
		log.Debug().Msg("empty archive")
		return ar, nil
	}

	start, end, err := headerRange(sh.StartHeader, len(data))
	if err != nil {
		return nil, err
	}
	if err := parse.Verify(sh.StartHeader.NextHeaderCRC, parse.Checksum(data[start:end])); err != nil {
		return nil, errAt("header", start, err)
	}

	c := newCursor(data[:end], start, "header")
	id, err := c.id()
	if err != nil {
		return nil, err
	}
	switch id {
	case IDHeader:
	case IDEncodedHeader:
		return nil, errAt("header", start, &UnsupportedError{Feature: "encoded header"})
	default:
		return nil, errAt("header", start, fmt.Errorf("%w: expected Header, found %s", ErrInvalidTag, id))
	}

	h, err := readHeader(c, log)
	if err != nil {
		return nil, err
	}
	if c.pos != end {
		log.Debug().Int("trailing", end-c.pos).Msg("bytes after header end")
	}
	ar.Header = h
	return ar, nil
}

// headerRange returns the absolute bounds of the header region.
func headerRange(sh StartHeader, size int) (int, int, error) {
	avail := uint64(size)
	if avail < SignatureHeaderSize ||
		sh.NextHeaderOffset > avail-SignatureHeaderSize ||
		sh.NextHeaderSize > avail-SignatureHeaderSize-sh.NextHeaderOffset ||
		avail > math.MaxInt {
		return 0, 0, errAt("header", size, fmt.Errorf("header at %d+%d beyond %d bytes: %w",
			sh.NextHeaderOffset, sh.NextHeaderSize, size, ErrTruncated))
	}
	start := SignatureHeaderSize + int(sh.NextHeaderOffset)
	return start, start + int(sh.NextHeaderSize), nil
}

// DecodeHeader decodes a plain Header section starting at its marker.
func DecodeHeader(b []byte, pos int) (Header, int, error) {
	c := newCursor(b, pos, "header")
	if err := c.expect(IDHeader); err != nil {
		return Header{}, pos, err
	}
	h, err := readHeader(c, zerolog.Nop())
	if err != nil {
		return Header{}, c.pos, err
	}
	return *h, c.pos, nil
}

func readHeader(c *cursor, log zerolog.Logger) (*Header, error) {
	h := &Header{}
	st := stateSignatureHeaderRead
	for st != stateDone {
		var err error
		switch st {
		case stateSignatureHeaderRead:
			h.ArchiveProperties, _, err = ifTag(c, IDArchiveProperties, readArchiveProperties)
			st = statePropertiesRead
		case statePropertiesRead:
			var si StreamsInfo
			var ok bool
			si, ok, err = ifTag(c, IDAdditionalStreamsInfo, func(c *cursor) (StreamsInfo, error) {
				return readStreamsInfo(c, nil)
			})
			if ok {
				h.AdditionalStreams = &si
			}
			st = stateAdditionalStreamsRead
		case stateAdditionalStreamsRead:
			var prior *CodersInfo
			if h.AdditionalStreams != nil {
				prior = h.AdditionalStreams.CodersInfo
			}
			var si StreamsInfo
			var ok bool
			si, ok, err = ifTag(c, IDMainStreamsInfo, func(c *cursor) (StreamsInfo, error) {
				return readStreamsInfo(c, prior)
			})
			if ok {
				h.MainStreams = &si
			}
			st = stateMainStreamsRead
		case stateMainStreamsRead:
			var fi FilesInfo
			var ok bool
			fi, ok, err = ifTag(c, IDFilesInfo, readFilesInfo)
			if ok {
				h.Files = &fi
			}
			st = stateFilesRead
		case stateFilesRead:
			err = c.expect(IDEnd)
			st = stateDone
		}
		if err != nil {
			return nil, err
		}
		log.Debug().Stringer("state", st).Int("pos", c.pos).Msg("header")
	}
	return h, nil
}

func readArchiveProperties(c *cursor) ([]Property, error) {
	defer c.enter("archive properties")()
	props := []Property{}
	for {
		id, err := c.id()
		if err != nil {
			return nil, err
		}
		if id == IDEnd {
			return props, nil
		}
		n, err := c.size()
		if err != nil {
			return nil, err
		}
		data, err := c.bytes(n)
		if err != nil {
			return nil, err
		}
		props = append(props, Property{ID: id, Data: append([]byte(nil), data...)})
	}
}
