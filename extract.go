package sevenzlist

import (
	"bytes"
	"fmt"
	"io"

	"github.com/javi11/sevenzlist/internal/parse"
)

// ExtractFile parses archive and returns the contents of the file named name.
func ExtractFile(name string, archive []byte) ([]byte, error) {
	a, err := Parse(archive)
	if err != nil {
		return nil, err
	}
	return a.Extract(name)
}

// Extract returns the contents of the file named name.
func (a *Archive) Extract(name string) ([]byte, error) {
	f, ok := a.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchFileName, name)
	}
	return a.ExtractEntry(f)
}

// ExtractTo writes the contents of the file named name to w.
func (a *Archive) ExtractTo(name string, w io.Writer) (int64, error) {
	data, err := a.Extract(name)
	if err != nil {
		return 0, err
	}
	return io.Copy(w, bytes.NewReader(data))
}

// ExtractEntry decodes f's stream. Entries without a stream yield no data.
func (a *Archive) ExtractEntry(f File) ([]byte, error) {
	s := f.Stream
	if s == nil {
		return []byte{}, nil
	}
	start := s.DataOffset()
	end := start + s.PackedSize
	if end < start || end > uint64(len(a.raw)) {
		return nil, fmt.Errorf("%s: stream %d+%d beyond archive: %w", f.Name, start, s.PackedSize, ErrTruncated)
	}
	a.log.Debug().
		Str("name", f.Name).
		Uint64("offset", start).
		Uint64("packed", s.PackedSize).
		Hex("coder", s.Coder.ID).
		Msg("extract")

	out, err := a.codecs.Decode(s.Coder.ID, a.raw[start:end], s.Size, s.Coder.Attrs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	if s.HasCRC {
		if err := parse.Verify(s.CRC, parse.Checksum(out)); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return out, nil
}
