package header

import (
	"errors"
	"fmt"

	"github.com/javi11/sevenzlist/internal/parse"
	"github.com/javi11/sevenzlist/internal/util"
)

// FilesProperty is one per-file property record of a FilesInfo section.
type FilesProperty interface {
	PropertyID() PropertyID
	isFilesProperty()
}

// Entry is one file's value of a per-file property. External entries point
// at an additional data stream instead of carrying Value.
type Entry[T any] struct {
	Defined   bool
	External  bool
	DataIndex uint64
	Value     T
}

// EmptyStream flags files without a data stream (directories and empty files).
type EmptyStream struct{ Bits []bool }

// EmptyFile flags, among the empty-stream files, those that are files.
type EmptyFile struct{ Bits []bool }

// Anti flags, among the empty-stream files, deletion markers.
type Anti struct{ Bits []bool }

// Times holds FILETIME values for CTime, ATime or MTime.
type Times struct {
	ID      PropertyID
	Entries []Entry[uint64]
}

type Names struct{ Entries []Entry[string] }

type Attributes struct{ Entries []Entry[uint32] }

// Raw keeps properties that are skipped rather than interpreted
// (Comment, StartPos).
type Raw struct {
	ID   PropertyID
	Data []byte
}

func (EmptyStream) PropertyID() PropertyID { return IDEmptyStream }
func (EmptyFile) PropertyID() PropertyID   { return IDEmptyFile }
func (Anti) PropertyID() PropertyID        { return IDAnti }
func (t Times) PropertyID() PropertyID     { return t.ID }
func (Names) PropertyID() PropertyID       { return IDName }
func (Attributes) PropertyID() PropertyID  { return IDWinAttributes }
func (r Raw) PropertyID() PropertyID       { return r.ID }

func (EmptyStream) isFilesProperty() {}
func (EmptyFile) isFilesProperty()   {}
func (Anti) isFilesProperty()        {}
func (Times) isFilesProperty()       {}
func (Names) isFilesProperty()       {}
func (Attributes) isFilesProperty()  {}
func (Raw) isFilesProperty()         {}

type FilesInfo struct {
	NumFiles   int
	Properties []FilesProperty
}

// Property returns the first property with the given ID.
func (fi *FilesInfo) Property(id PropertyID) (FilesProperty, bool) {
	for _, p := range fi.Properties {
		if p.PropertyID() == id {
			return p, true
		}
	}
	return nil, false
}

// DecodeFilesInfo decodes a FilesInfo section starting at its marker.
func DecodeFilesInfo(b []byte, pos int) (FilesInfo, int, error) {
	c := newCursor(b, pos, "files info")
	if err := c.expect(IDFilesInfo); err != nil {
		return FilesInfo{}, pos, err
	}
	fi, err := readFilesInfo(c)
	return fi, c.pos, err
}

func readFilesInfo(c *cursor) (FilesInfo, error) {
	defer c.enter("files info")()
	var fi FilesInfo
	start := c.pos
	var err error
	if fi.NumFiles, err = c.size(); err != nil {
		return fi, err
	}
	// Bit vectors are the densest per-file encoding.
	if fi.NumFiles/8 > c.remaining() {
		return fi, errAt(c.section, start, fmt.Errorf("%d files exceed input: %w", fi.NumFiles, ErrTruncated))
	}

	numEmpty := -1
	for {
		idPos := c.pos
		id, err := c.id()
		if err != nil {
			return fi, err
		}
		if id == IDEnd {
			return fi, nil
		}
		var p FilesProperty
		err = sized(c, func(c *cursor) error {
			var err error
			p, err = readFilesProperty(c, id, fi.NumFiles, numEmpty)
			return err
		})
		if err != nil {
			return fi, err
		}
		switch v := p.(type) {
		case nil:
			continue // padding
		case EmptyStream:
			numEmpty = parse.CountSet(v.Bits)
		case Raw:
			if v.ID != IDComment && v.ID != IDStartPos {
				return fi, errAt(c.section, idPos, fmt.Errorf("%w: %s in files info", ErrInvalidTag, id))
			}
		}
		fi.Properties = append(fi.Properties, p)
	}
}

// sized reads a property size and runs body on a cursor limited to that
// many bytes. The outer cursor then skips the whole property.
func sized(c *cursor, body func(*cursor) error) error {
	n, err := c.size()
	if err != nil {
		return err
	}
	if n > c.remaining() {
		return c.fail(ErrTruncated)
	}
	end := c.pos + n
	sub := &cursor{b: c.b[:end], pos: c.pos, section: c.section}
	if err := body(sub); err != nil {
		return err
	}
	c.pos = end
	return nil
}

func readFilesProperty(c *cursor, id PropertyID, numFiles, numEmpty int) (FilesProperty, error) {
	switch id {
	case IDEmptyStream:
		bits, err := c.bits(numFiles)
		return EmptyStream{Bits: bits}, err
	case IDEmptyFile:
		if numEmpty < 0 {
			return nil, c.fail(ErrEmptyFileBeforeEmptyStream)
		}
		bits, err := c.bits(numEmpty)
		return EmptyFile{Bits: bits}, err
	case IDAnti:
		if numEmpty < 0 {
			return nil, c.fail(ErrAntiBeforeEmptyStream)
		}
		bits, err := c.bits(numEmpty)
		return Anti{Bits: bits}, err
	case IDCTime, IDATime, IDMTime:
		entries, err := readEntries(c, numFiles, (*cursor).uint64LE)
		return Times{ID: id, Entries: entries}, err
	case IDWinAttributes:
		entries, err := readEntries(c, numFiles, (*cursor).uint32LE)
		return Attributes{Entries: entries}, err
	case IDName:
		entries, err := readNames(c, numFiles)
		return Names{Entries: entries}, err
	case IDDummy:
		for i, v := range c.b[c.pos:] {
			if v != 0 {
				return nil, errAt(c.section, c.pos+i, ErrDummyNotAllZeroes)
			}
		}
		c.pos = len(c.b)
		return nil, nil
	default:
		data, err := c.bytes(c.remaining())
		return Raw{ID: id, Data: append([]byte(nil), data...)}, err
	}
}

// readEntries reads the shared layout of time and attribute properties:
// all-defined flag, defined bitset, external flag, then either a data
// stream index or one value per defined file.
func readEntries[T any](c *cursor, numFiles int, value func(*cursor) (T, error)) ([]Entry[T], error) {
	all, err := c.bool()
	if err != nil {
		return nil, err
	}
	defined, err := definedBits(c, all, numFiles)
	if err != nil {
		return nil, err
	}
	external, err := c.bool()
	if err != nil {
		return nil, err
	}
	out := make([]Entry[T], numFiles)
	if external {
		idx, err := c.uint64()
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = Entry[T]{Defined: defined[i], External: true, DataIndex: idx}
		}
		return out, nil
	}
	for i, d := range defined {
		if !d {
			continue
		}
		v, err := value(c)
		if err != nil {
			return nil, err
		}
		out[i] = Entry[T]{Defined: true, Value: v}
	}
	return out, nil
}

func readNames(c *cursor, numFiles int) ([]Entry[string], error) {
	external, err := c.bool()
	if err != nil {
		return nil, err
	}
	out := make([]Entry[string], numFiles)
	if external {
		idx, err := c.uint64()
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = Entry[string]{Defined: true, External: true, DataIndex: idx}
		}
		return out, nil
	}
	for i := range out {
		name, n, err := util.DecodeUTF16LE(c.b[c.pos:])
		if errors.Is(err, util.ErrUnterminated) {
			err = ErrTruncated
		}
		if err != nil {
			return nil, c.fail(fmt.Errorf("file name %d: %w", i, err))
		}
		c.pos += n
		out[i] = Entry[string]{Defined: true, Value: name}
	}
	return out, nil
}
