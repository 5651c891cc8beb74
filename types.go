// Package sevenzlist reads the metadata of 7z archives and extracts the
// files whose coders it knows.
package sevenzlist

import (
	"time"

	"github.com/javi11/sevenzlist/internal/header"
)

// Version is the archive format version from the signature header.
type Version = header.ArchiveVersion

// Coder identifies the algorithm of a file's folder.
type Coder struct {
	ID    []byte `json:"id"`
	Attrs []byte `json:"attrs,omitempty"`
}

// FileStream locates a file's packed data. Offset is relative to the end of
// the 32-byte signature header.
type FileStream struct {
	Coder      Coder  `json:"coder"`
	Offset     uint64 `json:"offset"`
	PackedSize uint64 `json:"packedSize"`
	Size       uint64 `json:"size"`
	CRC        uint32 `json:"crc,omitempty"`
	HasCRC     bool   `json:"hasCrc"`
}

// DataOffset returns the absolute position of the packed data in the archive.
func (s FileStream) DataOffset() uint64 { return header.SignatureHeaderSize + s.Offset }

// File is one archive entry. Stream is nil for directories, empty files and
// anti items. Zero times are absent.
type File struct {
	Name          string      `json:"name"`
	Size          uint64      `json:"size"`
	CTime         time.Time   `json:"ctime,omitzero"`
	ATime         time.Time   `json:"atime,omitzero"`
	MTime         time.Time   `json:"mtime,omitzero"`
	Attributes    uint32      `json:"attributes,omitempty"`
	HasAttributes bool        `json:"-"`
	IsDir         bool        `json:"isDir,omitempty"`
	IsAnti        bool        `json:"isAnti,omitempty"`
	Stream        *FileStream `json:"stream,omitempty"`
}

// Stored reports whether the file's data is kept uncompressed.
func (f File) Stored() bool {
	return f.Stream != nil && len(f.Stream.Coder.ID) == 1 && f.Stream.Coder.ID[0] == 0x00
}
