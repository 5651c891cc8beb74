// Package fixture builds small 7z archives byte by byte for tests.
package fixture

import (
	"encoding/binary"

	"github.com/javi11/sevenzlist/internal/parse"
	"github.com/javi11/sevenzlist/internal/util"
)

// Property ID bytes used by the builders.
const (
	End              = 0x00
	Header           = 0x01
	ArchiveProps     = 0x02
	AdditionalStream = 0x03
	MainStreams      = 0x04
	FilesInfo        = 0x05
	PackInfo         = 0x06
	UnPackInfo       = 0x07
	SubStreamsInfo   = 0x08
	Size             = 0x09
	CRC              = 0x0A
	Folder           = 0x0B
	CodersUnPackSize = 0x0C
	NumUnPackStream  = 0x0D
	EmptyStream      = 0x0E
	EmptyFile        = 0x0F
	Anti             = 0x10
	Name             = 0x11
	CTime            = 0x12
	ATime            = 0x13
	MTime            = 0x14
	WinAttributes    = 0x15
	EncodedHeader    = 0x17
	Dummy            = 0x19
)

// Buf accumulates encoded fields.
type Buf struct{ b []byte }

func (w *Buf) Byte(v ...byte) *Buf { w.b = append(w.b, v...); return w }

// Num appends a packed 7z integer.
func (w *Buf) Num(v uint64) *Buf { w.b = parse.AppendUint64(w.b, v); return w }

func (w *Buf) U32(v uint32) *Buf { w.b = binary.LittleEndian.AppendUint32(w.b, v); return w }

func (w *Buf) U64(v uint64) *Buf { w.b = binary.LittleEndian.AppendUint64(w.b, v); return w }

// Name appends a NUL-terminated UTF-16LE string.
func (w *Buf) Name(s string) *Buf {
	enc, err := util.EncodeUTF16LE(s)
	if err != nil {
		panic(err)
	}
	w.b = append(w.b, enc...)
	return w
}

// Bits appends v packed most significant bit first.
func (w *Buf) Bits(v []bool) *Buf {
	packed := make([]byte, (len(v)+7)/8)
	for i, set := range v {
		if set {
			packed[i/8] |= 0x80 >> (i % 8)
		}
	}
	w.b = append(w.b, packed...)
	return w
}

// Prop appends id, the size of body and body.
func (w *Buf) Prop(id byte, body []byte) *Buf {
	return w.Byte(id).Num(uint64(len(body))).Byte(body...)
}

func (w *Buf) Bytes() []byte { return w.b }

func (w *Buf) Len() int { return len(w.b) }

// SignatureHeader encodes the 32-byte leading header with a valid start
// header CRC.
func SignatureHeader(major, minor byte, offset, size uint64, crc uint32) []byte {
	start := (&Buf{}).U64(offset).U64(size).U32(crc).Bytes()
	return (&Buf{}).
		Byte('7', 'z', 0xBC, 0xAF, 0x27, 0x1C, major, minor).
		U32(parse.Checksum(start)).
		Byte(start...).
		Bytes()
}

// Archive joins packed stream data and a header into a version 0.4 archive.
func Archive(packed, header []byte) []byte {
	out := SignatureHeader(0, 4, uint64(len(packed)), uint64(len(header)), parse.Checksum(header))
	out = append(out, packed...)
	return append(out, header...)
}
