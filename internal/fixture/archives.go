package fixture

import "github.com/javi11/sevenzlist/internal/parse"

// File describes one entry of a stored archive.
type File struct {
	Name   string
	Data   []byte
	Dir    bool
	Anti   bool
	MTime  uint64
	Attrib uint32
}

func (f File) emptyStream() bool { return f.Dir || f.Anti || len(f.Data) == 0 }

// StoredArchive builds an archive with one copy-coded folder per non-empty
// file, folder CRCs, and Name, MTime and WinAttributes properties.
func StoredArchive(files ...File) []byte {
	var packed, sizes, folders, digests Buf
	numFolders := 0
	for _, f := range files {
		if f.emptyStream() {
			continue
		}
		numFolders++
		packed.Byte(f.Data...)
		sizes.Num(uint64(len(f.Data)))
		// one coder, id length 1, id 0x00, packed stream index 0
		folders.Byte(0x01, 0x10, 0x00).Num(0)
		digests.U32(parse.Checksum(f.Data))
	}

	var h Buf
	h.Byte(Header)
	if numFolders > 0 {
		h.Byte(MainStreams)
		h.Byte(PackInfo).Num(0).Num(uint64(numFolders)).Byte(Size).Byte(sizes.Bytes()...).Byte(End)
		h.Byte(UnPackInfo, Folder).Num(uint64(numFolders)).Byte(0).Byte(folders.Bytes()...)
		h.Byte(CodersUnPackSize).Byte(sizes.Bytes()...)
		h.Byte(CRC, 1).Byte(digests.Bytes()...)
		h.Byte(End)
		h.Byte(End)
	}
	h.Byte(FilesInfo).Num(uint64(len(files)))
	h.Byte(filesProperties(files)...)
	h.Byte(End)
	h.Byte(End)
	return Archive(packed.Bytes(), h.Bytes())
}

func filesProperties(files []File) []byte {
	var out Buf
	var emptyStream, emptyFile, anti []bool
	anyEmpty, anyAnti := false, false
	for _, f := range files {
		es := f.emptyStream()
		emptyStream = append(emptyStream, es)
		if es {
			anyEmpty = true
			emptyFile = append(emptyFile, !f.Dir)
			anti = append(anti, f.Anti)
			anyAnti = anyAnti || f.Anti
		}
	}
	if anyEmpty {
		out.Prop(EmptyStream, (&Buf{}).Bits(emptyStream).Bytes())
		out.Prop(EmptyFile, (&Buf{}).Bits(emptyFile).Bytes())
		if anyAnti {
			out.Prop(Anti, (&Buf{}).Bits(anti).Bytes())
		}
	}

	names := (&Buf{}).Byte(0)
	times := (&Buf{}).Byte(1, 0)
	attrs := (&Buf{}).Byte(1, 0)
	for _, f := range files {
		names.Name(f.Name)
		times.U64(f.MTime)
		attrs.U32(f.Attrib)
	}
	out.Prop(Name, names.Bytes())
	out.Prop(MTime, times.Bytes())
	out.Prop(WinAttributes, attrs.Bytes())
	return out.Bytes()
}

// LZMA2Chunk wraps data in a single uncompressed LZMA2 chunk followed by the
// end marker. data must be 1 to 65536 bytes.
func LZMA2Chunk(data []byte) []byte {
	n := len(data) - 1
	return (&Buf{}).Byte(0x01, byte(n>>8), byte(n)).Byte(data...).Byte(0x00).Bytes()
}

// Sample is the single file archive used by the end-to-end tests. Its
// header is laid out so that PackInfo starts at byte 53, CodersInfo at 59,
// SubStreamsInfo at 71 and FilesInfo at 80. The coder bytes 21 21 01 00
// decode as coder id [0x21 0x01] with packed stream index 0.
type Sample struct {
	Name   string
	Data   []byte // 15 bytes for the canonical layout
	ATime  uint64
	Attrib uint32
}

// Offsets of the sections inside Sample archives.
const (
	SamplePackInfo   = 53
	SampleCodersInfo = 59
	SampleSubStreams = 71
	SampleFilesInfo  = 80
)

func (s Sample) Bytes() []byte {
	packed := LZMA2Chunk(s.Data)

	var h Buf
	h.Byte(Header, MainStreams)
	h.Byte(PackInfo).Num(0).Num(1).Byte(Size).Num(uint64(len(packed))).Byte(End)
	h.Byte(UnPackInfo, Folder).Num(1).Byte(0)
	h.Byte(0x01, 0x21, 0x21, 0x01, 0x00)
	h.Byte(CodersUnPackSize).Num(uint64(len(s.Data))).Byte(End)
	h.Byte(SubStreamsInfo, CRC, 1).U32(parse.Checksum(s.Data)).Byte(End)
	h.Byte(End)

	h.Byte(FilesInfo).Num(1)
	h.Prop(Dummy, make([]byte, 14))
	h.Prop(Name, (&Buf{}).Byte(0).Name(s.Name).Bytes())
	h.Prop(ATime, (&Buf{}).Byte(1, 0).U64(s.ATime).Bytes())
	h.Prop(WinAttributes, (&Buf{}).Byte(1, 0).U32(s.Attrib).Bytes())
	h.Byte(End)
	h.Byte(End)
	return Archive(packed, h.Bytes())
}

// LZMA2Archive builds a single file archive whose folder uses coder id 0x21
// with a one byte dictionary attribute.
func LZMA2Archive(name string, data []byte) []byte {
	packed := LZMA2Chunk(data)

	var h Buf
	h.Byte(Header, MainStreams)
	h.Byte(PackInfo).Num(0).Num(1).Byte(Size).Num(uint64(len(packed))).Byte(End)
	h.Byte(UnPackInfo, Folder).Num(1).Byte(0)
	// id length 1 with attributes: 0x21, one attribute byte (dictionary 4 KiB)
	h.Byte(0x01, 0x14, 0x21).Num(1).Byte(0x00).Num(0)
	h.Byte(CodersUnPackSize).Num(uint64(len(data)))
	h.Byte(CRC, 1).U32(parse.Checksum(data))
	h.Byte(End)
	h.Byte(End)

	h.Byte(FilesInfo).Num(1)
	h.Prop(Name, (&Buf{}).Byte(0).Name(name).Bytes())
	h.Byte(End)
	h.Byte(End)
	return Archive(packed, h.Bytes())
}
