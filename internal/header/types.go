package header

// Magic is the 6-byte 7z signature.
var Magic = [6]byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}

// SignatureHeaderSize is the fixed size of the leading signature header.
// Pack stream offsets are relative to its end.
const SignatureHeaderSize = 32

type ArchiveVersion struct {
	Major byte
	Minor byte
}

// StartHeader locates the header region.
type StartHeader struct {
	NextHeaderOffset uint64
	NextHeaderSize   uint64
	NextHeaderCRC    uint32
}

type SignatureHeader struct {
	Magic          [6]byte
	Version        ArchiveVersion
	StartHeaderCRC uint32
	StartHeader    StartHeader
}

// Property is one raw entry of the ArchiveProperties list.
type Property struct {
	ID   PropertyID
	Data []byte
}

// Digest is an optional CRC-32. Digest lists have one entry per stream
// they describe; entries not covered by the defined bitset are zero.
type Digest struct {
	Defined bool
	CRC     uint32
}

// PackInfo describes the packed streams stored after the signature header.
// Sizes and Digests are nil when their sections are absent.
type PackInfo struct {
	PackPos        uint64
	NumPackStreams int
	Sizes          []uint64
	Digests        []Digest
}

// CoderComplex holds the stream counts of a coder with more than one
// input or output.
type CoderComplex struct {
	NumInStreams  uint64
	NumOutStreams uint64
}

type Coder struct {
	ID      []byte
	Complex *CoderComplex
	Attrs   []byte // nil when the coder has no attributes
}

func (c Coder) NumInStreams() uint64 {
	if c.Complex != nil {
		return c.Complex.NumInStreams
	}
	return 1
}

func (c Coder) NumOutStreams() uint64 {
	if c.Complex != nil {
		return c.Complex.NumOutStreams
	}
	return 1
}

// BindPair wires the output stream OutIndex to the input stream InIndex.
type BindPair struct {
	InIndex  uint64
	OutIndex uint64
}

// Folder is a coder graph producing one unpacked stream.
type Folder struct {
	Coders        []Coder
	BindPairs     []BindPair
	PackedStreams []uint64 // nil when the folder has no packed inputs
}

func (f Folder) NumInStreams() uint64 {
	var n uint64
	for _, c := range f.Coders {
		n += c.NumInStreams()
	}
	return n
}

func (f Folder) NumOutStreams() uint64 {
	var n uint64
	for _, c := range f.Coders {
		n += c.NumOutStreams()
	}
	return n
}

// CodersInfo lists the folders. When External is set the folders live in
// an additional stream identified by DataStreamIndex and Folders is nil.
type CodersInfo struct {
	NumFolders      int
	External        bool
	DataStreamIndex uint64
	Folders         []Folder
	UnpackSizes     []uint64
	Digests         []Digest // one per folder, nil when absent
}

// FolderList returns the folders, failing for external folder storage.
func (ci *CodersInfo) FolderList() ([]Folder, error) {
	if ci.External {
		return nil, &UnsupportedError{Feature: "external folders", External: true}
	}
	return ci.Folders, nil
}

type SubStreamsInfo struct {
	NumUnpackStreams []uint64 // one per folder, nil when absent
	UnpackSizes      []uint64
	Digests          []Digest // streams without a folder digest
}

type StreamsInfo struct {
	PackInfo       *PackInfo
	CodersInfo     *CodersInfo
	SubStreamsInfo *SubStreamsInfo
}

type Header struct {
	ArchiveProperties []Property // nil when absent
	AdditionalStreams *StreamsInfo
	MainStreams       *StreamsInfo
	Files             *FilesInfo
}

// Archive is the decoded metadata tree. Header is nil for an empty archive.
type Archive struct {
	Signature SignatureHeader
	Header    *Header
}
