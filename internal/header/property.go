package header

import "fmt"

// PropertyID tags every section and field of the header tree.
type PropertyID byte

const (
	IDEnd PropertyID = iota
	IDHeader
	IDArchiveProperties
	IDAdditionalStreamsInfo
	IDMainStreamsInfo
	IDFilesInfo
	IDPackInfo
	IDUnPackInfo
	IDSubStreamsInfo
	IDSize
	IDCRC
	IDFolder
	IDCodersUnPackSize
	IDNumUnPackStream
	IDEmptyStream
	IDEmptyFile
	IDAnti
	IDName
	IDCTime
	IDATime
	IDMTime
	IDWinAttributes
	IDComment
	IDEncodedHeader
	IDStartPos
	IDDummy
)

var propertyNames = [...]string{
	"End", "Header", "ArchiveProperties", "AdditionalStreamsInfo",
	"MainStreamsInfo", "FilesInfo", "PackInfo", "UnPackInfo",
	"SubStreamsInfo", "Size", "CRC", "Folder", "CodersUnPackSize",
	"NumUnPackStream", "EmptyStream", "EmptyFile", "Anti", "Name",
	"CTime", "ATime", "MTime", "WinAttributes", "Comment",
	"EncodedHeader", "StartPos", "Dummy",
}

// Valid reports whether id is one of the known property IDs.
func (id PropertyID) Valid() bool { return int(id) < len(propertyNames) }

func (id PropertyID) String() string {
	if id.Valid() {
		return propertyNames[id]
	}
	return fmt.Sprintf("PropertyID(0x%02x)", byte(id))
}
