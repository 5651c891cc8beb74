package sevenzlist

import (
	"fmt"
	"time"

	"github.com/javi11/sevenzlist/internal/header"
	"github.com/javi11/sevenzlist/internal/parse"
)

// fileProps collects the FilesInfo properties by kind.
type fileProps struct {
	names       []header.Entry[string]
	emptyStream []bool
	emptyFile   []bool
	anti        []bool
	ctime       []header.Entry[uint64]
	atime       []header.Entry[uint64]
	mtime       []header.Entry[uint64]
	attrs       []header.Entry[uint32]
}

func collectProps(fi *header.FilesInfo) fileProps {
	var p fileProps
	for _, prop := range fi.Properties {
		switch v := prop.(type) {
		case header.Names:
			p.names = v.Entries
		case header.EmptyStream:
			p.emptyStream = v.Bits
		case header.EmptyFile:
			p.emptyFile = v.Bits
		case header.Anti:
			p.anti = v.Bits
		case header.Times:
			switch v.ID {
			case header.IDCTime:
				p.ctime = v.Entries
			case header.IDATime:
				p.atime = v.Entries
			case header.IDMTime:
				p.mtime = v.Entries
			}
		case header.Attributes:
			p.attrs = v.Entries
		}
	}
	return p
}

// project flattens the header into one File per name.
func project(h *header.Header) ([]File, error) {
	if h == nil || h.Files == nil {
		return nil, nil
	}
	fi := h.Files
	p := collectProps(fi)
	if fi.NumFiles > 0 && p.names == nil {
		return nil, ErrMissingNames
	}
	if err := checkExternal(p); err != nil {
		return nil, err
	}

	numStreams := fi.NumFiles - parse.CountSet(p.emptyStream)
	streams, err := folderStreams(h.MainStreams, numStreams)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, fi.NumFiles)
	si, ei := 0, 0
	for i, name := range p.names {
		f := File{
			Name:  name.Value,
			CTime: filetime(p.ctime, i),
			ATime: filetime(p.atime, i),
			MTime: filetime(p.mtime, i),
		}
		if i < len(p.attrs) && p.attrs[i].Defined {
			f.Attributes = p.attrs[i].Value
			f.HasAttributes = true
		}
		if i < len(p.emptyStream) && p.emptyStream[i] {
			emptyFile := ei < len(p.emptyFile) && p.emptyFile[ei]
			f.IsAnti = ei < len(p.anti) && p.anti[ei]
			f.IsDir = !emptyFile
			ei++
		} else {
			s := streams[si]
			f.Stream = &s
			f.Size = s.Size
			si++
		}
		files = append(files, f)
	}
	return files, nil
}

func checkExternal(p fileProps) error {
	ext := func(feature string) error {
		return &header.UnsupportedError{Feature: "external " + feature, External: true}
	}
	for _, e := range p.names {
		if e.External {
			return ext("file names")
		}
	}
	for _, times := range [][]header.Entry[uint64]{p.ctime, p.atime, p.mtime} {
		for _, e := range times {
			if e.External {
				return ext("file times")
			}
		}
	}
	for _, e := range p.attrs {
		if e.External {
			return ext("file attributes")
		}
	}
	return nil
}

// folderStreams assigns one stream per folder, in order. Only folders with
// a single simple coder and a single unpacked stream are mapped.
func folderStreams(si *header.StreamsInfo, want int) ([]FileStream, error) {
	if want == 0 {
		return nil, nil
	}
	if si == nil || si.PackInfo == nil || si.CodersInfo == nil {
		return nil, fmt.Errorf("%w: %d files with data but no streams", ErrStreamMapping, want)
	}
	pi, ci := si.PackInfo, si.CodersInfo
	folders, err := ci.FolderList()
	if err != nil {
		return nil, err
	}
	var subDigests []header.Digest
	if ss := si.SubStreamsInfo; ss != nil {
		for _, n := range ss.NumUnpackStreams {
			if n != 1 {
				return nil, &header.UnsupportedError{Feature: "substreams"}
			}
		}
		subDigests = ss.Digests
	}
	if len(folders) != want {
		return nil, fmt.Errorf("%w: %d folders for %d files", ErrStreamMapping, len(folders), want)
	}
	if len(pi.Sizes) != pi.NumPackStreams {
		return nil, fmt.Errorf("%w: pack sizes missing", ErrStreamMapping)
	}

	out := make([]FileStream, 0, len(folders))
	offset := pi.PackPos
	packIndex, outIndex, subIndex := 0, 0, 0
	for i, f := range folders {
		if len(f.Coders) != 1 {
			return nil, &header.UnsupportedError{Feature: fmt.Sprintf("folder with %d coders", len(f.Coders))}
		}
		cd := f.Coders[0]
		if cd.Complex != nil {
			return nil, &header.UnsupportedError{Feature: "complex coder"}
		}
		if packIndex >= len(pi.Sizes) || outIndex >= len(ci.UnpackSizes) {
			return nil, fmt.Errorf("%w: folder %d has no pack stream", ErrStreamMapping, i)
		}
		s := FileStream{
			Coder:      Coder{ID: cd.ID, Attrs: cd.Attrs},
			Offset:     offset,
			PackedSize: pi.Sizes[packIndex],
			Size:       ci.UnpackSizes[outIndex],
		}
		switch {
		case i < len(ci.Digests) && ci.Digests[i].Defined:
			s.CRC, s.HasCRC = ci.Digests[i].CRC, true
		case subIndex < len(subDigests):
			d := subDigests[subIndex]
			s.CRC, s.HasCRC = d.CRC, d.Defined
			subIndex++
		}
		out = append(out, s)
		offset += pi.Sizes[packIndex]
		packIndex += len(f.PackedStreams)
		outIndex++
	}
	return out, nil
}

// FILETIME counts 100ns intervals since 1601-01-01 UTC.
const filetimeUnixOffset = 11644473600

func filetime(entries []header.Entry[uint64], i int) time.Time {
	if i >= len(entries) || !entries[i].Defined {
		return time.Time{}
	}
	ft := entries[i].Value
	return time.Unix(int64(ft/1e7)-filetimeUnixOffset, int64(ft%1e7)*100).UTC()
}
