package header

import (
	"fmt"
	"math"
)

// Coder property byte layout.
const (
	coderIDLenShift = 4
	coderComplex    = 0x08
	coderHasAttrs   = 0x04
)

func readCoder(c *cursor) (Coder, error) {
	defer c.enter("coder")()
	var cd Coder
	props, err := c.byte()
	if err != nil {
		return cd, err
	}
	id, err := c.bytes(int(props >> coderIDLenShift))
	if err != nil {
		return cd, err
	}
	cd.ID = append([]byte(nil), id...)
	if props&coderComplex != 0 {
		in, err := c.uint64()
		if err != nil {
			return cd, err
		}
		out, err := c.uint64()
		if err != nil {
			return cd, err
		}
		cd.Complex = &CoderComplex{NumInStreams: in, NumOutStreams: out}
	}
	if props&coderHasAttrs != 0 {
		n, err := c.size()
		if err != nil {
			return cd, err
		}
		attrs, err := c.bytes(n)
		if err != nil {
			return cd, err
		}
		cd.Attrs = append([]byte(nil), attrs...)
	}
	return cd, nil
}

// streamCount converts a stream count derived from earlier fields. When
// perItem is positive the count is bounded by the remaining input.
func streamCount(c *cursor, v uint64, perItem int) (int, error) {
	if v > math.MaxInt || (perItem > 0 && int(v) > c.remaining()/perItem) {
		return 0, c.fail(fmt.Errorf("stream count %d exceeds input: %w", v, ErrTruncated))
	}
	return int(v), nil
}

func readFolder(c *cursor) (Folder, error) {
	defer c.enter("folder")()
	var f Folder
	numCoders, err := c.count(1)
	if err != nil {
		return f, err
	}
	f.Coders = make([]Coder, 0, numCoders)
	for i := 0; i < numCoders; i++ {
		cd, err := readCoder(c)
		if err != nil {
			return f, err
		}
		f.Coders = append(f.Coders, cd)
	}

	totalOut, totalIn := f.NumOutStreams(), f.NumInStreams()
	if totalOut == 0 {
		return f, c.fail(fmt.Errorf("%w: folder has no output streams", ErrStreamCountUnderflow))
	}
	numBindPairs, err := streamCount(c, totalOut-1, 2)
	if err != nil {
		return f, err
	}
	f.BindPairs = make([]BindPair, numBindPairs)
	for i := range f.BindPairs {
		in, err := c.uint64()
		if err != nil {
			return f, err
		}
		out, err := c.uint64()
		if err != nil {
			return f, err
		}
		f.BindPairs[i] = BindPair{InIndex: in, OutIndex: out}
	}

	if totalIn < uint64(numBindPairs) {
		return f, c.fail(fmt.Errorf("%w: %d inputs for %d bind pairs", ErrStreamCountUnderflow, totalIn, numBindPairs))
	}
	numPacked, err := streamCount(c, totalIn-uint64(numBindPairs), 1)
	if err != nil {
		return f, err
	}
	if numPacked >= 1 {
		if f.PackedStreams, err = readUint64s(c, numPacked); err != nil {
			return f, err
		}
	}
	return f, nil
}

// DecodeFolder decodes one folder record at pos.
func DecodeFolder(b []byte, pos int) (Folder, int, error) {
	c := newCursor(b, pos, "folder")
	f, err := readFolder(c)
	return f, c.pos, err
}

// DecodeCodersInfo decodes a CodersInfo section starting at its UnPackInfo
// marker.
func DecodeCodersInfo(b []byte, pos int) (CodersInfo, int, error) {
	c := newCursor(b, pos, "coders info")
	if err := c.expect(IDUnPackInfo); err != nil {
		return CodersInfo{}, pos, err
	}
	ci, err := readCodersInfo(c)
	return ci, c.pos, err
}

func readCodersInfo(c *cursor) (CodersInfo, error) {
	defer c.enter("coders info")()
	var ci CodersInfo
	if err := c.expect(IDFolder); err != nil {
		return ci, err
	}
	var err error
	if ci.NumFolders, err = c.count(1); err != nil {
		return ci, err
	}
	if ci.External, err = c.bool(); err != nil {
		return ci, err
	}
	if ci.External {
		if ci.DataStreamIndex, err = c.uint64(); err != nil {
			return ci, err
		}
	} else {
		ci.Folders = make([]Folder, 0, ci.NumFolders)
		for i := 0; i < ci.NumFolders; i++ {
			f, err := readFolder(c)
			if err != nil {
				return ci, err
			}
			ci.Folders = append(ci.Folders, f)
		}
	}

	if err := c.expect(IDCodersUnPackSize); err != nil {
		return ci, err
	}
	// The unpack size count depends on the folder graphs.
	folders, err := ci.FolderList()
	if err != nil {
		return ci, c.fail(err)
	}
	var numOut uint64
	for _, f := range folders {
		numOut += f.NumOutStreams()
	}
	n, err := streamCount(c, numOut, 1)
	if err != nil {
		return ci, err
	}
	if ci.UnpackSizes, err = readUint64s(c, n); err != nil {
		return ci, err
	}

	ci.Digests, _, err = ifTag(c, IDCRC, func(c *cursor) ([]Digest, error) {
		return readDigests(c, ci.NumFolders)
	})
	if err != nil {
		return ci, err
	}
	return ci, c.expect(IDEnd)
}
