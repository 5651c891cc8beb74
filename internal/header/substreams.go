package header

import "math"

// DecodeSubStreamsInfo decodes a SubStreamsInfo section starting at its
// marker. The folder list decides how many counts and digests follow.
func DecodeSubStreamsInfo(b []byte, pos int, ci *CodersInfo) (SubStreamsInfo, int, error) {
	c := newCursor(b, pos, "substreams info")
	if err := c.expect(IDSubStreamsInfo); err != nil {
		return SubStreamsInfo{}, pos, err
	}
	ss, err := readSubStreamsInfo(c, ci)
	return ss, c.pos, err
}

func readSubStreamsInfo(c *cursor, ci *CodersInfo) (SubStreamsInfo, error) {
	defer c.enter("substreams info")()
	var ss SubStreamsInfo
	var err error
	ss.NumUnpackStreams, _, err = ifTag(c, IDNumUnPackStream, func(c *cursor) ([]uint64, error) {
		return readUint64s(c, ci.NumFolders)
	})
	if err != nil {
		return ss, err
	}

	ss.UnpackSizes, _, err = ifTag(c, IDSize, func(c *cursor) ([]uint64, error) {
		if ss.NumUnpackStreams == nil {
			return nil, c.fail(ErrCouldNotDetermineNumUnpackStreams)
		}
		// The last size of each folder is implied by the folder's unpack size.
		var n uint64
		for _, k := range ss.NumUnpackStreams {
			if k > 0 {
				n = addSat(n, k-1)
			}
		}
		count, err := streamCount(c, n, 1)
		if err != nil {
			return nil, err
		}
		return readUint64s(c, count)
	})
	if err != nil {
		return ss, err
	}

	// An all-defined byte precedes the CRCs. readDigests bounds n against
	// the remaining input.
	ss.Digests, _, err = ifTag(c, IDCRC, func(c *cursor) ([]Digest, error) {
		n, err := streamCount(c, unknownDigests(ci, ss.NumUnpackStreams), 0)
		if err != nil {
			return nil, err
		}
		return readDigests(c, n)
	})
	if err != nil {
		return ss, err
	}
	return ss, c.expect(IDEnd)
}

// unknownDigests counts the substreams whose CRC is not already carried by
// a folder digest. A folder with exactly one stream and a defined digest
// contributes nothing; every other folder contributes all its streams.
func unknownDigests(ci *CodersInfo, perFolder []uint64) uint64 {
	var n uint64
	for i := 0; i < ci.NumFolders; i++ {
		k := uint64(1)
		if perFolder != nil {
			k = perFolder[i]
		}
		if k == 1 && i < len(ci.Digests) && ci.Digests[i].Defined {
			continue
		}
		n = addSat(n, k)
	}
	return n
}

// addSat adds without wrapping; counts this large are rejected by
// streamCount.
func addSat(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// DecodeStreamsInfo decodes the body of a StreamsInfo section at pos (just
// after its AdditionalStreamsInfo or MainStreamsInfo marker). prior supplies
// the folders when this section has no CodersInfo of its own.
func DecodeStreamsInfo(b []byte, pos int, prior *CodersInfo) (StreamsInfo, int, error) {
	c := newCursor(b, pos, "streams info")
	si, err := readStreamsInfo(c, prior)
	return si, c.pos, err
}

func readStreamsInfo(c *cursor, prior *CodersInfo) (StreamsInfo, error) {
	defer c.enter("streams info")()
	var si StreamsInfo

	pi, ok, err := ifTag(c, IDPackInfo, readPackInfo)
	if err != nil {
		return si, err
	}
	if ok {
		si.PackInfo = &pi
	}

	ci, ok, err := ifTag(c, IDUnPackInfo, readCodersInfo)
	if err != nil {
		return si, err
	}
	if ok {
		si.CodersInfo = &ci
	}

	folders := si.CodersInfo
	if folders == nil {
		folders = prior
	}
	if folders == nil {
		return si, c.fail(ErrCouldNotDetermineNumFolders)
	}
	ss, ok, err := ifTag(c, IDSubStreamsInfo, func(c *cursor) (SubStreamsInfo, error) {
		return readSubStreamsInfo(c, folders)
	})
	if err != nil {
		return si, err
	}
	if ok {
		si.SubStreamsInfo = &ss
	}
	return si, c.expect(IDEnd)
}
