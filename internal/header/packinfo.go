package header

// DecodePackInfo decodes a PackInfo section starting at its marker.
func DecodePackInfo(b []byte, pos int) (PackInfo, int, error) {
	c := newCursor(b, pos, "pack info")
	if err := c.expect(IDPackInfo); err != nil {
		return PackInfo{}, pos, err
	}
	pi, err := readPackInfo(c)
	return pi, c.pos, err
}

// readPackInfo reads the section body after the PackInfo marker.
func readPackInfo(c *cursor) (PackInfo, error) {
	defer c.enter("pack info")()
	var pi PackInfo
	var err error
	if pi.PackPos, err = c.uint64(); err != nil {
		return pi, err
	}
	if pi.NumPackStreams, err = c.count(1); err != nil {
		return pi, err
	}
	pi.Sizes, _, err = ifTag(c, IDSize, func(c *cursor) ([]uint64, error) {
		return readUint64s(c, pi.NumPackStreams)
	})
	if err != nil {
		return pi, err
	}
	pi.Digests, _, err = ifTag(c, IDCRC, func(c *cursor) ([]Digest, error) {
		return readDigests(c, pi.NumPackStreams)
	})
	if err != nil {
		return pi, err
	}
	return pi, c.expect(IDEnd)
}
