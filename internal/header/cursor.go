package header

import (
	"fmt"

	"github.com/javi11/sevenzlist/internal/parse"
)

// cursor walks the header bytes. Positions are absolute archive offsets,
// so every error it produces can be located in the original buffer.
type cursor struct {
	b       []byte
	pos     int
	section string
}

func newCursor(b []byte, pos int, section string) *cursor {
	return &cursor{b: b, pos: pos, section: section}
}

// enter switches the section used for error reports until the returned
// func is called.
func (c *cursor) enter(section string) func() {
	prev := c.section
	c.section = section
	return func() { c.section = prev }
}

func (c *cursor) fail(err error) error { return errAt(c.section, c.pos, err) }

func (c *cursor) remaining() int { return len(c.b) - c.pos }

func (c *cursor) uint64() (uint64, error) {
	v, n, err := parse.ReadUint64(c.b[c.pos:])
	if err != nil {
		return 0, c.fail(err)
	}
	c.pos += n
	return v, nil
}

func (c *cursor) size() (int, error) {
	v, n, err := parse.ReadSize(c.b[c.pos:])
	if err != nil {
		return 0, c.fail(err)
	}
	c.pos += n
	return v, nil
}

// count reads a size and rejects values that cannot fit in the remaining
// input when every element takes at least minBytes bytes.
func (c *cursor) count(minBytes int) (int, error) {
	start := c.pos
	n, err := c.size()
	if err != nil {
		return 0, err
	}
	if minBytes > 0 && n > c.remaining()/minBytes {
		return 0, errAt(c.section, start, fmt.Errorf("count %d exceeds input: %w", n, ErrTruncated))
	}
	return n, nil
}

func (c *cursor) byte() (byte, error) {
	if c.remaining() < 1 {
		return 0, c.fail(ErrTruncated)
	}
	v := c.b[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) bool() (bool, error) {
	v, n, err := parse.ReadBool(c.b[c.pos:])
	if err != nil {
		return false, c.fail(err)
	}
	c.pos += n
	return v, nil
}

func (c *cursor) uint32LE() (uint32, error) {
	v, n, err := parse.ReadUint32LE(c.b[c.pos:])
	if err != nil {
		return 0, c.fail(err)
	}
	c.pos += n
	return v, nil
}

func (c *cursor) uint64LE() (uint64, error) {
	v, n, err := parse.ReadUint64LE(c.b[c.pos:])
	if err != nil {
		return 0, c.fail(err)
	}
	c.pos += n
	return v, nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, c.fail(ErrTruncated)
	}
	v := c.b[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return v, nil
}

func (c *cursor) bits(n int) ([]bool, error) {
	v, used, err := parse.TakeBits(c.b[c.pos:], n)
	if err != nil {
		return nil, c.fail(err)
	}
	c.pos += used
	return v, nil
}

// peek returns the property ID at the cursor without consuming it.
func (c *cursor) peek() (PropertyID, error) {
	if c.remaining() < 1 {
		return 0, c.fail(ErrTruncated)
	}
	id := PropertyID(c.b[c.pos])
	if !id.Valid() {
		return 0, c.fail(fmt.Errorf("%w: 0x%02x", ErrInvalidPropertyID, byte(id)))
	}
	return id, nil
}

func (c *cursor) id() (PropertyID, error) {
	id, err := c.peek()
	if err != nil {
		return 0, err
	}
	c.pos++
	return id, nil
}

// expect consumes the property want or fails with ErrInvalidTag.
func (c *cursor) expect(want PropertyID) error {
	got, err := c.peek()
	if err != nil {
		return err
	}
	if got != want {
		return c.fail(fmt.Errorf("%w: expected %s, found %s", ErrInvalidTag, want, got))
	}
	c.pos++
	return nil
}

// ifTag runs body only when the next byte is the marker id, consuming the
// marker first. ok reports whether the section was present.
func ifTag[T any](c *cursor, id PropertyID, body func(*cursor) (T, error)) (v T, ok bool, err error) {
	if c.remaining() < 1 || PropertyID(c.b[c.pos]) != id {
		return v, false, nil
	}
	c.pos++
	v, err = body(c)
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// readDigests reads the digest list layout: an all-defined flag, the
// defined bitset when not all are set, then one LE CRC per defined entry.
func readDigests(c *cursor, n int) ([]Digest, error) {
	all, err := c.bool()
	if err != nil {
		return nil, err
	}
	if (all && n > c.remaining()/4) || n/8 > c.remaining() {
		return nil, c.fail(ErrTruncated)
	}
	defined, err := definedBits(c, all, n)
	if err != nil {
		return nil, err
	}
	if parse.CountSet(defined)*4 > c.remaining() {
		return nil, c.fail(ErrTruncated)
	}
	out := make([]Digest, n)
	for i, d := range defined {
		if !d {
			continue
		}
		crc, err := c.uint32LE()
		if err != nil {
			return nil, err
		}
		out[i] = Digest{Defined: true, CRC: crc}
	}
	return out, nil
}

func definedBits(c *cursor, all bool, n int) ([]bool, error) {
	if !all {
		return c.bits(n)
	}
	if n < 0 {
		return nil, c.fail(ErrSizeOverflow)
	}
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v, nil
}

func readUint64s(c *cursor, n int) ([]uint64, error) {
	if n > c.remaining() {
		return nil, c.fail(ErrTruncated)
	}
	out := make([]uint64, n)
	for i := range out {
		v, err := c.uint64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
