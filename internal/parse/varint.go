package parse

import (
	"math"
	"math/bits"
)

// ReadUint64 decodes a 7z packed integer from the start of b.
// The number of leading one bits in the first byte gives the count of
// little-endian bytes that follow. It returns the value and the number of
// bytes consumed.
func ReadUint64(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrTruncated
	}
	first := b[0]
	k := bits.LeadingZeros8(^first)
	if len(b) < 1+k {
		return 0, 0, ErrTruncated
	}
	var extra uint64
	for i := 0; i < k; i++ {
		extra |= uint64(b[1+i]) << (8 * i)
	}
	if k == 8 {
		return extra, 9, nil
	}
	mask := uint64(1)<<(8-k) - 1
	return extra | (uint64(first)&mask)<<(8*k), 1 + k, nil
}

// ReadSize is ReadUint64 for values used as element counts or lengths.
func ReadSize(b []byte) (int, int, error) {
	v, n, err := ReadUint64(b)
	if err != nil {
		return 0, n, err
	}
	if v > math.MaxInt {
		return 0, n, ErrSizeOverflow
	}
	return int(v), n, nil
}

// AppendUint64 appends the shortest packed encoding of v to dst.
func AppendUint64(dst []byte, v uint64) []byte {
	k := 0
	for ; k < 8; k++ {
		// 7-k value bits remain in the first byte after k marker bits.
		if v < uint64(1)<<(7*(k+1)) {
			break
		}
	}
	if k == 8 {
		dst = append(dst, 0xFF)
		for i := 0; i < 8; i++ {
			dst = append(dst, byte(v>>(8*i)))
		}
		return dst
	}
	marker := byte(0xFF << (8 - k))
	high := byte(v >> (8 * k))
	dst = append(dst, marker|high)
	for i := 0; i < k; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}
