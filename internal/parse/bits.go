package parse

// TakeBits unpacks n booleans from b, most significant bit first. It reads
// ceil(n/8) bytes and ignores the unused low bits of the last one.
func TakeBits(b []byte, n int) ([]bool, int, error) {
	if n < 0 {
		return nil, 0, ErrSizeOverflow
	}
	nbytes := n / 8
	if n%8 != 0 {
		nbytes++
	}
	if len(b) < nbytes {
		return nil, 0, ErrTruncated
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = b[i/8]&(0x80>>(i%8)) != 0
	}
	return out, nbytes, nil
}

// CountSet returns the number of true entries in v.
func CountSet(v []bool) int {
	n := 0
	for _, set := range v {
		if set {
			n++
		}
	}
	return n
}
