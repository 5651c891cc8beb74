package codec

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/ulikunitz/xz/lzma"
)

// maxDictCap bounds the dictionary allocated for untrusted attributes.
const maxDictCap = 1 << 30

// lzma2DictCap decodes the one byte dictionary size attribute.
func lzma2DictCap(attrs []byte) (int, error) {
	if len(attrs) != 1 {
		return 0, fmt.Errorf("lzma2: want 1 attribute byte, got %d", len(attrs))
	}
	b := attrs[0]
	if b > 40 {
		return 0, fmt.Errorf("lzma2: invalid dictionary byte %d", b)
	}
	var size uint64 = 0xFFFFFFFF
	if b < 40 {
		size = uint64(2|b&1) << (b/2 + 11)
	}
	if size < lzma.MinDictCap {
		size = lzma.MinDictCap
	}
	if size > maxDictCap {
		size = maxDictCap
	}
	return int(size), nil
}

func decodeLZMA2(packed []byte, size uint64, attrs []byte) ([]byte, error) {
	dictCap, err := lzma2DictCap(attrs)
	if err != nil {
		return nil, err
	}
	r, err := lzma.Reader2Config{DictCap: dictCap}.NewReader2(bytes.NewReader(packed))
	if err != nil {
		return nil, fmt.Errorf("lzma2: %w", err)
	}
	if size > math.MaxInt64 {
		return nil, fmt.Errorf("lzma2: unpack size %d too large", size)
	}
	out, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("lzma2: %w", err)
	}
	if uint64(len(out)) != size {
		return nil, fmt.Errorf("lzma2: %w: got %d of %d bytes", io.ErrUnexpectedEOF, len(out), size)
	}
	return out, nil
}
