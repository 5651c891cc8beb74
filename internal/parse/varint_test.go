package parse

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestReadUint64Success(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint64
		n    int
	}{
		{[]byte{0x00}, 0, 1},
		{[]byte{0x7F}, 127, 1},
		{[]byte{0x80, 0x80}, 128, 2},
		{[]byte{0x81, 0x2C}, 300, 2},
		{[]byte{0xBF, 0xFF}, 0x3FFF, 2},
		{[]byte{0xC0, 0x00, 0x40}, 0x4000, 3},
		{[]byte{0xFF, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, 0x0807060504030201, 9},
		{[]byte{0x13, 0xAA}, 19, 1}, // trailing bytes are left alone
	}
	for _, c := range cases {
		v, n, err := ReadUint64(c.in)
		if err != nil || v != c.want || n != c.n {
			t.Fatalf("% x: unexpected v=%d n=%d err=%v", c.in, v, n, err)
		}
	}
}

func TestReadUint64Truncated(t *testing.T) {
	if _, _, err := ReadUint64(nil); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncated error, got %v", err)
	}
	if _, _, err := ReadUint64([]byte{0xC0, 0x00}); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncated error, got %v", err)
	}
	if _, _, err := ReadUint64(bytes.Repeat([]byte{0xFF}, 8)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncated error, got %v", err)
	}
}

func TestReadSizeOverflow(t *testing.T) {
	b := AppendUint64(nil, math.MaxUint64)
	if _, n, err := ReadSize(b); !errors.Is(err, ErrSizeOverflow) || n != 9 {
		t.Fatalf("expected overflow n=%d err=%v", n, err)
	}
	if v, n, err := ReadSize([]byte{0x05}); err != nil || v != 5 || n != 1 {
		t.Fatalf("unexpected v=%d n=%d err=%v", v, n, err)
	}
}

func TestAppendUint64RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 0x3FFF, 0x4000, 1<<56 - 1, 1 << 56, math.MaxUint64}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		values = append(values, rng.Uint64()>>uint(rng.Intn(64)))
	}
	for _, v := range values {
		enc := AppendUint64(nil, v)
		got, n, err := ReadUint64(enc)
		if err != nil || got != v || n != len(enc) {
			t.Fatalf("round trip %d: got %d n=%d len=%d err=%v", v, got, n, len(enc), err)
		}
	}
}
