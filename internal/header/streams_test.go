package header

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javi11/sevenzlist/internal/fixture"
)

func buf() *fixture.Buf { return &fixture.Buf{} }

func TestDecodePackInfoNoStreams(t *testing.T) {
	b := buf().Byte(fixture.PackInfo).Num(0).Num(0).Byte(fixture.End).Bytes()

	pi, pos, err := DecodePackInfo(b, 0)
	require.NoError(t, err)
	assert.Equal(t, PackInfo{}, pi)
	assert.Nil(t, pi.Sizes)
	assert.Nil(t, pi.Digests)
	assert.Equal(t, len(b), pos)
}

func TestDecodePackInfoSizesAndDigests(t *testing.T) {
	b := buf().Byte(fixture.PackInfo).Num(32).Num(2).
		Byte(fixture.Size).Num(100).Num(300).
		Byte(fixture.CRC, 0).Bits([]bool{false, true}).U32(0xDEADBEEF).
		Byte(fixture.End).Bytes()

	pi, pos, err := DecodePackInfo(b, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(32), pi.PackPos)
	assert.Equal(t, 2, pi.NumPackStreams)
	assert.Equal(t, []uint64{100, 300}, pi.Sizes)
	assert.Equal(t, []Digest{{}, {Defined: true, CRC: 0xDEADBEEF}}, pi.Digests)
	assert.Equal(t, len(b), pos)
}

func TestDecodePackInfoMissingEnd(t *testing.T) {
	b := buf().Byte(fixture.PackInfo).Num(0).Num(0).Byte(fixture.Folder).Bytes()
	_, _, err := DecodePackInfo(b, 0)
	assert.ErrorIs(t, err, ErrInvalidTag)

	b = buf().Byte(fixture.PackInfo).Num(0).Num(0).Byte(0x42).Bytes()
	_, _, err = DecodePackInfo(b, 0)
	assert.ErrorIs(t, err, ErrInvalidPropertyID)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "pack info", pe.Section)
	assert.Equal(t, int64(3), pe.Offset)
}

func TestDecodeFolderSingleCoder(t *testing.T) {
	b := buf().Num(1).Byte(0x10, 0x00).Num(0).Bytes()

	f, pos, err := DecodeFolder(b, 0)
	require.NoError(t, err)
	require.Len(t, f.Coders, 1)
	assert.Equal(t, []byte{0x00}, f.Coders[0].ID)
	assert.Nil(t, f.Coders[0].Complex)
	assert.Nil(t, f.Coders[0].Attrs)
	assert.Empty(t, f.BindPairs)
	assert.Equal(t, []uint64{0}, f.PackedStreams)
	assert.Equal(t, len(b), pos)
}

func TestDecodeFolderGraph(t *testing.T) {
	// BCJ2-like coder with 4 inputs and one output, fed by a plain coder.
	b := buf().Num(2).
		Byte(0x48, 0x03, 0x03, 0x01, 0x1B).Num(4).Num(1).
		Byte(0x14, 0x21).Num(1).Byte(0x18).
		Num(0).Num(1). // bind pair: coder 0 input 0 <- coder 1 output
		Num(1).Num(2).Num(3).Num(4).
		Bytes()

	f, pos, err := DecodeFolder(b, 0)
	require.NoError(t, err)
	require.Len(t, f.Coders, 2)
	assert.Equal(t, []byte{0x03, 0x03, 0x01, 0x1B}, f.Coders[0].ID)
	assert.Equal(t, &CoderComplex{NumInStreams: 4, NumOutStreams: 1}, f.Coders[0].Complex)
	assert.Equal(t, []byte{0x18}, f.Coders[1].Attrs)
	assert.Equal(t, []BindPair{{InIndex: 0, OutIndex: 1}}, f.BindPairs)
	assert.Equal(t, uint64(5), f.NumInStreams())
	assert.Equal(t, uint64(2), f.NumOutStreams())
	assert.Equal(t, []uint64{1, 2, 3, 4}, f.PackedStreams)
	assert.Equal(t, len(b), pos)
}

func TestDecodeFolderUnderflow(t *testing.T) {
	_, _, err := DecodeFolder(buf().Num(0).Bytes(), 0)
	assert.ErrorIs(t, err, ErrStreamCountUnderflow)

	// two outputs and no inputs: one bind pair but zero inputs to bind
	b := buf().Num(1).Byte(0x18, 0x07).Num(0).Num(2).Num(0).Num(0).Bytes()
	_, _, err = DecodeFolder(b, 0)
	assert.ErrorIs(t, err, ErrStreamCountUnderflow)
}

func TestDecodeCodersInfo(t *testing.T) {
	b := buf().Byte(fixture.UnPackInfo, fixture.Folder).Num(2).Byte(0).
		Num(1).Byte(0x10, 0x00).Num(0).
		Num(1).Byte(0x10, 0x00).Num(0).
		Byte(fixture.CodersUnPackSize).Num(5).Num(7).
		Byte(fixture.CRC, 1).U32(1).U32(2).
		Byte(fixture.End).Bytes()

	ci, pos, err := DecodeCodersInfo(b, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, ci.NumFolders)
	assert.False(t, ci.External)
	assert.Len(t, ci.Folders, 2)
	assert.Equal(t, []uint64{5, 7}, ci.UnpackSizes)
	assert.Equal(t, []Digest{{true, 1}, {true, 2}}, ci.Digests)
	assert.Equal(t, len(b), pos)
}

func TestDecodeCodersInfoErrors(t *testing.T) {
	b := buf().Byte(fixture.UnPackInfo, fixture.Folder).Num(1).Byte(2).Bytes()
	_, _, err := DecodeCodersInfo(b, 0)
	assert.ErrorIs(t, err, ErrInvalidBooleanByte)

	b = buf().Byte(fixture.UnPackInfo, fixture.Folder).Num(1).Byte(1).Num(0).
		Byte(fixture.CodersUnPackSize).Num(5).Byte(fixture.End).Bytes()
	_, _, err = DecodeCodersInfo(b, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDecodeSubStreamsInfo(t *testing.T) {
	ci := &CodersInfo{NumFolders: 2, Digests: []Digest{{Defined: true, CRC: 9}, {}}}
	b := buf().Byte(fixture.SubStreamsInfo).
		Byte(fixture.NumUnPackStream).Num(1).Num(3).
		Byte(fixture.Size).Num(10).Num(20).
		Byte(fixture.CRC, 1).U32(0xA).U32(0xB).U32(0xC).
		Byte(fixture.End).Bytes()

	ss, pos, err := DecodeSubStreamsInfo(b, 0, ci)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3}, ss.NumUnpackStreams)
	assert.Equal(t, []uint64{10, 20}, ss.UnpackSizes)
	// folder 0 already has its digest; folder 1 contributes all three streams
	assert.Equal(t, []Digest{{true, 0xA}, {true, 0xB}, {true, 0xC}}, ss.Digests)
	assert.Equal(t, len(b), pos)
}

func TestDecodeSubStreamsInfoSizeWithoutCounts(t *testing.T) {
	b := buf().Byte(fixture.SubStreamsInfo).Byte(fixture.Size).Num(1).Byte(fixture.End).Bytes()
	_, _, err := DecodeSubStreamsInfo(b, 0, &CodersInfo{NumFolders: 1})
	assert.ErrorIs(t, err, ErrCouldNotDetermineNumUnpackStreams)
}

func TestUnknownDigests(t *testing.T) {
	ci := &CodersInfo{NumFolders: 3, Digests: []Digest{{Defined: true}, {}, {Defined: true}}}
	assert.Equal(t, uint64(1), unknownDigests(ci, nil))
	assert.Equal(t, uint64(2+1+0), unknownDigests(ci, []uint64{2, 1, 0}))
	assert.Equal(t, uint64(3), unknownDigests(&CodersInfo{NumFolders: 3}, nil))
	assert.Equal(t, uint64(math.MaxUint64), unknownDigests(&CodersInfo{NumFolders: 2}, []uint64{math.MaxUint64, 5}))
}

func TestDecodeSubStreamsInfoHugeDigestCount(t *testing.T) {
	ci := &CodersInfo{NumFolders: 1}
	tests := []struct {
		name  string
		count uint64
	}{
		{"max int", math.MaxInt64},
		{"max int minus one", math.MaxInt64 - 1},
		{"beyond bitset", 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buf().Byte(fixture.SubStreamsInfo, fixture.NumUnPackStream).Num(tt.count).
				Byte(fixture.CRC, 0, 0xFF).Byte(fixture.End).Bytes()
			_, _, err := DecodeSubStreamsInfo(b, 0, ci)
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}

	b := buf().Byte(fixture.SubStreamsInfo, fixture.NumUnPackStream).Num(2).Num(math.MaxUint64).
		Byte(fixture.Size).Byte(fixture.End).Bytes()
	_, _, err := DecodeSubStreamsInfo(b, 0, &CodersInfo{NumFolders: 2})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeStreamsInfo(t *testing.T) {
	b := buf().
		Byte(fixture.PackInfo).Num(0).Num(1).Byte(fixture.Size).Num(4).Byte(fixture.End).
		Byte(fixture.UnPackInfo, fixture.Folder).Num(1).Byte(0).Num(1).Byte(0x10, 0x00).Num(0).
		Byte(fixture.CodersUnPackSize).Num(4).Byte(fixture.End).
		Byte(fixture.SubStreamsInfo, fixture.CRC, 1).U32(77).Byte(fixture.End).
		Byte(fixture.End).Bytes()

	si, pos, err := DecodeStreamsInfo(b, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, si.PackInfo)
	require.NotNil(t, si.CodersInfo)
	require.NotNil(t, si.SubStreamsInfo)
	assert.Equal(t, []Digest{{true, 77}}, si.SubStreamsInfo.Digests)
	assert.Equal(t, len(b), pos)
}

func TestDecodeStreamsInfoFolderCount(t *testing.T) {
	b := buf().Byte(fixture.SubStreamsInfo, fixture.NumUnPackStream).Num(2).Byte(fixture.End).
		Byte(fixture.End).Bytes()

	_, _, err := DecodeStreamsInfo(b, 0, nil)
	assert.ErrorIs(t, err, ErrCouldNotDetermineNumFolders)

	for name, body := range map[string][]byte{
		"pack info only": buf().Byte(fixture.PackInfo).Num(0).Num(0).Byte(fixture.End).Byte(fixture.End).Bytes(),
		"empty":          {fixture.End},
	} {
		_, _, err := DecodeStreamsInfo(body, 0, nil)
		assert.ErrorIs(t, err, ErrCouldNotDetermineNumFolders, name)
	}

	si, _, err := DecodeStreamsInfo(b, 0, &CodersInfo{NumFolders: 1})
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, si.SubStreamsInfo.NumUnpackStreams)
}
