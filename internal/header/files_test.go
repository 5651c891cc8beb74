package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javi11/sevenzlist/internal/fixture"
)

func TestDecodeFilesInfo(t *testing.T) {
	b := buf().Byte(fixture.FilesInfo).Num(3).
		Prop(fixture.EmptyStream, buf().Bits([]bool{false, true, true}).Bytes()).
		Prop(fixture.EmptyFile, buf().Bits([]bool{true, false}).Bytes()).
		Prop(fixture.Dummy, make([]byte, 3)).
		Prop(fixture.Name, buf().Byte(0).Name("a.txt").Name("empty").Name("dir").Bytes()).
		Prop(fixture.CTime, buf().Byte(0).Bits([]bool{true, false, true}).Byte(0).U64(11).U64(33).Bytes()).
		Prop(fixture.WinAttributes, buf().Byte(1, 0).U32(0x20).U32(0x20).U32(0x10).Bytes()).
		Byte(fixture.End).Bytes()

	fi, pos, err := DecodeFilesInfo(b, 0)
	require.NoError(t, err)
	assert.Equal(t, len(b), pos)
	assert.Equal(t, 3, fi.NumFiles)
	require.Len(t, fi.Properties, 5)

	assert.Equal(t, EmptyStream{Bits: []bool{false, true, true}}, fi.Properties[0])
	assert.Equal(t, EmptyFile{Bits: []bool{true, false}}, fi.Properties[1])

	p, ok := fi.Property(IDName)
	require.True(t, ok)
	names := p.(Names)
	require.Len(t, names.Entries, 3)
	assert.Equal(t, "a.txt", names.Entries[0].Value)
	assert.Equal(t, "dir", names.Entries[2].Value)

	p, ok = fi.Property(IDCTime)
	require.True(t, ok)
	assert.Equal(t, Times{ID: IDCTime, Entries: []Entry[uint64]{
		{Defined: true, Value: 11}, {}, {Defined: true, Value: 33},
	}}, p)

	p, ok = fi.Property(IDWinAttributes)
	require.True(t, ok)
	assert.Equal(t, uint32(0x10), p.(Attributes).Entries[2].Value)

	_, ok = fi.Property(IDMTime)
	assert.False(t, ok)
}

func TestDecodeFilesInfoAntiAndRaw(t *testing.T) {
	b := buf().Byte(fixture.FilesInfo).Num(3).
		Prop(fixture.EmptyStream, buf().Bits([]bool{false, true, true}).Bytes()).
		Prop(fixture.EmptyFile, buf().Bits([]bool{true, false}).Bytes()).
		Prop(fixture.Anti, buf().Bits([]bool{true, true}).Bytes()).
		Prop(byte(IDComment), []byte("note")).
		Prop(byte(IDStartPos), buf().Byte(1, 0).U64(1).U64(2).U64(3).Bytes()).
		Byte(fixture.End).Bytes()

	fi, pos, err := DecodeFilesInfo(b, 0)
	require.NoError(t, err)
	assert.Equal(t, len(b), pos)

	p, ok := fi.Property(IDAnti)
	require.True(t, ok)
	assert.Equal(t, Anti{Bits: []bool{true, true}}, p)

	p, ok = fi.Property(IDComment)
	require.True(t, ok)
	assert.Equal(t, Raw{ID: IDComment, Data: []byte("note")}, p)

	p, ok = fi.Property(IDStartPos)
	require.True(t, ok)
	assert.Len(t, p.(Raw).Data, 2+3*8)
}

func TestDecodeFilesInfoExternal(t *testing.T) {
	b := buf().Byte(fixture.FilesInfo).Num(2).
		Prop(fixture.Name, buf().Byte(1).Num(4).Bytes()).
		Prop(fixture.MTime, buf().Byte(1, 1).Num(5).Bytes()).
		Byte(fixture.End).Bytes()

	fi, _, err := DecodeFilesInfo(b, 0)
	require.NoError(t, err)
	names := fi.Properties[0].(Names)
	assert.Equal(t, Entry[string]{Defined: true, External: true, DataIndex: 4}, names.Entries[1])
	times := fi.Properties[1].(Times)
	assert.Equal(t, Entry[uint64]{Defined: true, External: true, DataIndex: 5}, times.Entries[0])
}

func TestDecodeFilesInfoErrors(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want error
	}{
		{
			name: "empty file first",
			body: buf().Prop(fixture.EmptyFile, []byte{0x80}).Bytes(),
			want: ErrEmptyFileBeforeEmptyStream,
		},
		{
			name: "anti first",
			body: buf().Prop(fixture.Anti, []byte{0x80}).Bytes(),
			want: ErrAntiBeforeEmptyStream,
		},
		{
			name: "dummy not zero",
			body: buf().Prop(fixture.Dummy, []byte{0, 0, 1}).Bytes(),
			want: ErrDummyNotAllZeroes,
		},
		{
			name: "bad boolean",
			body: buf().Prop(fixture.ATime, []byte{7}).Bytes(),
			want: ErrInvalidBooleanByte,
		},
		{
			name: "unknown id",
			body: []byte{0x30, 0x00},
			want: ErrInvalidPropertyID,
		},
		{
			name: "section id",
			body: buf().Prop(fixture.PackInfo, nil).Bytes(),
			want: ErrInvalidTag,
		},
		{
			name: "property overruns size",
			body: buf().Prop(fixture.Name, buf().Byte(0).Bytes()).Bytes(),
			want: ErrTruncated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buf().Byte(fixture.FilesInfo).Num(1).Byte(tt.body...).Byte(fixture.End).Bytes()
			_, _, err := DecodeFilesInfo(b, 0)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeFilesInfoDummyOffset(t *testing.T) {
	b := buf().Byte(fixture.FilesInfo).Num(1).Prop(fixture.Dummy, []byte{0, 0, 9}).Byte(fixture.End).Bytes()
	_, _, err := DecodeFilesInfo(b, 0)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "files info", pe.Section)
	assert.Equal(t, int64(6), pe.Offset)
}
