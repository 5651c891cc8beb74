// Package codec maps 7z coder ids to stream decoders.
package codec

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnsupportedCodec matches every *UnsupportedCodecError.
var ErrUnsupportedCodec = errors.New("unsupported codec")

// UnsupportedCodecError reports a coder id with no registered decoder.
type UnsupportedCodecError struct {
	ID []byte
}

func (e *UnsupportedCodecError) Error() string {
	return fmt.Sprintf("unsupported codec % x", e.ID)
}

func (e *UnsupportedCodecError) Is(target error) bool { return target == ErrUnsupportedCodec }

// Decoder turns a packed stream into size bytes of unpacked data. attrs
// are the coder attributes stored in the folder.
type Decoder interface {
	Decode(packed []byte, size uint64, attrs []byte) ([]byte, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(packed []byte, size uint64, attrs []byte) ([]byte, error)

func (f DecoderFunc) Decode(packed []byte, size uint64, attrs []byte) ([]byte, error) {
	return f(packed, size, attrs)
}

// Known coder ids.
var (
	IDCopy  = []byte{0x00}
	IDLZMA2 = []byte{0x21}
)

// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register(IDCopy, DecoderFunc(decodeCopy))
	r.Register(IDLZMA2, DecoderFunc(decodeLZMA2))
	return r
}()

// Default returns the shared registry holding the Copy and LZMA2 decoders.
func Default() *Registry { return defaultRegistry }

// Register installs d for id, replacing any previous decoder.
func (r *Registry) Register(id []byte, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[string(id)] = d
}

// Lookup returns the decoder for id.
func (r *Registry) Lookup(id []byte) (Decoder, error) {
	r.mu.RLock()
	d, ok := r.decoders[string(id)]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedCodecError{ID: append([]byte(nil), id...)}
	}
	return d, nil
}

// Decode looks up id and decodes packed with it.
func (r *Registry) Decode(id []byte, packed []byte, size uint64, attrs []byte) ([]byte, error) {
	d, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	out, err := d.Decode(packed, size, attrs)
	if err != nil {
		return nil, fmt.Errorf("codec % x: %w", id, err)
	}
	return out, nil
}
