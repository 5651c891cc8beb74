package sevenzlist

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/btree"

	"github.com/javi11/sevenzlist/codec"
	"github.com/javi11/sevenzlist/internal/header"
)

// DefaultMaxArchiveSize bounds the archives loaded or parsed when
// Options.MaxArchiveSize is zero.
const DefaultMaxArchiveSize = 1 << 30

// Options tunes Parse and the loading helpers.
type Options struct {
	// Logger overrides the package logger.
	Logger *zerolog.Logger
	// Codecs resolves coder ids during extraction. Defaults to codec.Default().
	Codecs *codec.Registry
	// MaxArchiveSize rejects larger inputs. Negative disables the check.
	MaxArchiveSize int64
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return Logger()
}

func (o Options) codecs() *codec.Registry {
	if o.Codecs != nil {
		return o.Codecs
	}
	return codec.Default()
}

func (o Options) checkSize(n int64) error {
	limit := o.MaxArchiveSize
	if limit == 0 {
		limit = DefaultMaxArchiveSize
	}
	if limit > 0 && n > limit {
		return fmt.Errorf("%w: %d > %d bytes", ErrArchiveTooLarge, n, limit)
	}
	return nil
}

// Archive is a parsed archive. It keeps a reference to the archive bytes
// for extraction; they must not be modified.
type Archive struct {
	Version Version
	Files   []File

	raw    []byte
	codecs *codec.Registry
	log    zerolog.Logger
	byName *btree.Map[string, int]
}

// Parse decodes the archive held in b.
func Parse(b []byte) (*Archive, error) { return ParseWithOptions(b, Options{}) }

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(b []byte, opts Options) (*Archive, error) {
	if err := opts.checkSize(int64(len(b))); err != nil {
		return nil, err
	}
	log := opts.logger()
	tree, err := header.Decode(b, log)
	if err != nil {
		return nil, err
	}
	files, err := project(tree.Header)
	if err != nil {
		return nil, fmt.Errorf("7z files: %w", err)
	}

	a := &Archive{
		Version: tree.Signature.Version,
		Files:   files,
		raw:     b,
		codecs:  opts.codecs(),
		log:     log,
		byName:  btree.NewMap[string, int](0),
	}
	for i, f := range files {
		// first entry wins for duplicate names
		if _, ok := a.byName.Get(f.Name); !ok {
			a.byName.Set(f.Name, i)
		}
	}
	log.Debug().Int("files", len(files)).Msg("archive parsed")
	return a, nil
}

// Lookup returns the first file named name.
func (a *Archive) Lookup(name string) (File, bool) {
	i, ok := a.byName.Get(name)
	if !ok {
		return File{}, false
	}
	return a.Files[i], true
}

// Names returns the distinct file names in sorted order.
func (a *Archive) Names() []string {
	names := make([]string, 0, a.byName.Len())
	a.byName.Scan(func(name string, _ int) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Walk calls fn, in name order, for every file whose name starts with
// prefix until fn returns false.
func (a *Archive) Walk(prefix string, fn func(File) bool) {
	a.byName.Ascend(prefix, func(name string, i int) bool {
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		return fn(a.Files[i])
	})
}
