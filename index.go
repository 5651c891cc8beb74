package sevenzlist

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// maxParallelReads bounds concurrent volume reads.
const maxParallelReads = 4

// ReadVolumes reads and concatenates the given volumes in order.
func ReadVolumes(fs FileSystem, volPaths []string, opts Options) ([]byte, error) {
	sizes := make([]int64, len(volPaths))
	var total int64
	for i, p := range volPaths {
		st, err := fs.Stat(p)
		if err != nil {
			return nil, err
		}
		sizes[i] = st.Size()
		total += st.Size()
	}
	if err := opts.checkSize(total); err != nil {
		return nil, err
	}

	parts := make([][]byte, len(volPaths))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(maxParallelReads)
	for i, p := range volPaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := readVolume(fs, p, sizes[i])
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			parts[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, total)
	for _, b := range parts {
		out = append(out, b...)
	}
	log := opts.logger()
	log.Debug().Int("volumes", len(volPaths)).Int64("bytes", total).Msg("volumes read")
	return out, nil
}

func readVolume(fs FileSystem, path string, size int64) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	b := make([]byte, size)
	if _, err := io.ReadFull(f, b); err != nil {
		return nil, err
	}
	return b, nil
}

// OpenFS discovers the volumes starting at first, reads them and parses the
// result.
func OpenFS(fs FileSystem, first string, opts Options) (*Archive, error) {
	vols, err := DiscoverVolumesFS(fs, first)
	if err != nil {
		return nil, err
	}
	b, err := ReadVolumes(fs, vols, opts)
	if err != nil {
		return nil, err
	}
	a, err := ParseWithOptions(b, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", first, err)
	}
	return a, nil
}

// Open is OpenFS on the OS filesystem with default options.
func Open(first string) (*Archive, error) { return OpenFS(defaultFS, first, Options{}) }
