package sevenzlist

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FileSystem abstracts the operations needed to discover and read volumes.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Open(path string) (fs.File, error)
}

type osFS struct{}

func (osFS) Stat(p string) (fs.FileInfo, error) { return os.Stat(p) }
func (osFS) Open(p string) (fs.File, error)     { return os.Open(p) }

var defaultFS osFS

// ioFS serves volumes from an fs.FS such as an embed.FS or fstest.MapFS.
type ioFS struct{ fsys fs.FS }

// FromFS adapts fsys to FileSystem. Paths are converted to slash form and
// cleaned, since fs.FS rejects OS separators and leading "./".
func FromFS(fsys fs.FS) FileSystem { return ioFS{fsys: fsys} }

func (f ioFS) name(p string) string { return path.Clean(filepath.ToSlash(p)) }

func (f ioFS) Stat(p string) (fs.FileInfo, error) { return fs.Stat(f.fsys, f.name(p)) }
func (f ioFS) Open(p string) (fs.File, error)     { return f.fsys.Open(f.name(p)) }
