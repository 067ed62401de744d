// Package afero provides spf13/afero-backed implementations of core.FS.
//
// OsFS confines an afero.OsFs to a base directory with afero.BasePathFs and
// implements core.Pather through BasePathFs.RealPath. MemMapFS wraps
// afero.MemMapFs and has no host paths.
package afero

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jmgilman/go/fsutil/core"
	"github.com/spf13/afero"
)

// OsFS is a disk-backed filesystem rooted at a base directory.
type OsFS struct {
	*base
	bp   *afero.BasePathFs
	root string
}

// MemMapFS is an in-memory filesystem.
type MemMapFS struct {
	*base
}

// NewOS returns a filesystem confined to root. Relative roots are resolved
// against the working directory.
func NewOS(root string) *OsFS {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	bp := afero.NewBasePathFs(afero.NewOsFs(), root).(*afero.BasePathFs)
	return &OsFS{base: &base{afs: bp}, bp: bp, root: root}
}

// NewMemMap returns an empty in-memory filesystem.
func NewMemMap() *MemMapFS {
	return &MemMapFS{base: &base{afs: afero.NewMemMapFs()}}
}

// Wrap adapts an arbitrary afero.Fs. The result reports FSTypeUnknown and
// has no host paths, since nothing is known about how afs stores data.
func Wrap(afs afero.Fs) core.FS {
	return &wrapped{base: &base{afs: afs}}
}

// Root returns the base directory.
func (o *OsFS) Root() string {
	return o.root
}

// Path returns the host path for name, or false if name escapes the root.
func (o *OsFS) Path(name string) (string, bool) {
	p, err := o.bp.RealPath(filepath.FromSlash(clean(name)))
	if err != nil {
		return "", false
	}
	return p, true
}

// Type returns FSTypeLocal.
func (o *OsFS) Type() core.FSType { return core.FSTypeLocal }

// Type returns FSTypeMemory.
func (m *MemMapFS) Type() core.FSType { return core.FSTypeMemory }

type wrapped struct {
	*base
}

func (w *wrapped) Type() core.FSType { return core.FSTypeUnknown }

// Unwrap returns the underlying afero.Fs.
func (b *base) Unwrap() afero.Fs {
	return b.afs
}

type base struct {
	afs afero.Fs
}

func clean(name string) string {
	return filepath.ToSlash(filepath.Clean(name))
}

type dirEntry struct {
	info fs.FileInfo
}

func (d dirEntry) Name() string               { return d.info.Name() }
func (d dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

func (b *base) Open(name string) (fs.File, error) {
	f, err := b.afs.Open(clean(name))
	if err != nil {
		return nil, err
	}
	return &File{File: f, name: clean(name)}, nil
}

func (b *base) Stat(name string) (fs.FileInfo, error) {
	return b.afs.Stat(clean(name))
}

func (b *base) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(b.afs, clean(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = dirEntry{info: info}
	}
	return entries, nil
}

func (b *base) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(b.afs, clean(name))
}

func (b *base) Exists(name string) (bool, error) {
	_, err := b.afs.Stat(clean(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (b *base) Create(name string) (core.File, error) {
	return b.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

func (b *base) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	f, err := b.afs.OpenFile(clean(name), flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{File: f, name: clean(name)}, nil
}

func (b *base) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(b.afs, clean(name), data, perm)
}

func (b *base) MkdirAll(path string, perm fs.FileMode) error {
	return b.afs.MkdirAll(clean(path), perm)
}

func (b *base) Remove(name string) error {
	return b.afs.Remove(clean(name))
}

func (b *base) RemoveAll(path string) error {
	return b.afs.RemoveAll(clean(path))
}

func (b *base) Rename(oldpath, newpath string) error {
	return b.afs.Rename(clean(oldpath), clean(newpath))
}

// File adapts afero.File to core.File. Name reports the name as opened
// rather than the backend's internal (possibly host-absolute) name.
type File struct {
	afero.File
	name string
}

// Name returns the name passed to Open or Create.
func (f *File) Name() string {
	return f.name
}

// Compile-time interface checks.
var (
	_ core.FS     = (*OsFS)(nil)
	_ core.FS     = (*MemMapFS)(nil)
	_ core.Pather = (*OsFS)(nil)
	_ core.File   = (*File)(nil)
	_ core.Syncer = (*File)(nil)
)
