package core

import (
	"io"
	"io/fs"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a disk-backed filesystem.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates object or network storage (e.g. S3).
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FS is the filesystem contract every provider implements.
type FS interface {
	fs.FS
	ReadFS
	WriteFS
	ManageFS

	// Type reports what kind of storage backs the filesystem.
	Type() FSType
}

// ReadFS defines read-only filesystem operations.
type ReadFS interface {
	// Open opens the named file for reading.
	Open(name string) (fs.File, error)

	// Stat returns file metadata. Errors are *fs.PathError values.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir returns the entries of the named directory sorted by name.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the whole named file.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named entry exists. A false result with a
	// non-nil error means existence could not be determined.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
//
// Providers document which OpenFile flags they honour; object stores
// reject read-write and append modes with ErrUnsupported.
type WriteFS interface {
	// Create creates or truncates the named file for writing.
	Create(name string) (File, error)

	// OpenFile opens a file with the given flags and permissions.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// WriteFile writes data to the named file, truncating it first.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory along with any missing parents.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines removal and renaming.
type ManageFS interface {
	// Remove removes the named file or empty directory. A missing entry
	// yields an error wrapping ErrNotExist on disk and memory providers;
	// object stores may treat it as success.
	Remove(name string) error

	// RemoveAll removes path and its children. A missing path is not an error.
	RemoveAll(path string) error

	// Rename moves oldpath to newpath, replacing newpath if it is a file.
	// Disk-backed providers rename atomically; object stores copy then delete.
	Rename(oldpath, newpath string) error
}

// File is an open file handle with write support.
type File interface {
	fs.File
	io.Writer

	// Name returns the name passed to Open or Create.
	Name() string
}

// Syncer commits an open file's contents to stable storage.
//
//	if s, ok := file.(core.Syncer); ok {
//	    err := s.Sync()
//	}
type Syncer interface {
	Sync() error
}

// Pather converts an entry name into its path on the host filesystem.
//
// Path returns false when the entry has no representable host path, which
// is a normal outcome rather than an error. Implementations must be safe for
// concurrent use and must not block on anything slower than string work and
// metadata lookups.
type Pather interface {
	Path(name string) (string, bool)
}
