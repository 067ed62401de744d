package minio

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/jmgilman/go/fsutil/core"
)

// File is an open object. Files opened for reading hold the downloaded
// object; files opened for writing buffer until Sync or Close uploads the
// buffer as one object.
type File struct {
	fs   *MinioFS
	name string

	// read mode
	reader *bytes.Reader
	info   *fileInfo

	// write mode
	buf    *bytes.Buffer
	dirty  bool
	closed bool
}

func newWriteFile(m *MinioFS, name string) *File {
	return &File{fs: m, name: name, buf: new(bytes.Buffer), dirty: true}
}

// Name returns the name the file was opened with.
func (f *File) Name() string { return f.name }

func (f *File) writable() bool { return f.buf != nil }

// Read reads from a file opened for reading.
func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, pathError("read", f.name, fs.ErrClosed)
	}
	if f.writable() {
		return 0, pathError("read", f.name, fs.ErrInvalid)
	}
	return f.reader.Read(p)
}

// Seek repositions a file opened for reading.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, pathError("seek", f.name, fs.ErrClosed)
	}
	if f.writable() {
		return 0, pathError("seek", f.name, core.ErrUnsupported)
	}
	return f.reader.Seek(offset, whence)
}

// Write appends to the upload buffer.
func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, pathError("write", f.name, fs.ErrClosed)
	}
	if !f.writable() {
		return 0, pathError("write", f.name, fs.ErrInvalid)
	}
	f.dirty = true
	return f.buf.Write(p)
}

// Stat describes the file. For writers the size is the bytes buffered so far.
func (f *File) Stat() (fs.FileInfo, error) {
	if !f.writable() {
		return f.info, nil
	}
	return &fileInfo{
		name:    path.Base(normalize(f.name)),
		size:    int64(f.buf.Len()),
		modTime: time.Now(),
	}, nil
}

// Sync uploads the buffered contents, replacing the object.
func (f *File) Sync() error {
	if f.closed {
		return pathError("sync", f.name, fs.ErrClosed)
	}
	return f.flush()
}

func (f *File) flush() error {
	if !f.writable() || !f.dirty {
		return nil
	}
	if err := f.fs.put(context.Background(), f.fs.key(f.name), f.buf.Bytes()); err != nil {
		return pathError("write", f.name, err)
	}
	f.dirty = false
	return nil
}

// Close uploads any unsynced writes and releases the file.
func (f *File) Close() error {
	if f.closed {
		return pathError("close", f.name, fs.ErrClosed)
	}
	f.closed = true
	return f.flush()
}

var (
	_ core.File   = (*File)(nil)
	_ core.Syncer = (*File)(nil)
	_ io.Seeker   = (*File)(nil)
)
