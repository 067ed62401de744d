package fsutil

import (
	"context"
	"io/fs"
)

// Enumerator walks the entries of one directory, yielding a child handle
// for each.
//
// The enumerator owns the handles it yields: each is released by the next
// call to Iterate or by Close. Call Ref on a child to keep it.
//
//	e, err := fsutil.NewEnumerator(ctx, dir)
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//	for {
//	    info, child, err := e.Iterate()
//	    if err != nil || info == nil {
//	        return err
//	    }
//	    ...
//	}
type Enumerator struct {
	ctx     context.Context
	dir     *Handle
	entries []fs.DirEntry
	pos     int
	child   *Handle
	closed  bool
}

// NewEnumerator lists dir. Entries are returned in name order.
func NewEnumerator(ctx context.Context, dir *Handle) (*Enumerator, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapf(err, dir, "enumerate %s", dir.name)
	}

	entries, err := dir.fsys.ReadDir(dir.name)
	if err != nil {
		return nil, wrapf(err, dir, "enumerate %s", dir.name)
	}

	log().Debug("enumerating", "handle", dir.String(), "entries", len(entries))
	return &Enumerator{
		ctx:     ctx,
		dir:     dir.Ref(),
		entries: entries,
	}, nil
}

// Container returns the directory being enumerated.
func (e *Enumerator) Container() *Handle {
	return e.dir
}

// Iterate returns the next entry's info and handle. It returns
// (nil, nil, nil) once the directory is exhausted or the enumerator is
// closed. The previous child handle is released first.
func (e *Enumerator) Iterate() (fs.FileInfo, *Handle, error) {
	e.releaseChild()
	if e.closed || e.pos >= len(e.entries) {
		return nil, nil, nil
	}
	if err := e.ctx.Err(); err != nil {
		return nil, nil, wrapf(err, e.dir, "enumerate %s", e.dir.name)
	}

	entry := e.entries[e.pos]
	e.pos++

	child := e.dir.Child(entry.Name())
	info, err := entry.Info()
	if err != nil {
		err = wrapf(err, child, "stat %s", child.name)
		child.Unref()
		return nil, nil, err
	}

	e.child = child
	return info, child, nil
}

// Close releases the last yielded child and the directory handle.
// Close is idempotent.
func (e *Enumerator) Close() error {
	if e.closed {
		return nil
	}
	e.releaseChild()
	e.closed = true
	e.dir.Unref()
	return nil
}

func (e *Enumerator) releaseChild() {
	if e.child != nil {
		e.child.Unref()
		e.child = nil
	}
}
