package fsutil

import (
	"fmt"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/jmgilman/go/fsutil/core"
)

// liveCachedPaths counts host paths held by handles that are still alive.
var liveCachedPaths atomic.Int64

// LiveCachedPaths returns the number of cached host paths attached to live
// handles. It drops back once the handles holding them are released.
func LiveCachedPaths() int64 {
	return liveCachedPaths.Load()
}

// Handle is a reference-counted reference to an entry in a core.FS.
//
// Handles compare by identity. The zero value is not usable; create
// handles with New or derive them from an existing handle.
type Handle struct {
	fsys core.FS
	name string
	refs atomic.Int32

	mu       sync.Mutex
	path     string
	released bool
}

// New returns a handle on name within fsys holding one reference.
//
// The name is cleaned to a slash-separated path relative to the filesystem
// root. Leading slashes are dropped and ".." never climbs above the root.
func New(fsys core.FS, name string) *Handle {
	h := &Handle{fsys: fsys, name: cleanName(name)}
	h.refs.Store(1)
	return h
}

func cleanName(name string) string {
	cleaned := path.Clean("/" + filepath.ToSlash(name))
	if cleaned == "/" {
		return "."
	}
	return cleaned[1:]
}

// FS returns the filesystem the handle belongs to.
func (h *Handle) FS() core.FS {
	return h.fsys
}

// Name returns the cleaned entry name relative to the filesystem root.
func (h *Handle) Name() string {
	return h.name
}

// String returns the filesystem type and entry name, e.g. "local:etc/hosts".
func (h *Handle) String() string {
	return h.fsys.Type().String() + ":" + h.name
}

// Path returns the entry's host path.
//
// The path is computed through the filesystem's core.Pather capability on
// the first call that yields one and cached for the rest of the handle's
// life; every later call returns the identical string. When the provider
// has no path for the entry nothing is cached and the next call asks again.
// A released handle always reports false.
//
// Path is safe for concurrent use; concurrent first calls compute once.
func (h *Handle) Path() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return "", false
	}
	if h.path != "" {
		return h.path, true
	}

	p, ok := h.fsys.(core.Pather)
	if !ok {
		return "", false
	}
	hostPath, ok := p.Path(h.name)
	if !ok || hostPath == "" {
		log().Debug("no host path", "handle", h.String())
		return "", false
	}

	h.path = hostPath
	liveCachedPaths.Add(1)
	log().Debug("cached host path", "handle", h.String(), "path", hostPath)
	return hostPath, true
}

// Ref adds a reference and returns h.
func (h *Handle) Ref() *Handle {
	if h.refs.Add(1) <= 1 {
		panic("fsutil: Ref of released handle " + h.String())
	}
	return h
}

// Unref drops a reference. Dropping the last one releases the cached path.
func (h *Handle) Unref() {
	n := h.refs.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic("fsutil: Unref of released handle " + h.String())
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.path != "" {
		h.path = ""
		liveCachedPaths.Add(-1)
	}
	h.released = true
}

// Child returns a new handle for name below h.
func (h *Handle) Child(name string) *Handle {
	return New(h.fsys, path.Join(h.name, filepath.ToSlash(name)))
}

// Parent returns a new handle for h's directory, or nil for the root.
func (h *Handle) Parent() *Handle {
	if h.name == "." {
		return nil
	}
	return New(h.fsys, path.Dir(h.name))
}

// Resolve returns a new handle for rel interpreted relative to h. An
// absolute rel is taken relative to the filesystem root instead.
func (h *Handle) Resolve(rel string) *Handle {
	rel = filepath.ToSlash(rel)
	if path.IsAbs(rel) {
		return New(h.fsys, rel)
	}
	return h.Child(rel)
}

// Resolvef is Resolve with a fmt.Sprintf-formatted path.
//
//	objects := repo.Resolvef("objects/%s/%s", hash[:2], hash[2:])
func (h *Handle) Resolvef(format string, args ...any) *Handle {
	return h.Resolve(fmt.Sprintf(format, args...))
}
