package fsutil

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/fsutil/billy"
	"github.com/jmgilman/go/fsutil/core"
)

// countingFS is an in-memory filesystem that hands out synthetic host paths
// and records how often it was asked.
type countingFS struct {
	*billy.MemoryFS

	mu     sync.Mutex
	calls  map[string]int
	absent atomic.Bool
	gate   chan struct{}
}

func newCountingFS() *countingFS {
	return &countingFS{
		MemoryFS: billy.NewMemory(),
		calls:    make(map[string]int),
	}
}

func (c *countingFS) Path(name string) (string, bool) {
	if c.gate != nil {
		<-c.gate
	}

	c.mu.Lock()
	c.calls[name]++
	c.mu.Unlock()

	if c.absent.Load() {
		return "", false
	}
	// Build a fresh string on each call so identity checks are meaningful.
	return filepath.Join("/host", name), true
}

func (c *countingFS) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[name]
}

var _ core.Pather = (*countingFS)(nil)

func TestNew_CleansName(t *testing.T) {
	fsys := billy.NewMemory()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"relative", "a/b", "a/b"},
		{"leading slash", "/a/b", "a/b"},
		{"dot segments", "a/./b/../c", "a/c"},
		{"escapes root", "../../etc", "etc"},
		{"empty", "", "."},
		{"root", "/", "."},
		{"trailing slash", "dir/", "dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(fsys, tt.in)
			defer h.Unref()
			assert.Equal(t, tt.want, h.Name())
		})
	}
}

func TestHandle_Path(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		fsys := newCountingFS()
		h := New(fsys, "var/lib/data")
		defer h.Unref()

		first, ok := h.Path()
		require.True(t, ok)
		assert.Equal(t, "/host/var/lib/data", first)

		for range 10 {
			again, ok := h.Path()
			require.True(t, ok)
			assert.Equal(t, unsafe.StringData(first), unsafe.StringData(again), "Path() returned a different string")
		}
	})

	t.Run("single computation", func(t *testing.T) {
		fsys := newCountingFS()
		h := New(fsys, "file")
		defer h.Unref()

		for range 5 {
			_, ok := h.Path()
			require.True(t, ok)
		}
		assert.Equal(t, 1, fsys.count("file"))
	})

	t.Run("absence retries", func(t *testing.T) {
		fsys := newCountingFS()
		fsys.absent.Store(true)
		h := New(fsys, "file")
		defer h.Unref()

		for range 3 {
			p, ok := h.Path()
			assert.False(t, ok)
			assert.Empty(t, p)
		}
		assert.Equal(t, 3, fsys.count("file"))

		// Once the provider produces a path it is kept.
		fsys.absent.Store(false)
		p, ok := h.Path()
		require.True(t, ok)
		assert.Equal(t, "/host/file", p)

		fsys.absent.Store(true)
		again, ok := h.Path()
		require.True(t, ok)
		assert.Equal(t, p, again)
		assert.Equal(t, 4, fsys.count("file"))
	})

	t.Run("provider without paths", func(t *testing.T) {
		h := New(billy.NewMemory(), "file")
		defer h.Unref()

		_, ok := h.Path()
		assert.False(t, ok)
	})

	t.Run("local provider", func(t *testing.T) {
		root := t.TempDir()
		h := New(billy.NewLocal(billy.WithRoot(root)), "sub/file.txt")
		defer h.Unref()

		p, ok := h.Path()
		require.True(t, ok)
		assert.Equal(t, filepath.Join(root, "sub", "file.txt"), p)
	})
}

func TestHandle_Path_Concurrent(t *testing.T) {
	const workers = 64

	fsys := newCountingFS()
	fsys.gate = make(chan struct{})
	h := New(fsys, "shared")
	defer h.Unref()

	results := make([]string, workers)
	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			p, ok := h.Path()
			if !ok {
				return assert.AnError
			}
			results[i] = p
			return nil
		})
	}
	close(fsys.gate)
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, fsys.count("shared"))
	for _, p := range results {
		assert.Equal(t, unsafe.StringData(results[0]), unsafe.StringData(p))
	}
}

func TestHandle_Path_Independent(t *testing.T) {
	fsys := newCountingFS()
	a := New(fsys, "a")
	defer a.Unref()
	b := New(fsys, "b")
	defer b.Unref()
	a2 := New(fsys, "a")
	defer a2.Unref()

	pa, ok := a.Path()
	require.True(t, ok)
	pb, ok := b.Path()
	require.True(t, ok)

	assert.Equal(t, "/host/a", pa)
	assert.Equal(t, "/host/b", pb)

	// A second handle on the same name keeps its own cache.
	pa2, ok := a2.Path()
	require.True(t, ok)
	assert.Equal(t, pa, pa2)
	assert.Equal(t, 2, fsys.count("a"))
	assert.Equal(t, 1, fsys.count("b"))
}

func TestHandle_Lifecycle(t *testing.T) {
	baseline := LiveCachedPaths()
	fsys := newCountingFS()

	handles := make([]*Handle, 8)
	for i := range handles {
		handles[i] = New(fsys, "f")
		_, ok := handles[i].Path()
		require.True(t, ok)
	}
	// Handles that never cached a path do not count.
	bare := New(fsys, "bare")

	assert.Equal(t, baseline+8, LiveCachedPaths())

	handles[0].Ref()
	handles[0].Unref()
	assert.Equal(t, baseline+8, LiveCachedPaths(), "dropping a non-final reference released the path")

	for _, h := range handles {
		h.Unref()
	}
	bare.Unref()
	assert.Equal(t, baseline, LiveCachedPaths())
}

func TestHandle_Released(t *testing.T) {
	fsys := newCountingFS()
	h := New(fsys, "gone")
	_, ok := h.Path()
	require.True(t, ok)

	h.Unref()

	p, ok := h.Path()
	assert.False(t, ok)
	assert.Empty(t, p)
	assert.Equal(t, 1, fsys.count("gone"), "released handle recomputed its path")

	assert.Panics(t, func() { h.Unref() })
	assert.Panics(t, func() { h.Ref() })
}

func TestHandle_Resolve(t *testing.T) {
	fsys := billy.NewMemory()
	dir := New(fsys, "repo/objects")
	defer dir.Unref()

	tests := []struct {
		name string
		got  *Handle
		want string
	}{
		{"child", dir.Child("ab"), "repo/objects/ab"},
		{"relative", dir.Resolve("../refs/heads"), "repo/refs/heads"},
		{"absolute", dir.Resolve("/config"), "config"},
		{"clamped", dir.Resolve("../../../../x"), "x"},
		{"formatted", dir.Resolvef("%s/%s.commit", "ab", "cdef"), "repo/objects/ab/cdef.commit"},
		{"parent", dir.Parent(), "repo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.got.Unref()
			assert.Equal(t, tt.want, tt.got.Name())
			assert.Same(t, fsys, tt.got.FS())
		})
	}

	root := New(fsys, "")
	defer root.Unref()
	assert.Nil(t, root.Parent())
}

func TestHandle_String(t *testing.T) {
	h := New(billy.NewMemory(), "etc/hosts")
	defer h.Unref()
	assert.Equal(t, "memory:etc/hosts", h.String())
}
