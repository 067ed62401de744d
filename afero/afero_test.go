package afero

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fstest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOsFS(t *testing.T) {
	fstest.TestSuite(t, func() core.FS {
		return NewOS(t.TempDir())
	})
}

func TestMemMapFS(t *testing.T) {
	fstest.TestSuite(t, func() core.FS {
		return NewMemMap()
	})
}

func TestOsFS_Path(t *testing.T) {
	root := t.TempDir()
	fsys := NewOS(root)

	p, ok := fsys.Path("a/b.txt")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a", "b.txt"), p)

	p, ok = fsys.Path(".")
	require.True(t, ok)
	assert.Equal(t, root, p)

	require.NoError(t, fsys.WriteFile("host.txt", []byte("visible"), 0o644))
	data, err := os.ReadFile(filepath.Join(root, "host.txt"))
	require.NoError(t, err)
	assert.Equal(t, "visible", string(data))
}

func TestFile_NameIsRelative(t *testing.T) {
	fsys := NewOS(t.TempDir())
	f, err := fsys.Create("dir/../named.txt")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, "named.txt", f.Name())
}

func TestWrap(t *testing.T) {
	fsys := Wrap(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	assert.Equal(t, core.FSTypeUnknown, fsys.Type())

	_, isPather := fsys.(core.Pather)
	assert.False(t, isPather)

	err := fsys.WriteFile("x.txt", []byte("x"), 0o644)
	assert.Error(t, err, "read-only afero.Fs must reject writes")
}

func TestTypes(t *testing.T) {
	assert.Equal(t, core.FSTypeLocal, NewOS(t.TempDir()).Type())
	assert.Equal(t, core.FSTypeMemory, NewMemMap().Type())
	_, isPather := core.FS(NewMemMap()).(core.Pather)
	assert.False(t, isPather)
}
