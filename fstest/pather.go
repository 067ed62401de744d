package fstest

import (
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/fsutil/core"
)

// TestPatherWithConfig checks the optional core.Pather capability.
//
// Providers without Pather pass trivially. Providers with it must return
// absolute, stable paths, and a path for a written file must name the same
// file the provider reads back.
func TestPatherWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	p, ok := filesystem.(core.Pather)
	if !ok {
		t.Skip("provider does not implement core.Pather")
	}

	if err := filesystem.WriteFile("pathed.txt", []byte("host"), 0o644); err != nil {
		t.Fatalf("WriteFile: setup failed: %v", err)
	}

	config.subtests(t, "Pather", []subtest{
		{"Absolute", func(t *testing.T) {
			got, ok := p.Path("pathed.txt")
			if !ok {
				t.Fatalf("Path(pathed.txt): got no path, want one")
			}
			if !filepath.IsAbs(got) {
				t.Errorf("Path(pathed.txt) = %q, want absolute path", got)
			}
			if filepath.Base(got) != "pathed.txt" {
				t.Errorf("Path(pathed.txt) = %q, want basename pathed.txt", got)
			}
		}},
		{"Stable", func(t *testing.T) {
			first, _ := p.Path("dir/../pathed.txt")
			second, _ := p.Path("pathed.txt")
			if first != second {
				t.Errorf("Path is not stable across equivalent names: %q != %q", first, second)
			}
		}},
		{"Root", func(t *testing.T) {
			root, ok := p.Path(".")
			if !ok {
				t.Fatalf("Path(.): got no path, want filesystem root")
			}
			file, _ := p.Path("pathed.txt")
			if filepath.Dir(file) != root {
				t.Errorf("Path(pathed.txt) = %q, want child of root %q", file, root)
			}
		}},
	})
}
