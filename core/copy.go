package core

import (
	"io/fs"
	"path"
)

// CopyFS copies every regular file below srcRoot in src into dst, keeping
// the relative layout and permission bits. Directories are created with
// MkdirAll as needed; a srcRoot of "." or "" copies the whole source.
//
//	err := core.CopyFS(fstest.MapFS{"a/b.txt": {Data: []byte("x")}}, memFS, ".")
func CopyFS(src fs.FS, dst FS, srcRoot string) error {
	if srcRoot == "" {
		srcRoot = "."
	}

	return fs.WalkDir(src, srcRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := p
		if srcRoot != "." {
			rel = p[len(srcRoot):]
			if len(rel) > 0 && rel[0] == '/' {
				rel = rel[1:]
			}
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}

		if dir := path.Dir(rel); dir != "." {
			if err := dst.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		return dst.WriteFile(rel, data, info.Mode().Perm())
	})
}
