package fsutil

import (
	"context"
	"io/fs"
	"os"
	"path"

	"github.com/google/uuid"
	platformerrors "github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
)

// ReplaceOption configures ReplaceContents.
type ReplaceOption func(*replaceConfig)

type replaceConfig struct {
	perm      fs.FileMode
	sync      bool
	mkParents bool
}

// WithPerm sets the mode of the replacement file. The default is 0644.
func WithPerm(perm fs.FileMode) ReplaceOption {
	return func(c *replaceConfig) {
		c.perm = perm
	}
}

// WithoutSync skips syncing the temporary file before it is renamed.
func WithoutSync() ReplaceOption {
	return func(c *replaceConfig) {
		c.sync = false
	}
}

// WithMkdirParents creates the target's parent directory if it is missing.
func WithMkdirParents() ReplaceOption {
	return func(c *replaceConfig) {
		c.mkParents = true
	}
}

// ReplaceContents replaces the contents of h with data.
//
// On local and memory filesystems the data is written to a hidden sibling
// temp file, synced, and renamed over the target, so readers see either the
// old or the new contents. Remote filesystems replace objects atomically on
// upload and are written directly.
func ReplaceContents(ctx context.Context, h *Handle, data []byte, opts ...ReplaceOption) error {
	cfg := replaceConfig{perm: 0o644, sync: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if h.name == "." {
		return platformerrors.WithContext(
			platformerrors.New(platformerrors.CodeInvalidInput, "cannot replace filesystem root"),
			"fs", h.fsys.Type().String(),
		)
	}
	if err := ctx.Err(); err != nil {
		return wrapf(err, h, "replace %s", h.name)
	}

	fsys := h.fsys
	if cfg.mkParents {
		if err := fsys.MkdirAll(path.Dir(h.name), 0o755); err != nil {
			return wrapf(err, h, "create parent of %s", h.name)
		}
	}

	if fsys.Type() == core.FSTypeRemote {
		if err := fsys.WriteFile(h.name, data, cfg.perm); err != nil {
			return wrapf(err, h, "write %s", h.name)
		}
		log().Info("replaced contents", "handle", h.String(), "bytes", len(data))
		return nil
	}

	tmp := path.Join(path.Dir(h.name), "."+path.Base(h.name)+".tmp-"+uuid.NewString())
	if err := writeTemp(ctx, fsys, tmp, data, cfg); err != nil {
		removeTemp(fsys, tmp)
		return wrapf(err, h, "write temp file for %s", h.name)
	}

	if err := ctx.Err(); err != nil {
		removeTemp(fsys, tmp)
		return wrapf(err, h, "replace %s", h.name)
	}
	if err := fsys.Rename(tmp, h.name); err != nil {
		removeTemp(fsys, tmp)
		return wrapf(err, h, "rename temp file over %s", h.name)
	}

	log().Info("replaced contents", "handle", h.String(), "bytes", len(data), "synced", cfg.sync)
	return nil
}

func writeTemp(ctx context.Context, fsys core.FS, name string, data []byte, cfg replaceConfig) error {
	f, err := fsys.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, cfg.perm)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := ctx.Err(); err != nil {
		_ = f.Close()
		return err
	}
	if s, ok := f.(core.Syncer); ok && cfg.sync {
		if err := s.Sync(); err != nil {
			_ = f.Close()
			return err
		}
	}
	return f.Close()
}

func removeTemp(fsys core.FS, name string) {
	if err := fsys.Remove(name); err != nil && !os.IsNotExist(err) {
		log().Warn("failed to remove temp file", "name", name, "error", err)
	}
}
