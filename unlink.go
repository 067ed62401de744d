package fsutil

import (
	"context"
	"errors"
	"io/fs"
	"syscall"

	platformerrors "github.com/jmgilman/go/errors"
)

// EnsureUnlinked removes the non-directory entry named by h. A missing
// entry counts as success. Directories are refused with CodeInvalidInput
// and an error wrapping syscall.EISDIR, the way unlink(2) refuses them.
func EnsureUnlinked(ctx context.Context, h *Handle) error {
	if err := ctx.Err(); err != nil {
		return wrapf(err, h, "unlink %s", h.name)
	}

	info, err := h.fsys.Stat(h.name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return wrapf(err, h, "unlink %s", h.name)
	case info.IsDir():
		return platformerrors.WrapWithContext(
			&fs.PathError{Op: "unlink", Path: h.name, Err: syscall.EISDIR},
			platformerrors.CodeInvalidInput,
			"unlink "+h.name+": is a directory",
			map[string]interface{}{"name": h.name, "fs": h.fsys.Type().String()},
		)
	}

	err = h.fsys.Remove(h.name)
	switch {
	case err == nil:
		log().Info("unlinked", "handle", h.String())
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return wrapf(err, h, "unlink %s", h.name)
	}
}
