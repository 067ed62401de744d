package fsutil

import (
	"context"
	"errors"
	"io/fs"
	"unicode/utf8"

	platformerrors "github.com/jmgilman/go/errors"
)

// LoadContentsAllowNotFound reads the whole file named by h. A missing file
// yields (nil, false, nil); any other failure is returned.
func LoadContentsAllowNotFound(ctx context.Context, h *Handle) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, wrapf(err, h, "load %s", h.name)
	}

	data, err := h.fsys.ReadFile(h.name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapf(err, h, "load %s", h.name)
	}
	return data, true, nil
}

// ReadAllowNoent reads name relative to dir as UTF-8 text. A missing file
// yields ("", false, nil). Content that is not valid UTF-8 is an error with
// code CodeInvalidInput.
func ReadAllowNoent(ctx context.Context, dir *Handle, name string) (string, bool, error) {
	h := dir.Resolve(name)
	defer h.Unref()

	if err := ctx.Err(); err != nil {
		return "", false, wrapf(err, h, "read %s", h.name)
	}
	if _, err := h.fsys.Stat(h.name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, wrapf(err, h, "stat %s", h.name)
	}

	data, found, err := LoadContentsAllowNotFound(ctx, h)
	if err != nil || !found {
		return "", false, err
	}
	if !utf8.Valid(data) {
		return "", false, platformerrors.WithContextMap(
			platformerrors.Newf(platformerrors.CodeInvalidInput, "%s: invalid UTF-8", h.name),
			map[string]interface{}{"name": h.name, "fs": h.fsys.Type().String()},
		)
	}
	return string(data), true, nil
}
