package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
)

// classify maps provider and context errors to platform error codes.
func classify(err error) platformerrors.ErrorCode {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return platformerrors.CodeNotFound
	case errors.Is(err, fs.ErrExist):
		return platformerrors.CodeAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return platformerrors.CodeForbidden
	case errors.Is(err, core.ErrUnsupported):
		return platformerrors.CodeNotImplemented
	case errors.Is(err, context.DeadlineExceeded):
		return platformerrors.CodeTimeout
	case errors.Is(err, context.Canceled):
		return platformerrors.CodeExecutionFailed
	default:
		return platformerrors.CodeInternal
	}
}

// wrapf classifies err and attaches the handle's identity as context.
// The cause stays reachable through Unwrap.
func wrapf(err error, h *Handle, format string, args ...any) error {
	if err == nil {
		return nil
	}

	ctx := map[string]interface{}{
		"name": h.name,
		"fs":   h.fsys.Type().String(),
	}
	if p, ok := h.Path(); ok {
		ctx["path"] = p
	}
	return platformerrors.WrapWithContext(err, classify(err), fmt.Sprintf(format, args...), ctx)
}
