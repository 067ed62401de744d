package core_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsutil/core"
)

// TestReexportedErrorsMatchStdlib verifies re-exported errors match io/fs.
func TestReexportedErrorsMatchStdlib(t *testing.T) {
	tests := []struct {
		name      string
		coreErr   error
		stdlibErr error
	}{
		{"ErrNotExist", core.ErrNotExist, fs.ErrNotExist},
		{"ErrExist", core.ErrExist, fs.ErrExist},
		{"ErrPermission", core.ErrPermission, fs.ErrPermission},
		{"ErrClosed", core.ErrClosed, fs.ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.coreErr, tt.stdlibErr) {
				t.Errorf("%s does not match stdlib: core=%v, stdlib=%v", tt.name, tt.coreErr, tt.stdlibErr)
			}
		})
	}
}

// TestErrUnsupportedWrapping verifies ErrUnsupported survives PathError wrapping.
func TestErrUnsupportedWrapping(t *testing.T) {
	err := &fs.PathError{Op: "open", Path: "a.txt", Err: fmt.Errorf("%w: O_RDWR", core.ErrUnsupported)}
	if !errors.Is(err, core.ErrUnsupported) {
		t.Errorf("errors.Is(%v, ErrUnsupported) = false, want true", err)
	}
	if errors.Is(err, core.ErrNotExist) {
		t.Errorf("errors.Is(%v, ErrNotExist) = true, want false", err)
	}
}
