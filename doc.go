// Package fsutil provides file handles with a memoized host path and a few
// durable I/O helpers on top of core.FS providers.
//
// # Handles
//
// A Handle names one entry inside a core.FS. Its host path is computed the
// first time Path is called and then cached for the handle's lifetime, so
// hot paths can ask for it repeatedly without recomputing or reallocating:
//
//	h := fsutil.New(billy.NewLocal(), "etc/app/config.json")
//	defer h.Unref()
//
//	if p, ok := h.Path(); ok {
//	    fmt.Println(p) // /etc/app/config.json
//	}
//
// Entries on in-memory or object-store providers have no host path; Path
// reports false for them and callers skip path-dependent fast paths.
//
// Handles are reference counted. Ref adds a reference and Unref drops one;
// the cached path is released with the last reference.
//
// # Helpers
//
//   - ReplaceContents: write-to-temp, sync, rename
//   - EnsureUnlinked: remove, treating a missing entry as success
//   - LoadContentsAllowNotFound and ReadAllowNoent: reads where a missing
//     file is a normal outcome
//   - Enumerator: directory iteration yielding child handles
//
// Errors returned by the helpers are github.com/jmgilman/go/errors
// PlatformErrors that still wrap the provider's error, so errors.Is(err,
// fs.ErrNotExist) keeps working.
package fsutil
