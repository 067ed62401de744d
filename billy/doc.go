// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps osfs and is rooted at a host directory ("/" by default). It
// implements core.Pather, so handles opened on it resolve to real host
// paths. MemoryFS wraps memfs and has no host paths.
//
//	local := billy.NewLocal(billy.WithRoot("/var/lib/app"))
//	data, err := local.ReadFile("state.json")
//
//	mem := billy.NewMemory()
//	err := mem.WriteFile("temp.txt", []byte("data"), 0644)
//
// Unwrap exposes the underlying billy.Filesystem for go-git integration.
//
// # Thread Safety
//
// Filesystem values are safe for concurrent use by multiple goroutines.
// File handles are not.
package billy
