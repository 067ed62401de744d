// Package core defines the file abstraction the fsutil helpers operate on.
//
// A provider implements FS, which composes a handful of small interfaces:
//
//   - ReadFS: Open, Stat, ReadDir, ReadFile, Exists
//   - WriteFS: Create, OpenFile, WriteFile, MkdirAll
//   - ManageFS: Remove, RemoveAll, Rename
//
// Optional capabilities are discovered with type assertions:
//
//   - Pather: maps an entry to its path on the host filesystem
//   - Syncer: commits an open file's contents to stable storage
//
// Only providers backed by a real disk implement Pather. In-memory and
// object-store providers leave it out, and handles on them report no path:
//
//	if p, ok := filesystem.(core.Pather); ok {
//	    if hostPath, ok := p.Path("config.json"); ok {
//	        fmt.Println(hostPath)
//	    }
//	}
//
// FS embeds fs.FS, so every provider also works with io/fs helpers such as
// fs.WalkDir and fs.Glob.
package core
