// Package minio provides a MinIO/S3-backed implementation of core.FS.
//
// Object stores differ from disk in a few documented ways:
//
//   - Directories are virtual key prefixes. MkdirAll is a no-op and a
//     directory exists while at least one object lives below it.
//   - Remove succeeds on missing objects.
//   - Rename copies then deletes and is not atomic for directories.
//   - Writes are buffered and uploaded on Close or Sync. A single PUT
//     replaces an object atomically.
//   - Objects have no host path, so MinioFS does not implement core.Pather.
package minio
