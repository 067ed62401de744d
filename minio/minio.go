package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"
)

// MinioFS implements core.FS on a MinIO/S3 bucket.
//
//nolint:revive // matches LocalFS, MemoryFS
type MinioFS struct {
	client            *minio.Client
	bucket            string
	prefix            string
	renameConcurrency int
}

// NewMinIO creates a bucket-backed filesystem. It does not contact the
// server; use EnsureBucket to verify connectivity.
func NewMinIO(cfg Config) (*MinioFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to create minio client")
		}
	}

	concurrency := cfg.MaxRenameConcurrency
	if concurrency == 0 {
		concurrency = defaultRenameConcurrency
	}

	return &MinioFS{
		client:            client,
		bucket:            cfg.Bucket,
		prefix:            normalizePrefix(cfg.Prefix),
		renameConcurrency: concurrency,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (m *MinioFS) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return platformerrors.WrapWithContext(err, platformerrors.CodeNetwork, "failed to check bucket",
			map[string]interface{}{"bucket": m.bucket})
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return platformerrors.WrapWithContext(err, platformerrors.CodeExecutionFailed, "failed to create bucket",
			map[string]interface{}{"bucket": m.bucket})
	}
	return nil
}

// Bucket returns the bucket name.
func (m *MinioFS) Bucket() string { return m.bucket }

// Prefix returns the normalized key prefix.
func (m *MinioFS) Prefix() string { return m.prefix }

// Type returns FSTypeRemote.
func (m *MinioFS) Type() core.FSType { return core.FSTypeRemote }

func (m *MinioFS) key(name string) string {
	return joinKey(m.prefix, name)
}

// Open opens the named object for reading.
func (m *MinioFS) Open(name string) (fs.File, error) {
	return m.openRead(name)
}

func (m *MinioFS) openRead(name string) (*File, error) {
	data, err := m.ReadFile(name)
	if err != nil {
		return nil, pathError("open", name, errors.Unwrap(err))
	}
	info, err := m.Stat(name)
	if err != nil {
		return nil, err
	}
	return &File{
		fs:     m,
		name:   name,
		reader: bytes.NewReader(data),
		info:   info.(*fileInfo),
	}, nil
}

// Stat returns object metadata. A name with no object but at least one
// object below it is reported as a directory.
func (m *MinioFS) Stat(name string) (fs.FileInfo, error) {
	ctx := context.Background()
	key := m.key(name)
	base := path.Base(normalize(name))

	if key != m.prefix {
		obj, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
		if err == nil {
			return &fileInfo{name: base, size: obj.Size, modTime: obj.LastModified}, nil
		}
		if err = translate(err); !errors.Is(err, fs.ErrNotExist) {
			return nil, pathError("stat", name, err)
		}
	}

	found, err := m.hasChildren(ctx, key)
	if err != nil {
		return nil, pathError("stat", name, err)
	}
	if !found && key != m.prefix {
		return nil, pathError("stat", name, fs.ErrNotExist)
	}
	return &fileInfo{name: base, dir: true}, nil
}

func (m *MinioFS) hasChildren(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:  dirKey(key),
		MaxKeys: 1,
	}) {
		if obj.Err != nil {
			return false, translate(obj.Err)
		}
		return true, nil
	}
	return false, nil
}

// ReadDir lists the objects and common prefixes directly below name,
// sorted by name.
func (m *MinioFS) ReadDir(name string) ([]fs.DirEntry, error) {
	prefix := dirKey(m.key(name))

	var entries []fs.DirEntry
	for obj := range m.client.ListObjects(context.Background(), m.bucket, minio.ListObjectsOptions{
		Prefix: prefix,
	}) {
		if obj.Err != nil {
			return nil, pathError("readdir", name, translate(obj.Err))
		}
		rel := strings.TrimPrefix(obj.Key, prefix)
		isDir := strings.HasSuffix(rel, "/")
		rel = strings.TrimSuffix(rel, "/")
		if rel == "" {
			continue
		}
		entries = append(entries, dirEntry{info: &fileInfo{
			name:    rel,
			size:    obj.Size,
			modTime: obj.LastModified,
			dir:     isDir,
		}})
	}

	if len(entries) == 0 && prefix != dirKey(m.prefix) {
		return nil, pathError("readdir", name, fs.ErrNotExist)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// ReadFile downloads the whole object.
func (m *MinioFS) ReadFile(name string) ([]byte, error) {
	obj, err := m.client.GetObject(context.Background(), m.bucket, m.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, pathError("readfile", name, translate(err))
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, pathError("readfile", name, translate(err))
	}
	return data, nil
}

// Exists reports whether name is an object or a non-empty prefix.
func (m *MinioFS) Exists(name string) (bool, error) {
	_, err := m.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Create opens name for writing. The object is uploaded on Close.
func (m *MinioFS) Create(name string) (core.File, error) {
	return newWriteFile(m, name), nil
}

// OpenFile supports read-only opens and write-only opens that create or
// truncate. O_RDWR, O_APPEND and O_EXCL return core.ErrUnsupported.
func (m *MinioFS) OpenFile(name string, flag int, _ fs.FileMode) (core.File, error) {
	for _, unsupported := range []struct {
		flag int
		name string
	}{
		{os.O_RDWR, "O_RDWR"},
		{os.O_APPEND, "O_APPEND"},
		{os.O_EXCL, "O_EXCL"},
	} {
		if flag&unsupported.flag != 0 {
			return nil, pathError("open", name, fmt.Errorf("%w: %s", core.ErrUnsupported, unsupported.name))
		}
	}

	if flag&(os.O_WRONLY|os.O_CREATE|os.O_TRUNC) != 0 {
		return newWriteFile(m, name), nil
	}
	return m.openRead(name)
}

// WriteFile uploads data as a single object.
func (m *MinioFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	return pathError("writefile", name, m.put(context.Background(), m.key(name), data))
}

func (m *MinioFS) put(ctx context.Context, key string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return translate(err)
}

// MkdirAll is a no-op; directories are implied by object keys.
func (m *MinioFS) MkdirAll(string, fs.FileMode) error {
	return nil
}

// Remove deletes the named object. Removing a missing object succeeds.
func (m *MinioFS) Remove(name string) error {
	err := m.client.RemoveObject(context.Background(), m.bucket, m.key(name), minio.RemoveObjectOptions{})
	return pathError("remove", name, translate(err))
}

// RemoveAll deletes the named object and every object below it.
func (m *MinioFS) RemoveAll(name string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	key := m.key(name)
	if key != m.prefix {
		if err := m.Remove(name); err != nil {
			return err
		}
	}

	objects := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    dirKey(key),
		Recursive: true,
	})
	for res := range m.client.RemoveObjects(ctx, m.bucket, objects, minio.RemoveObjectsOptions{}) {
		if res.Err != nil {
			return pathError("removeall", name, translate(res.Err))
		}
	}
	return nil
}

// Rename copies oldpath to newpath and deletes the source. Directories are
// copied object by object in parallel; a failure part way through can
// leave objects under both names.
func (m *MinioFS) Rename(oldpath, newpath string) error {
	ctx := context.Background()
	oldKey, newKey := m.key(oldpath), m.key(newpath)

	info, err := m.Stat(oldpath)
	if err != nil {
		return pathError("rename", oldpath, errors.Unwrap(err))
	}
	if !info.IsDir() {
		if err := m.copyObject(ctx, oldKey, newKey); err != nil {
			return pathError("rename", oldpath, err)
		}
		return m.Remove(oldpath)
	}

	copied, err := m.copyPrefix(ctx, dirKey(oldKey), dirKey(newKey))
	if err != nil {
		return pathError("rename", oldpath, err)
	}

	toDelete := make(chan minio.ObjectInfo, len(copied))
	for _, key := range copied {
		toDelete <- minio.ObjectInfo{Key: key}
	}
	close(toDelete)
	for res := range m.client.RemoveObjects(ctx, m.bucket, toDelete, minio.RemoveObjectsOptions{}) {
		if res.Err != nil {
			return pathError("rename", oldpath, translate(res.Err))
		}
	}
	return nil
}

func (m *MinioFS) copyObject(ctx context.Context, src, dst string) error {
	_, err := m.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: m.bucket, Object: dst},
		minio.CopySrcOptions{Bucket: m.bucket, Object: src},
	)
	return translate(err)
}

// copyPrefix copies every object under oldPrefix to newPrefix with at most
// renameConcurrency copies in flight. It returns the source keys copied.
func (m *MinioFS) copyPrefix(ctx context.Context, oldPrefix, newPrefix string) ([]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.renameConcurrency)

	var (
		mu     sync.Mutex
		copied []string
	)
	for obj := range m.client.ListObjects(gctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    oldPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			_ = g.Wait()
			return nil, translate(obj.Err)
		}
		src := obj.Key
		g.Go(func() error {
			dst := newPrefix + strings.TrimPrefix(src, oldPrefix)
			if err := m.copyObject(gctx, src, dst); err != nil {
				return fmt.Errorf("copy %s to %s: %w", src, dst, err)
			}
			mu.Lock()
			copied = append(copied, src)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return copied, nil
}

var _ core.FS = (*MinioFS)(nil)
