package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jmgilman/go/fsutil/afero"
	"github.com/jmgilman/go/fsutil/billy"
	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/minio"
)

// openBackend builds the filesystem selected by the "backend" setting.
func openBackend(ctx context.Context, v *viper.Viper) (core.FS, error) {
	switch backend := v.GetString("backend"); backend {
	case "local":
		return billy.NewLocal(billy.WithRoot(v.GetString("root"))), nil
	case "afero":
		return afero.NewOS(v.GetString("root")), nil
	case "memory":
		return billy.NewMemory(), nil
	case "minio":
		m, err := minio.NewMinIO(minio.Config{
			Endpoint:  v.GetString("minio-endpoint"),
			Bucket:    v.GetString("minio-bucket"),
			AccessKey: v.GetString("minio-access-key"),
			SecretKey: v.GetString("minio-secret-key"),
			UseSSL:    v.GetBool("minio-ssl"),
			Prefix:    v.GetString("minio-prefix"),
		})
		if err != nil {
			return nil, err
		}
		if v.GetBool("minio-create-bucket") {
			if err := m.EnsureBucket(ctx); err != nil {
				return nil, err
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
