package minio

import (
	platformerrors "github.com/jmgilman/go/errors"
	"github.com/minio/minio-go/v7"
)

const defaultRenameConcurrency = 10

// Config holds MinIO filesystem configuration.
type Config struct {
	// Endpoint is the server address, e.g. "localhost:9000".
	Endpoint string

	// Bucket is the bucket all keys live in.
	Bucket string

	// AccessKey and SecretKey authenticate against the server.
	AccessKey string
	SecretKey string

	// UseSSL enables HTTPS.
	UseSSL bool

	// Region is passed to the client when set.
	Region string

	// Prefix namespaces every key, e.g. "tenants/a".
	Prefix string

	// Client is a pre-configured client. When set, the connection fields
	// above are ignored.
	Client *minio.Client

	// MaxRenameConcurrency limits parallel copies during a directory
	// rename. Zero means 10.
	MaxRenameConcurrency int
}

func (c *Config) validate() error {
	if c.Bucket == "" {
		return platformerrors.New(platformerrors.CodeInvalidConfig, "bucket is required")
	}
	if c.MaxRenameConcurrency < 0 {
		return platformerrors.New(platformerrors.CodeInvalidConfig, "max rename concurrency must not be negative")
	}
	if c.Client != nil {
		return nil
	}

	required := []struct{ field, value string }{
		{"endpoint", c.Endpoint},
		{"access key", c.AccessKey},
		{"secret key", c.SecretKey},
	}
	for _, r := range required {
		if r.value == "" {
			return platformerrors.Newf(platformerrors.CodeInvalidConfig, "%s is required when no client is provided", r.field)
		}
	}
	return nil
}
