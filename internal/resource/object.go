package resource

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the remote tier consumed by the Resolver. A missing
// key is reported as ErrKeyNotFound; every other failure is a storage
// fault. Implementations must be safe for concurrent use.
type ObjectStore interface {
	// Get fetches the object at key.
	Get(ctx context.Context, key string) ([]byte, error)
	// ListDirs lists the immediate directory names under prefix.
	ListDirs(ctx context.Context, prefix string) ([]string, error)
}

// S3Config holds the settings for an S3-compatible object store.
type S3Config struct {
	// Endpoint is the store's URL or host, e.g.
	// "https://fly.storage.tigris.dev".
	Endpoint string
	// Bucket is the bucket the datasets live in.
	Bucket string
	// AccessKey and SecretKey are the static credentials.
	AccessKey string
	SecretKey string
	// Region is passed through to the client ("auto" works for
	// Tigris-style endpoints).
	Region string
}

// S3Store serves objects from an S3-compatible bucket.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store creates a store for the configured endpoint and bucket.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("object store endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("object store bucket is required")
	}

	host, secure, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Get fetches the object at key from the bucket.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer obj.Close()

	// GetObject is lazy; missing keys surface on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return data, nil
}

// ListDirs lists the immediate directory names under prefix using a
// non-recursive (delimited) bucket listing.
func (s *S3Store) ListDirs(ctx context.Context, prefix string) ([]string, error) {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var dirs []string
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: false}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects under %s: %w", prefix, obj.Err)
		}
		// Only common prefixes (directory markers) name a source; the
		// prefix itself can come back as a zero-byte marker object.
		if !strings.HasSuffix(obj.Key, "/") || obj.Key == prefix {
			continue
		}
		name := path.Base(strings.TrimSuffix(obj.Key, "/"))
		if name == "" || name == "." {
			continue
		}
		dirs = append(dirs, name)
	}
	return dirs, nil
}

// parseEndpoint splits an endpoint URL into the host form the client
// expects, deriving TLS from the scheme. Bare hosts default to TLS.
func parseEndpoint(endpoint string) (host string, secure bool, err error) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, true, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid object store endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid object store endpoint %q: no host", endpoint)
	}
	return u.Host, u.Scheme != "http", nil
}
