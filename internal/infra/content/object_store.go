package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
)

const maxDocumentSize = 8 << 20

// ObjectStoreConfig locates the library document in an S3-compatible bucket (R2, MinIO, S3).
type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Key       string
}

// ObjectStore fetches the library document from an S3-compatible bucket.
type ObjectStore struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// NewObjectStore constructs the source; no request is made until Load.
func NewObjectStore(cfg ObjectStoreConfig, logger *slog.Logger) (*ObjectStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store client: %w", err)
	}
	return &ObjectStore{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		logger: logger.With("component", "content.objectstore"),
	}, nil
}

// Load downloads and decodes the document.
func (s *ObjectStore) Load(ctx context.Context) (*cycle.Library, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get library object: %w", err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat library object %s/%s: %w", s.bucket, s.key, err)
	}
	data, err := io.ReadAll(io.LimitReader(obj, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read library object: %w", err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("library object exceeds %d bytes", maxDocumentSize)
	}
	s.logger.Info("library object fetched", "bucket", s.bucket, "key", s.key, "etag", info.ETag, "size", info.Size)
	return Decode(data)
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

var _ cycle.ContentSource = (*ObjectStore)(nil)
