package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"catalogo_backend/platform/config"
)

// Archiver stores a copy of every exported quotation PDF in object
// storage so admins can review what visitors generated.
type Archiver struct {
	client *minio.Client
	bucket string
}

// NewArchiver creates an archiver backed by MinIO.
func NewArchiver(cfg config.ExportArchiveConfig) (*Archiver, error) {
	if !cfg.IsExportArchiveEnabled() {
		return nil, fmt.Errorf("export archive is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create MinIO client: %w", err)
	}

	return &Archiver{client: client, bucket: cfg.GetMinioBucketQuoteExports()}, nil
}

// EnsureBucket creates the archive bucket if it does not exist.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}

	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", a.bucket, err)
		}
	}

	return nil
}

// Archive stores a PDF under a timestamped key so repeated exports of
// the same filename never overwrite each other.
func (a *Archiver) Archive(ctx context.Context, filename string, pdf []byte) (string, error) {
	key := fmt.Sprintf("%s/%s_%s", time.Now().UTC().Format("2006/01/02"), time.Now().UTC().Format("150405.000"), filename)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(pdf), int64(len(pdf)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("archive export %s: %w", key, err)
	}

	return key, nil
}
