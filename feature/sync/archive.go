package sync

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"hubspot-bridge/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// PayloadArchive is a write-only audit trail of raw webhook bodies.
// Archiving failures are logged, never surfaced; a lost copy must not
// fail the request it documents.
type PayloadArchive struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewPayloadArchive creates a payload archive over object storage.
func NewPayloadArchive(client storage.Client, bucket string, logger *zap.Logger) *PayloadArchive {
	return &PayloadArchive{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// EnsureBucket creates the archive bucket when it does not exist yet.
func (a *PayloadArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	a.logger.Info("Archive bucket created", zap.String("bucket", a.bucket))
	return nil
}

// Store writes one raw request body under a timestamped object name.
func (a *PayloadArchive) Store(ctx context.Context, rayID string, body []byte) {
	objectName := fmt.Sprintf("webhooks/%s-%s.json",
		time.Now().UTC().Format("20060102T150405"), rayID)

	_, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		a.logger.Error("Failed to archive webhook payload",
			zap.String("object", objectName),
			zap.Error(err),
		)
		return
	}

	a.logger.Debug("Webhook payload archived", zap.String("object", objectName))
}
