// Package gcsuploader archives receipt photos in a GCS bucket so the
// original image survives after Telegram's file links expire.
package gcsuploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Uploader stores and fetches receipt photos. Application Default
// Credentials are assumed.
type Uploader struct {
	bucket string
}

// New creates an uploader for the given bucket.
func New(bucket string) *Uploader {
	return &Uploader{bucket: bucket}
}

// UploadReceipt stores image bytes under a date-partitioned object name
// and returns the gs:// URI of the stored object.
func (u *Uploader) UploadReceipt(ctx context.Context, image []byte, contentType string, now time.Time) (string, error) {
	if u.bucket == "" {
		return "", fmt.Errorf("gcsuploader: no bucket configured")
	}

	objectName := fmt.Sprintf("receipts/%s/%s%s",
		now.Format("2006/01/02"), uuid.New().String(), extensionFor(contentType))

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("gcsuploader: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, bytes.NewReader(image)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcsuploader: write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcsuploader: finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", u.bucket, objectName), nil
}

// FetchReceipt downloads the photo bytes for a gs:// URI.
func (u *Uploader) FetchReceipt(ctx context.Context, gcsURI string) ([]byte, error) {
	bucketName, objectPath, err := splitGCSURI(gcsURI)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcsuploader: create storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcsuploader: read object %s/%s: %w", bucketName, objectPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("gcsuploader: read bytes: %w", err)
	}
	return data, nil
}

func splitGCSURI(gcsURI string) (bucket, object string, err error) {
	if !strings.HasPrefix(gcsURI, "gs://") {
		return "", "", fmt.Errorf("gcsuploader: invalid GCS URI: %s", gcsURI)
	}
	trimmed := strings.TrimPrefix(gcsURI, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("gcsuploader: invalid GCS URI (no object path): %s", gcsURI)
	}
	return parts[0], parts[1], nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
