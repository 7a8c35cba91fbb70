package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS writes objects to a Google Cloud Storage bucket. Without an explicit
// credentials file the client falls back to GOOGLE_APPLICATION_CREDENTIALS.
type GCS struct {
	client     *storage.Client
	bucket     string
	publicBase string
}

func NewGCS(ctx context.Context, bucket, publicBase, credentialsFile string) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	if publicBase == "" {
		publicBase = "https://storage.googleapis.com/" + bucket
	}
	return &GCS{client: client, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

func (g *GCS) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	w := g.client.Bucket(g.bucket).Object(clean).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "no-cache"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %s: %w", clean, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", clean, err)
	}
	return g.publicBase + "/" + clean, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
