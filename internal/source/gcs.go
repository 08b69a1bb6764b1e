package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/depscope/depscope/pkg/config"
)

// GCSFetcher reads documents from Google Cloud Storage.
type GCSFetcher struct {
	client *gcs.Client
}

// NewGCSFetcher creates a GCS-backed Fetcher. Without a credentials file it
// uses Application Default Credentials (Workload Identity, SA keys, gcloud auth).
func NewGCSFetcher(ctx context.Context, cfg config.GCSConfig) (*GCSFetcher, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSFetcher{client: client}, nil
}

// Fetch reads a gs://bucket/key location.
func (f *GCSFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	if loc.Scheme != "gs" {
		return nil, fmt.Errorf("%w: gcs fetcher cannot read %q", ErrUnsupportedScheme, location)
	}

	r, err := f.client.Bucket(loc.Bucket).Object(loc.Key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return nil, fmt.Errorf("gcs read %s: %w", location, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", location, err)
	}
	return data, nil
}

// Close releases the underlying client.
func (f *GCSFetcher) Close() error {
	return f.client.Close()
}
