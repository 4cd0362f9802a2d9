package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// ObjectFetcher reads whole objects from a bucket.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, object string) ([]byte, error)
}

// GCSFetcher is the ObjectFetcher backed by Google Cloud Storage. It uses
// Application Default Credentials.
type GCSFetcher struct {
	client *storage.Client
}

// NewGCSFetcher creates a fetcher with its own storage client.
func NewGCSFetcher(ctx context.Context) (*GCSFetcher, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewGCSFetcher: create storage client: %w", err)
	}
	return &GCSFetcher{client: client}, nil
}

// Close releases the storage client.
func (g *GCSFetcher) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Fetch implements ObjectFetcher.
func (g *GCSFetcher) Fetch(ctx context.Context, bucket, object string) ([]byte, error) {
	rc, err := g.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("Fetch: reading object %s/%s: %w", bucket, object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("Fetch: reading bytes: %w", err)
	}
	return data, nil
}

// GCSSource loads a snapshot stored as a JSON object in a bucket.
type GCSSource struct {
	URI     string
	Fetcher ObjectFetcher
}

// Load implements Source.
func (g GCSSource) Load(ctx context.Context) (*Snapshot, error) {
	bucket, object, err := ParseGCSURI(g.URI)
	if err != nil {
		return nil, fmt.Errorf("GCSSource.Load: %w", err)
	}

	data, err := g.Fetcher.Fetch(ctx, bucket, object)
	if err != nil {
		return nil, fmt.Errorf("GCSSource.Load: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// ParseGCSURI splits "gs://bucket/path/to/object" into bucket and object.
func ParseGCSURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("invalid GCS URI: %s", uri)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no object path): %s", uri)
	}
	return parts[0], parts[1], nil
}

// IsGCSURI reports whether location names a GCS object.
func IsGCSURI(location string) bool {
	return strings.HasPrefix(location, "gs://")
}
