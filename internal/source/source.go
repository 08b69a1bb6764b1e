// Package source reads scanner documents from the local filesystem or
// object storage. Locations are plain paths, s3://bucket/key or
// gs://bucket/key. Sources are read-only.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/depscope/depscope/pkg/config"
)

var (
	// ErrUnsupportedScheme is returned for locations no fetcher handles.
	ErrUnsupportedScheme = errors.New("unsupported location scheme")
	// ErrNotFound is returned when the document does not exist.
	ErrNotFound = errors.New("document not found")
)

// Fetcher reads the raw bytes of a document.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Location is a parsed document location.
type Location struct {
	Scheme string // "file", "s3" or "gs"
	Bucket string // empty for files
	Key    string // object key, or the file path
}

func (l Location) String() string {
	if l.Scheme == "file" {
		return l.Key
	}
	return l.Scheme + "://" + l.Bucket + "/" + l.Key
}

// ParseLocation splits a location into scheme, bucket and key. Anything
// without a scheme is a local path.
func ParseLocation(location string) (Location, error) {
	scheme, rest, ok := strings.Cut(location, "://")
	if !ok {
		if location == "" {
			return Location{}, fmt.Errorf("empty location")
		}
		return Location{Scheme: "file", Key: location}, nil
	}

	switch scheme {
	case "file":
		return Location{Scheme: "file", Key: rest}, nil
	case "s3", "gs":
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return Location{}, fmt.Errorf("location %q: want %s://bucket/key", location, scheme)
		}
		return Location{Scheme: scheme, Bucket: bucket, Key: key}, nil
	default:
		return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

// Factory creates a fetcher on first use.
type Factory func(ctx context.Context) (Fetcher, error)

// Mux dispatches each location to the fetcher registered for its scheme.
// Remote clients are created lazily, so a run that only reads local files
// never loads cloud credentials. A Mux is safe for concurrent use.
type Mux struct {
	logger *slog.Logger

	mu        sync.Mutex
	factories map[string]Factory
	fetchers  map[string]Fetcher
}

// NewMux creates a Mux with the local, S3 and GCS fetchers registered.
func NewMux(cfg config.SourcesConfig, logger *slog.Logger) *Mux {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Mux{
		logger:    logger,
		factories: make(map[string]Factory),
		fetchers:  make(map[string]Fetcher),
	}
	m.Register("file", NewLocalFetcher())
	m.RegisterFactory("s3", func(ctx context.Context) (Fetcher, error) {
		return NewS3Fetcher(ctx, cfg.S3)
	})
	m.RegisterFactory("gs", func(ctx context.Context) (Fetcher, error) {
		return NewGCSFetcher(ctx, cfg.GCS)
	})
	return m
}

// Register installs a ready fetcher for a scheme.
func (m *Mux) Register(scheme string, f Fetcher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchers[scheme] = f
}

// RegisterFactory installs a lazily created fetcher for a scheme.
func (m *Mux) RegisterFactory(scheme string, factory Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.fetchers, scheme)
	m.factories[scheme] = factory
}

func (m *Mux) fetcher(ctx context.Context, scheme string) (Fetcher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.fetchers[scheme]; ok {
		return f, nil
	}
	factory, ok := m.factories[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}

	m.logger.Debug("creating source client", "scheme", scheme)
	f, err := factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating %s fetcher: %w", scheme, err)
	}
	m.fetchers[scheme] = f
	return f, nil
}

// Fetch reads the document at location.
func (m *Mux) Fetch(ctx context.Context, location string) ([]byte, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	f, err := m.fetcher(ctx, loc.Scheme)
	if err != nil {
		return nil, err
	}

	data, err := f.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("fetched document", "location", loc.String(), "bytes", len(data))
	return data, nil
}

// Close releases every created fetcher that holds a client.
func (m *Mux) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for scheme, f := range m.fetchers {
		if c, ok := f.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s fetcher: %w", scheme, err))
			}
		}
	}
	return errors.Join(errs...)
}
