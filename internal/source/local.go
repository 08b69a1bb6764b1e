package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LocalFetcher reads documents from the local filesystem.
type LocalFetcher struct{}

// NewLocalFetcher creates a LocalFetcher.
func NewLocalFetcher() *LocalFetcher {
	return &LocalFetcher{}
}

// Fetch reads a file given as a plain path or a file:// location.
func (f *LocalFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	if loc.Scheme != "file" {
		return nil, fmt.Errorf("%w: local fetcher cannot read %q", ErrUnsupportedScheme, location)
	}

	data, err := os.ReadFile(loc.Key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, loc.Key)
		}
		return nil, fmt.Errorf("reading %s: %w", loc.Key, err)
	}
	return data, nil
}
