/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// Source opens the raw word resource.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// HTTPSource fetches the word resource over HTTP.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()

		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return resp.Body, nil
}

func (s HTTPSource) String() string { return s.URL }

// FileSource reads the word resource from a filesystem.
type FileSource struct {
	Fs   afero.Fs
	Path string
}

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	fs := s.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return fs.Open(s.Path)
}

func (s FileSource) String() string { return s.Path }

// NewSource maps a location to a Source. An empty location yields nil,
// which LoadWords treats as the built-in list.
func NewSource(location string) Source {
	switch {
	case location == "":
		return nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return HTTPSource{URL: location}
	default:
		return FileSource{Path: location}
	}
}

// LoadWords fetches and parses the word resource. Any failure to obtain the
// resource wraps ErrResourceUnavailable.
func LoadWords(ctx context.Context, src Source) ([]string, error) {
	if src == nil {
		return slices.Clone(DefaultWords), nil
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, src, err)
	}
	defer rc.Close()

	words, err := ParseWords(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, src, err)
	}

	return words, nil
}
