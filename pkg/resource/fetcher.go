package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	stdnet "tessera/std/net"
)

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher fetches resources over HTTP/HTTPS or from the local file
// system, resolving relative URIs against a base.
type DefaultFetcher struct {
	baseURL string
}

// NewFetcher creates a DefaultFetcher. base is either a page URL, against
// which relative URIs resolve as links do, or a local directory.
func NewFetcher(base string) *DefaultFetcher {
	return &DefaultFetcher{baseURL: base}
}

// Fetch retrieves the resource at the given URI.
func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	resolved := f.resolve(uri)
	if stdnet.IsNetworkURL(resolved) {
		return stdnet.Fetch(ctx, resolved)
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	path := stdnet.FilePath(resolved)
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return body, stdnet.ContentTypeOf(path), nil
}

func (f *DefaultFetcher) resolve(uri string) string {
	switch {
	case stdnet.IsNetworkURL(uri), strings.HasPrefix(uri, "file://"), filepath.IsAbs(uri):
		return uri
	case stdnet.IsNetworkURL(f.baseURL):
		return stdnet.ResolveURL(f.baseURL, uri)
	case f.baseURL != "":
		return filepath.Join(stdnet.FilePath(f.baseURL), uri)
	}
	return uri
}

// FetchCSS fetches a stylesheet URI and returns its text content.
// Returns an error if the content type does not look like CSS or text.
func FetchCSS(ctx context.Context, f Fetcher, uri string) (string, error) {
	body, contentType, err := f.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	if !stdnet.IsStylesheetType(contentType) {
		return "", fmt.Errorf("unexpected content type for CSS: %s", contentType)
	}
	return string(body), nil
}
