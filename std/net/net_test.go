package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/css")
		w.Write([]byte("p { color: red; }"))
	}))
	defer srv.Close()

	body, ct, err := Fetch(context.Background(), srv.URL+"/site.css")
	require.NoError(t, err)
	assert.Equal(t, "text/css", ct)
	assert.Equal(t, "p { color: red; }", string(body))
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, _, err := Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"http://example.com/a/page.html", "style.css", "http://example.com/a/style.css"},
		{"http://example.com/a/page.html", "/style.css", "http://example.com/style.css"},
		{"http://example.com/a/", "https://cdn.example.com/x.css", "https://cdn.example.com/x.css"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveURL(tt.base, tt.ref))
	}
}

func TestIsNetworkURL(t *testing.T) {
	assert.True(t, IsNetworkURL("http://x"))
	assert.True(t, IsNetworkURL("https://x"))
	assert.False(t, IsNetworkURL("file:///tmp/x.css"))
	assert.False(t, IsNetworkURL("style.css"))
}

func TestFilePath(t *testing.T) {
	assert.Equal(t, "/tmp/x.css", FilePath("file:///tmp/x.css"))
	assert.Equal(t, "x.css", FilePath("x.css"))
}

func TestFetchGuessesMissingContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.Write([]byte("p {}"))
	}))
	defer srv.Close()

	_, ct, err := Fetch(context.Background(), srv.URL+"/theme.css")
	require.NoError(t, err)
	assert.Equal(t, "text/css; charset=utf-8", ct)
}

func TestFetchBodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, MaxBodySize+1))
	}))
	defer srv.Close()

	_, _, err := Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "exceeds")
}

func TestContentTypeOf(t *testing.T) {
	assert.Equal(t, "text/css; charset=utf-8", ContentTypeOf("/a/site.CSS"))
	assert.Equal(t, "text/html; charset=utf-8", ContentTypeOf("index.html"))
	assert.Equal(t, "", ContentTypeOf("noext"))
}

func TestIsStylesheetType(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"", true},
		{"text/css", true},
		{"text/css; charset=utf-8", true},
		{"text/plain", true},
		{"image/png", false},
		{"application/json", false},
		{"not a media type;;", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStylesheetType(tt.ct), tt.ct)
	}
}
