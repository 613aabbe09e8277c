package resource

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"tessera/pkg/css"
	"tessera/pkg/js"
)

func page(t *testing.T, head []g.Node, body ...g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, h.HTML(h.Head(head...), h.Body(body...)).Render(&buf))
	return buf.String()
}

func cssServer(t *testing.T, sheets map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := sheets[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/css")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoad_LinkedSheetsPrecedeStyleBlocks(t *testing.T) {
	srv := cssServer(t, map[string]string{"/site.css": `.x { color: red; }`})
	src := page(t,
		[]g.Node{
			h.Link(h.Rel("stylesheet"), h.Href("site.css")),
			h.StyleEl(g.Raw(`.x { color: blue; }`)),
		},
		h.Div(h.Class("x")),
	)

	p, err := NewLoader(NewFetcher(srv.URL+"/index.html"), nil).Load(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, p.Stylesheet.Blocks, 2)

	div := p.Document.Root.GetElementsByClassName("x")[0]
	styled := css.StyleTree(div, p.Stylesheet)
	c, ok := styled.Color("color")
	require.True(t, ok)
	assert.Equal(t, css.Color{B: 255, A: 255}, c)
}

func TestLoad_FetchFailureIsSkipped(t *testing.T) {
	srv := cssServer(t, nil)
	core, logs := observer.New(zapcore.WarnLevel)
	src := page(t,
		[]g.Node{
			h.Link(h.Rel("stylesheet"), h.Href("missing.css")),
			h.StyleEl(g.Raw(`p { height: 4px; }`)),
		},
		h.P(g.Text("hi")),
	)

	p, err := NewLoader(NewFetcher(srv.URL+"/"), zap.New(core)).Load(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, p.Stylesheet.Blocks, 1)
	assert.Equal(t, 1, logs.FilterMessage("stylesheet fetch failed").Len())
}

func TestLoad_InvalidLengthFails(t *testing.T) {
	src := page(t, []g.Node{h.StyleEl(g.Raw(`div { width: 50%; }`))}, h.Div())

	_, err := NewLoader(nil, nil).Load(context.Background(), src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, css.ErrInvalidLength), "got %v", err)
}

func TestLoad_LocalFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.css"), []byte(`div { height: 7px; }`), 0o644))
	src := page(t, []g.Node{h.Link(h.Rel("stylesheet"), h.Href("a.css"))}, h.Div())

	p, err := NewLoader(NewFetcher(dir), nil).Load(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, p.Stylesheet.Blocks, 1)
	assert.Equal(t, css.PxLength(7), p.Stylesheet.Blocks[0].Declarations[0].Value)
}

func TestLoad_Scripts(t *testing.T) {
	src := page(t, nil,
		h.Div(h.ID("target")),
		h.Script(g.Raw(`document.getElementById("target").className = "done";`)),
	)

	l := NewLoader(nil, nil)
	p, err := l.Load(context.Background(), src)
	require.NoError(t, err)
	assert.False(t, p.Document.Root.GetElementByID("target").HasClass("done"), "scripts are off by default")

	l.EnableScripts(true)
	p, err = l.Load(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, p.Document.Root.GetElementByID("target").HasClass("done"))
}

func TestLoad_ScriptErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	src := page(t, nil, h.Div(), h.Script(g.Raw(`throw new Error("boom");`)))

	l := NewLoader(nil, zap.New(core))
	l.EnableScripts(true)
	_, err := l.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("script failed").Len())
}

func TestLoad_CancelledScript(t *testing.T) {
	src := page(t, nil, h.Div(), h.Script(g.Raw(`for (;;) {}`)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLoader(nil, nil)
	l.EnableScripts(true)
	_, err := l.Load(ctx, src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, js.ErrInterrupted), "got %v", err)
}

func TestFetchCSS_RejectsWrongContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89})
	}))
	defer srv.Close()

	_, err := FetchCSS(context.Background(), NewFetcher(""), srv.URL+"/x.css")
	assert.ErrorContains(t, err, "unexpected content type")
}
