package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<html><head><style>
.bar { height: 10px; background-color: #ff0000; }
</style></head><body><div class="bar"></div><p>hi</p></body></html>`

func writePage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	input := writePage(t, testPage)
	output := filepath.Join(t.TempDir(), "out.png")

	out, err := execute(t, "render", input, "-o", output, "--width", "50", "--height", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered")

	img, err := gg.LoadPNG(output)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())

	r, g, b, _ := img.At(3, 3).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
}

func TestRenderCommand_ConfigFile(t *testing.T) {
	input := writePage(t, testPage)
	output := filepath.Join(t.TempDir(), "out.png")
	cfgPath := filepath.Join(t.TempDir(), "tessera.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("viewport:\n  width: 24\n  height: 12\n"), 0o644))

	_, err := execute(t, "render", input, "-o", output, "--config", cfgPath)
	require.NoError(t, err)

	img, err := gg.LoadPNG(output)
	require.NoError(t, err)
	assert.Equal(t, 24, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())
}

func TestRenderCommand_InvalidLength(t *testing.T) {
	input := writePage(t, `<style>div { width: 2em; }</style><div></div>`)

	_, err := execute(t, "render", input, "-o", filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}

func TestRenderCommand_MissingInput(t *testing.T) {
	_, err := execute(t, "render", filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	input := writePage(t, testPage)

	out, err := execute(t, "inspect", input, "--width", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "block <html> x=0 y=0 w=100")
	assert.Contains(t, out, "block <div>")
	assert.Contains(t, out, "h=10")
	assert.Contains(t, out, `TEXT("hi")`)
}

func TestInspectCommand_NoUserAgent(t *testing.T) {
	input := writePage(t, testPage)

	out, err := execute(t, "inspect", input, "--user-agent=false")
	require.NoError(t, err)
	assert.Contains(t, out, "inline <html>")
}
