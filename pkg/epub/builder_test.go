package epub

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestJPEG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())
}

func TestBuildFromDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "nati-1866-registro-12345")
	require.NoError(t, os.Mkdir(dir, 0o755))

	writeTestJPEG(t, filepath.Join(dir, "pagina-1.jpg"), 40, 60)
	writeTestJPEG(t, filepath.Join(dir, "pagina-2.jpg"), 40, 60)
	// non-image files are skipped
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info.csv"), []byte("a;b\n"), 0o644))

	builder := &Builder{}
	out, err := builder.BuildFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "nati-1866-registro-12345.epub"), out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBuildFromDirResizes(t *testing.T) {
	dir := t.TempDir()
	writeTestJPEG(t, filepath.Join(dir, "pagina-1.jpg"), 400, 600)

	builder := &Builder{Title: "Nati 1866", MaxWidth: 100}
	out, err := builder.BuildFromDir(dir)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestBuildFromDirEmpty(t *testing.T) {
	builder := &Builder{}
	_, err := builder.BuildFromDir(t.TempDir())
	assert.Error(t, err)
}

func TestShrinkToWidth(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.jpg")
	writeTestJPEG(t, src, 200, 100)

	t.Run("wider than cap", func(t *testing.T) {
		out, err := shrinkToWidth(src, 50, t.TempDir())
		require.NoError(t, err)
		assert.NotEqual(t, src, out)

		f, err := os.Open(out)
		require.NoError(t, err)
		defer f.Close()
		cfg, _, err := image.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.Width)
		assert.Equal(t, 25, cfg.Height)
	})

	t.Run("already narrow", func(t *testing.T) {
		out, err := shrinkToWidth(src, 500, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, src, out)
	})
}
