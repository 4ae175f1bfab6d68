package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"10.jpg", "2.PNG", "b.webp", "A.gif", ".hidden.jpg", "notes.txt", "1.avif"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755))

	files, err := ScanImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.avif", "2.PNG", "10.jpg", "A.gif", "b.webp"}, files)
}

func TestScanImagesMissingDir(t *testing.T) {
	_, err := ScanImages(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSortNatural(t *testing.T) {
	names := []string{"img10.jpg", "img2.jpg", "Img1.jpg"}
	SortNatural(names)
	assert.Equal(t, []string{"Img1.jpg", "img2.jpg", "img10.jpg"}, names)
}
