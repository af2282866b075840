package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDocuments_SortedPDFsOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt", "c.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	paths, err := ListDocuments(dir)
	require.NoError(t, err)

	expected := []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "c.pdf"),
	}
	assert.Equal(t, expected, paths)
}

func TestListDocuments_EmptyDir(t *testing.T) {
	paths, err := ListDocuments(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestExtractPages_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	_, err := NewExtractor().ExtractPages(path)
	assert.Error(t, err, "corrupt input must surface an extraction error")
}

func TestExtractPages_MissingFile(t *testing.T) {
	_, err := NewExtractor().ExtractPages(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}
