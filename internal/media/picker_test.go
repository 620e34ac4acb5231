// ABOUTME: Tests for the image picker
// ABOUTME: Verifies URI conversion, content sniffing, and cancellation

package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestFilePicker_Image(t *testing.T) {
	path := writeFile(t, "heron.png", pngHeader)

	uri, err := NewFilePicker(path).PickImage(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "file:///"), "got %s", uri)
	assert.True(t, strings.HasSuffix(uri, "/heron.png"), "got %s", uri)
}

func TestFilePicker_AcceptsFileURI(t *testing.T) {
	path := writeFile(t, "fox.png", pngHeader)

	uri, err := NewFilePicker(FileURI(path)).PickImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FileURI(path), uri)
}

func TestFilePicker_EmptyPathCancels(t *testing.T) {
	_, err := NewFilePicker("  ").PickImage(context.Background())
	assert.True(t, errors.Is(err, ErrCancelled))
}

func TestFilePicker_NotImage(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("just some field notes"))

	_, err := NewFilePicker(path).PickImage(context.Background())
	assert.True(t, errors.Is(err, ErrNotImage), "got %v", err)
}

func TestFilePicker_Directory(t *testing.T) {
	_, err := NewFilePicker(t.TempDir()).PickImage(context.Background())
	assert.True(t, errors.Is(err, ErrNotImage), "got %v", err)
}

func TestFilePicker_Missing(t *testing.T) {
	_, err := NewFilePicker(filepath.Join(t.TempDir(), "gone.jpg")).PickImage(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCancelled))
}

func TestFilePicker_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFilePicker("/any.png").PickImage(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPickerFunc(t *testing.T) {
	p := PickerFunc(func(context.Context) (string, error) { return "file:///x.jpg", nil })

	uri, err := p.PickImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file:///x.jpg", uri)
}
