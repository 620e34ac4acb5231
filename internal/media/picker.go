// ABOUTME: Image picker abstraction returning device-local image URIs
// ABOUTME: FilePicker validates a user-supplied path and turns it into a file:// URI

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrCancelled is returned when the user dismisses the picker.
var ErrCancelled = errors.New("image selection cancelled")

// ErrNotImage is returned when the chosen file is not an image.
var ErrNotImage = errors.New("not an image")

// Picker asks the user for one image and returns its URI.
type Picker interface {
	PickImage(ctx context.Context) (string, error)
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(ctx context.Context) (string, error)

// PickImage calls f.
func (f PickerFunc) PickImage(ctx context.Context) (string, error) {
	return f(ctx)
}

// sniffLen is how much of the file content type detection reads.
const sniffLen = 512

// FilePicker picks the image at a path chosen elsewhere (a form field or a
// command flag). The file is referenced, never copied.
type FilePicker struct {
	Path string
}

// NewFilePicker creates a picker for path.
func NewFilePicker(path string) *FilePicker {
	return &FilePicker{Path: path}
}

// PickImage validates the path and returns its file:// URI. An empty path
// counts as a cancelled pick.
func (p *FilePicker) PickImage(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := strings.TrimSpace(p.Path)
	if path == "" {
		return "", ErrCancelled
	}
	if strings.HasPrefix(path, "file://") {
		u, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("parse uri: %w", err)
		}
		path = u.Path
	}
	path = expandHome(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat image: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", abs, ErrNotImage)
	}

	contentType, err := sniff(abs)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%s is %s: %w", abs, contentType, ErrNotImage)
	}

	return FileURI(abs), nil
}

// FileURI converts an absolute path into a file:// URI.
func FileURI(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

func sniff(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the local user
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read image: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
