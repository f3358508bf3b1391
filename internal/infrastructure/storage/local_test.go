package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

var (
	pngBytes  = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"
	jpegBytes = "\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"
	gifBytes  = "GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04"
	webpBytes = "RIFF\x1a\x00\x00\x00WEBPVP8L\x0d\x00\x00\x00/\x00\x00\x00\x10\x07\x10\x11\x11\x88\x88\xfe\x07\x00"
)

func TestLocalStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "Holiday.PNG", strings.NewReader(pngBytes))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, string(data))
}

func TestLocalStore_ExtensionFollowsContent(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	cases := []struct {
		filename string
		body     string
		ext      string
	}{
		{"photo.html", pngBytes, ".png"},
		{"noext", jpegBytes, ".jpg"},
		{"anim.png", gifBytes, ".gif"},
		{"pic.exe", webpBytes, ".webp"},
	}
	for _, tc := range cases {
		url, err := store.Save(context.Background(), tc.filename, strings.NewReader(tc.body))
		require.NoError(t, err, tc.filename)
		assert.Equal(t, tc.ext, filepath.Ext(url), tc.filename)
	}
}

func TestLocalStore_RejectsNonImages(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	bodies := map[string]string{
		"x.html":    "<script>alert(document.cookie)</script>",
		"x.svg":     `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`,
		"x.png":     "plain text pretending to be a png",
		"empty.gif": "",
	}
	for name, body := range bodies {
		_, err := store.Save(context.Background(), name, strings.NewReader(body))
		assert.ErrorIs(t, err, domain.ErrInvalidImage, name)
		assert.True(t, domain.IsValidation(err), name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStore_UniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Save(context.Background(), "a.jpg", strings.NewReader(jpegBytes))
	require.NoError(t, err)
	b, err := store.Save(context.Background(), "a.jpg", strings.NewReader(jpegBytes))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

type failingReader struct {
	prefix string
	served bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.served {
		r.served = true
		return copy(p, r.prefix), nil
	}
	return 0, errors.New("boom")
}

func TestLocalStore_RemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "x.gif", &failingReader{prefix: gifBytes + strings.Repeat("\x00", sniffLen)})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Save(ctx, "a.png", strings.NewReader(pngBytes))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, url))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(url)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove(ctx, url), "already removed")
	assert.NoError(t, store.Remove(ctx, "https://images.example.com/a.png"))
	assert.NoError(t, store.Remove(ctx, "/uploads/../secret.txt"))
}
