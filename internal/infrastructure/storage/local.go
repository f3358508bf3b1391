// Package storage keeps uploaded tweet images on the local filesystem.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

// PublicPrefix is the URL prefix the upload directory is served under.
const PublicPrefix = "/uploads"

// sniffLen is how much of an upload is inspected to detect its type.
const sniffLen = 512

// imageTypes maps the accepted detected types to the extension files are
// stored with.
var imageTypes = []struct {
	mime string
	ext  string
}{
	{"image/jpeg", ".jpg"},
	{"image/png", ".png"},
	{"image/gif", ".gif"},
	{"image/webp", ".webp"},
}

// LocalStore writes each upload to dir under a fresh random name.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

// Save stores r and returns its public URL. The file type is detected from
// the content; anything other than JPEG, PNG, GIF or WebP is rejected with
// domain.ErrInvalidImage. The client's filename only appears in errors.
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("storage: read %s: %w", filename, err)
	}
	head = head[:n]

	ext, ok := imageExt(head)
	if !ok {
		return "", fmt.Errorf("storage: %s: %w", filename, domain.ErrInvalidImage)
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", name, err)
	}
	if _, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), r)); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("storage: close %s: %w", name, err)
	}

	return path.Join(PublicPrefix, name), nil
}

// Remove deletes the file behind a URL returned by Save. URLs outside
// PublicPrefix are ignored, as is a file that is already gone.
func (s *LocalStore) Remove(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, ok := strings.CutPrefix(url, PublicPrefix+"/")
	if !ok || name == "" || name != path.Base(name) {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove %s: %w", name, err)
	}
	return nil
}

func imageExt(head []byte) (string, bool) {
	detected := mimetype.Detect(head)
	for _, t := range imageTypes {
		if detected.Is(t.mime) {
			return t.ext, true
		}
	}
	return "", false
}
