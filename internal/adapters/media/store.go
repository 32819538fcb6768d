package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

// ErrTooLarge is returned when an upload exceeds the configured limit.
var ErrTooLarge = errors.New("upload exceeds size limit")

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// LocalStore writes uploads into a directory served under a URL prefix.
type LocalStore struct {
	dir      string
	urlPath  string
	maxBytes int64
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir, urlPath string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStore{
		dir:      dir,
		urlPath:  "/" + strings.Trim(urlPath, "/"),
		maxBytes: maxBytes,
	}, nil
}

// Dir returns the uploads directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save stores r under a random name that keeps the original extension and
// returns its public URL.
func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if n > s.maxBytes {
		return "", ErrTooLarge
	}

	name := uuid.NewString() + safeExt(originalName)
	if err := atomic.WriteFile(filepath.Join(s.dir, name), &buf); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if err := os.Chmod(filepath.Join(s.dir, name), 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	return path.Join(s.urlPath, name), nil
}

// Remove deletes the upload behind a URL returned by Save. Removing a file
// that is already gone is not an error.
func (s *LocalStore) Remove(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := path.Base(url)
	if path.Dir(url) != s.urlPath || name == "." || name == "/" {
		return fmt.Errorf("%q is not an upload URL", url)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing upload: %w", err)
	}
	return nil
}

func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if extPattern.MatchString(ext) {
		return ext
	}
	return ""
}
