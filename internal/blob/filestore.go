// Package blob stores uploaded binaries under a directory and hands out public
// URIs for them.
package blob

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidPath = errors.New("invalid blob path")

// FileStore writes blobs below Dir; a blob stored under "a/b.png" is served at
// BaseURL + "/a/b.png" by whatever serves Dir.
type FileStore struct {
	dir     string
	baseURL string
}

func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "blob.NewFileStore.MkdirAll")
	}
	return &FileStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put stores data under p and returns its download URI. Existing blobs at
// the same path are replaced atomically.
func (s *FileStore) Put(ctx context.Context, p string, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := path.Clean("/" + p)[1:]
	if clean == "" || clean != strings.TrimPrefix(p, "/") {
		return "", ErrInvalidPath
	}

	target := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errors.Wrap(err, "blob.Put.MkdirAll")
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", errors.Wrap(err, "blob.Put.CreateTemp")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", errors.Wrap(err, "blob.Put.Write")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "blob.Put.Close")
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", errors.Wrap(err, "blob.Put.Rename")
	}

	return s.URL(clean), nil
}

// URL returns the public URI of the blob stored under p.
func (s *FileStore) URL(p string) string {
	segments := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/")
}
