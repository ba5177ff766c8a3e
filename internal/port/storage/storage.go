package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// Kind is the asset sub-directory an upload belongs to.
type Kind string

const (
	KindProperties Kind = "properties"
	KindBlogs      Kind = "blogs"
	KindGallery    Kind = "gallery"
)

// PublicPrefix starts every stored asset path.
const PublicPrefix = "/uploads/"

var (
	ErrNotFound    = errors.New("asset not found")
	ErrInvalidPath = errors.New("invalid asset path")
)

// Object is an opened asset ready to be served.
type Object struct {
	Body        io.ReadSeekCloser
	Size        int64
	ModTime     time.Time
	ContentType string
}

// AssetStore persists uploaded files under public paths of the form
// /uploads/<kind>/<name>.
type AssetStore interface {
	Save(ctx context.Context, kind Kind, name string, body io.Reader, size int64, contentType string) (string, error)
	// Remove returns ErrNotFound when nothing is stored at publicPath.
	Remove(ctx context.Context, publicPath string) error
	Open(ctx context.Context, publicPath string) (*Object, error)
}

// PublicPath builds the stored path for name under kind.
func PublicPath(kind Kind, name string) string {
	return PublicPrefix + string(kind) + "/" + name
}

// NormalizePublicPath rewrites a stored path into canonical form: forward
// slashes, no "public" root segment, a single leading slash. It returns
// ErrInvalidPath for paths outside /uploads/ or containing "..".
func NormalizePublicPath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimPrefix(p, "public/")
	if p == "" {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	cleaned := path.Clean("/" + p)
	if !strings.HasPrefix(cleaned, PublicPrefix) || cleaned == strings.TrimSuffix(PublicPrefix, "/") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// ObjectKey is the store-relative key of a normalized public path,
// e.g. "gallery/abc.png".
func ObjectKey(publicPath string) (string, error) {
	normalized, err := NormalizePublicPath(publicPath)
	if err != nil {
		return "", err
	}
	key := strings.TrimPrefix(normalized, PublicPrefix)
	if key == "" || !strings.Contains(key, "/") {
		return "", ErrInvalidPath
	}
	return key, nil
}
