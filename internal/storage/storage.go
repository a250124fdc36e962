package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("storage: object not found")

// Object is an opened stored file. Body supports seeking so it can be served
// with http.ServeContent.
type Object struct {
	Body        io.ReadSeekCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

// Provider persists uploaded files. Keys are slash-separated, relative to the
// uploads root, e.g. "profile/1700000000000-me.png".
type Provider interface {
	Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (*Object, error)
}
