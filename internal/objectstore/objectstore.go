// Package objectstore stores employee photos in a single bucket and hands out
// time-limited read URLs for them.
package objectstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// DefaultURLExpiry is how long a presigned photo URL stays valid.
const DefaultURLExpiry = time.Hour

var (
	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)

// Store is a single-bucket object store.
//
// Neither operation validates size or content type, and PresignGet does not
// check that the object exists.
type Store interface {
	Upload(ctx context.Context, key string, body io.Reader) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// contentTypeForKey guesses a content type from the key's file extension.
func contentTypeForKey(key string) string {
	s := strings.ToLower(key)
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".svg"):
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
