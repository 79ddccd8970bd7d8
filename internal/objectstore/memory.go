package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Compile-time interface satisfaction check.
var _ Store = (*MemoryStore)(nil)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore keeps objects in process memory. Its presigned URLs point back
// at the store itself, which serves them as an http.Handler, so it can stand
// in for S3 in development servers and tests. It is safe for concurrent use.
type MemoryStore struct {
	baseURL string
	now     func() time.Time

	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore creates an empty store whose URLs are rooted at baseURL
// (for example "/dev/photos").
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
		objects: make(map[string]memoryObject),
	}
}

// Upload reads body fully and stores it under key, replacing any prior object.
func (m *MemoryStore) Upload(ctx context.Context, key string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read upload body: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: data, contentType: contentTypeForKey(key)}
	return nil
}

// PresignGet returns baseURL/key with an expires query parameter.
func (m *MemoryStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultURLExpiry
	}
	u := url.URL{
		Path:     m.baseURL + "/" + key,
		RawQuery: url.Values{"expires": {strconv.FormatInt(m.now().Add(ttl).Unix(), 10)}}.Encode(),
	}
	return u.String(), nil
}

// Get returns a copy of the object stored under key.
func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return bytes.Clone(obj.data), nil
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// ServeHTTP serves objects by key. Mount it under the base URL with
// http.StripPrefix. Expired URLs get 403.
func (m *MemoryStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")

	expires, err := strconv.ParseInt(r.URL.Query().Get("expires"), 10, 64)
	if err != nil || m.now().Unix() > expires {
		http.Error(w, "url expired", http.StatusForbidden)
		return
	}

	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", obj.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.data)
}
