package metadata

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeIMDS serves IMDSv2 token requests and a fixed set of metadata values.
func fakeIMDS(values map[string]string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /latest/api/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Aws-Ec2-Metadata-Token-Ttl-Seconds", "21600")
		w.Write([]byte("test-token"))
	})
	mux.HandleFunc("GET /latest/meta-data/{path...}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Aws-Ec2-Metadata-Token") != "test-token" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		v, ok := values[r.PathValue("path")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(v))
	})
	return mux
}

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(ts.URL, slog.New(slog.DiscardHandler), opts...)
}

func TestFetchValues(t *testing.T) {
	c := newTestClient(t, fakeIMDS(map[string]string{
		PathInstanceID:       "i-0123456789abcdef0",
		PathAvailabilityZone: "us-east-1a",
	}))

	assert.Equal(t, "i-0123456789abcdef0", c.Fetch(context.Background(), PathInstanceID))
	assert.Equal(t, "us-east-1a", c.Fetch(context.Background(), PathAvailabilityZone))
}

func TestFetchMissingPathFallsBack(t *testing.T) {
	c := newTestClient(t, fakeIMDS(nil))

	assert.Equal(t, Unavailable, c.Fetch(context.Background(), PathInstanceID))
}

func TestFetchUnreachableFallsBack(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(url, slog.New(slog.DiscardHandler))
	assert.Equal(t, Unavailable, c.Fetch(context.Background(), PathInstanceID))
}

func TestFetchTimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	c := newTestClient(t, slow, WithTimeout(50*time.Millisecond))
	defer close(release)

	start := time.Now()
	got := c.Fetch(context.Background(), PathInstanceID)

	assert.Equal(t, Unavailable, got)
	assert.Less(t, time.Since(start), 2*time.Second)
}
