package objectstore

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPut struct {
	path        string
	contentType string
	body        string
}

// fakeS3 accepts PutObject requests for one bucket and records them.
type fakeS3 struct {
	bucket string
	mu     sync.Mutex
	puts   []recordedPut
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, "/"+f.bucket+"/") {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchBucket</Code><Message>The specified bucket does not exist</Message></Error>`)
		return
	}
	if r.Method != http.MethodPut {
		http.Error(w, "unexpected method", http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.puts = append(f.puts, recordedPut{
		path:        r.URL.Path,
		contentType: r.Header.Get("Content-Type"),
		body:        string(body),
	})
	f.mu.Unlock()

	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(http.StatusOK)
}

func newS3TestStore(t *testing.T, bucket string) (*S3Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{bucket: "employee-photos"}
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	client := s3.New(s3.Options{
		Region:           "us-east-1",
		BaseEndpoint:     aws.String(ts.URL),
		UsePathStyle:     true,
		Credentials:      credentials.NewStaticCredentialsProvider("AKIDTEST", "secret", ""),
		RetryMaxAttempts: 1,
	})
	s, err := NewS3Store(client, bucket, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return s, fake
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(s3.New(s3.Options{Region: "us-east-1"}), "", slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}

func TestS3Upload(t *testing.T) {
	s, fake := newS3TestStore(t, "employee-photos")

	err := s.Upload(context.Background(), "photos/1-ada.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "/employee-photos/photos/1-ada.png", fake.puts[0].path)
	assert.Equal(t, "image/png", fake.puts[0].contentType)
	assert.Contains(t, fake.puts[0].body, "png-bytes")
}

func TestS3UploadMissingBucket(t *testing.T) {
	s, fake := newS3TestStore(t, "other-bucket")

	err := s.Upload(context.Background(), "photos/1-ada.png", strings.NewReader("png-bytes"))
	assert.ErrorIs(t, err, ErrBucketNotFound)
	assert.Empty(t, fake.puts)
}

func TestS3PresignGet(t *testing.T) {
	client := s3.New(s3.Options{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDTEST", "secret", ""),
	})
	s, err := NewS3Store(client, "employee-photos", slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	raw, err := s.PresignGet(context.Background(), "photos/1-ada.png", DefaultURLExpiry)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Contains(t, u.Host, "employee-photos")
	assert.Equal(t, "/photos/1-ada.png", u.Path)
	q := u.Query()
	assert.Equal(t, "3600", q.Get("X-Amz-Expires"))
	assert.NotEmpty(t, q.Get("X-Amz-Signature"))
}

func TestS3PresignDefaultsTTL(t *testing.T) {
	client := s3.New(s3.Options{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDTEST", "secret", ""),
	})
	s, err := NewS3Store(client, "employee-photos", slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	raw, err := s.PresignGet(context.Background(), "photos/1-ada.png", 0)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}
