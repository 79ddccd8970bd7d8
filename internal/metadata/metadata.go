// Package metadata reads single values from the EC2 instance metadata service.
package metadata

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
)

// Unavailable is returned in place of a value whenever the metadata service
// cannot be reached or answers with an error.
const Unavailable = "Not an EC2 instance or metadata service unavailable."

// DefaultTimeout bounds a single Fetch, token exchange included.
const DefaultTimeout = 2 * time.Second

// Well-known metadata paths.
const (
	PathInstanceID       = "instance-id"
	PathAvailabilityZone = "placement/availability-zone"
)

// Client fetches metadata values. It never returns an error: callers get
// Unavailable instead.
type Client struct {
	imds    *imds.Client
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a Client. An empty endpoint uses the SDK default
// (http://169.254.169.254). Requests are never retried.
func New(endpoint string, logger *slog.Logger, opts ...Option) *Client {
	imdsOpts := imds.Options{
		Endpoint: endpoint,
		Retryer:  aws.NopRetryer{},
	}
	c := &Client{
		imds:    imds.New(imdsOpts),
		timeout: DefaultTimeout,
		logger:  logger.With("component", "metadata"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the value at latest/meta-data/<path>, or Unavailable.
func (c *Client) Fetch(ctx context.Context, path string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.imds.GetMetadata(ctx, &imds.GetMetadataInput{Path: strings.TrimPrefix(path, "/")})
	if err != nil {
		c.logger.Debug("metadata fetch failed", "path", path, "error", err)
		return Unavailable
	}
	defer out.Content.Close()

	b, err := io.ReadAll(out.Content)
	if err != nil {
		c.logger.Debug("metadata read failed", "path", path, "error", err)
		return Unavailable
	}
	return string(b)
}
