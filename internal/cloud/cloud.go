package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Options selects the region and, optionally, an endpoint override used by
// every AWS client the service creates.
type Options struct {
	Region string
	// Endpoint overrides the service endpoint (LocalStack, moto, tests).
	Endpoint string
	// Credentials replaces the default credential chain when non-nil.
	Credentials aws.CredentialsProvider
}

// Load resolves the AWS configuration from the default chain, applying the
// region and credential overrides in opts.
func Load(ctx context.Context, opts Options) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Credentials != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(opts.Credentials))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}

// BaseEndpoint returns the endpoint override as the SDK expects it in client
// options, or nil when no override is configured.
func (o Options) BaseEndpoint() *string {
	if o.Endpoint == "" {
		return nil
	}
	return aws.String(o.Endpoint)
}
