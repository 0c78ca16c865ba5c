package source

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/systmms/fixedsecret/internal/config"
)

// SecretsManagerClientAPI is the subset of the Secrets Manager client used
// here. It allows a fake client in tests.
type SecretsManagerClientAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManager reads a key from AWS Secrets Manager. SecretBinary is
// preferred; SecretString is used when the secret has no binary value.
//
// The SDK decodes the response from an HTTP body it does not wipe, so a
// copy of the value may remain in freed heap memory.
type AWSSecretsManager struct {
	ref    config.AWSRef
	client SecretsManagerClientAPI
}

// AWSOption configures an AWSSecretsManager source
type AWSOption func(*AWSSecretsManager)

// WithSecretsManagerClient sets a custom Secrets Manager client (for testing)
func WithSecretsManagerClient(client SecretsManagerClientAPI) AWSOption {
	return func(a *AWSSecretsManager) {
		a.client = client
	}
}

// NewAWSSecretsManager creates a source for ref. Without an injected
// client it loads the default AWS configuration for ref.Region.
func NewAWSSecretsManager(ctx context.Context, ref config.AWSRef, opts ...AWSOption) (*AWSSecretsManager, error) {
	a := &AWSSecretsManager{ref: ref}
	for _, opt := range opts {
		opt(a)
	}

	if a.client == nil {
		var configOpts []func(*awsconfig.LoadOptions) error
		if ref.Region != "" {
			configOpts = append(configOpts, awsconfig.WithRegion(ref.Region))
		}
		// LocalStack accepts any static credentials
		if ref.Endpoint != "" {
			configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("test", "test", ""),
			))
		}

		cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var clientOpts []func(*secretsmanager.Options)
		if ref.Endpoint != "" {
			endpoint := ref.Endpoint
			clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
				o.BaseEndpoint = &endpoint
			})
		}
		a.client = secretsmanager.NewFromConfig(cfg, clientOpts...)
	}

	return a, nil
}

func (a *AWSSecretsManager) Kind() string { return "aws" }

func (a *AWSSecretsManager) Fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, a.ref.Timeout())
	defer cancel()

	input := &secretsmanager.GetSecretValueInput{
		SecretId: &a.ref.SecretID,
	}
	if a.ref.VersionStage != "" {
		input.VersionStage = &a.ref.VersionStage
	}

	out, err := a.client.GetSecretValue(ctx, input)
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("aws secret %s: %w: %w", a.ref.SecretID, ErrNotFound, err)
		}
		return nil, fmt.Errorf("aws secret %s: %w", a.ref.SecretID, err)
	}

	switch {
	case len(out.SecretBinary) > 0:
		return out.SecretBinary, nil
	case out.SecretString != nil && *out.SecretString != "":
		return []byte(*out.SecretString), nil
	default:
		return nil, fmt.Errorf("aws secret %s: %w", a.ref.SecretID, ErrEmpty)
	}
}
