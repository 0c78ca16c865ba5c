package source

import (
	"context"
	"fmt"
	"io"

	"github.com/systmms/fixedsecret/internal/config"
	"github.com/systmms/fixedsecret/pkg/secret"
)

// Handle is a loaded key with its length erased from the type, for callers
// that pick the key size at run time. *secret.Secret[T] implements it for
// every T.
type Handle interface {
	Len() int
	BorrowBytes(fn func(view []byte))
	Destroy()
	Destroyed() bool
	String() string
}

var _ Handle = (*secret.Secret[[32]byte])(nil)

// Option configures how sources are built by FromReference and Open
type Option func(*options)

type options struct {
	stdin      io.Reader
	awsOptions []AWSOption
}

// WithStdin sets the reader used for file sources with path "-"
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		o.stdin = r
	}
}

// WithAWSOptions passes options through to AWS Secrets Manager sources
func WithAWSOptions(opts ...AWSOption) Option {
	return func(o *options) {
		o.awsOptions = append(o.awsOptions, opts...)
	}
}

// FromReference builds the Source a manifest reference points at
func FromReference(ctx context.Context, ref config.Reference, opts ...Option) (Source, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch ref.Kind() {
	case "env":
		return Env{Name: ref.Env}, nil
	case "file":
		return File{Path: ref.File, Stdin: o.stdin}, nil
	case "keyring":
		return Keyring{Service: ref.Keyring.Service, Account: ref.Keyring.Account}, nil
	case "aws":
		src, err := NewAWSSecretsManager(ctx, *ref.AWS, o.awsOptions...)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("reference names no source")
	}
}

// Open loads key into a container sized by key.Size. The caller must
// Destroy the returned Handle.
func Open(ctx context.Context, key config.Key, opts ...Option) (Handle, error) {
	src, err := FromReference(ctx, key.From, opts...)
	if err != nil {
		return nil, err
	}

	switch key.Size {
	case 16:
		return open[[16]byte](ctx, src, key.Encoding)
	case 24:
		return open[[24]byte](ctx, src, key.Encoding)
	case 32:
		return open[[32]byte](ctx, src, key.Encoding)
	case 48:
		return open[[48]byte](ctx, src, key.Encoding)
	case 64:
		return open[[64]byte](ctx, src, key.Encoding)
	default:
		return nil, fmt.Errorf("unsupported key size %d", key.Size)
	}
}

func open[T secret.Array](ctx context.Context, src Source, enc config.Encoding) (Handle, error) {
	s, err := Load[T](ctx, src, enc)
	if err != nil {
		return nil, err
	}
	return s, nil
}
