// Package source loads key material from the places a process receives it
// (environment, files, the OS keyring, AWS Secrets Manager) and hands it to
// a secret.Secret, wiping every intermediate buffer on the way.
package source

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/systmms/fixedsecret/internal/config"
	"github.com/systmms/fixedsecret/pkg/secret"
)

var (
	// ErrNotFound is returned when the source has no value for the key.
	ErrNotFound = errors.New("secret not found")
	// ErrEmpty is returned when the source holds an empty value.
	ErrEmpty = errors.New("secret is empty")
	// ErrTooLarge is returned when a file or stream exceeds MaxInput.
	ErrTooLarge = errors.New("secret input too large")
)

// MaxInput bounds how much a file or stream source reads. The largest
// supported key is 64 bytes, which is 128 characters in hex.
const MaxInput = 4096

// Source fetches key material.
//
// Fetch returns a buffer the caller owns outright, including the spare
// capacity past len. The caller wipes it once the bytes have been moved
// into a Secret.
type Source interface {
	Kind() string
	Fetch(ctx context.Context) ([]byte, error)
}

// Load fetches from src, decodes with enc and moves the result into a
// Secret. Every intermediate buffer is wiped before Load returns, on
// success and on error.
func Load[T secret.Array](ctx context.Context, src Source, enc config.Encoding) (*secret.Secret[T], error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(raw[:cap(raw)])

	if len(raw) == 0 {
		return nil, ErrEmpty
	}

	decoded, err := decode(raw, enc)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(decoded[:cap(decoded)])

	return secret.FromSlice[T](decoded)
}

// decode returns raw itself for EncodingRaw and a fresh buffer otherwise.
// Text encodings tolerate surrounding whitespace such as a trailing newline.
func decode(raw []byte, enc config.Encoding) ([]byte, error) {
	switch enc {
	case config.EncodingRaw, "":
		return raw, nil
	case config.EncodingHex:
		text := bytes.TrimSpace(raw)
		dst := make([]byte, hex.DecodedLen(len(text)))
		n, err := hex.Decode(dst, text)
		if err != nil {
			secret.Wipe(dst)
			return nil, fmt.Errorf("decoding hex: %w", err)
		}
		return dst[:n], nil
	case config.EncodingBase64:
		text := bytes.TrimSpace(raw)
		// The decoders skip line breaks, so wrapped output is judged by
		// its length without them.
		encoding := base64.StdEncoding
		if n := len(text) - bytes.Count(text, []byte{'\n'}) - bytes.Count(text, []byte{'\r'}); n%4 != 0 {
			encoding = base64.RawStdEncoding
		}
		dst := make([]byte, encoding.DecodedLen(len(text)))
		n, err := encoding.Decode(dst, text)
		if err != nil {
			secret.Wipe(dst)
			return nil, fmt.Errorf("decoding base64: %w", err)
		}
		return dst[:n], nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}

// readBounded reads r into a single buffer of MaxInput+1 bytes so no
// growth copies are left behind. With stopAtNewline it returns as soon as
// a line has been read, which is what an interactive stdin needs.
func readBounded(r io.Reader, stopAtNewline bool) ([]byte, error) {
	buf := make([]byte, MaxInput+1)
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if stopAtNewline && bytes.IndexByte(buf[n-m:n], '\n') >= 0 {
			break
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			secret.Wipe(buf)
			return nil, err
		}
	}
	if n > MaxInput {
		secret.Wipe(buf)
		return nil, ErrTooLarge
	}
	return buf[:n], nil
}
