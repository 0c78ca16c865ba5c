package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Keyring reads a key from the OS keyring (Secret Service on Linux,
// Keychain on macOS, Credential Manager on Windows).
type Keyring struct {
	Service string
	Account string
}

func (k Keyring) Kind() string { return "keyring" }

func (k Keyring) Fetch(ctx context.Context) ([]byte, error) {
	value, err := keyring.Get(k.Service, k.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("keyring %s/%s: %w", k.Service, k.Account, ErrNotFound)
		}
		return nil, fmt.Errorf("keyring %s/%s: %w", k.Service, k.Account, err)
	}
	if value == "" {
		return nil, fmt.Errorf("keyring %s/%s: %w", k.Service, k.Account, ErrEmpty)
	}
	return []byte(value), nil
}
