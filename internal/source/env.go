package source

import (
	"context"
	"fmt"
	"os"
)

// Env reads a key from an environment variable.
//
// Go strings are immutable, so the process environment keeps its own copy
// of the value. Only the byte copy returned by Fetch can be wiped.
type Env struct {
	Name string
}

func (e Env) Kind() string { return "env" }

func (e Env) Fetch(ctx context.Context) ([]byte, error) {
	value, ok := os.LookupEnv(e.Name)
	if !ok {
		return nil, fmt.Errorf("environment variable %q is not set: %w", e.Name, ErrNotFound)
	}
	if value == "" {
		return nil, fmt.Errorf("environment variable %q: %w", e.Name, ErrEmpty)
	}
	return []byte(value), nil
}
