package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// File reads a key from a file, or one line from Stdin when Path is "-".
// File contents are returned byte for byte; a line read from stdin has its
// line ending removed.
type File struct {
	Path  string
	Stdin io.Reader
}

func (f File) Kind() string { return "file" }

func (f File) Fetch(ctx context.Context) ([]byte, error) {
	if f.Path == "-" {
		return f.fetchStdin()
	}

	fh, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	defer fh.Close()

	data, err := readBounded(fh, false)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return data, nil
}

func (f File) fetchStdin() ([]byte, error) {
	stdin := f.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	data, err := readBounded(stdin, true)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	data = bytes.TrimSuffix(data, []byte{'\r'})
	return data, nil
}
