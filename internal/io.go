package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile creates the file at path, including missing parent directories,
// and lets write fill it. A failure to close the file is reported like a
// write failure.
func WriteFile(path string, write func(w io.Writer) error) (outErr error) {
	err := os.MkdirAll(filepath.Dir(path), 0o770)
	if err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	defer Close(filepath.Base(path), f, &outErr)

	err = write(f)
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	return nil
}

// Close a resource and joins the error to the outError if the close fails. Will
// ignore os.ErrClosed so it's safe to use together with "manual" closing of
// files.
func Close(name string, c io.Closer, outErr *error) {
	err := c.Close()
	if err != nil && !errors.Is(err, os.ErrClosed) {
		*outErr = errors.Join(*outErr, fmt.Errorf("close %s: %w", name, err))
	}
}
