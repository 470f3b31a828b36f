// Package storage reads and writes corpus documents.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

var (
	// ErrRead is wrapped by all errors returned from Read.
	ErrRead = errors.New("unable to read document")
	// ErrWrite is wrapped by all errors returned from Write.
	ErrWrite = errors.New("unable to write document")
	// ErrEncoding is returned by Read for documents which are not UTF-8. It
	// also wraps ErrRead.
	ErrEncoding = fmt.Errorf("%w: document is not UTF-8", ErrRead)
)

const defaultMode fs.FileMode = 0o644

// FS is file system storage. Zero value is ready to use.
type FS struct{}

// Read returns complete document content. Documents which are not valid UTF-8,
// or declare other encoding, are refused: inserting UTF-8 fragments into them
// would corrupt the text.
func (FS) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrRead, path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrRead, path, err)
	}
	if err := CheckEncoding(data); err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return data, nil
}

// CheckEncoding makes sure data could be safely processed as UTF-8 text.
// Absence of any declaration is fine as long as bytes are valid UTF-8.
func CheckEncoding(data []byte) error {
	_, name, certain := charset.DetermineEncoding(data, "text/html")
	switch {
	case !utf8.Valid(data):
		return fmt.Errorf("%w: invalid byte sequence (looks like %s)", ErrEncoding, name)
	case certain && name != "utf-8":
		return fmt.Errorf("%w: byte order mark of %s", ErrEncoding, name)
	case name != "utf-8" && name != "windows-1252":
		// windows-1252 is what detection falls back to for plain ASCII
		return fmt.Errorf("%w: declared as %s", ErrEncoding, name)
	}
	return nil
}

// Write replaces document content atomically: data goes to a temporary file
// in the same directory, which is flushed and renamed over the target, so
// readers see either old or new document, never a mix. Mode of existing
// document is preserved.
func (FS) Write(ctx context.Context, path string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}

	mode := defaultMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	return nil
}
