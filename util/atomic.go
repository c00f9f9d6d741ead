package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// AtomicFile is a file being written under a temporary name.
// Commit renames it to its destination; Abort removes it.
type AtomicFile struct {
	*os.File
	dest string
	done bool
}

// tempPathFor returns a unique hidden sibling of dest.
func tempPathFor(dest string) string {
	dir, base := filepath.Split(dest)
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
}

// CreateAtomic opens a temporary file next to dest for writing.
// The destination is left untouched until Commit succeeds.
func CreateAtomic(dest string) (*AtomicFile, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create directory for %s: %w", ErrIO, dest, err)
	}
	f, err := os.OpenFile(tempPathFor(dest), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file for %s: %w", ErrIO, dest, err)
	}
	return &AtomicFile{File: f, dest: dest}, nil
}

// Commit flushes and closes the temporary file and renames it over the destination.
func (a *AtomicFile) Commit() error {
	if a.done {
		return nil
	}
	a.done = true
	tmp := a.Name()
	if err := a.Sync(); err != nil {
		a.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: sync %s: %w", ErrIO, a.dest, err)
	}
	if err := a.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: close %s: %w", ErrIO, a.dest, err)
	}
	if err := os.Rename(tmp, a.dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: rename into %s: %w", ErrIO, a.dest, err)
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	a.Close()
	os.Remove(a.Name())
}

// WriteFileAtomic writes the output of fn to dest through a temporary file.
// If fn fails, dest is not modified.
func WriteFileAtomic(dest string, fn func(w io.Writer) error) error {
	f, err := CreateAtomic(dest)
	if err != nil {
		return err
	}
	defer f.Abort()
	if err := fn(f); err != nil {
		return err
	}
	return f.Commit()
}
