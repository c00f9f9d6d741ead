package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// GetFileHash returns the hex SHA-256 of the file at path, as recorded in
// build manifests for the archive and every packed entry.
func GetFileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s: %w", ErrIO, path, ErrExpectedFile)
	}
	sum, err := GetHash(f)
	if err != nil {
		return "", fmt.Errorf("%w: hash %s: %w", ErrIO, path, err)
	}
	return sum, nil
}

// GetHash returns the hex SHA-256 of everything read from r.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
