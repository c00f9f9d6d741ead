// Package util provides utility functions shared by the mixcreator packages.
package util

import "errors"

// Error kinds shared across packages.
// Component errors wrap exactly one of these and can be checked with errors.Is().
var (
	// Missing or invalid encoding or glyph configuration. Fatal before any encoding work.
	ErrConfiguration = errors.New("configuration error")
	// A row's id cell does not match the pattern of its source kind.
	ErrInputFormat = errors.New("input format error")
	// A character has no representation in the target code page.
	ErrEncoding = errors.New("encoding error")
	// A resource or archive file cannot be opened, read or written.
	ErrIO = errors.New("i/o error")

	// File and directory errors
	ErrExpectedFile = errors.New("expected file, got directory")
)
