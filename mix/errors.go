package mix

import (
	"errors"
	"fmt"

	"github.com/classicadventures/mixcreator/util"
)

// Sentinel errors for package mix.
var (
	// Index errors
	ErrTooManyEntries = errors.New("too many entries for a MIX archive")
	ErrDataTooLarge   = errors.New("data segment exceeds 4 GiB")
	ErrCollision      = errors.New("fold hash collision")

	// Reader errors
	ErrMalformed = errors.New("malformed MIX archive")
	ErrNotFound  = errors.New("entry not found")
)

// FileError reports an I/O failure on one archive member or on the archive itself.
// It unwraps to util.ErrIO and to the underlying cause.
type FileError struct {
	Op   string
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{util.ErrIO, e.Err}
}
