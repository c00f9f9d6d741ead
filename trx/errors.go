package trx

import (
	"errors"
	"fmt"

	"github.com/classicadventures/mixcreator/util"
)

// ErrMalformed is returned when a text resource does not decode.
var ErrMalformed = errors.New("malformed text resource")

// InputFormatError reports a row whose id cell cannot be read. It unwraps to
// util.ErrInputFormat.
type InputFormatError struct {
	Sheet  string
	Row    int
	Column int
	Value  string
	Msg    string
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("sheet %s, row %d, column %d: %s: %q", e.Sheet, e.Row, e.Column+1, e.Msg, e.Value)
}

func (e *InputFormatError) Unwrap() error {
	return util.ErrInputFormat
}

// EncodingError reports a character the target code page cannot represent.
// It unwraps to util.ErrEncoding.
type EncodingError struct {
	Sheet    string
	Row      int
	Quote    uint32
	Char     rune
	CodePage string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("sheet %s, row %d, quote %d: character %q (U+%04X) has no representation in %s",
		e.Sheet, e.Row, e.Quote, e.Char, e.Char, e.CodePage)
}

func (e *EncodingError) Unwrap() error {
	return util.ErrEncoding
}
