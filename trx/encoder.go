package trx

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/classicadventures/mixcreator/glyphs"
)

// LongQuoteThreshold is the encoded length above which a quote is reported as
// unusually long. Such quotes still encode; they may just not fit on screen.
const LongQuoteThreshold = 145

// Columns of each source kind.
const (
	inGameKeyColumn   = 0
	inGameTextColumn  = 1
	videoTextColumn   = 2
	videoStartColumn  = 9
	videoEndColumn    = 10
	translationColumn = 0
	translationText   = 1
)

var punctuation = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"”", `"`,
	"“", `"`,
	"…", "...",
)

// Encoder turns the rows of one sheet into a text resource.
type Encoder struct {
	CodePage *glyphs.CodePage
	Plan     glyphs.Plan
	// Strict rejects the sheet on the first row with an unreadable id.
	// Otherwise such rows are skipped with a warning.
	Strict bool
	Logger logrus.FieldLogger
}

// Stats summarizes one encoded sheet.
type Stats struct {
	Rows       int // data rows read, including skipped ones
	Quotes     int
	Skipped    int
	Duplicates int
	Longest    int
	// Long lists the ids of quotes longer than LongQuoteThreshold.
	Long []uint32
}

// Encode encodes sheet into a fresh text resource.
func (e *Encoder) Encode(sheet Sheet) (*TextResource, error) {
	t, _, err := e.EncodeStats(sheet)
	return t, err
}

// EncodeStats is Encode that also reports what it did.
func (e *Encoder) EncodeStats(sheet Sheet) (*TextResource, *Stats, error) {
	if e.CodePage == nil {
		return nil, nil, errors.New("encoder has no code page")
	}
	log := e.logger().WithField("sheet", sheet.Name)

	stats := &Stats{}
	var (
		ids   []uint32
		strs  [][]byte
		first = make(map[uint32]int)
	)
	for _, row := range sheet.Rows {
		if row.empty() {
			continue
		}
		stats.Rows++

		id, text, err := readRow(sheet, row)
		if err != nil {
			if e.Strict {
				return nil, nil, err
			}
			log.WithField("row", row.Index).Warnf("skipping row: %v", err)
			stats.Skipped++
			continue
		}

		encoded, err := e.encodeText(sheet, row, id, text)
		if err != nil {
			return nil, nil, err
		}

		if prev, ok := first[id]; ok {
			stats.Duplicates++
			log.WithFields(logrus.Fields{"row": row.Index, "quote": id}).
				Debugf("quote id already used on row %d", prev)
		} else {
			first[id] = row.Index
		}

		if len(encoded) > stats.Longest {
			stats.Longest = len(encoded)
		}
		if len(encoded) > LongQuoteThreshold {
			stats.Long = append(stats.Long, id)
			log.WithFields(logrus.Fields{"quote": id, "length": len(encoded)}).
				Debugf("long quote: %s", text)
		}
		ids = append(ids, id)
		strs = append(strs, encoded)
	}
	stats.Quotes = len(ids)

	t, err := New(ids, strs)
	if err != nil {
		return nil, nil, err
	}
	log.WithFields(logrus.Fields{
		"quotes":    stats.Quotes,
		"skipped":   stats.Skipped,
		"longest":   stats.Longest,
		"threshold": LongQuoteThreshold,
		"long":      len(stats.Long),
	}).Debug("encoded sheet")
	return t, stats, nil
}

func (e *Encoder) logger() logrus.FieldLogger {
	if e.Logger != nil {
		return e.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// encodeText normalizes raw, applies the font plan and the punctuation
// replacements, and encodes the result into the code page.
func (e *Encoder) encodeText(sheet Sheet, row Row, id uint32, raw string) ([]byte, error) {
	if !utf8.ValidString(raw) {
		return nil, &EncodingError{Sheet: sheet.Name, Row: row.Index, Quote: id, Char: utf8.RuneError, CodePage: e.CodePage.Name}
	}
	s := norm.NFC.String(raw)
	s = e.Plan.Apply(s)
	s = punctuation.Replace(s)

	b, bad, ok := e.CodePage.Encode(s)
	if !ok {
		return nil, &EncodingError{Sheet: sheet.Name, Row: row.Index, Quote: id, Char: bad, CodePage: e.CodePage.Name}
	}
	return b, nil
}

// readRow extracts the quote id and the raw text of a row.
func readRow(sheet Sheet, row Row) (uint32, string, error) {
	bad := func(col int, msg string) error {
		return &InputFormatError{Sheet: sheet.Name, Row: row.Index, Column: col, Value: row.Cell(col), Msg: msg}
	}

	switch sheet.Kind {
	case InGame:
		id, ok := inGameID(row.Cell(inGameKeyColumn))
		if !ok {
			return 0, "", bad(inGameKeyColumn, "want a <scene>-<shot>.<ext> key")
		}
		return id, row.Cell(inGameTextColumn), nil

	case VideoScene:
		start, ok := parseInt(row.Cell(videoStartColumn))
		if !ok || start > math.MaxUint16 {
			return 0, "", bad(videoStartColumn, "want a start frame between 0 and 65535")
		}
		end, ok := parseInt(row.Cell(videoEndColumn))
		if !ok || end > math.MaxUint16 {
			return 0, "", bad(videoEndColumn, "want an end frame between 0 and 65535")
		}
		return uint32(start) | uint32(end)<<16, row.Cell(videoTextColumn), nil

	case Translation:
		id, ok := parseInt(row.Cell(translationColumn))
		if !ok || id > math.MaxUint32 {
			return 0, "", bad(translationColumn, "want a numeric id")
		}
		return uint32(id), row.Cell(translationText), nil
	}
	return 0, "", bad(0, "unknown sheet kind "+sheet.Kind.String())
}

// inGameID turns "01-0001.AUD" into 10001.
func inGameID(key string) (uint32, bool) {
	stem, _, ok := strings.Cut(trimmed(key), ".")
	if !ok {
		return 0, false
	}
	scene, shot, ok := strings.Cut(stem, "-")
	if !ok {
		return 0, false
	}
	a, err := strconv.ParseUint(scene, 10, 32)
	if err != nil {
		return 0, false
	}
	b, err := strconv.ParseUint(shot, 10, 32)
	if err != nil {
		return 0, false
	}
	id := a*10000 + b
	if id > math.MaxUint32 {
		return 0, false
	}
	return uint32(id), true
}

// parseInt reads a non-negative integer cell. Spreadsheets often render whole
// numbers as floats, so "12.0" is accepted as 12.
func parseInt(cell string) (uint64, bool) {
	cell = trimmed(cell)
	if v, err := strconv.ParseUint(cell, 10, 64); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0, false
	}
	return uint64(f), true
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
