package trx

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceKind tells the encoder how to read the id of a row.
type SourceKind int

const (
	// InGame rows carry a "<scene>-<shot>.<ext>" key in column 0 and text in column 1.
	InGame SourceKind = iota
	// VideoScene rows carry text in column 2 and start/end frames in columns 9 and 10.
	VideoScene
	// Translation rows carry a numeric id in column 0 and text in column 1.
	Translation
)

func (k SourceKind) String() string {
	switch k {
	case InGame:
		return "in-game"
	case VideoScene:
		return "video"
	case Translation:
		return "translation"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Row is one data row of a sheet.
type Row struct {
	Index int // 1-based row number in the workbook
	Cells []string
}

// Cell returns column i, or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

func (r Row) empty() bool {
	for _, c := range r.Cells {
		if trimmed(c) != "" {
			return false
		}
	}
	return true
}

// Sheet is the ordered data rows of one worksheet together with how to read them.
type Sheet struct {
	Name string
	Kind SourceKind
	Font string
	Rows []Row
}

// IsResourceName reports whether name carries a TRx extension.
func IsResourceName(name string) bool {
	ext := filepath.Ext(name)
	return len(ext) == 4 && strings.EqualFold(ext[:3], ".TR")
}
