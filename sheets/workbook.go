package sheets

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/classicadventures/mixcreator/trx"
	"github.com/classicadventures/mixcreator/util"
)

// HeaderRows is the number of header rows at the top of every worksheet.
const HeaderRows = 2

// Workbook is a source of worksheet rows.
type Workbook interface {
	SheetNames() []string
	// Rows returns the data rows of a worksheet, header rows excluded.
	Rows(sheet string) ([]trx.Row, error)
	Close() error
}

// xlsxWorkbook reads an Office Open XML workbook.
type xlsxWorkbook struct {
	path string
	f    *excelize.File
}

// OpenWorkbook opens the xlsx workbook at path.
func OpenWorkbook(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %w", util.ErrIO, path, err)
	}
	return &xlsxWorkbook{path: path, f: f}, nil
}

func (w *xlsxWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *xlsxWorkbook) Rows(sheet string) ([]trx.Row, error) {
	// Raw values keep number formats from turning frame numbers into "1,234".
	raw, err := w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s of %s: %w", util.ErrIO, sheet, w.path, err)
	}
	if len(raw) <= HeaderRows {
		return nil, nil
	}
	rows := make([]trx.Row, 0, len(raw)-HeaderRows)
	for i, cells := range raw[HeaderRows:] {
		rows = append(rows, trx.Row{Index: HeaderRows + i + 1, Cells: cells})
	}
	return rows, nil
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}

// Load reads the worksheet name of wb as the sheet described by target.
func Load(wb Workbook, name string, target Target) (trx.Sheet, error) {
	rows, err := wb.Rows(name)
	if err != nil {
		return trx.Sheet{}, err
	}
	return trx.Sheet{Name: name, Kind: target.Kind, Font: target.Font, Rows: rows}, nil
}
