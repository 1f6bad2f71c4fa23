package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"docview/internal/model"
)

var errNoSheets = errors.New("workbook has no sheets")

// SpreadsheetReader returns the first worksheet of a workbook as a row-major
// matrix anchored at the top-left cell of the sheet's used range. Row 0 is the
// range's first row verbatim; header handling is left to the renderer. Cells
// carry their stored values, not number-format renderings.
type SpreadsheetReader struct {
	// PartLimit caps each decompressed XML part; the whole package may
	// decompress to four times as much. Zero means DefaultPartLimit.
	PartLimit int64
}

func NewSpreadsheetReader() *SpreadsheetReader { return &SpreadsheetReader{} }

func (*SpreadsheetReader) Type() model.ContentType { return model.ContentTypeSpreadsheet }

func (r *SpreadsheetReader) Read(ctx context.Context, b []byte) (model.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := partLimitOrDefault(r.PartLimit)
	opts := excelize.Options{
		RawCellValue:      true,
		UnzipSizeLimit:    4 * limit,
		UnzipXMLSizeLimit: limit,
	}
	f, err := excelize.OpenReader(bytes.NewReader(b), opts)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	first := sheets[0]

	rows, err := f.GetRows(first, opts)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", first, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return model.Sheet{}, nil
	}

	startRow, startCol, lastRow := usedRange(f, first, rows)
	if startRow > len(rows) {
		rows = nil
	} else {
		rows = rows[startRow-1:]
	}

	sheet := make(model.Sheet, 0, len(rows))
	for _, row := range rows {
		if len(row) < startCol {
			sheet = append(sheet, []string{})
			continue
		}
		sheet = append(sheet, row[startCol-1:])
	}
	// GetRows drops trailing blank rows; keep the ones the range still covers.
	for len(sheet) < lastRow-startRow+1 {
		sheet = append(sheet, []string{})
	}
	return sheet, nil
}

// usedRange returns the 1-based first row, first column and last row of the
// sheet's used range. A declared "A1:C3" style dimension wins; otherwise the
// range is derived from the populated cells GetRows returned.
func usedRange(f *excelize.File, sheet string, rows [][]string) (startRow, startCol, lastRow int) {
	if dim, err := f.GetSheetDimension(sheet); err == nil {
		if from, to, ok := strings.Cut(dim, ":"); ok {
			c1, r1, err1 := excelize.CellNameToCoordinates(from)
			_, r2, err2 := excelize.CellNameToCoordinates(to)
			if err1 == nil && err2 == nil && r1 <= r2 {
				return r1, c1, r2
			}
		}
	}
	for i, row := range rows {
		for j, v := range row {
			if v == "" {
				continue
			}
			if startRow == 0 {
				startRow = i + 1
			}
			if startCol == 0 || j+1 < startCol {
				startCol = j + 1
			}
		}
	}
	if startRow == 0 {
		return 1, 1, len(rows)
	}
	return startRow, startCol, len(rows)
}
