package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"dirscan/internal/scanner"
)

// excelSheet is the single worksheet holding the listing.
const excelSheet = "Files"

// excelMaxColWidth caps auto-sized column widths.
const excelMaxColWidth = 50

// writeExcel writes the result as an .xlsx workbook with one worksheet:
// a bold header row followed by one row per entry in input order.
func writeExcel(result *scanner.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return err
	}

	headerRow := make([]any, len(header))
	widths := make([]int, len(header))
	for i, h := range header {
		headerRow[i] = h
		widths[i] = len(h)
	}
	if err := f.SetSheetRow(excelSheet, "A1", &headerRow); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(excelSheet, "A1", lastHeaderCell, bold); err != nil {
		return err
	}

	for i, e := range result.Entries {
		var size any = e.Size
		if e.Kind == scanner.KindDir {
			size = dirSizePlaceholder
		}
		row := []any{e.RelPath, e.Name, string(e.Kind), size, timestamp(e.ModTime)}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(excelSheet, cell, &row); err != nil {
			return err
		}
		for col, v := range row {
			if n := len(fmt.Sprint(v)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		w := width + 2
		if w > excelMaxColWidth {
			w = excelMaxColWidth
		}
		if err := f.SetColWidth(excelSheet, name, name, float64(w)); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
