package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sanitizeCell neutralizes spreadsheet formula injection in CSV output.
// Student names are free text, and a name like "=HYPERLINK(...)" would
// execute when the export is opened in a spreadsheet, so cells starting
// with a formula trigger character get a leading apostrophe.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

// WriteCSV writes the roster as CSV with one row per student.
func (r *Roster) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader()); err != nil {
		return err
	}
	for _, snap := range r.Rows() {
		row := exportRow(snap)
		for i, cell := range row {
			row[i] = sanitizeCell(cell)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const xlsxSheet = "Roster"

// WriteXLSX writes the roster as a styled spreadsheet. XLSX cells are
// written as values, not formulas, so no injection sanitization is needed
// here.
func (r *Roster) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	header := exportHeader()
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, title); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, snap := range r.Rows() {
		for col, value := range exportRow(snap) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return err
			}
		}
	}

	// Widen the name columns; the defaults truncate most names.
	if err := f.SetColWidth(xlsxSheet, "A", "B", 22); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("roster: write xlsx: %w", err)
	}
	return nil
}

// FormatForPath picks the export format from the file extension, defaulting
// to CSV.
func FormatForPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return "xlsx"
	}
	return "csv"
}
