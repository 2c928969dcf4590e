package report

import (
	"fmt"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/xuri/excelize/v2"
)

// Sheet names written by WriteXLSX.
const (
	SheetFiltered    = "Filtered"
	SheetDescribe    = "Describe"
	SheetMode        = "Mode"
	SheetCorrelation = "Correlation"
	SheetHistogram   = "Histogram"
)

// WriteXLSX writes the filtered rows and every aggregate to a workbook at path.
func (d *Dashboard) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetFiltered); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, s := range []string{SheetDescribe, SheetMode, SheetCorrelation, SheetHistogram} {
		if _, err := f.NewSheet(s); err != nil {
			return fmt.Errorf("add sheet %s: %w", s, err)
		}
	}

	// Filtered rows
	header := make([]any, len(d.Columns))
	for i, c := range d.Columns {
		header[i] = c
	}
	rows := [][]any{header}
	if d.view != nil {
		for _, r := range d.view.Table.Rows {
			rows = append(rows, cells(r))
		}
	}
	if err := writeRows(f, SheetFiltered, rows); err != nil {
		return err
	}

	rows = [][]any{{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}}
	for _, s := range d.Summary {
		rows = append(rows, []any{s.Column, s.Count, opt(s.Mean), opt(s.Std), opt(s.Min), opt(s.P25), opt(s.P50), opt(s.P75), opt(s.Max)})
	}
	if err := writeRows(f, SheetDescribe, rows); err != nil {
		return err
	}

	rows = [][]any{{"column", "status", "count", "values"}}
	for _, m := range d.Modes {
		row := []any{m.Column, string(m.Status), m.Count}
		for _, v := range m.Values {
			row = append(row, cell(v))
		}
		rows = append(rows, row)
	}
	if err := writeRows(f, SheetMode, rows); err != nil {
		return err
	}

	rows = nil
	if d.Corr != nil {
		head := []any{""}
		for _, c := range d.Corr.Columns {
			head = append(head, c)
		}
		rows = append(rows, head)
		if d.Corr.Determined {
			for i, c := range d.Corr.Columns {
				row := []any{c}
				for _, v := range d.Corr.Values[i] {
					row = append(row, opt(v))
				}
				rows = append(rows, row)
			}
		} else {
			rows = append(rows, []any{"undetermined"})
		}
	}
	if err := writeRows(f, SheetCorrelation, rows); err != nil {
		return err
	}

	rows = [][]any{{"column", "lower", "upper", "count"}}
	for _, h := range d.Histograms {
		for _, b := range h.Bins {
			rows = append(rows, []any{h.Column, b.Lower, b.Upper, b.Count})
		}
	}
	if err := writeRows(f, SheetHistogram, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func cells(r dataset.Row) []any {
	out := make([]any, len(r))
	for i, v := range r {
		out[i] = cell(v)
	}
	return out
}

func cell(v dataset.Value) any {
	switch v.Kind {
	case dataset.KindNumber:
		return v.Num
	case dataset.KindString, dataset.KindDate:
		return v.String()
	default:
		return nil
	}
}

func opt(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
