package loader

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/xuri/excelize/v2"
)

type xlsxFormat struct{}

func (xlsxFormat) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Read returns the selected sheet's first row as header and the rest as records.
// If SheetName is empty and SheetIndex <= 0, the first sheet is used.
func (xlsxFormat) Read(path string, opt Options) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, &dataset.ParseError{Path: path, Err: fmt.Errorf("open xlsx: %w", err)}
	}
	defer f.Close()

	sheet, err := pickSheet(f, opt.SheetName, opt.SheetIndex)
	if err != nil {
		return nil, nil, &dataset.ParseError{Path: path, Err: err}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, &dataset.ParseError{Path: path, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}
	if len(rows) == 0 {
		return nil, nil, &dataset.ParseError{Path: path, Err: fmt.Errorf("sheet %q is empty", sheet)}
	}
	header := rows[0]
	records := rows[1:]
	for i, rec := range records {
		if len(rec) > len(header) {
			// Trailing blank cells beyond the header are formatting noise.
			trimmed := rec
			for len(trimmed) > len(header) && strings.TrimSpace(trimmed[len(trimmed)-1]) == "" {
				trimmed = trimmed[:len(trimmed)-1]
			}
			records[i] = trimmed
		}
	}
	return header, records, nil
}

func pickSheet(f *excelize.File, name string, index int) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, name) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet %q not found", name)
	}
	if index <= 0 {
		return sheets[0], nil
	}
	if index > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d)", index, len(sheets))
	}
	return sheets[index-1], nil
}
