package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
)

// Options controls how a tabular file is read and typed.
type Options struct {
	// Delimiter for delimited text. If 0, sniffed from the header line.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
	Schema             dataset.Schema
	// XLSX sheet selection: name wins over the 1-based index.
	SheetName  string
	SheetIndex int
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	Logger  *slog.Logger
}

// DefaultOptions returns options for the exam dataset.
func DefaultOptions() Options {
	return Options{
		Schema:     dataset.ExamSchema(),
		SheetIndex: 1,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Format reads the raw header and records of one file type.
type Format interface {
	CanRead(filename string) bool
	Read(path string, opt Options) (header []string, records [][]string, err error)
}

var registry []Format

// Register adds a format to the registry. Later registrations do not
// override earlier ones for the same extension.
func Register(f Format) {
	registry = append(registry, f)
}

func init() {
	Register(xlsxFormat{})
	Register(delimitedFormat{})
}

func formatFor(path string) Format {
	for _, f := range registry {
		if f.CanRead(path) {
			return f
		}
	}
	// Fallback to delimited text
	return delimitedFormat{}
}

// Load reads path into a typed table. A missing file yields a
// *dataset.NotFoundError and malformed content a *dataset.ParseError; no
// partial table is returned in either case. Absent recognized columns are
// logged and recorded in Table.Notes.
func Load(path string, opt Options) (*dataset.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &dataset.NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return nil, &dataset.NotFoundError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}
	if len(opt.Schema.Recognized()) == 0 {
		opt.Schema = dataset.ExamSchema()
	}
	start := time.Now()
	header, records, err := formatFor(path).Read(path, opt)
	if err != nil {
		return nil, err
	}
	t, err := build(path, header, records, opt)
	if err != nil {
		return nil, err
	}
	opt.logger().Debug("loaded table",
		"path", path,
		"rows", t.Len(),
		"columns", len(t.Columns),
		"elapsed", time.Since(start))
	return t, nil
}

// build types raw records against the schema.
func build(path string, header []string, records [][]string, opt Options) (*dataset.Table, error) {
	log := opt.logger()
	names := normalizeHeader(header)
	ncol := len(names)
	if ncol == 0 {
		return nil, &dataset.ParseError{Path: path, Line: 1, Err: errors.New("no columns to parse")}
	}
	cols := make([]dataset.Column, ncol)
	for i, n := range names {
		kind, known := opt.Schema.KindOf(n)
		cols[i] = dataset.Column{Name: n, Kind: kind, Known: known}
	}

	var notes []string
	if opt.MaxRows > 0 && len(records) > opt.MaxRows {
		notes = append(notes, fmt.Sprintf("processed only %d/%d rows due to MaxRows", opt.MaxRows, len(records)))
		records = records[:opt.MaxRows]
	}

	layout := opt.Schema.Layout()
	badDates := 0
	rows := make([]dataset.Row, 0, len(records))
	for i, rec := range records {
		line := i + 2
		if len(rec) > ncol {
			return nil, &dataset.ParseError{Path: path, Line: line, Err: fmt.Errorf("expected %d fields, saw %d", ncol, len(rec))}
		}
		row := make(dataset.Row, ncol)
		for j := 0; j < ncol; j++ {
			if j >= len(rec) {
				continue
			}
			raw := strings.TrimSpace(rec[j])
			if isMissingToken(raw) {
				continue
			}
			switch cols[j].Kind {
			case dataset.KindNumber:
				x, ok := ParseNumber(raw, opt)
				if !ok {
					return nil, &dataset.ParseError{Path: path, Line: line, Column: cols[j].Name, Err: fmt.Errorf("invalid number %q", raw)}
				}
				row[j] = dataset.Number(x)
			case dataset.KindDate:
				ts, err := time.Parse(layout, raw)
				if err != nil {
					badDates++
					continue
				}
				row[j] = dataset.Date(ts)
			default:
				row[j] = dataset.String(raw)
			}
		}
		rows = append(rows, row)
	}

	t := dataset.New(filepath.Base(path), cols, rows, opt.Schema)
	if badDates > 0 {
		msg := fmt.Sprintf("%d %s value(s) did not match %s and were treated as missing", badDates, opt.Schema.DateColumn, layout)
		log.Warn("unparseable dates", "column", opt.Schema.DateColumn, "count", badDates, "layout", layout)
		notes = append(notes, msg)
	}
	for _, name := range opt.Schema.Recognized() {
		if t.Has(name) {
			continue
		}
		mc := &dataset.MissingColumnError{Column: name}
		if name == opt.Schema.DateColumn {
			log.Warn("skipping date conversion", "error", mc)
			notes = append(notes, fmt.Sprintf("%s; skipping date conversion", mc))
			continue
		}
		log.Warn("recognized column absent", "error", mc)
		notes = append(notes, mc.Error())
	}
	t.Notes = notes
	return t, nil
}

// normalizeHeader trims names, strips a UTF-8 BOM and suffixes duplicates with .1, .2, ...
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := map[string]int{}
	for i, h := range header {
		n := strings.TrimSpace(h)
		if i == 0 {
			n = strings.TrimPrefix(n, "\ufeff")
		}
		if n == "" {
			n = fmt.Sprintf("Unnamed: %d", i)
		}
		if c, ok := seen[n]; ok {
			seen[n] = c + 1
			n = fmt.Sprintf("%s.%d", n, c+1)
		} else {
			seen[n] = 0
		}
		out[i] = n
	}
	return out
}

var missingTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "#N/A": {}, "NaN": {}, "nan": {},
	"NULL": {}, "null": {}, "None": {}, "<NA>": {},
}

func isMissingToken(s string) bool {
	_, ok := missingTokens[s]
	return ok
}
