package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/examdash-cli/internal/dashboard"
	"github.com/KaramelBytes/examdash-cli/internal/loader"
	"github.com/spf13/cobra"
)

// loadFlags are the reader settings shared by every command that opens a file.
type loadFlags struct {
	delimiter  string
	decimal    string
	thousands  string
	maxRows    int
	sheetName  string
	sheetIndex int
}

func (lf *loadFlags) bind(c *cobra.Command) {
	c.Flags().StringVar(&lf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	c.Flags().StringVar(&lf.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	c.Flags().StringVar(&lf.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	c.Flags().IntVar(&lf.maxRows, "max-rows", 0, "maximum rows to process (0 = config value or unlimited)")
	c.Flags().StringVar(&lf.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	c.Flags().IntVar(&lf.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

// options merges flags over the loaded configuration. Flags win when set.
func (lf *loadFlags) options() (loader.Options, error) {
	c := settings()
	opt := loader.DefaultOptions()
	opt.Schema = c.Schema()
	opt.MaxRows = c.MaxRows
	if lf.maxRows > 0 {
		opt.MaxRows = lf.maxRows
	}
	opt.SheetName = lf.sheetName
	if lf.sheetIndex > 0 {
		opt.SheetIndex = lf.sheetIndex
	}
	opt.Logger = newLogger()

	var err error
	if opt.Delimiter, err = parseDelimiter(pick(lf.delimiter, c.Delimiter)); err != nil {
		return opt, err
	}
	if opt.DecimalSeparator, err = parseDecimal(pick(lf.decimal, c.DecimalSeparator)); err != nil {
		return opt, err
	}
	if opt.ThousandsSeparator, err = parseThousands(pick(lf.thousands, c.ThousandsSeparator)); err != nil {
		return opt, err
	}
	return opt, nil
}

// open loads and cleans path through a cache built from the flags.
func (lf *loadFlags) open(path string) (*dashboard.Source, error) {
	opt, err := lf.options()
	if err != nil {
		return nil, err
	}
	return dashboard.NewCache(opt).Open(path)
}

func pick(flag, conf string) string {
	if flag != "" {
		return flag
	}
	return conf
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func parseDecimal(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", s)
	}
}

func parseThousands(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",":
		return ',', nil
	case ".":
		return '.', nil
	case "space", " ":
		return ' ', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", s)
	}
}
