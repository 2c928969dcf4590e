package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/examdash-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set ExamDash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		fmt.Printf("delimiter: %q\n", c.Delimiter)
		fmt.Printf("decimal_separator: %q\n", c.DecimalSeparator)
		fmt.Printf("thousands_separator: %q\n", c.ThousandsSeparator)
		fmt.Printf("date_layout: %s\n", c.DateLayout)
		fmt.Printf("max_rows: %d\n", c.MaxRows)
		fmt.Printf("all_label: %s\n", c.AllLabel)
		fmt.Printf("score_column: %s\n", c.ScoreColumn)
		fmt.Printf("gender_column: %s\n", c.GenderColumn)
		fmt.Printf("course_column: %s\n", c.CourseColumn)
		if len(c.NumericColumns) > 0 {
			fmt.Printf("numeric_columns: %s\n", strings.Join(c.NumericColumns, ","))
		}
		if len(c.CategoryColumns) > 0 {
			fmt.Printf("category_columns: %s\n", strings.Join(c.CategoryColumns, ","))
		}
		if c.DateColumn != "" {
			fmt.Printf("date_column: %s\n", c.DateColumn)
		}
		if len(c.ModeColumns) > 0 {
			fmt.Printf("mode_columns: %s\n", strings.Join(c.ModeColumns, ","))
		}
		fmt.Printf("bins: %d\n", c.Bins)
		fmt.Printf("sample_rows: %d\n", c.SampleRows)
		fmt.Printf("output_format: %s\n", c.OutputFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		switch key {
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "decimal_separator":
			if _, err := parseDecimal(val); err != nil {
				return err
			}
			cfg.DecimalSeparator = val
		case "thousands_separator":
			if _, err := parseThousands(val); err != nil {
				return err
			}
			cfg.ThousandsSeparator = val
		case "date_layout":
			cfg.DateLayout = val
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "all_label":
			if strings.TrimSpace(val) == "" {
				return fmt.Errorf("all_label must not be empty")
			}
			cfg.AllLabel = val
		case "score_column":
			cfg.ScoreColumn = val
		case "gender_column":
			cfg.GenderColumn = val
		case "course_column":
			cfg.CourseColumn = val
		case "numeric_columns":
			cfg.NumericColumns = splitList(val)
		case "category_columns":
			cfg.CategoryColumns = splitList(val)
		case "date_column":
			cfg.DateColumn = val
		case "mode_columns":
			cfg.ModeColumns = splitList(val)
		case "bins":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for bins: %v", val)
			}
			cfg.Bins = i
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			cfg.SampleRows = i
		case "output_format":
			switch strings.ToLower(val) {
			case "markdown", "json", "html", "xlsx":
				cfg.OutputFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid output_format: %s (use markdown|json|html|xlsx)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
