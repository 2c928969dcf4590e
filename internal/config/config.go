package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/KaramelBytes/examdash-cli/internal/filter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Loader
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	DateLayout         string `mapstructure:"date_layout" yaml:"date_layout"`
	MaxRows            int    `mapstructure:"max_rows" yaml:"max_rows"`

	// Schema overrides; empty lists keep the exam schema.
	NumericColumns  []string `mapstructure:"numeric_columns" yaml:"numeric_columns"`
	CategoryColumns []string `mapstructure:"category_columns" yaml:"category_columns"`
	DateColumn      string   `mapstructure:"date_column" yaml:"date_column"`
	ModeColumns     []string `mapstructure:"mode_columns" yaml:"mode_columns"`

	// Filters
	AllLabel     string `mapstructure:"all_label" yaml:"all_label"`
	ScoreColumn  string `mapstructure:"score_column" yaml:"score_column"`
	GenderColumn string `mapstructure:"gender_column" yaml:"gender_column"`
	CourseColumn string `mapstructure:"course_column" yaml:"course_column"`

	// Output
	Bins         int    `mapstructure:"bins" yaml:"bins"`
	SampleRows   int    `mapstructure:"sample_rows" yaml:"sample_rows"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
}

// Dir returns ~/.examdash.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".examdash"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.examdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("EXAMDASH")
	v.AutomaticEnv()
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("date_layout", dataset.DefaultDateLayout)
	v.SetDefault("max_rows", 0)
	v.SetDefault("numeric_columns", []string{})
	v.SetDefault("category_columns", []string{})
	v.SetDefault("date_column", "")
	v.SetDefault("mode_columns", []string{})
	v.SetDefault("all_label", filter.DefaultAll)
	v.SetDefault("score_column", dataset.ColScore)
	v.SetDefault("gender_column", dataset.ColGender)
	v.SetDefault("course_column", dataset.ColCourse)
	v.SetDefault("bins", 15)
	v.SetDefault("sample_rows", 5)
	v.SetDefault("output_format", "markdown")
	return v
}

// Defaults returns the built-in configuration with env overrides applied.
func Defaults() *Global {
	var c Global
	if err := newViper().Unmarshal(&c); err != nil {
		return &Global{AllLabel: filter.DefaultAll, Bins: 15, SampleRows: 5, OutputFormat: "markdown"}
	}
	return &c
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := newViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read; a missing file keeps the defaults
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Schema returns the exam schema with any configured overrides applied.
func (c *Global) Schema() dataset.Schema {
	s := dataset.ExamSchema()
	if len(c.NumericColumns) > 0 {
		s.Numeric = c.NumericColumns
	}
	if len(c.CategoryColumns) > 0 {
		s.Categories = c.CategoryColumns
	}
	if c.DateColumn != "" {
		s.DateColumn = c.DateColumn
	}
	if c.DateLayout != "" {
		s.DateLayout = c.DateLayout
	}
	if len(c.ModeColumns) > 0 {
		s.ModeColumns = c.ModeColumns
	}
	return s
}

// FilterSpec returns an empty filter spec carrying the configured labels.
func (c *Global) FilterSpec() filter.Spec {
	return filter.Spec{
		All:          c.AllLabel,
		ScoreColumn:  c.ScoreColumn,
		GenderColumn: c.GenderColumn,
		CourseColumn: c.CourseColumn,
	}
}
