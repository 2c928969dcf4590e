package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/examdash-cli/internal/dashboard"
	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/KaramelBytes/examdash-cli/internal/filter"
	"github.com/KaramelBytes/examdash-cli/internal/report"
	"github.com/KaramelBytes/examdash-cli/internal/utils"
	"github.com/spf13/cobra"
)

// viewFlags select the rows and shape the rendered dashboard.
type viewFlags struct {
	gender     string
	course     string
	minScore   float64
	where      []string
	bins       int
	sampleRows int
	format     string
}

func (vf *viewFlags) bind(c *cobra.Command) {
	c.Flags().StringVar(&vf.gender, "gender", "", "keep rows with this Gender (the all label keeps every row)")
	c.Flags().StringVar(&vf.course, "matkul", "", "keep rows with this course (Matkul)")
	c.Flags().Float64Var(&vf.minScore, "min-nilai", 0, "keep rows whose score (Nilai) is at least this value")
	c.Flags().StringArrayVar(&vf.where, "where", nil, "additional column=value equality filter (repeatable)")
	c.Flags().IntVar(&vf.bins, "bins", 0, "histogram bin count (0 = config value)")
	c.Flags().IntVar(&vf.sampleRows, "sample-rows", -1, "number of filtered rows to include (-1 = config value)")
	c.Flags().StringVar(&vf.format, "format", "", "output format: markdown|json|html|xlsx (default from config)")
}

func (vf *viewFlags) spec(c *cobra.Command) (filter.Spec, error) {
	spec := settings().FilterSpec()
	spec.Gender = vf.gender
	spec.Course = vf.course
	if c.Flags().Changed("min-nilai") {
		v := vf.minScore
		spec.MinScore = &v
	}
	for _, w := range vf.where {
		eq, err := filter.ParseEqual(w)
		if err != nil {
			return spec, err
		}
		spec.Where = append(spec.Where, eq)
	}
	return spec, nil
}

func (vf *viewFlags) binCount() int {
	if vf.bins > 0 {
		return vf.bins
	}
	return settings().Bins
}

func (vf *viewFlags) samples() int {
	if vf.sampleRows >= 0 {
		return vf.sampleRows
	}
	return settings().SampleRows
}

func (vf *viewFlags) outputFormat() (string, error) {
	f := strings.ToLower(strings.TrimSpace(pick(vf.format, settings().OutputFormat)))
	switch f {
	case "", "md", "markdown":
		return "markdown", nil
	case "json", "xlsx", "html":
		return f, nil
	default:
		return "", fmt.Errorf("%w: --format %s (use markdown|json|html|xlsx)", dataset.ErrUnsupported, f)
	}
}

// build computes one filtered dashboard over src.
func (vf *viewFlags) build(c *cobra.Command, src *dashboard.Source) (*report.Dashboard, error) {
	spec, err := vf.spec(c)
	if err != nil {
		return nil, err
	}
	s := dashboard.NewSession(src, vf.binCount(), newLogger())
	v := s.Apply(spec)
	d := report.New(src, v, vf.samples())
	d.Session = s.ID.String()
	return d, nil
}

// render encodes d as markdown, json or html. xlsx is written directly by the caller.
func render(d *report.Dashboard, format string) ([]byte, error) {
	switch format {
	case "json":
		return d.JSON()
	case "html":
		return d.HTML(), nil
	default:
		return []byte(d.Markdown()), nil
	}
}

var (
	sumLoad   loadFlags
	sumView   viewFlags
	sumOutput string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Clean, filter and summarize an exam dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := sumView.outputFormat()
		if err != nil {
			return err
		}
		if format == "xlsx" && sumOutput == "" {
			return fmt.Errorf("--format xlsx requires --output")
		}
		src, err := sumLoad.open(args[0])
		if err != nil {
			return err
		}
		d, err := sumView.build(cmd, src)
		if err != nil {
			return err
		}

		if format == "xlsx" {
			if err := d.WriteXLSX(sumOutput); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote dashboard to %s\n", sumOutput)
			return nil
		}
		out, err := render(d, format)
		if err != nil {
			return err
		}
		if sumOutput != "" {
			if err := utils.SafeWriteFile(sumOutput, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote dashboard to %s\n", sumOutput)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	sumLoad.bind(summaryCmd)
	sumView.bind(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "optional path to write the dashboard")
}
