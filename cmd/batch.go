package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/examdash-cli/internal/dashboard"
	"github.com/KaramelBytes/examdash-cli/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	btLoad   loadFlags
	btView   viewFlags
	btOutDir string
	btQuiet  bool
	btJobs   int
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Summarize multiple CSV/TSV/XLSX files with the same filters",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		format, err := btView.outputFormat()
		if err != nil {
			return err
		}
		if format == "xlsx" && btOutDir == "" {
			return fmt.Errorf("--format xlsx requires --out-dir")
		}
		opt, err := btLoad.options()
		if err != nil {
			return err
		}
		cache := dashboard.NewCache(opt)
		warm(cache, files, btJobs)
		if btOutDir != "" {
			if err := utils.EnsureDir(btOutDir); err != nil {
				return fmt.Errorf("create out dir: %w", err)
			}
		}

		total := len(files)
		for i, path := range files {
			if !btQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			src, err := cache.Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			d, err := btView.build(cmd, src)
			if err != nil {
				return err
			}

			if btOutDir == "" {
				out, err := render(d, format)
				if err != nil {
					return err
				}
				if !btQuiet {
					fmt.Println(string(out))
				}
				continue
			}

			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if btLoad.sheetName != "" {
				base += "__sheet-" + utils.Slug(btLoad.sheetName, "sheet")
			}
			outFile := utils.UniquePath(btOutDir, base, ".summary"+extFor(format))
			if !btQuiet && filepath.Base(outFile) != base+".summary"+extFor(format) {
				fmt.Printf("⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(outFile))
			}
			if format == "xlsx" {
				err = d.WriteXLSX(outFile)
			} else {
				var out []byte
				if out, err = render(d, format); err == nil {
					err = utils.SafeWriteFile(outFile, out)
				}
			}
			if err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !btQuiet {
				fmt.Printf("✓ Wrote %s\n", outFile)
			}
		}
		return nil
	},
}

// warm loads files into cache with up to jobs concurrent readers. Errors are
// dropped here since failed loads are not cached; the ordered pass reports them.
func warm(cache *dashboard.Cache, files []string, jobs int) {
	if jobs <= 1 || len(files) < 2 {
		return
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for _, f := range files {
		g.Go(func() error {
			_, _ = cache.Open(f)
			return nil
		})
	}
	_ = g.Wait()
}

// expandInputs resolves globs, keeps literal paths that exist, and returns
// the sorted, de-duplicated list.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func extFor(format string) string {
	switch format {
	case "json":
		return ".json"
	case "xlsx":
		return ".xlsx"
	case "html":
		return ".html"
	default:
		return ".md"
	}
}

func init() {
	rootCmd.AddCommand(batchCmd)
	btLoad.bind(batchCmd)
	btView.bind(batchCmd)
	batchCmd.Flags().StringVar(&btOutDir, "out-dir", "", "directory to write one summary per input (stdout if omitted)")
	batchCmd.Flags().IntVar(&btJobs, "jobs", 4, "files loaded concurrently before summarizing (1 = sequential)")
	batchCmd.Flags().BoolVar(&btQuiet, "quiet", false, "suppress progress and non-essential output")
}
