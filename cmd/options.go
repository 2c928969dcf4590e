package cmd

import (
	"fmt"

	"github.com/KaramelBytes/examdash-cli/internal/filter"
	"github.com/KaramelBytes/examdash-cli/internal/report"
	"github.com/KaramelBytes/examdash-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	optLoad loadFlags
	optJSON bool
)

var optionsCmd = &cobra.Command{
	Use:   "options <file>",
	Short: "List the filter choices available in a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := optLoad.open(args[0])
		if err != nil {
			return err
		}
		sel := filter.Options(src.Table, settings().FilterSpec())
		if optJSON {
			b, err := utils.PrettyJSON(sel)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		fmt.Print(report.SelectionMarkdown(sel))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optLoad.bind(optionsCmd)
	optionsCmd.Flags().BoolVar(&optJSON, "json", false, "emit the options as JSON")
}
