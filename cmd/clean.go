package cmd

import (
	"fmt"

	"github.com/KaramelBytes/examdash-cli/internal/report"
	"github.com/KaramelBytes/examdash-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	clnLoad   loadFlags
	clnJSON   bool
	clnOutput string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Report empty and duplicate rows removed from a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := clnLoad.open(args[0])
		if err != nil {
			return err
		}
		var out []byte
		if clnJSON {
			out, err = utils.PrettyJSON(src.Cleaning)
			if err != nil {
				return err
			}
		} else {
			out = []byte(report.CleaningMarkdown(src))
		}
		if clnOutput != "" {
			if err := utils.SafeWriteFile(clnOutput, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote cleaning report to %s\n", clnOutput)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	clnLoad.bind(cleanCmd)
	cleanCmd.Flags().BoolVar(&clnJSON, "json", false, "emit the cleaning report as JSON")
	cleanCmd.Flags().StringVarP(&clnOutput, "output", "o", "", "optional path to write the report")
}
