package cmd

import (
	"fmt"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/analysis"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/dataset"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaSampleRows int
	anaTopValues  int
	anaTopPairs   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Summarize a dataset as Markdown (schema, statistics, correlations)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		path := c.Input
		if len(args) == 1 {
			path = args[0]
		}
		delim, err := c.DelimiterRune()
		if err != nil {
			return err
		}
		t, err := dataset.Load(path, dataset.Options{Delimiter: delim})
		if err != nil {
			return err
		}
		dd := dataset.DropDuplicates(t)

		opt := analysis.DefaultOptions()
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = anaSampleRows
		} else if c.SampleRows > 0 {
			opt.SampleRows = c.SampleRows
		}
		if anaTopValues > 0 {
			opt.TopValues = anaTopValues
		}
		if anaTopPairs > 0 {
			opt.TopPairs = anaTopPairs
		}
		rep := analysis.Analyze(dd.Table, opt)
		if dd.Removed > 0 {
			rep.AddNote("removed %d duplicate rows", dd.Removed)
		}
		md := rep.Markdown()

		out := cmd.OutOrStdout()
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(out, md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write analysis (Markdown)")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include")
	analyzeCmd.Flags().IntVar(&anaTopValues, "top-values", 0, "frequent values listed per text column (0 = default)")
	analyzeCmd.Flags().IntVar(&anaTopPairs, "top-pairs", 0, "strongest correlation pairs listed (0 = default)")
}
