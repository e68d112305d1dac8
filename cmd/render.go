package cmd

import (
	"fmt"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/chart"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/pipeline"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render the eight charts without printing the analysis",
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
		t, dd, err := pipeline.Prepare(path, delim)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if debug {
			fmt.Fprintf(out, "[debug] %s\n", dd.Message())
		}
		paths, err := chart.Renderer{Dir: c.OutputDir}.RenderAll(t)
		for _, p := range paths {
			fmt.Fprintf(out, "✓ Wrote %s\n", p)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
