package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/aadit1011/Insurance-Price-Prediction-Model/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set insurance-eda configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input: %s\n", c.Input)
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		fmt.Fprintf(out, "charts: %t\n", c.Charts)
		if c.ReportPath != "" {
			fmt.Fprintf(out, "report_path: %s\n", c.ReportPath)
		}
		fmt.Fprintf(out, "manifest: %t\n", c.Manifest)
		fmt.Fprintf(out, "sample_rows: %d\n", c.SampleRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// start from the stored file so flag and env overrides are not persisted
		stored, err := cfgpkg.LoadStored(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "input":
			stored.Input = val
		case "output_dir":
			stored.OutputDir = val
		case "delimiter":
			stored.Delimiter = val
			if _, err := stored.DelimiterRune(); err != nil {
				return err
			}
		case "charts":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for charts: %v", val)
			}
			stored.Charts = b
		case "report_path":
			stored.ReportPath = val
		case "manifest":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for manifest: %v", val)
			}
			stored.Manifest = b
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			stored.SampleRows = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(stored, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
