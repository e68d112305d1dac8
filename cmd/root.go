package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/aadit1011/Insurance-Price-Prediction-Model/internal/config"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	// Global flags (override config if set)
	cfgFile       string
	debug         bool
	flagInput     string
	flagOutputDir string
	flagDelimiter string

	// Root run flags
	runNoCharts bool
	runReport   string
	runManifest bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "insurance-eda",
	Short: "Exploratory analysis of the insurance dataset",
	Long: `insurance-eda loads the insurance CSV, removes duplicate rows, prints summary
statistics and correlations, encodes region/smoker/sex and renders eight charts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		opt, err := pipelineOptions(c)
		if err != nil {
			return err
		}
		opt.Charts = c.Charts && !runNoCharts
		if cmd.Flags().Changed("report") {
			opt.ReportPath = runReport
		}
		if cmd.Flags().Changed("manifest") {
			opt.Manifest = runManifest
		}
		_, err = pipeline.Run(opt, cmd.OutOrStdout())
		return err
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)

	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.insurance-eda/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagInput, "input", "", "input CSV (overrides config, default insurance.csv)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "directory for charts and manifest (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto if omitted)")

	rootCmd.Flags().BoolVar(&runNoCharts, "no-charts", false, "skip chart rendering")
	rootCmd.Flags().StringVar(&runReport, "report", "", "also write the Markdown analysis report to this path")
	rootCmd.Flags().BoolVar(&runManifest, "manifest", false, "write run_manifest.json into the output directory")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("input") && flagInput != "" {
		cfg.Input = flagInput
	}
	if f.Changed("output-dir") && flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
}

// currentConfig returns the loaded configuration, or defaults with the CLI
// overrides applied when loading failed.
func currentConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	c := cfgpkg.Default()
	if flagInput != "" {
		c.Input = flagInput
	}
	if flagOutputDir != "" {
		c.OutputDir = flagOutputDir
	}
	if flagDelimiter != "" {
		c.Delimiter = flagDelimiter
	}
	return c
}

func pipelineOptions(c *cfgpkg.Global) (pipeline.Options, error) {
	delim, err := c.DelimiterRune()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Input:      c.Input,
		OutputDir:  c.OutputDir,
		Delimiter:  delim,
		Charts:     c.Charts,
		ReportPath: c.ReportPath,
		Manifest:   c.Manifest,
		SampleRows: c.SampleRows,
		Debug:      debug,
	}, nil
}
