package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/chart"
	cfgpkg "github.com/aadit1011/Insurance-Price-Prediction-Model/internal/config"
)

const insuranceCSV = `age,sex,bmi,children,smoker,region,charges
19,female,27.9,0,yes,southwest,16884.924
18,male,33.77,1,no,southeast,1725.5523
28,male,33,3,no,southeast,4449.462
33,male,22.705,0,no,northwest,21984.47061
18,male,33.77,1,no,southeast,1725.5523
32,male,28.88,0,no,northwest,3866.8552
31,female,25.74,0,no,southeast,3756.6216
46,female,33.44,1,no,southeast,8240.5896
37,female,27.74,3,no,northwest,7281.5056
37,male,29.83,2,no,northeast,6406.4107
60,female,25.84,0,no,northwest,28923.13692
`

// resetFlags restores defaults so Changed state does not leak across invocations.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	})
}

// runCmd is a helper to execute the root command with args and return stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	require.NoError(t, err, "command %v failed", args)
	return out
}

func execCmd(args ...string) (string, error) {
	resetFlags(rootCmd.PersistentFlags())
	resetFlags(rootCmd.Flags())
	for _, c := range rootCmd.Commands() {
		resetFlags(c.Flags())
	}
	cfg = nil
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolate points HOME at a temp dir and writes the fixture into it.
func isolate(t *testing.T) (home, input string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	input = filepath.Join(home, "insurance.csv")
	require.NoError(t, os.WriteFile(input, []byte(insuranceCSV), 0o644))
	return home, input
}

func TestCLI_RootRunWritesChartsAndManifest(t *testing.T) {
	home, input := isolate(t)
	outDir := filepath.Join(home, "out")
	report := filepath.Join(home, "report.md")

	out := runCmd(t, "--input", input, "--output-dir", outDir, "--report", report, "--manifest")
	assert.Contains(t, out, "Number of duplicate rows: 1")
	for _, c := range chart.Charts() {
		assert.FileExists(t, filepath.Join(outDir, c.File))
	}
	assert.FileExists(t, filepath.Join(outDir, "run_manifest.json"))

	b, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(b), "removed 1 duplicate rows")
}

func TestCLI_NoChartsSkipsRendering(t *testing.T) {
	home, input := isolate(t)
	outDir := filepath.Join(home, "out")
	out := runCmd(t, "--input", input, "--output-dir", outDir, "--no-charts")
	assert.Contains(t, out, "Final dataset head:")
	assert.NoDirExists(t, outDir)
}

func TestCLI_MissingInputFails(t *testing.T) {
	home, _ := isolate(t)
	_, err := execCmd("--input", filepath.Join(home, "missing.csv"), "--no-charts")
	assert.Error(t, err)
}

func TestCLI_AnalyzeToFile(t *testing.T) {
	home, input := isolate(t)
	dest := filepath.Join(home, "summary.md")
	out := runCmd(t, "analyze", input, "-o", dest, "--sample-rows", "2")
	assert.Contains(t, out, "✓ Wrote analysis to")

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	for _, want := range []string{"[DATASET SUMMARY]", "Rows: 10", "[CORRELATION MATRIX]", "removed 1 duplicate rows"} {
		assert.Contains(t, string(b), want)
	}
}

func TestCLI_AnalyzeStdoutUsesConfiguredInput(t *testing.T) {
	_, input := isolate(t)
	runCmd(t, "config", "set", "input", input)
	out := runCmd(t, "analyze")
	assert.Contains(t, out, "File: insurance.csv")
}

func TestCLI_Render(t *testing.T) {
	home, input := isolate(t)
	outDir := filepath.Join(home, "charts")
	out := runCmd(t, "--output-dir", outDir, "render", input)
	assert.Equal(t, 8, strings.Count(out, "✓ Wrote"), out)
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home, _ := isolate(t)
	runCmd(t, "config", "set", "sample_rows", "3")
	runCmd(t, "config", "set", "charts", "false")
	runCmd(t, "config", "set", "delimiter", "tab")
	assert.FileExists(t, filepath.Join(home, ".insurance-eda", "config.yaml"))

	out := runCmd(t, "config", "show")
	for _, want := range []string{"sample_rows: 3", "charts: false", `delimiter: "tab"`} {
		assert.Contains(t, out, want)
	}
	_, err := execCmd("config", "set", "delimiter", "|")
	assert.Error(t, err, "unsupported delimiter")
	_, err = execCmd("config", "set", "colour", "red")
	assert.Error(t, err, "unknown key")
}

func TestCLI_ConfigSetDoesNotPersistOverrides(t *testing.T) {
	home, input := isolate(t)
	t.Setenv("INSURANCE_EDA_OUTPUT_DIR", filepath.Join(home, "env-out"))
	runCmd(t, "--input", input, "--delimiter", "tab", "config", "set", "sample_rows", "3")

	stored, err := cfgpkg.LoadStored("")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.SampleRows)
	assert.Equal(t, "insurance.csv", stored.Input)
	assert.Equal(t, ".", stored.OutputDir)
	assert.Empty(t, stored.Delimiter)
}
