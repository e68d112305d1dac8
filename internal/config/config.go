package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. INSURANCE_EDA_INPUT.
	EnvPrefix = "INSURANCE_EDA"
	dirName   = ".insurance-eda"
)

// Global configuration structure.
type Global struct {
	Input      string `mapstructure:"input" yaml:"input"`
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	Charts     bool   `mapstructure:"charts" yaml:"charts"`
	ReportPath string `mapstructure:"report_path" yaml:"report_path"`
	Manifest   bool   `mapstructure:"manifest" yaml:"manifest"`
	SampleRows int    `mapstructure:"sample_rows" yaml:"sample_rows"`
}

// Defaults reproduce the fixed behaviour: read insurance.csv and write the
// charts into the working directory.
func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "insurance.csv")
	v.SetDefault("output_dir", ".")
	v.SetDefault("delimiter", "")
	v.SetDefault("charts", true)
	v.SetDefault("report_path", "")
	v.SetDefault("manifest", false)
	v.SetDefault("sample_rows", 5)
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.insurance-eda/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, dirName)
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

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. CLI flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	return load(cfgFile, true)
}

// LoadStored loads only what is persisted: defaults and the config file.
// Use it before Save so environment overrides are not written back.
func LoadStored(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, env bool) (*Global, error) {
	v := viper.New()
	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()
	}
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return &c, nil
}

// DelimiterRune maps the configured delimiter name to a rune; 0 means auto.
func (c *Global) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ','|';'|'tab')", c.Delimiter)
	}
}
