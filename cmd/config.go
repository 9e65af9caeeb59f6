package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default values for configuration.
const (
	DefaultBarOutput     = "output/language_chart.svg"
	DefaultCompactOutput = "output/full_languages.svg"
	DefaultConcurrency   = 4
	DefaultRate          = 10.0
)

// Config holds the validated runtime configuration of the render command.
type Config struct {
	Token         string
	BarOutput     string
	CompactOutput string
	Concurrency   int
	Rate          float64
	Summary       bool
	Verbose       bool
}

// initConfig loads .env, the optional config file and environment variables into viper.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".reposcope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("REPOSCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	// GITHUB_TOKEN_KP is the variable older setups used.
	_ = viper.BindEnv("token", "GITHUB_TOKEN", "GITHUB_TOKEN_KP")

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config file: %v\n", err)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bar-output", DefaultBarOutput)
	v.SetDefault("compact-output", DefaultCompactOutput)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("rate", DefaultRate)
	v.SetDefault("summary", true)
}

// loadConfig reads and validates the configuration held by v.
func loadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Token:         v.GetString("token"),
		BarOutput:     v.GetString("bar-output"),
		CompactOutput: v.GetString("compact-output"),
		Concurrency:   v.GetInt("concurrency"),
		Rate:          v.GetFloat64("rate"),
		Summary:       v.GetBool("summary"),
		Verbose:       v.GetBool("verbose"),
	}

	if cfg.Token == "" {
		return nil, errors.New("GITHUB_TOKEN environment variable is not set")
	}
	if cfg.BarOutput == "" || cfg.CompactOutput == "" {
		return nil, errors.New("output paths must not be empty")
	}
	if cfg.BarOutput == cfg.CompactOutput {
		return nil, fmt.Errorf("bar and compact charts cannot share the output path %s", cfg.BarOutput)
	}
	if cfg.Concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be greater than 0 (received %d)", cfg.Concurrency)
	}
	if cfg.Rate <= 0 {
		return nil, fmt.Errorf("rate must be greater than 0 (received %g)", cfg.Rate)
	}
	return cfg, nil
}

// newLogger creates a leveled logger writing to w; verbose enables debug output.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
