package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pagelift/evalsample/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "evalsample <source_bundle> <output_dir> [num_samples]",
	Short: "Shrink evaluation log bundles for static publishing",
	Long: `Evalsample builds a reduced copy of an evaluation log bundle, small
enough to publish on a static web host such as GitHub Pages.

Each log file's examples are randomly subsampled down to a fixed count,
the derived summary fields are rewritten to match, the viewer's static
assets are copied verbatim, and a fresh logs.json manifest is generated
for the sampled logs. Runs are deterministic: the same source, target
count, and seed produce byte-identical output.

Examples:
  evalsample my-logs-www my-logs-www-sampled
  evalsample my-logs-www my-logs-www-sampled 25
  evalsample --seed 7 my-logs-www my-logs-www-sampled
  evalsample --watch my-logs-www my-logs-www-sampled`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runRoot,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.evalsample.yaml)")
	rootCmd.PersistentFlags().IntP("samples", "n", config.DefaultSampleCount, "examples to keep per log file")
	rootCmd.PersistentFlags().Int64("seed", config.DefaultSeed, "random seed for example selection")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.Flags().BoolP("watch", "w", false, "rebuild whenever the source bundle changes")

	_ = viper.BindPFlag("samples", rootCmd.PersistentFlags().Lookup("samples"))
	_ = viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".evalsample")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("EVALSAMPLE")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("samples", config.DefaultSampleCount)
	viper.SetDefault("seed", config.DefaultSeed)
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("no_color", false)

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig decodes the effective settings from flags, environment,
// and config file into one Config value.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
