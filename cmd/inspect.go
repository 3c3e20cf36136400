package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pagelift/evalsample/internal/bundle"
	"github.com/pagelift/evalsample/internal/output"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <bundle_dir>",
	Short: "Summarize an evaluation log bundle",
	Long: `Read a bundle without modifying it and report each log file's task,
example count, and size, plus the bundle's total footprint. Works on
source bundles and sampled output alike.

Examples:
  evalsample inspect my-logs-www
  evalsample inspect --format json my-logs-www-sampled
  evalsample inspect --format table my-logs-www`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	info, err := bundle.Inspect(args[0])
	if err != nil {
		return err
	}

	return output.New(cmd.OutOrStdout(), output.ParseFormat(cfg.Format)).WriteBundleInfo(info)
}
