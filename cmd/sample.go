package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pagelift/evalsample/internal/logdoc"
	"github.com/pagelift/evalsample/internal/sampler"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <log.json> <output.json> [num_samples]",
	Short: "Sample a single evaluation log file",
	Long: `Reduce one evaluation log file to at most the target number of
examples, rewriting its summary fields to match. The output is written
as pretty-printed JSON even when no reduction was needed.

Examples:
  evalsample sample logs/run_a.json run_a_small.json
  evalsample sample logs/run_a.json run_a_small.json 25
  evalsample sample --seed 7 logs/run_a.json run_a_small.json`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srcPath := args[0]
	outPath := args[1]
	target := cfg.Samples
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid sample count %q: %w", args[2], err)
		}
		target = n
	}
	if target < 0 {
		return fmt.Errorf("sample count must not be negative, got %d", target)
	}

	doc, err := logdoc.ParseFile(srcPath)
	if err != nil {
		return err
	}

	s := sampler.New(target, rand.New(rand.NewSource(cfg.Seed)))
	res, err := s.Sample(doc)
	if err != nil {
		return fmt.Errorf("sample %s: %w", filepath.Base(srcPath), err)
	}

	data, err := doc.MarshalIndent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Sampled {
		fmt.Fprintf(out, "Wrote %s with %d of %d examples\n", outPath, res.Kept, res.Original)
	} else {
		fmt.Fprintf(out, "Wrote %s with all %d examples\n", outPath, res.Original)
	}
	return nil
}
