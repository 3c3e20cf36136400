package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pagelift/evalsample/internal/bundle"
	"github.com/pagelift/evalsample/internal/config"
	"github.com/pagelift/evalsample/internal/output"
	"github.com/pagelift/evalsample/internal/watch"
)

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srcDir := args[0]
	outDir := args[1]
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

	if _, err := os.Stat(srcDir); err != nil {
		return fmt.Errorf("source bundle does not exist: %s", srcDir)
	}

	colorMode := output.ColorAuto
	if cfg.NoColor {
		colorMode = output.ColorNever
	}
	output.Colorize(colorMode, cmd.OutOrStdout())

	build := func() error {
		return assembleBundle(cmd, cfg, srcDir, outDir, target)
	}

	if err := build(); err != nil {
		return err
	}

	watchMode, _ := cmd.Flags().GetBool("watch")
	if !watchMode {
		return nil
	}
	return watchBundle(cmd, srcDir, outDir, build)
}

// assembleBundle runs one full assembly and reports it in the configured
// format. The random stream is recreated from the seed on every call, so
// rebuilds in watch mode stay deterministic.
func assembleBundle(cmd *cobra.Command, cfg config.Config, srcDir, outDir string, target int) error {
	out := cmd.OutOrStdout()
	format := output.ParseFormat(cfg.Format)

	// Per-file lines go to non-interactive text output; a progress bar
	// serves interactive runs unless verbose detail was asked for.
	textMode := format == output.FormatText
	showLines := textMode && (cfg.Verbose || !output.IsTTY(out))

	var bar *progressbar.ProgressBar
	if textMode && !showLines {
		files, err := config.ListLogFiles(filepath.Join(srcDir, config.LogsDir))
		if err != nil {
			return err
		}
		bar = newProgress(len(files), "Sampling logs")
	}

	sum := &bundle.RunSummary{}
	asm := bundle.New(bundle.Options{
		SourceDir:   srcDir,
		OutputDir:   outDir,
		TargetCount: target,
		Rand:        rand.New(rand.NewSource(cfg.Seed)),
		OnLog: func(r bundle.LogReport) {
			sum.Add(r)
			if bar != nil {
				_ = bar.Add(1)
			}
			if showLines {
				printLogReport(out, r)
			}
		},
	})

	dir, err := asm.Assemble()
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(out)
	}
	if err != nil {
		return err
	}
	sum.OutputDir = dir

	return output.New(out, format).WriteRunSummary(sum)
}

// printLogReport writes one per-file progress line.
func printLogReport(w io.Writer, r bundle.LogReport) {
	name := output.Emphasize(r.Name)
	if r.Sampled {
		sizes := fmt.Sprintf("%s -> %s", humanize.Bytes(uint64(r.BytesIn)), humanize.Bytes(uint64(r.BytesOut)))
		fmt.Fprintf(w, "%s: %s %d of %d examples (%s)\n", name, output.Notice("sampled"), r.Kept, r.Original, sizes)
	} else {
		fmt.Fprintf(w, "%s: %s all %d examples\n", name, output.Success("kept"), r.Original)
	}
}

func newProgress(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetItsString("logs"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// watchBundle rebuilds the output whenever the source tree changes,
// until interrupted. A failed rebuild is reported but does not stop the
// watch; the next change gets a fresh attempt.
func watchBundle(cmd *cobra.Command, srcDir, outDir string, build func() error) error {
	if inside, err := isSubPath(srcDir, outDir); err != nil {
		return err
	} else if inside {
		return fmt.Errorf("output dir %s is inside the watched source %s", outDir, srcDir)
	}

	errOut := cmd.ErrOrStderr()
	w := watch.New(watch.Options{
		Dir: srcDir,
		OnChange: func() error {
			fmt.Fprintln(errOut, "Source changed, rebuilding")
			if err := build(); err != nil {
				fmt.Fprintln(errOut, output.Fail(err.Error()))
			}
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Run(ctx)
	}()

	fmt.Fprintf(errOut, "Watching %s for changes\n", srcDir)

	select {
	case <-sigChan:
		cancel()
		<-errChan
		return nil
	case err := <-errChan:
		return err
	}
}

// isSubPath reports whether child is the same directory as parent or
// sits anywhere below it.
func isSubPath(parent, child string) (bool, error) {
	absParent, err := filepath.Abs(parent)
	if err != nil {
		return false, err
	}
	absChild, err := filepath.Abs(child)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absParent, absChild)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}
