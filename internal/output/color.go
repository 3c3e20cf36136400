package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether w writes to a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// shouldColorize determines if output should be colorized based on mode
// and TTY detection.
func shouldColorize(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		return IsTTY(w)
	}
	return false
}

// Colorize configures the process-wide color state for the given mode
// and destination. The helpers below become pass-throughs when colors
// are off.
func Colorize(mode ColorMode, w io.Writer) {
	color.NoColor = !shouldColorize(mode, w)
}

// Emphasize renders s in bold, for file names and headers.
func Emphasize(s string) string {
	return color.New(color.Bold).Sprint(s)
}

// Success renders s in green, for completed work.
func Success(s string) string {
	return color.New(color.FgGreen).Sprint(s)
}

// Notice renders s in yellow, for reductions and other notable changes.
func Notice(s string) string {
	return color.New(color.FgYellow).Sprint(s)
}

// Fail renders s in red, for errors.
func Fail(s string) string {
	return color.New(color.FgRed).Sprint(s)
}
