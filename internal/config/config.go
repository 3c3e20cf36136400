// Package config provides configuration types and helpers for evalsample.
package config

// Default values applied when neither flags, environment, nor a config
// file override them.
const (
	// DefaultSampleCount is the number of examples kept per log file.
	DefaultSampleCount = 10

	// DefaultSeed initializes the random stream so repeat runs over the
	// same bundle produce identical output.
	DefaultSeed = 42
)

// Well-known paths inside an evaluation log bundle. The same layout is
// used for the source bundle and the sampled copy.
const (
	// AssetsDir holds the viewer's static assets (css, js, images).
	AssetsDir = "assets"

	// LogsDir holds the per-run evaluation log files.
	LogsDir = "logs"

	// IndexFile is the manifest inside LogsDir mapping each log file
	// name to its full document. It is regenerated, never copied.
	IndexFile = "logs.json"

	// IndexHTML is the viewer entry point at the bundle root.
	IndexHTML = "index.html"

	// RobotsFile is the crawler policy file at the bundle root.
	RobotsFile = "robots.txt"

	// MarkerFile disables Jekyll processing on GitHub Pages.
	MarkerFile = ".nojekyll"
)

// Config holds the application-wide configuration.
type Config struct {
	Samples int    `mapstructure:"samples"`  // examples kept per log file
	Seed    int64  `mapstructure:"seed"`     // random stream seed
	Format  string `mapstructure:"format"`   // output format: text, json, table
	Verbose bool   `mapstructure:"verbose"`  // per-file detail on the console
	NoColor bool   `mapstructure:"no_color"` // disable ANSI colors
}
