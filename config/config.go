package config

import "time"

// Config represents the complete pkt configuration
type Config struct {
	BaseDir  string       `yaml:"-" toml:"-"`                 // Directory containing config file, for resolving relative paths
	Input    string       `yaml:"input" toml:"input"`         // Default input file ("-" for stdin)
	Dividers []string     `yaml:"dividers" toml:"dividers"`   // Divider packets injected before sorting
	MaxDepth int          `yaml:"max_depth" toml:"max_depth"` // Parser nesting limit (0 = unlimited)
	Output   OutputConfig `yaml:"output" toml:"output"`
	Store    StoreConfig  `yaml:"store" toml:"store"`
	Watch    WatchConfig  `yaml:"watch" toml:"watch"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"` // text, json, yaml, markdown, html
	Trace  bool   `yaml:"trace" toml:"trace"`   // Print every pair and the sorted list
	Color  bool   `yaml:"color" toml:"color"`   // Colour verdicts in text output
	Locale string `yaml:"locale" toml:"locale"` // Number and date formatting locale, e.g. "de_de"
}

// StoreConfig configures the run history database
type StoreConfig struct {
	Driver string `yaml:"driver" toml:"driver"` // sqlite, postgres, mysql
	DSN    string `yaml:"dsn" toml:"dsn"`       // Connection string or sqlite file path
}

// WatchConfig configures watch mode
type WatchConfig struct {
	Debounce string `yaml:"debounce" toml:"debounce"` // e.g. "100ms"
}

// DebounceDuration returns the parsed debounce interval, or the default when
// unset or invalid.
func (w WatchConfig) DebounceDuration() time.Duration {
	if d, err := time.ParseDuration(w.Debounce); err == nil && d > 0 {
		return d
	}
	return 100 * time.Millisecond
}

// Output formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Defaults returns a Config with default values
func Defaults() *Config {
	return &Config{
		Input:    "-",
		Dividers: []string{"[[2]]", "[[6]]"},
		MaxDepth: 4096,
		Output: OutputConfig{
			Format: FormatText,
			Color:  true,
			Locale: "en",
		},
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    "pkt_history.db",
		},
		Watch: WatchConfig{
			Debounce: "100ms",
		},
	}
}
