package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from a file with ENV interpolation.
// If configPath is empty, it searches default locations; when none exists the
// defaults are returned.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	cfg, _, err := LoadWithPath(configPath, getenv)
	return cfg, err
}

// LoadWithPath reads configuration and returns both the config and the
// resolved path. The path is empty when no config file was found.
func LoadWithPath(configPath string, getenv func(string) string) (*Config, string, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		cfg := Defaults()
		cfg.BaseDir, _ = os.Getwd()
		return cfg, "", nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	baseDir := filepath.Dir(absPath)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.BaseDir = baseDir

	// Resolve relative input path
	if cfg.Input != "" && cfg.Input != "-" && !filepath.IsAbs(cfg.Input) {
		cfg.Input = filepath.Join(baseDir, cfg.Input)
	}

	// Resolve relative sqlite path
	if cfg.Store.Driver == "sqlite" && cfg.Store.DSN != "" && cfg.Store.DSN != ":memory:" && !filepath.IsAbs(cfg.Store.DSN) {
		cfg.Store.DSN = filepath.Join(baseDir, cfg.Store.DSN)
	}

	if err := Validate(cfg); err != nil {
		return nil, "", err
	}

	return cfg, absPath, nil
}

// resolveConfigPath finds the config file to use.
// Search order: explicit path > PKT_CONFIG env > ./pkt.yaml > ./pkt.yml > ./pkt.toml
func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv("PKT_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("PKT_CONFIG file not found: %s", envPath)
		}
		return envPath, nil
	}

	for _, name := range []string{"pkt.yaml", "pkt.yml", "pkt.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	return "", nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := string(parts[1])
		value := getenv(varName)

		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}

		return []byte(value)
	})
}

// Validate checks the configuration for errors.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.Output.Format {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML:
	default:
		errs = append(errs, fmt.Sprintf("output.format: unknown format %q (supported: text, json, yaml, markdown, html)", cfg.Output.Format))
	}

	switch cfg.Store.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("store.driver: unknown driver %q (supported: sqlite, postgres, mysql)", cfg.Store.Driver))
	}

	if cfg.MaxDepth < 0 {
		errs = append(errs, fmt.Sprintf("max_depth: must not be negative, got %d", cfg.MaxDepth))
	}

	if cfg.Watch.Debounce != "" {
		if _, err := time.ParseDuration(cfg.Watch.Debounce); err != nil {
			errs = append(errs, fmt.Sprintf("watch.debounce: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
