package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for auspex.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Metric thresholds
	Thresholds ThresholdConfig `koanf:"thresholds" toml:"thresholds"`

	// Style rule settings
	Style StyleConfig `koanf:"style" toml:"style"`

	// File inclusion/exclusion
	Files FilesConfig `koanf:"files" toml:"files"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// AnalysisConfig controls which analyzers run.
type AnalysisConfig struct {
	Complexity   bool `koanf:"complexity" toml:"complexity"`
	DeadCode     bool `koanf:"dead_code" toml:"dead_code"`
	Dependencies bool `koanf:"dependencies" toml:"dependencies"`
	Style        bool `koanf:"style" toml:"style"`
	GraphMetrics bool `koanf:"graph_metrics" toml:"graph_metrics"`
}

// ThresholdConfig defines metric thresholds.
type ThresholdConfig struct {
	CyclomaticComplexity int `koanf:"cyclomatic_complexity" toml:"cyclomatic_complexity"`
}

// StyleConfig carries the style analyzer's rule settings.
type StyleConfig struct {
	MaxLineLength      int      `koanf:"max_line_length" toml:"max_line_length"`
	TrailingWhitespace bool     `koanf:"trailing_whitespace" toml:"trailing_whitespace"`
	TabIndentation     bool     `koanf:"tab_indentation" toml:"tab_indentation"`
	IdentifierPattern  string   `koanf:"identifier_pattern" toml:"identifier_pattern"`
	BannedIdentifiers  []string `koanf:"banned_identifiers" toml:"banned_identifiers"`
}

// FilesConfig defines which files are analyzed.
type FilesConfig struct {
	Extensions []string `koanf:"extensions" toml:"extensions"`
	Patterns   []string `koanf:"exclude_patterns" toml:"exclude_patterns"`
	Dirs       []string `koanf:"exclude_dirs" toml:"exclude_dirs"`
	Gitignore  bool     `koanf:"gitignore" toml:"gitignore"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Complexity:   true,
			DeadCode:     true,
			Dependencies: true,
			Style:        true,
			GraphMetrics: false,
		},
		Thresholds: ThresholdConfig{
			CyclomaticComplexity: 10,
		},
		Style: StyleConfig{
			MaxLineLength:      120,
			TrailingWhitespace: true,
			TabIndentation:     true,
		},
		Files: FilesConfig{
			Extensions: []string{
				".js",
				".jsx",
				".mjs",
				".cjs",
				".ts",
				".tsx",
			},
			Patterns: []string{
				"*.min.js",
				"*.bundle.js",
			},
			Dirs: []string{
				"node_modules",
				".git",
				".auspex",
				"dist",
				"build",
				"coverage",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".auspex/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"auspex.toml",
		"auspex.yaml",
		"auspex.yml",
		"auspex.json",
		".auspex.toml",
		".auspex.yaml",
		".auspex.yml",
		".auspex.json",
	}
	searchDirs := []string{".", ".auspex"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}
	return DefaultConfig()
}

// ShouldAnalyze reports whether a path carries one of the configured
// source extensions and is not excluded.
func (c *Config) ShouldAnalyze(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, include := range c.Files.Extensions {
		if ext == include {
			return !c.ShouldExclude(path)
		}
	}
	return false
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Files.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Files.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
