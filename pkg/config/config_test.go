package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	// Check analysis defaults
	if !cfg.Analysis.Complexity {
		t.Error("Analysis.Complexity should be true by default")
	}
	if !cfg.Analysis.DeadCode {
		t.Error("Analysis.DeadCode should be true by default")
	}
	if !cfg.Analysis.Dependencies {
		t.Error("Analysis.Dependencies should be true by default")
	}
	if cfg.Analysis.GraphMetrics {
		t.Error("Analysis.GraphMetrics should be false by default")
	}

	// Check threshold defaults
	if cfg.Thresholds.CyclomaticComplexity != 10 {
		t.Errorf("Thresholds.CyclomaticComplexity = %d, want 10", cfg.Thresholds.CyclomaticComplexity)
	}

	// Check style defaults
	if cfg.Style.MaxLineLength != 120 {
		t.Errorf("Style.MaxLineLength = %d, want 120", cfg.Style.MaxLineLength)
	}
	if !cfg.Style.TrailingWhitespace {
		t.Error("Style.TrailingWhitespace should be true by default")
	}

	// Check file defaults
	if !cfg.Files.Gitignore {
		t.Error("Files.Gitignore should be true by default")
	}
	if len(cfg.Files.Extensions) == 0 {
		t.Error("Files.Extensions should have default values")
	}
	if len(cfg.Files.Dirs) == 0 {
		t.Error("Files.Dirs should have default values")
	}

	// Check cache defaults
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be true by default")
	}
	if cfg.Cache.TTL != 24 {
		t.Errorf("Cache.TTL = %d, want 24", cfg.Cache.TTL)
	}

	// Check output defaults
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %s, want text", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color should be true by default")
	}
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "auspex.toml")

	content := `
[analysis]
complexity = true
style = false
graph_metrics = true

[thresholds]
cyclomatic_complexity = 15

[style]
max_line_length = 100
banned_identifiers = ["eval", "with"]

[files]
exclude_dirs = ["node_modules", "custom_exclude"]
exclude_patterns = ["*.generated.js"]

[cache]
enabled = false

[output]
format = "json"
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Style {
		t.Error("Analysis.Style should be false")
	}
	if !cfg.Analysis.GraphMetrics {
		t.Error("Analysis.GraphMetrics should be true")
	}
	if cfg.Thresholds.CyclomaticComplexity != 15 {
		t.Errorf("Thresholds.CyclomaticComplexity = %d, want 15", cfg.Thresholds.CyclomaticComplexity)
	}
	if cfg.Style.MaxLineLength != 100 {
		t.Errorf("Style.MaxLineLength = %d, want 100", cfg.Style.MaxLineLength)
	}
	if len(cfg.Style.BannedIdentifiers) != 2 {
		t.Errorf("Style.BannedIdentifiers = %v", cfg.Style.BannedIdentifiers)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want json", cfg.Output.Format)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "auspex.yaml")

	content := `
analysis:
  complexity: true
  style: false

thresholds:
  cyclomatic_complexity: 20

output:
  format: markdown
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Style {
		t.Error("Analysis.Style should be false")
	}
	if cfg.Thresholds.CyclomaticComplexity != 20 {
		t.Errorf("Thresholds.CyclomaticComplexity = %d, want 20", cfg.Thresholds.CyclomaticComplexity)
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("Output.Format = %s, want markdown", cfg.Output.Format)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "auspex.json")

	content := `{
  "analysis": {
    "complexity": true,
    "style": false
  },
  "thresholds": {
    "cyclomatic_complexity": 25
  },
  "output": {
    "format": "toon"
  }
}`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Style {
		t.Error("Analysis.Style should be false")
	}
	if cfg.Thresholds.CyclomaticComplexity != 25 {
		t.Errorf("Thresholds.CyclomaticComplexity = %d, want 25", cfg.Thresholds.CyclomaticComplexity)
	}
	if cfg.Output.Format != "toon" {
		t.Errorf("Output.Format = %s, want toon", cfg.Output.Format)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/auspex.toml")
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "auspex.toml")

	// Invalid TOML
	content := `[analysis
invalid toml`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() should return error for invalid config")
	}
}

func TestLoadOrDefault(t *testing.T) {
	// In a directory without config files, should return defaults
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	cfg := LoadOrDefault()
	if cfg == nil {
		t.Fatal("LoadOrDefault() returned nil")
	}
	if cfg.Style.MaxLineLength != 120 {
		t.Errorf("LoadOrDefault() returned non-default MaxLineLength: %d", cfg.Style.MaxLineLength)
	}
}

func TestLoadOrDefaultWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	content := `
[style]
max_line_length = 999
`
	if err := os.WriteFile(filepath.Join(tmpDir, "auspex.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	cfg := LoadOrDefault()
	if cfg.Style.MaxLineLength != 999 {
		t.Errorf("LoadOrDefault() should load from file, got MaxLineLength=%d", cfg.Style.MaxLineLength)
	}
}

func TestShouldAnalyze(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"src/app.js", true},
		{"src/App.tsx", true},
		{"lib/util.mjs", true},
		{"node_modules/pkg/index.js", false},
		{"app.min.js", false},
		{"main.go", false},
		{"README.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cfg.ShouldAnalyze(tt.path); got != tt.want {
				t.Errorf("ShouldAnalyze(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		// Excluded directories
		{"node_modules/pkg/file.js", true},
		{".git/objects/file", true},
		{"dist/bundle.js", true},

		// Excluded patterns
		{"app.min.js", true},
		{"vendor.bundle.js", true},

		// Not excluded
		{"src/main.js", false},
		{"pkg/util/helper.ts", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := cfg.ShouldExclude(tt.path)
			if got != tt.want {
				t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestShouldExcludePathsWithSeparators(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join("src", "node_modules", "pkg", "file.js"), true},
		{filepath.Join("node_modules", "file.js"), true},
		{filepath.Join("src", "main.js"), false},
		{filepath.Join("pkg", "dist_utils.js"), false}, // "dist" in name, not directory
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := cfg.ShouldExclude(tt.path)
			if got != tt.want {
				t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
