package main

import (
	"fmt"
	"path/filepath"

	"github.com/panbanda/auspex/internal/cache"
	"github.com/panbanda/auspex/internal/output"
	"github.com/panbanda/auspex/internal/scanner"
	analysissvc "github.com/panbanda/auspex/internal/service/analysis"
	scansvc "github.com/panbanda/auspex/internal/service/scanner"
	"github.com/panbanda/auspex/internal/vcs"
	"github.com/panbanda/auspex/pkg/config"
	"github.com/panbanda/auspex/pkg/source"
	"github.com/urfave/cli/v2"
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig loads the configuration and applies global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	if c.String("format") != "" {
		cfg.Output.Format = c.String("format")
	}
	if c.Bool("no-color") {
		cfg.Output.Color = false
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// newFormatter builds an output formatter from the configuration and the
// --output flag.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	return output.NewFormatter(
		output.ParseFormat(cfg.Output.Format),
		c.String("output"),
		cfg.Output.Color,
	)
}

// targets is the resolved input of an analysis run: which files to read,
// where to read them from, and the root report paths are relative to.
type targets struct {
	Files []string
	Root  string
	Src   source.ContentSource
}

// resolveTargets enumerates the files to analyze. With --ref the file list
// comes from the git tree at that revision and contents are read from the
// repository instead of the working tree.
func resolveTargets(c *cli.Context, cfg *config.Config) (*targets, error) {
	paths := getPaths(c)

	if ref := c.String("ref"); ref != "" {
		return resolveTreeTargets(cfg, paths[0], ref)
	}

	result, err := scansvc.New(scansvc.WithConfig(cfg)).ScanPaths(paths)
	if err != nil {
		return nil, err
	}
	return &targets{
		Files: result.Files,
		Root:  result.Root,
		Src:   source.NewFilesystem(),
	}, nil
}

// resolveTreeTargets lists source files from the tree at a git revision.
func resolveTreeTargets(cfg *config.Config, path, ref string) (*targets, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", path, err)
	}
	repoRoot := scanner.FindGitRoot(absPath)
	if repoRoot == "" {
		return nil, fmt.Errorf("--ref requires a git repository, none found at %s", path)
	}

	repo, err := vcs.DefaultOpener.PlainOpen(repoRoot)
	if err != nil {
		return nil, err
	}
	tree, err := repo.TreeAt(ref)
	if err != nil {
		return nil, err
	}

	all, err := tree.Files()
	if err != nil {
		return nil, err
	}
	var files []string
	for _, f := range all {
		if cfg.ShouldAnalyze(f) {
			files = append(files, f)
		}
	}

	// Tree paths are already repository-relative, so reports use them
	// verbatim.
	return &targets{Files: files, Src: source.NewTree(tree)}, nil
}

// newAnalysisService wires the analysis service with the configured cache
// and content source.
func newAnalysisService(cfg *config.Config, src source.ContentSource) *analysissvc.Service {
	opts := []analysissvc.Option{
		analysissvc.WithConfig(cfg),
		analysissvc.WithSource(src),
	}
	if cfg.Cache.Enabled {
		if c, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true); err == nil {
			opts = append(opts, analysissvc.WithCache(c))
		}
	}
	return analysissvc.New(opts...)
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
