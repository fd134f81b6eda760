// Package analysis orchestrates the tokenizer and the analyzers over a set
// of files. Each file is tokenized once and the token stream is shared by
// every enabled analyzer.
package analysis

import (
	"context"
	"encoding/json"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/panbanda/auspex/internal/cache"
	"github.com/panbanda/auspex/internal/fileproc"
	"github.com/panbanda/auspex/pkg/analyzer/complexity"
	"github.com/panbanda/auspex/pkg/analyzer/deadcode"
	"github.com/panbanda/auspex/pkg/analyzer/deps"
	"github.com/panbanda/auspex/pkg/analyzer/style"
	"github.com/panbanda/auspex/pkg/config"
	"github.com/panbanda/auspex/pkg/lexer"
	"github.com/panbanda/auspex/pkg/source"
	"github.com/panbanda/auspex/pkg/token"
)

// Service orchestrates code analysis operations.
type Service struct {
	config *config.Config
	source source.ContentSource
	cache  *cache.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithSource sets the content source files are read from.
func WithSource(src source.ContentSource) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithCache sets the result cache.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// New creates a new analysis service.
func New(opts ...Option) *Service {
	s := &Service{
		config: config.LoadOrDefault(),
		source: source.NewFilesystem(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileRecord holds everything the analyzers found in one file. Path is the
// identifier used in reports and in the dependency graph.
type FileRecord struct {
	Path       string               `json:"path" toon:"path"`
	TokenCount int                  `json:"token_count" toon:"token_count"`
	Functions  []complexity.Result  `json:"functions,omitempty" toon:"functions,omitempty"`
	DeadCode   []deadcode.Issue     `json:"dead_code,omitempty" toon:"dead_code,omitempty"`
	Style      []style.Issue        `json:"style,omitempty" toon:"style,omitempty"`
	Imports    []deps.ImportRecord  `json:"imports,omitempty" toon:"imports,omitempty"`
}

// Report is the combined result of a project run. Sections for disabled
// analyzers are nil.
type Report struct {
	Files        []FileRecord         `json:"files" toon:"files"`
	Complexity   *complexity.Analysis `json:"complexity,omitempty" toon:"complexity,omitempty"`
	DeadCode     *deadcode.Analysis   `json:"dead_code,omitempty" toon:"dead_code,omitempty"`
	Style        *style.Analysis      `json:"style,omitempty" toon:"style,omitempty"`
	Dependencies *deps.Analysis       `json:"dependencies,omitempty" toon:"dependencies,omitempty"`
}

// Options configures a project run.
type Options struct {
	// Root is the directory paths are reported relative to. Empty means
	// paths are reported as given.
	Root string
	// OnProgress is called once per file, including failed ones.
	OnProgress func()
}

// Tokenize reads and tokenizes a single file.
func (s *Service) Tokenize(path string) ([]token.Token, error) {
	content, err := s.source.Read(path)
	if err != nil {
		return nil, err
	}
	return lexer.Tokenize(string(content)), nil
}

// AnalyzeFile runs every enabled analyzer over a single file's content.
func (s *Service) AnalyzeFile(id string, content []byte) *FileRecord {
	tokens := lexer.Tokenize(string(content))
	src := string(content)

	record := &FileRecord{Path: id, TokenCount: len(tokens)}
	if s.config.Analysis.Complexity {
		record.Functions = complexity.Analyze(tokens)
	}
	if s.config.Analysis.DeadCode {
		record.DeadCode = deadcode.Analyze(tokens, src)
	}
	if s.config.Analysis.Style {
		record.Style = s.styleAnalyzer().Analyze(tokens, src)
	}
	if s.config.Analysis.Dependencies {
		record.Imports = deps.Extract(tokens)
	}
	return record
}

// Analyze runs the enabled analyzers over all files in parallel and
// assembles the combined report. File read failures are collected rather
// than aborting the run; the error is non-nil only when the context is
// cancelled or every file failed.
func (s *Service) Analyze(ctx context.Context, files []string, opts Options) (*Report, *fileproc.ProcessingErrors, error) {
	records, errs := fileproc.ForEachFileWithContextAndProgress(ctx, files, func(path string) (*FileRecord, error) {
		id := s.reportID(opts.Root, path)

		content, err := s.source.Read(path)
		if err != nil {
			return nil, err
		}

		if record, ok := s.cachedRecord(id, content); ok {
			return record, nil
		}

		record := s.AnalyzeFile(id, content)
		s.storeRecord(id, content, record)
		return record, nil
	}, opts.OnProgress)

	if err := ctx.Err(); err != nil {
		return nil, errs, err
	}
	if len(records) == 0 && errs.HasErrors() {
		return nil, errs, errs
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })

	report := &Report{Files: make([]FileRecord, len(records))}
	for i, r := range records {
		report.Files[i] = *r
	}

	if s.config.Analysis.Complexity {
		results := make([]complexity.FileResult, len(records))
		for i, r := range records {
			results[i] = complexity.NewFileResult(r.Path, r.Functions)
		}
		report.Complexity = complexity.BuildAnalysis(results)
	}
	if s.config.Analysis.DeadCode {
		results := make([]deadcode.FileResult, len(records))
		for i, r := range records {
			results[i] = deadcode.FileResult{Path: r.Path, Issues: r.DeadCode}
		}
		report.DeadCode = deadcode.BuildAnalysis(results)
	}
	if s.config.Analysis.Style {
		results := make([]style.FileResult, len(records))
		for i, r := range records {
			results[i] = style.FileResult{Path: r.Path, Issues: r.Style}
		}
		report.Style = style.BuildAnalysis(results)
	}
	if s.config.Analysis.Dependencies {
		imports := make([]deps.FileImports, len(records))
		for i, r := range records {
			imports[i] = deps.FileImports{Path: r.Path, Imports: r.Imports}
		}
		report.Dependencies = deps.BuildAnalysis(imports, s.config.Analysis.GraphMetrics)
	}

	return report, errs, nil
}

// ComplexityOptions configures complexity analysis.
type ComplexityOptions struct {
	// Threshold filters the report down to functions at or above the
	// given score. Zero means the configured threshold; negative keeps
	// every function.
	Threshold  int
	OnProgress func()
}

// AnalyzeComplexity runs cyclomatic complexity analysis on the given files.
func (s *Service) AnalyzeComplexity(ctx context.Context, files []string, root string, opts ComplexityOptions) (*complexity.Analysis, error) {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = s.config.Thresholds.CyclomaticComplexity
	}

	results, errs := fileproc.ForEachFileWithContextAndProgress(ctx, files, func(path string) (complexity.FileResult, error) {
		tokens, err := s.Tokenize(path)
		if err != nil {
			return complexity.FileResult{}, err
		}
		functions := complexity.Analyze(tokens)
		if threshold > 0 {
			kept := functions[:0]
			for _, fn := range functions {
				if fn.Score >= threshold {
					kept = append(kept, fn)
				}
			}
			functions = kept
		}
		return complexity.NewFileResult(s.reportID(root, path), functions), nil
	}, opts.OnProgress)

	if err := runError(ctx, results, errs); err != nil {
		return nil, err
	}
	sortFileResults(results, func(fr complexity.FileResult) string { return fr.Path })
	return complexity.BuildAnalysis(results), nil
}

// DeadCodeOptions configures dead code detection.
type DeadCodeOptions struct {
	OnProgress func()
}

// AnalyzeDeadCode detects unreachable statements in the given files.
func (s *Service) AnalyzeDeadCode(ctx context.Context, files []string, root string, opts DeadCodeOptions) (*deadcode.Analysis, error) {
	results, errs := fileproc.ForEachFileWithContextAndProgress(ctx, files, func(path string) (deadcode.FileResult, error) {
		content, err := s.source.Read(path)
		if err != nil {
			return deadcode.FileResult{}, err
		}
		src := string(content)
		issues := deadcode.Analyze(lexer.Tokenize(src), src)
		return deadcode.FileResult{Path: s.reportID(root, path), Issues: issues}, nil
	}, opts.OnProgress)

	if err := runError(ctx, results, errs); err != nil {
		return nil, err
	}
	sortFileResults(results, func(fr deadcode.FileResult) string { return fr.Path })
	return deadcode.BuildAnalysis(results), nil
}

// StyleOptions configures style checking.
type StyleOptions struct {
	OnProgress func()
}

// AnalyzeStyle runs the configured style rules over the given files.
func (s *Service) AnalyzeStyle(ctx context.Context, files []string, root string, opts StyleOptions) (*style.Analysis, error) {
	checker := s.styleAnalyzer()

	results, errs := fileproc.ForEachFileWithContextAndProgress(ctx, files, func(path string) (style.FileResult, error) {
		content, err := s.source.Read(path)
		if err != nil {
			return style.FileResult{}, err
		}
		src := string(content)
		issues := checker.Analyze(lexer.Tokenize(src), src)
		return style.FileResult{Path: s.reportID(root, path), Issues: issues}, nil
	}, opts.OnProgress)

	if err := runError(ctx, results, errs); err != nil {
		return nil, err
	}
	sortFileResults(results, func(fr style.FileResult) string { return fr.Path })
	return style.BuildAnalysis(results), nil
}

// GraphOptions configures dependency graph analysis.
type GraphOptions struct {
	IncludeMetrics bool
	OnProgress     func()
}

// AnalyzeGraph builds the import graph for the given files and detects
// cycles. Metrics are computed when requested here or enabled in the
// configuration.
func (s *Service) AnalyzeGraph(ctx context.Context, files []string, root string, opts GraphOptions) (*deps.Analysis, error) {
	results, errs := fileproc.ForEachFileWithContextAndProgress(ctx, files, func(path string) (deps.FileImports, error) {
		tokens, err := s.Tokenize(path)
		if err != nil {
			return deps.FileImports{}, err
		}
		return deps.FileImports{Path: s.reportID(root, path), Imports: deps.Extract(tokens)}, nil
	}, opts.OnProgress)

	if err := runError(ctx, results, errs); err != nil {
		return nil, err
	}
	sortFileResults(results, func(fi deps.FileImports) string { return fi.Path })

	withMetrics := opts.IncludeMetrics || s.config.Analysis.GraphMetrics
	return deps.BuildAnalysis(results, withMetrics), nil
}

// styleAnalyzer builds a style analyzer from the configuration.
func (s *Service) styleAnalyzer() *style.Analyzer {
	opts := []style.Option{
		style.WithMaxLineLength(s.config.Style.MaxLineLength),
		style.WithTrailingWhitespace(s.config.Style.TrailingWhitespace),
		style.WithTabIndentation(s.config.Style.TabIndentation),
	}
	if s.config.Style.IdentifierPattern != "" {
		if pattern, err := regexp.Compile(s.config.Style.IdentifierPattern); err == nil {
			opts = append(opts, style.WithIdentifierPattern(pattern))
		}
	}
	if len(s.config.Style.BannedIdentifiers) > 0 {
		opts = append(opts, style.WithBannedIdentifiers(s.config.Style.BannedIdentifiers))
	}
	return style.New(opts...)
}

// reportID converts an on-disk path to the identifier used in reports.
// Identifiers are slash-separated and relative to root when root is set.
func (s *Service) reportID(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// cachedRecord returns the cached record for id when the content hash
// still matches.
func (s *Service) cachedRecord(id string, content []byte) (*FileRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, ok := s.cache.GetWithHash(id, cache.HashBytes(content))
	if !ok {
		return nil, false
	}
	var record FileRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false
	}
	return &record, true
}

// storeRecord caches a record keyed by id and content hash.
func (s *Service) storeRecord(id string, content []byte, record *FileRecord) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	s.cache.SetWithHash(id, cache.HashBytes(content), data)
}

// runError folds a parallel run's outcome into a single error.
func runError[T any](ctx context.Context, results []T, errs *fileproc.ProcessingErrors) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(results) == 0 && errs.HasErrors() {
		return errs
	}
	return nil
}

// sortFileResults orders per-file results by their report identifier.
func sortFileResults[T any](results []T, key func(T) string) {
	sort.Slice(results, func(i, j int) bool { return key(results[i]) < key(results[j]) })
}
