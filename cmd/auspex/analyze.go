package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/panbanda/auspex/internal/output"
	"github.com/panbanda/auspex/internal/progress"
	analysissvc "github.com/panbanda/auspex/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Run every enabled analyzer and print a combined report",
		ArgsUsage: "[path...]",
		Action:    runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	tg, err := resolveTargets(c, cfg)
	if err != nil {
		return err
	}
	if len(tg.Files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := newAnalysisService(cfg, tg.Src)
	tracker := progress.NewTracker("Analyzing...", len(tg.Files))
	report, errs, err := svc.Analyze(ctx, tg.Files, analysissvc.Options{
		Root:       tg.Root,
		OnProgress: tracker.Tick,
	})
	if err != nil {
		tracker.FinishError(err)
		return fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if errs.HasErrors() && cfg.Output.Verbose {
		for _, pe := range errs.Errors {
			formatter.Warning("skipped %s: %v", pe.Path, pe.Err)
		}
	}

	combined := &output.Report{
		Title:    "Auspex Analysis",
		Sections: buildReportSections(report),
		Data:     report,
	}
	if err := formatter.Output(combined); err != nil {
		return err
	}

	if errs.HasErrors() && formatter.Format() == output.FormatText {
		formatter.Warning("%d files could not be analyzed", len(errs.Errors))
	}
	return nil
}

// buildReportSections renders each enabled analyzer's result as a section
// of the combined report.
func buildReportSections(report *analysissvc.Report) []output.Renderable {
	var sections []output.Renderable

	if report.Complexity != nil {
		s := report.Complexity.Summary
		sections = append(sections, &output.Section{
			Title: "Complexity",
			Content: fmt.Sprintf("%d functions in %d files, avg %.1f, max %d (p90 %d)",
				s.TotalFunctions, s.TotalFiles, s.Average, s.Max, s.P90),
			Data: report.Complexity,
		})
	}

	if report.DeadCode != nil {
		var lines []string
		for _, fr := range report.DeadCode.Files {
			for _, issue := range fr.Issues {
				lines = append(lines, fmt.Sprintf("%s:%d:%d %s", fr.Path, issue.Line, issue.Column, issue.Message))
			}
		}
		content := "no unreachable code found"
		if len(lines) > 0 {
			content = strings.Join(lines, "\n")
		}
		sections = append(sections, &output.Section{
			Title:   fmt.Sprintf("Dead Code (%d)", report.DeadCode.Summary.TotalIssues),
			Content: content,
			Data:    report.DeadCode,
		})
	}

	if report.Style != nil {
		var lines []string
		for _, fr := range report.Style.Files {
			for _, issue := range fr.Issues {
				lines = append(lines, fmt.Sprintf("%s:%d:%d [%s] %s", fr.Path, issue.Line, issue.Column, issue.Rule, issue.Message))
			}
		}
		content := "no style issues found"
		if len(lines) > 0 {
			content = strings.Join(lines, "\n")
		}
		sections = append(sections, &output.Section{
			Title:   fmt.Sprintf("Style (%d)", report.Style.Summary.TotalIssues),
			Content: content,
			Data:    report.Style,
		})
	}

	if report.Dependencies != nil {
		content := fmt.Sprintf("%d nodes, %d edges", len(report.Dependencies.Nodes), len(report.Dependencies.Edges))
		if n := len(report.Dependencies.Cycles); n > 0 {
			var lines []string
			for _, cycle := range report.Dependencies.Cycles {
				lines = append(lines, "  "+strings.Join(cycle, " -> "))
			}
			content += fmt.Sprintf("\n%d import cycles:\n%s", n, strings.Join(lines, "\n"))
		}
		sections = append(sections, &output.Section{
			Title:   "Dependencies",
			Content: content,
			Data:    report.Dependencies,
		})
	}

	return sections
}
