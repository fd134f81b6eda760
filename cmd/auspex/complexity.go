package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/auspex/internal/output"
	"github.com/panbanda/auspex/internal/progress"
	analysissvc "github.com/panbanda/auspex/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

func complexityCmd() *cli.Command {
	return &cli.Command{
		Name:      "complexity",
		Aliases:   []string{"cx"},
		Usage:     "Analyze per-function cyclomatic complexity",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "threshold",
				Usage: "Only report functions at or above this score (0 uses the configured threshold)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Report every function regardless of threshold",
			},
		},
		Action: runComplexityCmd,
	}
}

func runComplexityCmd(c *cli.Context) error {
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

	threshold := c.Int("threshold")
	if c.Bool("all") {
		threshold = -1
	}

	svc := newAnalysisService(cfg, tg.Src)
	tracker := progress.NewTracker("Analyzing complexity...", len(tg.Files))
	report, err := svc.AnalyzeComplexity(c.Context, tg.Files, tg.Root, analysissvc.ComplexityOptions{
		Threshold:  threshold,
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

	warnAt := cfg.Thresholds.CyclomaticComplexity
	var rows [][]string
	for _, fr := range report.Files {
		for _, fn := range fr.Functions {
			score := fmt.Sprintf("%d", fn.Score)
			if formatter.Colored() && fn.Score >= warnAt {
				score = color.RedString("%d", fn.Score)
			}
			rows = append(rows, []string{
				fr.Path,
				fn.Name,
				fmt.Sprintf("%d", fn.Line),
				score,
			})
		}
	}

	table := output.NewTable(
		"Complexity Analysis",
		[]string{"File", "Function", "Line", "Complexity"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", report.Summary.TotalFiles),
			fmt.Sprintf("Functions: %d", report.Summary.TotalFunctions),
			fmt.Sprintf("Avg: %.1f", report.Summary.Average),
			fmt.Sprintf("Max: %d / P90: %d", report.Summary.Max, report.Summary.P90),
		},
		report,
	)
	return formatter.Output(table)
}
