package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/auspex/internal/output"
	"github.com/panbanda/auspex/internal/progress"
	analysissvc "github.com/panbanda/auspex/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

func deadcodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "deadcode",
		Aliases:   []string{"dc"},
		Usage:     "Detect statements that can never execute",
		ArgsUsage: "[path...]",
		Action:    runDeadcodeCmd,
	}
}

func runDeadcodeCmd(c *cli.Context) error {
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

	svc := newAnalysisService(cfg, tg.Src)
	tracker := progress.NewTracker("Scanning for dead code...", len(tg.Files))
	report, err := svc.AnalyzeDeadCode(c.Context, tg.Files, tg.Root, analysissvc.DeadCodeOptions{
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

	var rows [][]string
	for _, fr := range report.Files {
		for _, issue := range fr.Issues {
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d:%d", fr.Path, issue.Line, issue.Column),
				issue.Message,
				truncate(issue.Snippet, 50),
			})
		}
	}

	table := output.NewTable(
		"Dead Code Analysis",
		[]string{"Location", "Message", "Snippet"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", report.Summary.TotalFiles),
			fmt.Sprintf("Issues: %d", report.Summary.TotalIssues),
			"",
		},
		report,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if report.Summary.TotalIssues == 0 && formatter.Format() == output.FormatText {
		formatter.Success("No unreachable code found")
	}
	return nil
}
