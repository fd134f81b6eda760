package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/panbanda/auspex/internal/output"
	"github.com/panbanda/auspex/internal/progress"
	analysissvc "github.com/panbanda/auspex/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

func styleCmd() *cli.Command {
	return &cli.Command{
		Name:      "style",
		Usage:     "Check style rules (line length, whitespace, naming)",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-line-length",
				Usage: "Override the configured line length limit",
			},
		},
		Action: runStyleCmd,
	}
}

func runStyleCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.Int("max-line-length") > 0 {
		cfg.Style.MaxLineLength = c.Int("max-line-length")
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
	tracker := progress.NewTracker("Checking style...", len(tg.Files))
	report, err := svc.AnalyzeStyle(c.Context, tg.Files, tg.Root, analysissvc.StyleOptions{
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
				issue.Rule,
				issue.Message,
			})
		}
	}

	rules := make([]string, 0, len(report.Summary.ByRule))
	for rule := range report.Summary.ByRule {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	byRule := ""
	for i, rule := range rules {
		if i > 0 {
			byRule += ", "
		}
		byRule += fmt.Sprintf("%s: %d", rule, report.Summary.ByRule[rule])
	}

	table := output.NewTable(
		"Style Analysis",
		[]string{"Location", "Rule", "Message"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", report.Summary.TotalFiles),
			fmt.Sprintf("Issues: %d", report.Summary.TotalIssues),
			byRule,
		},
		report,
	)
	return formatter.Output(table)
}
