package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/panbanda/auspex/internal/output"
	"github.com/panbanda/auspex/internal/progress"
	analysissvc "github.com/panbanda/auspex/internal/service/analysis"
	"github.com/panbanda/auspex/pkg/analyzer/deps"
	"github.com/urfave/cli/v2"
)

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Aliases:   []string{"deps"},
		Usage:     "Build the import graph and detect cycles",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Compute graph metrics (PageRank, components, density)",
			},
			&cli.BoolFlag{
				Name:  "mermaid",
				Usage: "Emit a Mermaid diagram instead of a table",
			},
		},
		Action: runGraphCmd,
	}
}

func runGraphCmd(c *cli.Context) error {
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
	tracker := progress.NewTracker("Building import graph...", len(tg.Files))
	report, err := svc.AnalyzeGraph(c.Context, tg.Files, tg.Root, analysissvc.GraphOptions{
		IncludeMetrics: c.Bool("metrics"),
		OnProgress:     tracker.Tick,
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

	if c.Bool("mermaid") {
		graph := deps.BuildGraph(report.Files)
		_, err := fmt.Fprintln(formatter.Writer(), graph.ToMermaid())
		return err
	}

	var rows [][]string
	for _, edge := range report.Edges {
		rows = append(rows, []string{edge.From, string(edge.Kind), edge.To})
	}

	table := output.NewTable(
		"Import Graph",
		[]string{"From", "Kind", "To"},
		rows,
		[]string{
			fmt.Sprintf("Nodes: %d", len(report.Nodes)),
			fmt.Sprintf("Edges: %d", len(report.Edges)),
			fmt.Sprintf("Cycles: %d", len(report.Cycles)),
		},
		report,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if formatter.Format() != output.FormatText {
		return nil
	}

	if len(report.Cycles) > 0 {
		formatter.Error("Import cycles (%d):", len(report.Cycles))
		for _, cycle := range report.Cycles {
			fmt.Fprintf(formatter.Writer(), "  %s\n", strings.Join(cycle, " -> "))
		}
	} else {
		formatter.Success("No import cycles found")
	}

	if report.Metrics != nil {
		fmt.Fprintln(formatter.Writer())
		var metricRows [][]string
		for _, node := range report.Metrics.Nodes {
			metricRows = append(metricRows, []string{
				node.ID,
				fmt.Sprintf("%.4f", node.PageRank),
				fmt.Sprintf("%d", node.InDegree),
				fmt.Sprintf("%d", node.OutDegree),
			})
		}
		summary := report.Metrics.Summary
		metricsTable := output.NewTable(
			"Graph Metrics",
			[]string{"Node", "PageRank", "In", "Out"},
			metricRows,
			[]string{
				fmt.Sprintf("Density: %.3f", summary.Density),
				fmt.Sprintf("Components: %d", summary.Components),
				fmt.Sprintf("SCCs: %d", summary.StronglyConnectedComponents),
				fmt.Sprintf("Cyclic: %v", summary.IsCyclic),
			},
			report.Metrics,
		)
		return formatter.Output(metricsTable)
	}

	return nil
}
