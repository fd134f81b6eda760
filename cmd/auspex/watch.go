package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/panbanda/auspex/pkg/source"
	"github.com/panbanda/auspex/pkg/watch"
	"github.com/urfave/cli/v2"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch for file changes and re-analyze",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: 500 * time.Millisecond,
				Usage: "Wait this long after the last write before analyzing",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	paths := getPaths(c)
	absPath, err := filepath.Abs(paths[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	watcher, err := watch.NewWatcher(absPath, cfg, c.Duration("debounce"))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	svc := newAnalysisService(cfg, source.NewFilesystem())

	watcher.SetCallback(func(changedPath string) {
		content, err := os.ReadFile(changedPath)
		if err != nil {
			color.Red("Read error: %v", err)
			return
		}

		rel, err := filepath.Rel(absPath, changedPath)
		if err != nil {
			rel = changedPath
		}
		record := svc.AnalyzeFile(filepath.ToSlash(rel), content)

		if record.Functions != nil {
			worst := 0
			for _, fn := range record.Functions {
				if fn.Score > worst {
					worst = fn.Score
				}
			}
			fmt.Printf("Complexity: %d functions, max %d\n", len(record.Functions), worst)
		}
		if len(record.DeadCode) > 0 {
			color.Yellow("Dead code: %d unreachable statements", len(record.DeadCode))
			for _, issue := range record.DeadCode {
				fmt.Printf("  %d:%d %s\n", issue.Line, issue.Column, issue.Message)
			}
		}
		if len(record.Style) > 0 {
			color.Yellow("Style: %d issues", len(record.Style))
			for _, issue := range record.Style {
				fmt.Printf("  %d:%d [%s] %s\n", issue.Line, issue.Column, issue.Rule, issue.Message)
			}
		}
		if len(record.DeadCode) == 0 && len(record.Style) == 0 {
			color.Green("Clean")
		}
	})

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	return watcher.Start(ctx)
}
