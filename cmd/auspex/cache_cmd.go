package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/panbanda/auspex/internal/cache"
	"github.com/panbanda/auspex/internal/output"
	"github.com/urfave/cli/v2"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the analysis cache",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count and size",
				Action: runCacheStatsCmd,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached results",
				Action: runCacheClearCmd,
			},
		},
	}
}

func runCacheStatsCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		return err
	}
	stats, err := store.GetStats()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		return formatter.Output(stats)
	}

	fmt.Fprintf(formatter.Writer(), "Entries:  %d\n", stats.Entries)
	fmt.Fprintf(formatter.Writer(), "Size:     %d bytes\n", stats.TotalSize)
	if stats.Entries > 0 {
		fmt.Fprintf(formatter.Writer(), "Oldest:   %s\n", stats.OldestAge.Round(time.Second))
		fmt.Fprintf(formatter.Writer(), "Newest:   %s\n", stats.NewestAge.Round(time.Second))
	}
	return nil
}

func runCacheClearCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}

	color.Green("Cache cleared")
	return nil
}
