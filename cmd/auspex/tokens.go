package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/auspex/internal/output"
	"github.com/panbanda/auspex/pkg/token"
	"github.com/urfave/cli/v2"
)

func tokensCmd() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of source files",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "significant",
				Usage: "Skip comment tokens",
			},
		},
		Action: runTokensCmd,
	}
}

func runTokensCmd(c *cli.Context) error {
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

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	svc := newAnalysisService(cfg, tg.Src)

	for _, file := range tg.Files {
		tokens, err := svc.Tokenize(file)
		if err != nil {
			return fmt.Errorf("tokenizing %s: %w", file, err)
		}
		if c.Bool("significant") {
			tokens = token.Significant(tokens)
		}

		var rows [][]string
		for _, t := range tokens {
			rows = append(rows, []string{
				fmt.Sprintf("%d", t.Line),
				fmt.Sprintf("%d", t.Column),
				t.Kind.String(),
				truncate(fmt.Sprintf("%q", t.Text), 40),
			})
		}

		table := output.NewTable(
			file,
			[]string{"Line", "Col", "Kind", "Text"},
			rows,
			[]string{fmt.Sprintf("Tokens: %d", len(rows)), "", "", ""},
			tokens,
		)
		if err := formatter.Output(table); err != nil {
			return err
		}
	}

	return nil
}
