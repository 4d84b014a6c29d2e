package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

func (s *cliState) reportCommand() *cli.Command {
	outFlag := func(def string) cli.Flag {
		return &cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Value:   def,
			Usage:   "output file, relative to the configured export directory; - writes to stdout",
		}
	}

	return &cli.Command{
		Name:  "report",
		Usage: "export progress reports",
		Subcommands: []*cli.Command{
			{
				Name:  "csv",
				Usage: "export player, level and prize rows as CSV",
				Flags: []cli.Flag{outFlag("players.csv")},
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					return s.writeOutput(c, func(ctx context.Context, w io.Writer) error {
						_, err := a.Modules.ReportModule.ReportService.ExportCSV(ctx, w)
						return err
					})
				},
			},
			{
				Name:  "xlsx",
				Usage: "export player, level and prize rows as an Excel workbook",
				Flags: []cli.Flag{outFlag("players.xlsx")},
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					return s.writeOutput(c, func(ctx context.Context, w io.Writer) error {
						_, err := a.Modules.ReportModule.ReportService.ExportXLSX(ctx, w)
						return err
					})
				},
			},
			{
				Name:  "chart",
				Usage: "render a PNG bar chart of players per level",
				Flags: []cli.Flag{outFlag("levels.png")},
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					return s.writeOutput(c, a.Modules.ReportModule.ReportService.RenderLevelChart)
				},
			},
		},
	}
}

// writeOutput runs render against the --out destination. A failed render
// removes the partial file.
func (s *cliState) writeOutput(c *cli.Context, render func(context.Context, io.Writer) error) error {
	out := c.String("out")
	if out == "-" {
		return render(c.Context, s.out)
	}

	path := out
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.app.Config.Export.Directory, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(c.Context, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	_, err = fmt.Fprintln(s.out, path)
	return err
}
