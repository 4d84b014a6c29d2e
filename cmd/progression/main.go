package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/frolf-progression/app"
	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/timeparse"
	"github.com/Black-And-White-Club/frolf-progression/config"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
)

// cliState is shared by every command action. Before fills it in and After
// releases it.
type cliState struct {
	app    *app.App
	parser *timeparse.Parser
	out    io.Writer
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCLI(os.Stdout).RunContext(ctx, os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Error())
			os.Exit(exitErr.ExitCode())
		}
		log.Fatal(err)
	}
}

func newCLI(out io.Writer) *cli.App {
	state := &cliState{out: out}

	return &cli.App{
		Name:  "progression",
		Usage: "track player experience, boosts, levels and prizes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
			},
			&cli.BoolFlag{
				Name:  "migrate",
				Value: true,
				Usage: "apply pending migrations before running the command",
			},
			&cli.BoolFlag{
				Name:  "log-events",
				Usage: "log every domain event published by the command",
			},
		},
		// Exit codes are applied in main so actions stay testable.
		ExitErrHandler: func(*cli.Context, error) {},
		Before: func(c *cli.Context) error {
			return state.open(c)
		},
		After: func(c *cli.Context) error {
			return state.close()
		},
		Commands: []*cli.Command{
			state.playerCommand(),
			state.levelCommand(),
			state.prizeCommand(),
			state.reportCommand(),
			state.eventsCommand(),
		},
	}
}

func (s *cliState) open(c *cli.Context) error {
	// Help and completion do not need storage.
	if c.Args().Len() == 0 || c.Args().First() == "help" || c.Bool("help") {
		return nil
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	obs, err := observability.Init(cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}

	opts := []app.Option{}
	if c.Bool("migrate") {
		opts = append(opts, app.WithMigrations())
	}
	application, err := app.New(c.Context, cfg, obs, opts...)
	if err != nil {
		return err
	}
	s.app = application
	s.parser = timeparse.NewParser(application.Clock)

	if c.Bool("log-events") {
		if err := application.EventBus.LogEvents(c.Context, eventbus.Topics()...); err != nil {
			return err
		}
	}
	return nil
}

func (s *cliState) close() error {
	if s.app == nil {
		return nil
	}
	return s.app.Close()
}

// requireApp guards actions reached without Before opening the app.
func (s *cliState) requireApp() (*app.App, error) {
	if s.app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return s.app, nil
}

// print writes v as indented JSON.
func (s *cliState) print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(s.out, string(data))
	return err
}
