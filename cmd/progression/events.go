package main

import (
	"fmt"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	"github.com/urfave/cli/v2"
)

func (s *cliState) eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "inspect domain events",
		Subcommands: []*cli.Command{
			{
				Name:  "topics",
				Usage: "list the published topics",
				Action: func(c *cli.Context) error {
					return s.print(eventbus.Topics())
				},
			},
			{
				Name:  "tail",
				Usage: "log events from NATS until interrupted",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if a.Config.Events.NATSURL == "" {
						return cli.Exit("events tail needs events.nats_url or NATS_URL", 2)
					}
					if err := a.EventBus.LogEvents(c.Context, eventbus.Topics()...); err != nil {
						return err
					}
					fmt.Fprintln(s.out, "listening, press Ctrl-C to stop")
					<-c.Context.Done()
					return nil
				},
			},
		},
	}
}
