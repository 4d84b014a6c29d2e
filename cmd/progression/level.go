package main

import (
	"time"

	"github.com/urfave/cli/v2"
)

func (s *cliState) levelCommand() *cli.Command {
	return &cli.Command{
		Name:  "level",
		Usage: "manage levels and player progress on them",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "create a level",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "order", Usage: "position in the level list"},
				},
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "title"); err != nil {
						return err
					}
					level, err := a.Modules.LevelModule.LevelService.CreateLevel(c.Context, c.Args().First(), c.Int("order"))
					if err != nil {
						return err
					}
					return s.print(level)
				},
			},
			{
				Name:  "list",
				Usage: "list levels in play order",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					levels, err := a.Modules.LevelModule.LevelService.ListLevels(c.Context)
					if err != nil {
						return err
					}
					return s.print(levels)
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a level with all progress and prizes on it",
				ArgsUsage: "<level-id>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "level-id"); err != nil {
						return err
					}
					id, err := idArg(c, 0, "level-id")
					if err != nil {
						return err
					}
					return a.Modules.LevelModule.LevelService.DeleteLevel(c.Context, id)
				},
			},
			{
				Name:      "record",
				Usage:     "record a player's score on a level",
				ArgsUsage: "<username> <level-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "score", Usage: "level score"},
					&cli.StringFlag{
						Name:  "completed",
						Usage: `completion day, e.g. "today", "yesterday", "2026-03-14"; omit for in progress`,
					},
				},
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username", "level-id"); err != nil {
						return err
					}
					levelID, err := idArg(c, 1, "level-id")
					if err != nil {
						return err
					}
					var completedOn *time.Time
					if c.IsSet("completed") {
						day, err := s.parser.ParseDay(c.String("completed"))
						if err != nil {
							return cli.Exit(err.Error(), 2)
						}
						completedOn = &day
					}
					pl, err := a.Modules.LevelModule.LevelService.RecordProgress(
						c.Context, c.Args().First(), levelID, c.Int("score"), completedOn)
					if err != nil {
						return err
					}
					return s.print(pl)
				},
			},
			{
				Name:      "progress",
				Usage:     "show a player's progress on a level",
				ArgsUsage: "<username> <level-id>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username", "level-id"); err != nil {
						return err
					}
					levelID, err := idArg(c, 1, "level-id")
					if err != nil {
						return err
					}
					pl, err := a.Modules.LevelModule.LevelService.GetPlayerLevel(c.Context, c.Args().First(), levelID)
					if err != nil {
						return err
					}
					return s.print(pl)
				},
			},
		},
	}
}

func (s *cliState) prizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "prize",
		Usage: "manage prizes and grant them for completed levels",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "create a prize",
				ArgsUsage: "<title>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "title"); err != nil {
						return err
					}
					prize, err := a.Modules.LevelModule.LevelService.CreatePrize(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return s.print(prize)
				},
			},
			{
				Name:  "list",
				Usage: "list prizes",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					prizes, err := a.Modules.LevelModule.LevelService.ListPrizes(c.Context)
					if err != nil {
						return err
					}
					return s.print(prizes)
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a prize and every record of it being received",
				ArgsUsage: "<prize-id>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "prize-id"); err != nil {
						return err
					}
					id, err := idArg(c, 0, "prize-id")
					if err != nil {
						return err
					}
					return a.Modules.LevelModule.LevelService.DeletePrize(c.Context, id)
				},
			},
			{
				Name:      "grant",
				Usage:     "grant a prize if the player completed the level",
				ArgsUsage: "<username> <level-id> <prize-id>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username", "level-id", "prize-id"); err != nil {
						return err
					}
					levelID, err := idArg(c, 1, "level-id")
					if err != nil {
						return err
					}
					prizeID, err := idArg(c, 2, "prize-id")
					if err != nil {
						return err
					}
					granted, err := a.Modules.LevelModule.LevelService.GrantReward(c.Context, c.Args().First(), levelID, prizeID)
					if err != nil {
						return err
					}
					return s.print(map[string]bool{"granted": granted})
				},
			},
			{
				Name:      "received",
				Usage:     "list the prizes a player received",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username"); err != nil {
						return err
					}
					prizes, err := a.Modules.LevelModule.LevelService.ListPlayerPrizes(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return s.print(prizes)
				},
			},
		},
	}
}
