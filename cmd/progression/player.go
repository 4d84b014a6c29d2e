package main

import (
	"fmt"

	"github.com/Black-And-White-Club/frolf-progression/app/database"
	playerdomain "github.com/Black-And-White-Club/frolf-progression/app/modules/player/domain"
	"github.com/urfave/cli/v2"
)

func (s *cliState) playerCommand() *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "manage players, experience and boosts",
		Subcommands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "register a new player",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username"); err != nil {
						return err
					}
					view, err := a.Modules.PlayerModule.PlayerService.RegisterPlayer(c.Context, c.Args().First())
					if database.IsUniqueViolation(err) {
						return cli.Exit(fmt.Sprintf("player %q already exists", c.Args().First()), 1)
					}
					if err != nil {
						return err
					}
					return s.print(view)
				},
			},
			{
				Name:      "show",
				Usage:     "show a player's progression",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username"); err != nil {
						return err
					}
					view, err := a.Modules.PlayerModule.PlayerService.GetPlayer(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return s.print(view)
				},
			},
			{
				Name:  "list",
				Usage: "list every player",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					views, err := a.Modules.PlayerModule.PlayerService.ListPlayers(c.Context)
					if err != nil {
						return err
					}
					return s.print(views)
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a player with its boosts, level progress and prizes",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username"); err != nil {
						return err
					}
					return a.Modules.PlayerModule.PlayerService.DeletePlayer(c.Context, c.Args().First())
				},
			},
			{
				Name:      "add-xp",
				Usage:     "add experience and apply any level-ups",
				ArgsUsage: "<username> <amount>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username", "amount"); err != nil {
						return err
					}
					amount, err := intArg(c, 1, "amount")
					if err != nil {
						return err
					}
					res, err := a.Modules.PlayerModule.PlayerService.IncreaseExperience(c.Context, c.Args().First(), amount)
					if err != nil {
						return err
					}
					return s.print(res)
				},
			},
			{
				Name:      "grant-boost",
				Usage:     "grant boosts of one type",
				ArgsUsage: "<username> <power|intellect|dexterity> <count>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username", "type", "count"); err != nil {
						return err
					}
					boostType, err := playerdomain.ParseBoostType(c.Args().Get(1))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					count, err := intArg(c, 2, "count")
					if err != nil {
						return err
					}
					grant, err := a.Modules.PlayerModule.PlayerService.GrantBoost(c.Context, c.Args().First(), boostType, count)
					if err != nil {
						return err
					}
					return s.print(grant)
				},
			},
			{
				Name:      "boost-for-level",
				Usage:     "record a completed level title and grant boosts for it",
				ArgsUsage: "<username> <level-title> <power|intellect|dexterity> <count>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username", "level-title", "type", "count"); err != nil {
						return err
					}
					boostType, err := playerdomain.ParseBoostType(c.Args().Get(2))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					count, err := intArg(c, 3, "count")
					if err != nil {
						return err
					}
					grant, err := a.Modules.PlayerModule.PlayerService.AddBoostForLevel(
						c.Context, c.Args().First(), c.Args().Get(1), boostType, count)
					if err != nil {
						return err
					}
					return s.print(grant)
				},
			},
			{
				Name:      "boosts",
				Usage:     "list a player's boost holdings",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					a, err := s.requireApp()
					if err != nil {
						return err
					}
					if err := requireArgs(c, "username"); err != nil {
						return err
					}
					holdings, err := a.Modules.PlayerModule.PlayerService.ListBoosts(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return s.print(holdings)
				},
			},
		},
	}
}
