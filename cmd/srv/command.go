package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "draftengine"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startEngine,
			Name:        "engine",
			Usage:       "Start the tournament engine",
			Category:    "Engine",
			Description: `Runs the phase sweep, the score refresh, and the market-data subscriber.`,
		},
		{
			Action:   server.startMigrate,
			Name:     "migrate",
			Usage:    "Run a post-deploy migration",
			Category: "Operation",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "version",
					Usage:    "The migration version to run",
					Required: true,
				},
			},
			Description: `Applies one versioned migrator after the schema auto-migration.`,
		},
	}

	s.app = app
}
