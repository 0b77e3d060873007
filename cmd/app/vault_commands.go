package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/briefnote/briefnote/cmd/app/commands"
	"github.com/briefnote/briefnote/internal/app"
	"github.com/briefnote/briefnote/internal/config"
)

func getVaultCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "regenerate-root-key",
			Usage: "Destructively replace the vault root key",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "confirm",
					Value: false,
					Usage: "Confirm that all existing credential secrets become unreadable",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyManager, err := container.RootKeyManager()
				if err != nil {
					return err
				}

				return commands.RunRegenerateRootKey(
					ctx,
					keyManager,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Bool("confirm"),
				)
			},
		},
	}
}
