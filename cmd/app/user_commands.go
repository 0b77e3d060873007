package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/briefnote/briefnote/cmd/app/commands"
	"github.com/briefnote/briefnote/internal/app"
	"github.com/briefnote/briefnote/internal/config"
	userUseCase "github.com/briefnote/briefnote/internal/user/usecase"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create a new user and print their API token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name shown in the audit trail",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Unique email address",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Account password used for the verification gate",
				},
				&cli.BoolFlag{
					Name:  "admin",
					Value: false,
					Usage: "Grant administrator access (settings and audit trail)",
				},
				&cli.BoolFlag{
					Name:  "view-credentials",
					Value: true,
					Usage: "Allow viewing credentials",
				},
				&cli.BoolFlag{
					Name:  "edit-credentials",
					Value: false,
					Usage: "Allow creating, updating, and deleting credentials",
				},
				&cli.BoolFlag{
					Name:  "view-notes",
					Value: true,
					Usage: "Allow viewing the shared note",
				},
				&cli.BoolFlag{
					Name:  "edit-notes",
					Value: false,
					Usage: "Allow editing the shared note",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUC, err := container.UserUseCase()
				if err != nil {
					return err
				}

				input := userUseCase.CreateUserInput{
					Name:               cmd.String("name"),
					Email:              cmd.String("email"),
					Password:           cmd.String("password"),
					IsAdmin:            cmd.Bool("admin"),
					CanViewCredentials: cmd.Bool("view-credentials"),
					CanEditCredentials: cmd.Bool("edit-credentials"),
					CanViewNotes:       cmd.Bool("view-notes"),
					CanEditNotes:       cmd.Bool("edit-notes"),
				}

				return commands.RunCreateUser(
					ctx,
					userUC,
					container.Logger(),
					commands.DefaultIO().Writer,
					input,
					cmd.String("format"),
				)
			},
		},
	}
}
