package command

import (
	"context"

	"wan/internal/cli/render"
	appErr "wan/pkg/errors"

	"github.com/urfave/cli/v3"
)

func (a *App) listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list the compilers the service offers",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dump",
				Aliases: []string{"d"},
				Usage:   "print the raw JSON response",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "only show compilers for this language",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "only show compilers whose name contains this text",
			},
		},
		Action: a.list,
	}
}

func (a *App) list(ctx context.Context, cmd *cli.Command) error {
	ctx, env, err := a.prepare(ctx, cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("dump") {
		body, err := env.client.ListCompilersRaw(ctx)
		if err != nil {
			return err
		}
		return a.writeRaw(body)
	}

	infos, err := env.client.ListCompilers(ctx)
	if err != nil {
		return err
	}
	render.Compilers(a.Stdout, render.FilterCompilers(infos, cmd.String("language"), cmd.String("name")))
	return nil
}

func (a *App) writeRaw(body []byte) error {
	if _, err := a.Stdout.Write(body); err != nil {
		return appErr.Wrap(err, appErr.IoError)
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		if _, err := a.Stdout.Write([]byte("\n")); err != nil {
			return appErr.Wrap(err, appErr.IoError)
		}
	}
	return nil
}
