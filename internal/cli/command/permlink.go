package command

import (
	"context"

	"wan/internal/cli/render"
	appErr "wan/pkg/errors"

	"github.com/urfave/cli/v3"
)

func (a *App) permlinkCommand() *cli.Command {
	return &cli.Command{
		Name:      "permlink",
		Usage:     "show a stored submission",
		ArgsUsage: "<link>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dump",
				Aliases: []string{"d"},
				Usage:   "print the raw JSON response",
			},
			&cli.BoolFlag{
				Name:    "browse",
				Aliases: []string{"b"},
				Usage:   "open the permalink page in a browser",
			},
		},
		Action: a.permlink,
	}
}

// permlink always exits 0 on success; the stored status is only displayed.
func (a *App) permlink(ctx context.Context, cmd *cli.Command) error {
	ctx, env, err := a.prepare(ctx, cmd)
	if err != nil {
		return err
	}
	link := cmd.Args().First()
	if link == "" {
		return appErr.InvalidArgsError("missing <link>")
	}

	if cmd.Bool("dump") {
		body, err := env.client.GetPermlinkRaw(ctx, link)
		if err != nil {
			return err
		}
		if err := a.writeRaw(body); err != nil {
			return err
		}
	} else {
		stored, err := env.client.GetPermlink(ctx, link)
		if err != nil {
			return err
		}
		if err := render.Permlink(a.Stdout, stored); err != nil {
			return err
		}
	}

	if cmd.Bool("browse") {
		return a.open(ctx, env.client.PermlinkURL(link))
	}
	return nil
}
