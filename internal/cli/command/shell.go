package command

import (
	"context"
	"io"
	"os"

	"wan/internal/cli/repl"

	"github.com/urfave/cli/v3"
)

func (a *App) shellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "start an interactive shell; each line is a wan command",
		Action: a.shell,
	}
}

func (a *App) shell(ctx context.Context, cmd *cli.Command) error {
	ctx, env, err := a.prepare(ctx, cmd)
	if err != nil {
		return err
	}

	globals := []string{"--config", env.configPath}
	if base := cmd.String("base"); base != "" {
		globals = append(globals, "--base", base)
	}
	if cmd.Bool("verbose") {
		globals = append(globals, "--verbose")
	}
	if format := cmd.String("log-format"); format != "" {
		globals = append(globals, "--log-format", format)
	}

	session := repl.New(a.lineDispatcher(globals), a.Stdout, env.cfg.HistoryFile)
	return session.Run(ctx, a.shellInput())
}

// lineDispatcher runs each shell line as a fresh invocation that inherits the
// shell's global flags but cannot start a nested shell.
func (a *App) lineDispatcher(globals []string) repl.Dispatcher {
	return func(ctx context.Context, tokens []string) int {
		child := &App{
			Stdin:       a.Stdin,
			Stdout:      a.Stdout,
			Stderr:      a.Stderr,
			Open:        a.Open,
			interactive: true,
		}
		args := make([]string, 0, 1+len(globals)+len(tokens))
		args = append(args, appName)
		args = append(args, globals...)
		args = append(args, tokens...)
		return child.Run(ctx, args)
	}
}

func (a *App) shellInput() io.ReadCloser {
	if rc, ok := a.Stdin.(io.ReadCloser); ok {
		return rc
	}
	if a.Stdin == nil {
		return os.Stdin
	}
	return io.NopCloser(a.Stdin)
}
