package command

import (
	"context"
	"strings"

	"wan/internal/wandbox"
	appErr "wan/pkg/errors"
	"wan/pkg/utils/logger"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func (a *App) scriptCommand() *cli.Command {
	return &cli.Command{
		Name:            "script",
		Usage:           "run a file as a script (for use in a #! line)",
		ArgsUsage:       "<filename> [program arguments...]",
		SkipFlagParsing: true,
		Action:          a.script,
	}
}

// script sends the file without its #! line, passes the remaining arguments
// to the program and prints only the message.
func (a *App) script(ctx context.Context, cmd *cli.Command) error {
	ctx, env, err := a.prepare(ctx, cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() == 0 {
		return appErr.InvalidArgsError("missing <filename>")
	}
	filename := cmd.Args().First()
	code, err := a.readSource(filename)
	if err != nil {
		return err
	}

	compiler := resolveCompiler("", filename, env.cfg.Compiler)
	param := wandbox.NewParameter(stripShebang(code), compiler).
		WithRuntimeArgs(cmd.Args().Tail())
	logger.Debug(ctx, "running script", zap.String("file", filename), zap.String("compiler", compiler))

	result, err := env.client.Compile(ctx, param)
	if err != nil {
		return err
	}
	if err := result.Report(a.Stdout); err != nil {
		return err
	}
	a.status = result.ExitStatus()
	return nil
}

func stripShebang(code string) string {
	if !strings.HasPrefix(code, "#!") {
		return code
	}
	if i := strings.IndexByte(code, '\n'); i >= 0 {
		return code[i+1:]
	}
	return ""
}
