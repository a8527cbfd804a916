package command

import (
	"context"
	"io"
	"os"
	"strings"

	"wan/internal/cli/render"
	"wan/internal/wandbox"
	appErr "wan/pkg/errors"
	"wan/pkg/utils/logger"

	"github.com/google/shlex"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// stdinSource names the main source when it is read from standard input.
const stdinSource = "-"

func (a *App) compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Aliases:   []string{"run"},
		Usage:     "compile and run a source file",
		ArgsUsage: "<filename|-> [additional files...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "compiler",
				Aliases: []string{"c"},
				Usage:   "compiler name (guessed from the file extension when omitted)",
			},
			&cli.StringFlag{
				Name:    "options",
				Aliases: []string{"o"},
				Usage:   "comma separated switch names, e.g. warning,c++17",
			},
			&cli.StringFlag{
				Name:  "compile-args",
				Usage: "raw compiler arguments, split like a shell would",
			},
			&cli.StringFlag{
				Name:  "runtime-args",
				Usage: "raw program arguments, split like a shell would",
			},
			&cli.StringFlag{
				Name:  "stdin",
				Usage: "text fed to the program's standard input",
			},
			&cli.BoolFlag{
				Name:    "permlink",
				Aliases: []string{"p"},
				Usage:   "ask the service to store the submission",
			},
			&cli.BoolFlag{
				Name:    "browse",
				Aliases: []string{"b"},
				Usage:   "store the submission and open its permalink",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "print only the program or compiler message",
			},
		},
		Action: a.compile,
	}
}

func (a *App) compile(ctx context.Context, cmd *cli.Command) error {
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

	browse := cmd.Bool("browse")
	param := wandbox.NewParameter(code, resolveCompiler(cmd.String("compiler"), filename, env.cfg.Compiler)).
		SavePermalink(browse || cmd.Bool("permlink"))
	if cmd.IsSet("options") {
		param = param.WithOptions(cmd.String("options"))
	}
	compileArgs, err := splitArgs("compile-args", cmd.String("compile-args"))
	if err != nil {
		return err
	}
	runtimeArgs, err := splitArgs("runtime-args", cmd.String("runtime-args"))
	if err != nil {
		return err
	}
	param = param.WithCompilerArgs(compileArgs).WithRuntimeArgs(runtimeArgs)
	if cmd.IsSet("stdin") {
		param = param.WithStdin(cmd.String("stdin"))
	}
	if param, err = param.AddFiles(cmd.Args().Tail()); err != nil {
		return err
	}

	quiet := cmd.Bool("quiet")
	if !quiet {
		render.RequestInfo(a.Stdout, param)
	}
	result, err := env.client.Compile(ctx, param)
	if err != nil {
		return err
	}
	if quiet {
		err = result.Report(a.Stdout)
	} else {
		err = render.Result(a.Stdout, result)
	}
	if err != nil {
		return err
	}

	if url, ok := result.PermlinkURL(); ok {
		if !quiet {
			render.PermlinkURL(a.Stdout, url)
		}
		if browse {
			if err := a.open(ctx, url); err != nil {
				return err
			}
		}
	} else if browse {
		logger.Warn(ctx, "service returned no permalink url", zap.String("compiler", param.Compiler))
	}

	a.status = result.ExitStatus()
	return nil
}

// readSource reads the main source file, or standard input for "-".
func (a *App) readSource(filename string) (string, error) {
	if filename == stdinSource {
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return "", appErr.IoFailure(err, "<stdin>")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", appErr.IoFailure(err, filename)
	}
	return string(data), nil
}

// resolveCompiler prefers an explicit name, then the file extension, then the
// configured fallback.
func resolveCompiler(explicit, filename, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if name, ok := wandbox.CompilerForFile(filename); ok {
		return name
	}
	return fallback
}

func splitArgs(flag, value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	args, err := shlex.Split(value)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InvalidArgs, "invalid --%s: %v", flag, err)
	}
	return args, nil
}
