package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"wan/internal/cli/browser"
	"wan/internal/cli/config"
	"wan/internal/wandbox"
	appErr "wan/pkg/errors"
	"wan/pkg/utils/contextkey"
	"wan/pkg/utils/logger"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	appName = "wan"
	version = "0.4.0"
	usage   = "compile and run code on Wandbox from the command line"
)

// App dispatches one command line to the matching subcommand and turns the
// outcome into a process exit status.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Open   browser.Opener

	// interactive is set for commands typed inside the shell.
	interactive bool
	status      int
}

// New creates an App bound to the process streams.
func New() *App {
	return &App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Open:   browser.Open,
	}
}

// env is what every subcommand needs after global flags are applied.
type env struct {
	cfg        config.Config
	configPath string
	client     *wandbox.Client
}

// Run executes args (args[0] is the program name) and returns the exit status:
// the remote program status after a successful compile, 1 for any local failure.
func (a *App) Run(ctx context.Context, args []string) int {
	a.status = 0
	root := a.rootCommand()
	if err := root.Run(ctx, args); err != nil {
		e := appErr.GetError(err)
		logger.Debug(ctx, "command failed",
			zap.Int("code", int(e.Code)),
			zap.Any("details", e.Details),
			zap.String("stack", e.Stack),
		)
		fmt.Fprintf(a.Stderr, "error: %v\n", err)
		return e.Code.ExitStatus()
	}
	return a.status
}

func (a *App) rootCommand() *cli.Command {
	return &cli.Command{
		Name:      appName,
		Usage:     usage,
		Version:   version,
		Reader:    a.Stdin,
		Writer:    a.Stdout,
		ErrWriter: a.Stderr,
		// Errors are reported by App.Run; never let the library exit the process.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultPath(),
				Usage: "path to the config file (YAML or JSON)",
			},
			&cli.StringFlag{
				Name:  "base",
				Usage: "override the Wandbox base URL",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log request and response details to stderr",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format ('console' or 'json')",
			},
		},
		Commands: a.subcommands(),
		Action:   a.unknown,
	}
}

// unknown runs when no subcommand matched.
func (a *App) unknown(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return appErr.InvalidArgsError("missing command, run 'wan --help' for usage")
	}
	return appErr.Newf(appErr.InvalidArgs, "unknown command %q", cmd.Args().First())
}

func (a *App) subcommands() []*cli.Command {
	cmds := []*cli.Command{
		a.compileCommand(),
		a.listCommand(),
		a.permlinkCommand(),
		a.scriptCommand(),
	}
	if !a.interactive {
		cmds = append(cmds, a.shellCommand())
	}
	return cmds
}

// prepare loads configuration, applies global flags, initialises logging and
// tags ctx with an invocation id.
func (a *App) prepare(ctx context.Context, cmd *cli.Command) (context.Context, env, error) {
	configPath := cmd.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return ctx, env{}, err
	}
	if base := cmd.String("base"); base != "" {
		cfg.BaseURL = base
	}
	if format := cmd.String("log-format"); format != "" {
		cfg.Logger.Format = format
	}
	if cmd.Bool("verbose") {
		cfg.Logger.Level = "debug"
	}
	if err := logger.Init(cfg.Logger); err != nil {
		return ctx, env{}, appErr.Wrapf(err, appErr.ConfigError, "init logger failed: %v", err)
	}

	ctx = context.WithValue(ctx, contextkey.InvocationID, uuid.NewString())
	ctx = context.WithValue(ctx, contextkey.Command, cmd.Name)
	logger.Debug(ctx, "configuration loaded",
		zap.String("config", configPath),
		zap.String("base_url", cfg.BaseURL),
	)
	return ctx, env{cfg: cfg, configPath: configPath, client: wandbox.NewClient(cfg.BaseURL)}, nil
}

func (a *App) open(ctx context.Context, url string) error {
	logger.Debug(ctx, "opening browser", zap.String("url", url))
	if a.Open == nil {
		return appErr.New(appErr.BrowserError).WithMessage("no browser launcher configured")
	}
	return a.Open(url)
}
