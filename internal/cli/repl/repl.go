package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	appErr "wan/pkg/errors"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
)

const prompt = "wan> "

// Dispatcher runs one tokenised command line and returns its exit status.
type Dispatcher func(ctx context.Context, args []string) int

// Session holds REPL state.
type Session struct {
	dispatch    Dispatcher
	out         io.Writer
	historyFile string
	lastStatus  int
}

func New(dispatch Dispatcher, out io.Writer, historyFile string) *Session {
	return &Session{
		dispatch:    dispatch,
		out:         out,
		historyFile: historyFile,
	}
}

// LastStatus is the exit status of the most recent command.
func (s *Session) LastStatus() int {
	return s.lastStatus
}

// Run reads lines until exit, EOF or an interrupt on an empty line.
func (s *Session) Run(ctx context.Context, in io.ReadCloser) error {
	if s.historyFile != "" {
		_ = os.MkdirAll(filepath.Dir(s.historyFile), 0o755)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     s.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           in,
		Stdout:          s.out,
	})
	if err != nil {
		return appErr.Wrapf(err, appErr.IoError, "start shell failed: %v", err)
	}
	defer rl.Close()

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return appErr.Wrapf(err, appErr.IoError, "read input failed: %v", err)
		}

		cont, err := s.Execute(ctx, line)
		if err != nil {
			s.printLine("error: %v", err)
		}
		if !cont {
			return nil
		}
	}
}

// Execute handles one input line. It returns false once the session should end.
func (s *Session) Execute(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return true, nil
	}
	switch line {
	case "exit", "quit":
		s.printLine("bye")
		return false, nil
	case "help":
		s.printHelp()
		return true, nil
	case "status":
		s.printLine("%d", s.lastStatus)
		return true, nil
	}

	tokens, err := shlex.Split(line)
	if err != nil {
		return true, appErr.Wrapf(err, appErr.InvalidArgs, "parse command failed: %v", err)
	}
	if len(tokens) == 0 {
		return true, nil
	}
	s.lastStatus = s.dispatch(ctx, tokens)
	if s.lastStatus != 0 {
		s.printLine("[exit status %d]", s.lastStatus)
	}
	return true, nil
}

func (s *Session) printHelp() {
	s.printLine("usage: <command> [flags] [args...]")
	s.printLine("system: help | status | exit")
	s.printLine("examples:")
	s.printLine("  compile --options warning main.cpp")
	s.printLine("  compile -c ruby-head --stdin \"1 2\" sum.rb")
	s.printLine("  list --language C++ --name gcc")
	s.printLine("  permlink AbCdEf123")
}

func (s *Session) printLine(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
}
