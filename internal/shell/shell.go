// Package shell implements the job-control core: evaluating command
// lines, launching child processes in their own process groups,
// reaping their status changes, and moving jobs between foreground,
// background, and stopped states.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/shellkit/jsh/internal/config"
	"github.com/shellkit/jsh/internal/jobs"
	"github.com/shellkit/jsh/internal/parser"
	"github.com/shellkit/jsh/internal/sio"
)

// Shell owns the job table and evaluates command lines read from
// stdin.
//
// Two flows touch the table: the evaluate flow (Run/Evaluate) and the
// signal dispatch goroutine started by New. The mutex serializes them,
// and it is held across whole read-then-write sequences (launch and
// register, resolve and mutate) so a status application can never
// observe or clobber a half-finished update.
type Shell struct {
	cfg    *config.Config
	logger *slog.Logger

	table  *jobs.Table
	notify *sio.Writer

	mu sync.Mutex
	fg *sync.Cond

	out    io.Writer
	errOut io.Writer

	sigCh chan os.Signal
}

// New returns a Shell with signal handling installed and the dispatch
// goroutine running. Notices and listings go to out, errors to errOut.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	out io.Writer,
	errOut io.Writer,
) *Shell {
	s := &Shell{
		cfg:    cfg,
		logger: logger,
		table:  jobs.NewTable(logger),
		notify: sio.New(out),
		out:    out,
		errOut: errOut,
		sigCh:  make(chan os.Signal, 16),
	}

	s.fg = sync.NewCond(&s.mu)

	// Children lead their own process groups and may touch the
	// terminal; the shell itself must not be stopped for it.
	signal.Ignore(syscall.SIGTTIN, syscall.SIGTTOU)

	signal.Notify(
		s.sigCh,
		syscall.SIGCHLD,
		syscall.SIGINT,
		syscall.SIGTSTP,
		syscall.SIGQUIT,
	)

	go s.dispatchSignals()

	return s
}

// Close uninstalls the signal handlers and stops the dispatch
// goroutine. Jobs that are still running are left running.
func (s *Shell) Close() {
	signal.Stop(s.sigCh)
	close(s.sigCh)
}

// Run reads command lines from stdin until EOF and evaluates each one.
// When stdin is a terminal and the prompt is enabled it reads with
// line editing and history; otherwise it reads plain lines.
func (s *Shell) Run() error {
	if term.IsTerminal(int(os.Stdin.Fd())) && s.cfg.EmitPrompt {
		return s.runInteractive()
	}

	return s.runPlain()
}

func (s *Shell) runInteractive() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      s.cfg.Prompt,
		HistoryFile: s.cfg.HistoryFile,
	})
	if err != nil {
		return fmt.Errorf("initialize line reader: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("read command line: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		s.Evaluate(line)
	}

	fmt.Fprintln(s.out)

	return nil
}

func (s *Shell) runPlain() error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if s.cfg.EmitPrompt {
			fmt.Fprint(s.out, s.cfg.Prompt)
		}

		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		s.Evaluate(line)
	}

	fmt.Fprintln(s.out)

	return scanner.Err()
}

// Evaluate parses one command line, dispatches a builtin or launches an
// external command, and blocks until the command is no longer in the
// foreground.
func (s *Shell) Evaluate(cmdline string) {
	tok, err := parser.ParseLine(cmdline)
	if err != nil {
		fmt.Fprintf(s.errOut, "jsh: %v\n", err)
		return
	}

	if len(tok.Argv) == 0 {
		return
	}

	switch tok.Builtin {
	case parser.BuiltinQuit:
		s.builtinQuit()
	case parser.BuiltinJobs:
		s.builtinJobs(tok)
	case parser.BuiltinBG:
		s.builtinBG(tok)
	case parser.BuiltinFG:
		s.builtinFG(tok)
	default:
		s.runExternal(tok, cmdline)
	}
}

// Snapshot returns a copy of every live job in slot order.
func (s *Shell) Snapshot() []jobs.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.Snapshot()
}
