package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/shellkit/jsh/internal/jobs"
	"github.com/shellkit/jsh/internal/parser"
)

// runExternal launches a non-builtin command as a child process leading
// its own process group, registers it in the job table, and for a
// foreground command blocks until it stops or exits.
//
// The mutex is held from Start through Add so the dispatch goroutine
// cannot apply the child's first status change before the job exists in
// the table.
func (s *Shell) runExternal(tok *parser.Tokens, cmdline string) {
	cmd := exec.Command(tok.Argv[0], tok.Argv[1:]...)

	// Keyboard-generated signals go to the terminal's foreground group;
	// a child in its own group only ever sees what the shell relays.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if tok.Infile != "" {
		f, err := os.Open(tok.Infile)
		if err != nil {
			fmt.Fprintf(s.errOut, "jsh: error opening file: %v\n", err)
			return
		}
		defer f.Close()

		cmd.Stdin = f
	}

	if tok.Outfile != "" {
		// The target must already exist, write-only with no create.
		f, err := os.OpenFile(tok.Outfile, os.O_WRONLY, 0)
		if err != nil {
			fmt.Fprintf(s.errOut, "jsh: error opening file: %v\n", err)
			return
		}
		defer f.Close()

		cmd.Stdout = f
	}

	state := jobs.StateForeground
	if tok.Background {
		state = jobs.StateBackground
	}

	s.mu.Lock()

	if err := cmd.Start(); err != nil {
		s.mu.Unlock()

		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(s.out, "%s: Command not found.\n", tok.Argv[0])
			return
		}

		fmt.Fprintf(s.errOut, "jsh: %v\n", err)

		return
	}

	pid := cmd.Process.Pid

	job, err := s.table.Add(pid, state, cmdline)

	// The slot can be reaped the instant the mutex is released, so take
	// what the announcement needs before that.
	var jid int
	if job != nil {
		jid = job.JID
	}

	s.mu.Unlock()

	if err != nil {
		// Same as the original shell: the child keeps running, it just
		// isn't tracked.
		fmt.Fprintln(s.out, "Tried to create too many jobs")
		return
	}

	if tok.Background {
		fmt.Fprintf(s.out, "[%d] (%d) %s\n", jid, pid, cmdline)
		return
	}

	s.waitForeground(pid)
}
