package shell

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/shellkit/jsh/internal/jobs"
	"github.com/shellkit/jsh/internal/parser"
)

func (s *Shell) builtinQuit() {
	os.Exit(0)
}

// builtinJobs lists the job table to stdout, or to the output file if
// the command line redirected it. A listing write failure is fatal to
// the whole shell.
func (s *Shell) builtinJobs(tok *parser.Tokens) {
	var w io.Writer = s.out

	if tok.Outfile != "" {
		f, err := os.OpenFile(tok.Outfile, os.O_WRONLY, 0)
		if err != nil {
			fmt.Fprintf(s.errOut, "jsh: error opening file: %v\n", err)
			return
		}
		defer f.Close()

		w = f
	}

	s.mu.Lock()
	err := s.table.List(w)
	s.mu.Unlock()

	if err != nil {
		fmt.Fprintf(s.errOut, "jsh: %v\n", err)
		os.Exit(1)
	}
}

// resolve looks up a bg/fg target: "%N" by job id, otherwise by pid.
// Non-numeric input resolves to 0, which no live job matches. The
// caller must hold the mutex.
func (s *Shell) resolve(arg string) *jobs.Job {
	if strings.HasPrefix(arg, "%") {
		jid, _ := strconv.Atoi(arg[1:])
		return s.table.ByJID(jid)
	}

	pid, _ := strconv.Atoi(arg)

	return s.table.ByPID(pid)
}

// builtinBG resumes a stopped job in the background: mark it, SIGCONT
// its process group, announce it, and return without waiting.
func (s *Shell) builtinBG(tok *parser.Tokens) {
	if len(tok.Argv) < 2 {
		fmt.Fprintln(s.errOut, "bg command requires PID or %jobid argument")
		return
	}
	arg := tok.Argv[1]

	s.mu.Lock()

	job := s.resolve(arg)
	if job == nil {
		s.mu.Unlock()
		fmt.Fprintf(s.errOut, "%s: No such job\n", arg)
		return
	}

	job.State = jobs.StateBackground
	jid, pid, cmdline := job.JID, job.PID, job.Cmdline

	s.mu.Unlock()

	if err := unix.Kill(-pid, unix.SIGCONT); err != nil {
		s.logger.Error("continue process group", "pid", pid, "error", err)
	}

	fmt.Fprintf(s.out, "[%d] (%d) %s\n", jid, pid, cmdline)
}

// builtinFG moves a job to the foreground: SIGCONT its process group,
// mark it, then block until it next stops (it stays in the table as
// Stopped) or terminates (the reaper deletes it).
func (s *Shell) builtinFG(tok *parser.Tokens) {
	if len(tok.Argv) < 2 {
		fmt.Fprintln(s.errOut, "fg command requires PID or %jobid argument")
		return
	}
	arg := tok.Argv[1]

	s.mu.Lock()

	job := s.resolve(arg)
	if job == nil {
		s.mu.Unlock()
		fmt.Fprintf(s.errOut, "%s: No such job\n", arg)
		return
	}

	job.State = jobs.StateForeground
	pid := job.PID

	s.mu.Unlock()

	if err := unix.Kill(-pid, unix.SIGCONT); err != nil {
		s.logger.Error("continue process group", "pid", pid, "error", err)
	}

	s.waitForeground(pid)
}
