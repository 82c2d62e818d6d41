package shell

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/shellkit/jsh/internal/jobs"
)

// dispatchSignals consumes the shell's signal channel. SIGCHLD drives
// the reaper; SIGINT and SIGTSTP are relayed to the foreground process
// group; SIGQUIT terminates the shell.
func (s *Shell) dispatchSignals() {
	for sig := range s.sigCh {
		switch sig {
		case syscall.SIGCHLD:
			s.reap()
		case syscall.SIGINT, syscall.SIGTSTP:
			s.relay(sig.(syscall.Signal))
		case syscall.SIGQUIT:
			fmt.Fprintln(s.errOut, "Terminating after receipt of SIGQUIT signal")
			os.Exit(1)
		}
	}
}

// relay forwards a keyboard-generated signal to the current foreground
// process group. With no foreground job the signal is dropped.
func (s *Shell) relay(sig syscall.Signal) {
	s.mu.Lock()
	pid := s.table.ForegroundPID()
	s.mu.Unlock()

	if pid == 0 {
		return
	}

	if err := unix.Kill(-pid, sig); err != nil {
		s.logger.Error(
			"relay signal to foreground group",
			"signal", sig,
			"pid", pid,
			"error", err,
		)
	}
}

// reap drains every child with a pending status change without
// blocking on any child that has not changed state. One SIGCHLD
// delivery can stand for several children, so it polls until the
// kernel has nothing more to report.
func (s *Shell) reap() {
	for {
		var ws unix.WaitStatus

		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG|unix.WUNTRACED, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil || pid <= 0 {
			return
		}

		s.apply(pid, ws)
	}
}

// apply is the state transition for one reported child status. It runs
// under the mutex and wakes any foreground waiter afterwards.
func (s *Shell) apply(pid int, ws unix.WaitStatus) {
	s.mu.Lock()
	defer func() {
		s.fg.Broadcast()
		s.mu.Unlock()
	}()

	s.logger.Debug("reaped child status", "pid", pid, "status", int(ws))

	switch {
	case ws.Stopped():
		job := s.table.ByPID(pid)
		if job == nil {
			return
		}

		job.State = jobs.StateStopped
		s.notify.Stopped(job.JID, pid, int(ws.StopSignal()))

	case ws.Signaled():
		s.notify.Terminated(s.table.JIDOf(pid), pid, int(ws.Signal()))
		s.table.Delete(pid)

	case ws.Exited():
		s.table.Delete(pid)
	}
}

// waitForeground blocks until pid is no longer the foreground pid,
// i.e. until the reaper has deleted the job or demoted it to Stopped.
// The predicate is checked before the first suspension, so a child
// that was reaped before the wait began does not block forever.
func (s *Shell) waitForeground(pid int) {
	s.mu.Lock()
	for s.table.ForegroundPID() == pid {
		s.fg.Wait()
	}
	s.mu.Unlock()
}
