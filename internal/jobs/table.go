package jobs

import (
	"fmt"
	"io"
	"log/slog"
)

const (
	// MaxJobs is the maximum number of jobs tracked at any point in time.
	MaxJobs = 16

	// MaxCmdline is the longest command line stored with a job. Longer
	// lines are truncated on Add.
	MaxCmdline = 1024
)

// Job is one tracked child process. PID doubles as the process-group
// id, since every job is launched as the leader of its own group.
type Job struct {
	PID     int
	JID     int
	State   State
	Cmdline string
}

// Table is a fixed-capacity registry of jobs, addressed by slot scan.
// The zero slot state (StateUndef, pid 0) marks an empty slot.
type Table struct {
	slots   [MaxJobs]Job
	nextJID int
	logger  *slog.Logger
}

// NewTable returns a Table with every slot cleared and job id
// allocation starting at 1.
func NewTable(logger *slog.Logger) *Table {
	return &Table{nextJID: 1, logger: logger}
}

func (t *Table) clear(i int) {
	t.slots[i] = Job{}
}

// Add registers a new job in the first empty slot and returns it.
// It returns ErrInvalidPID for a non-positive pid and ErrTooManyJobs
// when the table is full.
func (t *Table) Add(pid int, state State, cmdline string) (*Job, error) {
	if pid < 1 {
		return nil, ErrInvalidPID
	}

	if len(cmdline) > MaxCmdline {
		cmdline = cmdline[:MaxCmdline]
	}

	for i := range t.slots {
		if t.slots[i].PID != 0 {
			continue
		}

		t.slots[i] = Job{
			PID:     pid,
			JID:     t.nextJID,
			State:   state,
			Cmdline: cmdline,
		}

		// The counter wraps past capacity without checking for a
		// collision with a still-live id.
		t.nextJID++
		if t.nextJID > MaxJobs {
			t.nextJID = 1
		}

		t.logger.Debug(
			"added job",
			"jid", t.slots[i].JID,
			"pid", pid,
			"cmdline", cmdline,
		)

		return &t.slots[i], nil
	}

	return nil, ErrTooManyJobs
}

// Delete clears the slot holding pid and recomputes the job id
// allocation counter. It returns false if no slot matches; deleting an
// absent pid mutates nothing.
func (t *Table) Delete(pid int) bool {
	if pid < 1 {
		return false
	}

	for i := range t.slots {
		if t.slots[i].PID == pid {
			jid := t.slots[i].JID

			t.clear(i)
			t.nextJID = t.MaxJID() + 1

			t.logger.Debug("deleted job", "jid", jid, "pid", pid)

			return true
		}
	}

	return false
}

// MaxJID returns the largest currently-assigned job id, or 0 if the
// table is empty.
func (t *Table) MaxJID() int {
	max := 0

	for i := range t.slots {
		if t.slots[i].JID > max {
			max = t.slots[i].JID
		}
	}

	return max
}

// ByPID returns the job with the given process id, or nil.
func (t *Table) ByPID(pid int) *Job {
	if pid < 1 {
		return nil
	}

	for i := range t.slots {
		if t.slots[i].PID == pid {
			return &t.slots[i]
		}
	}

	return nil
}

// ByJID returns the job with the given job id, or nil.
func (t *Table) ByJID(jid int) *Job {
	if jid < 1 {
		return nil
	}

	for i := range t.slots {
		if t.slots[i].JID == jid {
			return &t.slots[i]
		}
	}

	return nil
}

// ForegroundPID returns the process id of the foreground job, or 0 if
// there is none. At most one job is ever in StateForeground.
func (t *Table) ForegroundPID() int {
	for i := range t.slots {
		if t.slots[i].State == StateForeground {
			return t.slots[i].PID
		}
	}

	return 0
}

// JIDOf maps a process id to its job id, or 0 if the pid is not
// tracked.
func (t *Table) JIDOf(pid int) int {
	if job := t.ByPID(pid); job != nil {
		return job.JID
	}

	return 0
}

// Snapshot returns a copy of every live job in slot order.
func (t *Table) Snapshot() []Job {
	var out []Job

	for i := range t.slots {
		if t.slots[i].PID != 0 {
			out = append(out, t.slots[i])
		}
	}

	return out
}

// List writes one line per live job to w in slot order:
//
//	[<jid>] (<pid>) <state-label> <cmdline>
//
// A slot in an unknown state produces an inline diagnostic line and
// listing continues. The first write failure aborts the listing and is
// returned to the caller.
func (t *Table) List(w io.Writer) error {
	for i := range t.slots {
		if t.slots[i].PID == 0 {
			continue
		}

		var err error

		switch t.slots[i].State {
		case StateForeground, StateBackground, StateStopped:
			_, err = fmt.Fprintf(
				w,
				"[%d] (%d) %-10s %s\n",
				t.slots[i].JID,
				t.slots[i].PID,
				t.slots[i].State,
				t.slots[i].Cmdline,
			)
		default:
			_, err = fmt.Fprintf(
				w,
				"jobs: internal error: job [%d] has state %d\n",
				i,
				t.slots[i].State,
			)
		}

		if err != nil {
			return fmt.Errorf("write job list: %w", err)
		}
	}

	return nil
}
