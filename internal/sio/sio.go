// Package sio emits the shell's job notifications.
//
// Notices are assembled into a single byte slice with strconv append
// calls and handed to the sink in exactly one Write call, with no
// buffered or fmt-style formatting in between. The reaper emits these
// notices asynchronously while the prompt may be mid-draw, and a single
// write keeps each notice line intact on the terminal.
package sio

import (
	"io"
	"strconv"
)

// Writer emits job notices to an unbuffered sink, typically stdout.
type Writer struct {
	w io.Writer
}

// New returns a Writer emitting to w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Stopped emits "Job [jid] (pid) stopped by signal sig".
func (n *Writer) Stopped(jid, pid, sig int) error {
	return n.notice(jid, pid, "stopped", sig)
}

// Terminated emits "Job [jid] (pid) terminated by signal sig".
func (n *Writer) Terminated(jid, pid, sig int) error {
	return n.notice(jid, pid, "terminated", sig)
}

func (n *Writer) notice(jid, pid int, verb string, sig int) error {
	buf := make([]byte, 0, 64)

	buf = append(buf, "Job ["...)
	buf = strconv.AppendInt(buf, int64(jid), 10)
	buf = append(buf, "] ("...)
	buf = strconv.AppendInt(buf, int64(pid), 10)
	buf = append(buf, ") "...)
	buf = append(buf, verb...)
	buf = append(buf, " by signal "...)
	buf = strconv.AppendInt(buf, int64(sig), 10)
	buf = append(buf, '\n')

	_, err := n.w.Write(buf)

	return err
}
