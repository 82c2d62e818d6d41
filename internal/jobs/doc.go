// Package jobs provides the shell's registry of child processes.
//
// A Job is one tracked child process together with its shell-assigned
// bookkeeping: a small job id, a state, and the command line that
// launched it. A Table holds a fixed number of Jobs in slot order.
//
// The Table is plain data with no internal locking. It is shared
// between the evaluate flow and the reaper, and the shell serializes
// every access with a single mutex held for whole read-then-write
// sequences.
package jobs
