package jobs

// State is the lifecycle state of a Job.
type State int

const (
	// StateUndef is the zero value and marks an empty table slot. A live
	// job is never in this state.
	StateUndef State = iota

	// StateForeground indicates the job owns the prompt; the shell does
	// not read the next command until it stops or exits. At most one job
	// is in this state at any time.
	StateForeground

	// StateBackground indicates the job runs concurrently with the
	// prompt.
	StateBackground

	// StateStopped indicates the job is paused pending SIGCONT.
	StateStopped
)

// NOTE: This slice needs to be kept in sync with any changes to the
// State values. These are the labels the jobs listing prints, so
// StateBackground reads as "Running".
var stateLabels = []string{
	"Undef",
	"Foreground",
	"Running",
	"Stopped",
}

// String implements the Stringer interface for State and returns the
// listing label for the state by using the int value to index into a
// slice.
func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateLabels) {
		return stateLabels[0]
	}

	return stateLabels[s]
}
