package model

import "fmt"

// RunMode distinguishes between a single check and a scorecard of checks.
type RunMode string

const (
	RunModeCheck     RunMode = "check"
	RunModeScorecard RunMode = "scorecard"
)

// RunTarget identifies the check or scorecard an on-demand run is triggered for.
type RunTarget struct {
	Mode RunMode
	ID   string
}

// SlotID returns the comment slot owned by this target. Check and scorecard
// ids live in separate namespaces so their comments never overwrite each other.
func (t RunTarget) SlotID() string {
	return fmt.Sprintf("%s-%s", t.Mode, t.ID)
}

// String implements fmt.Stringer.
func (t RunTarget) String() string {
	return fmt.Sprintf("%s %q", t.Mode, t.ID)
}
