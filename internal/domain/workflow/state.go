package workflow

// State represents a timesheet status in the approval lifecycle
type State string

const (
	StateDraft     State = "Draft"
	StateSubmitted State = "Submitted"
	StateApproved  State = "Approved"
	StateRejected  State = "Rejected"
)

var validStates = map[State]bool{
	StateDraft:     true,
	StateSubmitted: true,
	StateApproved:  true,
	StateRejected:  true,
}

// IsDecided returns true once a manager decision has been recorded.
// Rejected is not terminal: the next edit re-opens the sheet as Draft.
func (s State) IsDecided() bool {
	return s == StateApproved || s == StateRejected
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid timesheet status
func (s State) IsValid() bool {
	return validStates[s]
}
