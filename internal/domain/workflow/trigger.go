package workflow

// Trigger represents a caller action that can cause a state transition.
// The engine never transitions on its own; every trigger is caller-driven.
type Trigger string

const (
	TriggerSave    Trigger = "SAVE"
	TriggerSubmit  Trigger = "SUBMIT"
	TriggerApprove Trigger = "APPROVE"
	TriggerReject  Trigger = "REJECT"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
