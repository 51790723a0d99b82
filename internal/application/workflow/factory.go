package workflow

import (
	domainwf "github.com/akhilsingh-git/timesheetapplication/internal/domain/workflow"
)

// BuildTimesheetStateMachine creates a state machine configured for the
// weekly timesheet lifecycle.
//
// Save self-loops on Submitted and Approved exist because Managers and
// Admins may amend a decided sheet; whether the actor is entitled to do so
// is the access policy's call, not the machine's. Approve and Reject are
// reachable from every state, mirroring the historical behavior where the
// role check is the only guard on a decision.
func BuildTimesheetStateMachine(initialState domainwf.State) domainwf.StateMachine {
	builder := domainwf.NewBuilder()

	builder.Configure(domainwf.StateDraft).
		Permit(domainwf.TriggerSave, domainwf.StateDraft).
		Permit(domainwf.TriggerSubmit, domainwf.StateSubmitted).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved).
		Permit(domainwf.TriggerReject, domainwf.StateRejected)

	builder.Configure(domainwf.StateSubmitted).
		Permit(domainwf.TriggerSave, domainwf.StateSubmitted).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved).
		Permit(domainwf.TriggerReject, domainwf.StateRejected)

	builder.Configure(domainwf.StateApproved).
		Permit(domainwf.TriggerSave, domainwf.StateApproved).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved).
		Permit(domainwf.TriggerReject, domainwf.StateRejected)

	// Rejected re-opens: the next save resets the sheet to Draft
	builder.Configure(domainwf.StateRejected).
		Permit(domainwf.TriggerSave, domainwf.StateDraft).
		Permit(domainwf.TriggerSubmit, domainwf.StateSubmitted).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved).
		Permit(domainwf.TriggerReject, domainwf.StateRejected)

	return builder.Build(initialState)
}
