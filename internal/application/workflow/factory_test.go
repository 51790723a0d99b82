package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainwf "github.com/akhilsingh-git/timesheetapplication/internal/domain/workflow"
)

func TestBuildTimesheetStateMachine_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domainwf.State
		trigger domainwf.Trigger
		to      domainwf.State
		ok      bool
	}{
		{"draft save self-loops", domainwf.StateDraft, domainwf.TriggerSave, domainwf.StateDraft, true},
		{"draft submit", domainwf.StateDraft, domainwf.TriggerSubmit, domainwf.StateSubmitted, true},
		{"draft approve", domainwf.StateDraft, domainwf.TriggerApprove, domainwf.StateApproved, true},
		{"draft reject", domainwf.StateDraft, domainwf.TriggerReject, domainwf.StateRejected, true},

		{"submitted save self-loops", domainwf.StateSubmitted, domainwf.TriggerSave, domainwf.StateSubmitted, true},
		{"submitted submit denied", domainwf.StateSubmitted, domainwf.TriggerSubmit, domainwf.StateSubmitted, false},
		{"submitted approve", domainwf.StateSubmitted, domainwf.TriggerApprove, domainwf.StateApproved, true},
		{"submitted reject", domainwf.StateSubmitted, domainwf.TriggerReject, domainwf.StateRejected, true},

		{"approved save self-loops", domainwf.StateApproved, domainwf.TriggerSave, domainwf.StateApproved, true},
		{"approved submit denied", domainwf.StateApproved, domainwf.TriggerSubmit, domainwf.StateApproved, false},
		{"approved re-approve", domainwf.StateApproved, domainwf.TriggerApprove, domainwf.StateApproved, true},
		{"approved reject reverses", domainwf.StateApproved, domainwf.TriggerReject, domainwf.StateRejected, true},

		{"rejected save re-opens to draft", domainwf.StateRejected, domainwf.TriggerSave, domainwf.StateDraft, true},
		{"rejected resubmit", domainwf.StateRejected, domainwf.TriggerSubmit, domainwf.StateSubmitted, true},
		{"rejected approve reverses", domainwf.StateRejected, domainwf.TriggerApprove, domainwf.StateApproved, true},
		{"rejected re-reject", domainwf.StateRejected, domainwf.TriggerReject, domainwf.StateRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := BuildTimesheetStateMachine(tt.from)
			err := machine.Fire(context.Background(), tt.trigger)

			if !tt.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, domainwf.ErrInvalidTransition)
				assert.Equal(t, tt.to, machine.State())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, machine.State())
		})
	}
}

func TestBuildTimesheetStateMachine_FullLifecycle(t *testing.T) {
	machine := BuildTimesheetStateMachine(domainwf.StateDraft)
	ctx := context.Background()

	require.NoError(t, machine.Fire(ctx, domainwf.TriggerSubmit))
	require.NoError(t, machine.Fire(ctx, domainwf.TriggerReject))
	require.NoError(t, machine.Fire(ctx, domainwf.TriggerSave))
	assert.Equal(t, domainwf.StateDraft, machine.State())

	require.NoError(t, machine.Fire(ctx, domainwf.TriggerSubmit))
	require.NoError(t, machine.Fire(ctx, domainwf.TriggerApprove))
	assert.Equal(t, domainwf.StateApproved, machine.State())
	assert.True(t, machine.State().IsDecided())
}
