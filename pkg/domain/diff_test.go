package domain_test

import (
	"testing"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	input := domain.Input{Bits: domain.NewBitPair(true, false)}

	t.Run("Initial Load", func(t *testing.T) {
		newState := domain.NewRunState(input)
		diff := domain.Diff(nil, newState)
		require.NotNil(t, diff)
		assert.Nil(t, diff.PhaseIndex, "idle to idle is not a phase change")
		require.NotNil(t, diff.Input)
		assert.Equal(t, input, *diff.Input)
	})

	t.Run("Phase Advance", func(t *testing.T) {
		oldState := &domain.RunState{RunID: "r1", Input: input, PhaseIndex: domain.PhaseEncoding}
		newState := oldState.Snapshot()
		newState.PhaseIndex = domain.PhaseTransmission

		diff := domain.Diff(oldState, newState)
		require.NotNil(t, diff)
		require.NotNil(t, diff.PhaseIndex)
		assert.Equal(t, domain.PhaseTransmission, *diff.PhaseIndex)
		assert.Nil(t, diff.Input)
		assert.Equal(t, "r1", diff.RunID)
	})

	t.Run("Completion Sets Result", func(t *testing.T) {
		oldState := &domain.RunState{RunID: "r1", Input: input, PhaseIndex: domain.PhaseDecoding}
		newState := oldState.Snapshot()
		result := input.Bits
		newState.PhaseIndex = domain.PhaseIdle
		newState.Result = &result
		newState.Completed = true

		diff := domain.Diff(oldState, newState)
		require.NotNil(t, diff)
		require.NotNil(t, diff.Result)
		assert.Equal(t, "10", diff.Result.String())
		require.NotNil(t, diff.Completed)
		assert.True(t, *diff.Completed)
	})

	t.Run("Cleared Failure", func(t *testing.T) {
		oldState := domain.NewRunState(domain.Input{})
		oldState.Failure = domain.FailureFrom(domain.ErrBitsRequired)
		newState := domain.NewRunState(input)

		diff := domain.Diff(oldState, newState)
		require.NotNil(t, diff)
		assert.Contains(t, diff.Cleared, "failure")
	})

	t.Run("No Change", func(t *testing.T) {
		state := domain.NewRunState(input)
		assert.Nil(t, domain.Diff(state, state.Snapshot()))
	})
}
