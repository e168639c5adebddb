package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLifecycle(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		var life Lifecycle
		require.Equal(t, StateInitializing, life.Current())

		require.True(t, life.To(StateListening))
		require.True(t, life.To(StateShuttingDown))
		require.True(t, life.To(StateTerminated))
		require.Equal(t, StateTerminated, life.Current())
	})

	t.Run("abort path", func(t *testing.T) {
		var life Lifecycle
		require.True(t, life.To(StateAborted))
		require.Equal(t, StateAborted, life.Current())
	})

	t.Run("illegal transitions leave the state untouched", func(t *testing.T) {
		var life Lifecycle
		require.False(t, life.To(StateShuttingDown))
		require.False(t, life.To(StateTerminated))
		require.Equal(t, StateInitializing, life.Current())

		require.True(t, life.To(StateListening))
		require.False(t, life.To(StateListening))
		require.False(t, life.To(StateAborted))
		require.Equal(t, StateListening, life.Current())
	})

	t.Run("terminal states are final", func(t *testing.T) {
		var life Lifecycle
		life.To(StateAborted)
		require.False(t, life.To(StateListening))

		var done Lifecycle
		done.To(StateListening)
		done.To(StateShuttingDown)
		done.To(StateTerminated)
		require.False(t, done.To(StateListening))
	})
}

func TestStateString(t *testing.T) {
	require.Equal(t, "initializing", StateInitializing.String())
	require.Equal(t, "listening", StateListening.String())
	require.Equal(t, "shutting_down", StateShuttingDown.String())
	require.Equal(t, "terminated", StateTerminated.String())
	require.Equal(t, "aborted", StateAborted.String())
}
