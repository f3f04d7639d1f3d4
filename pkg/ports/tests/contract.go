package tests

import (
	"testing"
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StageContractCase describes how to exercise a stage under the contract suite.
type StageContractCase struct {
	// New builds a fresh stage.
	New func() ports.Stage

	// Catalog is handed to the fake host.
	Catalog domain.Catalog

	// Drive pushes the stage to completion (e.g. by sending input). It may be nil
	// for stages that complete on their own timer.
	Drive func(t *testing.T, stage ports.Stage, host *FakeHost)

	// Horizon is how much virtual time the stage gets to call Advance.
	Horizon time.Duration
}

// RunStageContract runs a suite of tests to verify that a Stage implementation
// adheres to the activation contract.
func RunStageContract(t *testing.T, tc StageContractCase) {
	t.Run("Start does not advance synchronously", func(t *testing.T) {
		host := NewFakeHost(tc.Catalog)
		tc.New().Start(host)
		assert.Zero(t, host.Advances)
	})

	t.Run("Advances exactly once", func(t *testing.T) {
		host := NewFakeHost(tc.Catalog)
		stage := tc.New()
		stage.Start(host)

		if tc.Drive != nil {
			tc.Drive(t, stage, host)
		}
		host.Clock.Advance(tc.Horizon)
		require.Equal(t, 1, host.Advances, "stage must advance once within %v", tc.Horizon)

		// Input after completion and more time must not produce another advance.
		if h, ok := stage.(ports.InputHandler); ok {
			h.HandleInput(domain.IntentConfirm)
		}
		host.Clock.Advance(10 * tc.Horizon)
		assert.Equal(t, 1, host.Advances)
	})

	t.Run("Closed scope silences the stage", func(t *testing.T) {
		host := NewFakeHost(tc.Catalog)
		stage := tc.New()
		stage.Start(host)

		host.Scope.Close()
		if c, ok := stage.(ports.Cleaner); ok {
			c.Cleanup()
		}
		shows := host.Shows
		host.Clock.Advance(tc.Horizon)

		assert.Zero(t, host.Advances)
		assert.Equal(t, shows, host.Shows)
		assert.Zero(t, host.Clock.Pending())
	})
}
