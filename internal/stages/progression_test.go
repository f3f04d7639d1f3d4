package stages_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/aretw0/sweetwater/internal/runtime"
	"github.com/aretw0/sweetwater/internal/stages"
	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/ports"
	"github.com/aretw0/sweetwater/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullProgression(t *testing.T) {
	catalog := personaCatalog()
	// Low enough that the first self collision of the curled start is terminal.
	catalog.Marketing.BaselineMultiplier = 0.3

	clock := schedule.NewManual(time.Unix(0, 0))
	var visited []domain.StageID
	record := ports.PresenterFunc(func(_ context.Context, snap domain.Snapshot) error {
		if len(visited) == 0 || visited[len(visited)-1] != snap.Stage {
			visited = append(visited, snap.Stage)
		}
		return nil
	})

	orch := runtime.NewOrchestrator(clock, catalog, []ports.Stage{
		stages.NewMarketing(),
		stages.NewWildCustomer(),
		stages.NewSales(stages.WithGridConfig(curledConfig()), seeded()),
		stages.NewMerch(),
		stages.NewITHub(),
		stages.NewWarehouse(),
		stages.NewCelebration(),
	}, runtime.WithRand(rand.New(rand.NewPCG(5, 6))), runtime.WithPresenters(record))

	orch.ShowTitle()
	orch.HandleInput(domain.IntentConfirm)
	require.Equal(t, domain.StageMarketing, orch.Session().Stage)

	orch.HandleInput(domain.IntentConfirm)
	clock.Advance(1500 * time.Millisecond)
	require.Equal(t, domain.StageWildCustomer, orch.Session().Stage)
	assert.Equal(t, 0.3, orch.Session().Awareness)
	require.NotNil(t, orch.Session().Persona)

	orch.HandleInput(domain.IntentConfirm)
	clock.Advance(time.Second)
	require.Equal(t, domain.StageSales, orch.Session().Stage)

	clock.Advance(250 * time.Millisecond)
	snap := orch.Snapshot()
	require.NotNil(t, snap.Board)
	assert.False(t, snap.Board.Running)

	orch.HandleInput(domain.IntentConfirm)
	clock.Advance(time.Second)
	require.Equal(t, domain.StageMerch, orch.Session().Stage)

	clock.Advance(5 * time.Second)
	require.Equal(t, domain.StageITHub, orch.Session().Stage)
	clock.Advance(3 * time.Second)
	require.Equal(t, domain.StageWarehouse, orch.Session().Stage)
	clock.Advance(5 * time.Second)
	require.Equal(t, domain.StageCelebration, orch.Session().Stage)
	clock.Advance(5 * time.Second)

	final := orch.Session()
	assert.Equal(t, domain.StageTitle, final.Stage)
	assert.Zero(t, final.Score)
	assert.Equal(t, 0.3, final.Awareness)
	assert.Nil(t, final.Persona)
	assert.Zero(t, clock.Pending(), "no stage schedule survives the return to the title")

	assert.Equal(t, []domain.StageID{
		domain.StageTitle,
		domain.StageMarketing,
		domain.StageWildCustomer,
		domain.StageSales,
		domain.StageMerch,
		domain.StageITHub,
		domain.StageWarehouse,
		domain.StageCelebration,
		domain.StageTitle,
	}, visited)
}
