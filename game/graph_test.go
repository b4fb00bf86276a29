package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spell-smash/asset"
	"github.com/lixenwraith/spell-smash/engine/fsm"
	"github.com/lixenwraith/spell-smash/event"
)

func loadRoundGraph(graph string) error {
	event.InitRegistry()
	s := &Session{machine: fsm.NewMachine[*Session]()}
	s.registerActions()
	return s.machine.LoadConfig([]byte(graph))
}

func TestRoundGraphUsesEveryHook(t *testing.T) {
	require.NoError(t, loadRoundGraph(asset.RoundGraph))
}

func TestRoundGraphDriftIsRejected(t *testing.T) {
	for _, guard := range []string{"MoreBuildings", "WordCarried", "BuildingStanding"} {
		t.Run(guard, func(t *testing.T) {
			line := `guard = "` + guard + `"`
			require.Contains(t, asset.RoundGraph, line)
			err := loadRoundGraph(strings.Replace(asset.RoundGraph, line, "", 1))
			require.ErrorIs(t, err, fsm.ErrInvalidGraph)
		})
	}
}
