package arena

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
	"github.com/EaterOA/AICombat/internal/mind"
	"github.com/EaterOA/AICombat/internal/mind/mocks"
)

const duelYAML = `
name: duel
arena: {width: 200, height: 120}
tick: 10ms
walls:
  - {x: 90, y: 0, w: 20, h: 50}
bots:
  - {kind: pursuer, x: 10, y: 10, heading: down}
  - kind: patrol
    x: 150
    y: 80
    checkpoints: [[150, 80], [10, 80]]
  - {kind: passive, x: 170, y: 10}
`

func TestParseScenario_Duel(t *testing.T) {
	sc, err := ParseScenario([]byte(duelYAML))
	require.NoError(t, err)
	assert.Equal(t, "duel", sc.Name)
	assert.Equal(t, ScenarioArena{Width: 200, Height: 120}, sc.Arena)
	require.Len(t, sc.Bots, 3)
	assert.Equal(t, [][2]int{{150, 80}, {10, 80}}, sc.Bots[1].Checkpoints)
	assert.False(t, sc.HasPlayer())

	opts, err := sc.Options(nil)
	require.NoError(t, err)
	sim := NewSim(opts...)
	assert.Equal(t, 10*time.Millisecond, sim.Config.Tick)
	assert.Equal(t, 200, sim.Config.Width)
	assert.Equal(t, []geom.Rect{{X: 90, Y: 0, W: 20, H: 50}}, sim.World.Walls())

	bots := sim.World.Bots()
	require.Len(t, bots, 3)
	assert.Equal(t, geom.Down, bots[0].Heading())
	assert.Equal(t, geom.Right, bots[2].Heading())
	assert.Equal(t, bot.Continue, bots[2].Source().Decide(bot.Status{}).Kind)
}

func TestParseScenario_Rejects(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"empty arena", "arena: {width: 0, height: 10}", "must be positive"},
		{"bad tick", "arena: {width: 10, height: 10}\ntick: soon", "bad tick"},
		{"negative tick", "arena: {width: 10, height: 10}\ntick: -1s", "must be positive"},
		{"flat wall", "arena: {width: 10, height: 10}\nwalls: [{x: 0, y: 0, w: 0, h: 3}]", "empty size"},
		{"unknown kind", "arena: {width: 10, height: 10}\nbots: [{kind: sniper}]", "unknown kind"},
		{"bad heading", "arena: {width: 10, height: 10}\nbots: [{kind: random, heading: north}]", "unknown heading"},
		{"outside", "arena: {width: 10, height: 10}\nbots: [{kind: random, x: 10, y: 0}]", "outside the arena"},
		{"not yaml", "arena: [", "could not decode yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadScenario_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "duel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(duelYAML), 0o600))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "duel", sc.Name)

	_, err = LoadScenario(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read scenario")
}

func TestScenario_PlayerNeedsInput(t *testing.T) {
	sc := &Scenario{
		Arena: ScenarioArena{Width: 100, Height: 100},
		Bots:  []ScenarioEntry{{Kind: KindPlayer, X: 10, Y: 10, Step: 5}},
	}
	require.True(t, sc.HasPlayer())

	_, err := sc.Options(nil)
	require.Error(t, err)

	ctrl := gomock.NewController(t)
	in := mocks.NewMockInput(ctrl)
	in.EXPECT().Pressed(gomock.Any()).Return(false).AnyTimes()

	opts, err := sc.Options(in)
	require.NoError(t, err)
	sim := NewSim(opts...)
	sim.RunTicks(3)
	require.Len(t, sim.World.Bots(), 1)
	_, ok := sim.World.Bots()[0].Source().(*mind.Queued)
	assert.True(t, ok)
	assert.Equal(t, geom.Pos{X: 10, Y: 10}, sim.World.Bots()[0].Body().Pos())
}

func TestClassicScenario_SurvivesEncoding(t *testing.T) {
	out, err := ClassicScenario().Marshal()
	require.NoError(t, err)

	sc, err := ParseScenario(out)
	require.NoError(t, err)
	assert.Equal(t, ClassicScenario(), sc)
}
