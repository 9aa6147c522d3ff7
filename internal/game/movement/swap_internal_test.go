package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hollowmere/delve/internal/config"
	"github.com/hollowmere/delve/internal/game/actor"
	"github.com/hollowmere/delve/internal/game/combat"
	"github.com/hollowmere/delve/internal/game/dungeon"
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/monster"
	"github.com/hollowmere/delve/internal/game/travel"
)

type nopCombat struct{}

func (nopCombat) ResolveMelee(p *actor.Player, mon *monster.Monster) combat.Result {
	return combat.Result{}
}

type yesConfirm struct{}

func (yesConfirm) Confirm(prompt string, defaultYes bool) bool { return true }
func (yesConfirm) PromptDirection(prompt string) grid.Delta    { return grid.Delta{} }

type seqSrc struct {
	values []int
	idx    int
}

func (s *seqSrc) Intn(n int) int {
	v := s.values[s.idx%len(s.values)]
	s.idx++
	if v >= n {
		v = n - 1
	}
	return v
}

func newTestResolver(field *dungeon.Map, p *actor.Player, src *seqSrc) (*Resolver, *message.Buffer) {
	msg := &message.Buffer{}
	r := NewResolver(config.Default().Game, p, field, nopCombat{}, msg,
		yesConfirm{}, travel.NewRunner(0), src, zap.NewNop())
	return r, msg
}

func TestSwapPlaces_MushroomMergesWithToadstool(t *testing.T) {
	field := dungeon.NewMap(8, 8, grid.Floor)
	p := actor.NewPlayer(grid.Coord{X: 3, Y: 3})
	r, msg := newTestResolver(field, p, &seqSrc{values: []int{0}})

	shroom := monster.New("wandering mushroom", monster.Friendly, monster.WanderingMushroom, grid.Coord{X: 4, Y: 3})
	stool := monster.New("toadstool", monster.Friendly, monster.Toadstool, grid.Coord{X: 2, Y: 3})
	assert.NoError(t, field.Place(shroom))
	assert.NoError(t, field.Place(stool))

	ok := r.swapPlaces(shroom, stool.Pos)

	assert.True(t, ok, "the merge lets the player's own move proceed")
	assert.Nil(t, field.OccupantAt(grid.Coord{X: 4, Y: 3}), "the mushroom is gone")
	assert.Same(t, stool, field.OccupantAt(grid.Coord{X: 2, Y: 3}), "the toadstool stays")
	assert.Contains(t, msg.Texts(), "The wandering mushroom merges with the toadstool.")
}

func TestSwapPlaces_OtherBlockerRefuses(t *testing.T) {
	field := dungeon.NewMap(8, 8, grid.Floor)
	p := actor.NewPlayer(grid.Coord{X: 3, Y: 3})
	r, msg := newTestResolver(field, p, &seqSrc{values: []int{0}})

	dog := monster.New("dog", monster.Friendly, monster.Ordinary, grid.Coord{X: 4, Y: 3})
	cat := monster.New("cat", monster.Friendly, monster.Ordinary, grid.Coord{X: 2, Y: 3})
	assert.NoError(t, field.Place(dog))
	assert.NoError(t, field.Place(cat))

	ok := r.swapPlaces(dog, cat.Pos)

	assert.False(t, ok)
	assert.Same(t, dog, field.OccupantAt(grid.Coord{X: 4, Y: 3}), "nobody moved")
	assert.Contains(t, msg.Texts(), "Something prevents you from swapping places.")
}

func TestSwapPlaces_FoxfireDissipates(t *testing.T) {
	field := dungeon.NewMap(8, 8, grid.Floor)
	p := actor.NewPlayer(grid.Coord{X: 3, Y: 3})
	r, msg := newTestResolver(field, p, &seqSrc{values: []int{0}})

	fox := monster.New("foxfire", monster.Friendly, monster.Foxfire, grid.Coord{X: 4, Y: 3})
	assert.NoError(t, field.Place(fox))

	ok := r.swapPlaces(fox, p.Pos)

	assert.True(t, ok)
	assert.Nil(t, field.OccupantAt(grid.Coord{X: 4, Y: 3}))
	assert.Contains(t, msg.Texts(), "The foxfire dissipates!")
}

func TestConfuseDirection_Distribution(t *testing.T) {
	field := dungeon.NewMap(8, 8, grid.Floor)
	p := actor.NewPlayer(grid.Coord{X: 3, Y: 3})

	// Draw 0 keeps the requested direction.
	r, _ := newTestResolver(field, p, &seqSrc{values: []int{0}})
	got := r.confuseDirection(grid.Delta{DX: 1, DY: 0})
	assert.Equal(t, grid.Delta{DX: 1, DY: 0}, got)

	// Any other first draw replaces it with Intn(3)-1 per axis.
	r, _ = newTestResolver(field, p, &seqSrc{values: []int{1, 2, 0}})
	got = r.confuseDirection(grid.Delta{DX: 1, DY: 0})
	assert.Equal(t, grid.Delta{DX: 1, DY: -1}, got)
}

func TestFinishTurn_ZeroesTimeWhenTurnNotConsumed(t *testing.T) {
	field := dungeon.NewMap(8, 8, grid.Floor)
	p := actor.NewPlayer(grid.Coord{X: 3, Y: 3})
	r, _ := newTestResolver(field, p, &seqSrc{values: []int{0}})

	r.beginTurn()
	assert.Equal(t, 10, p.TimeTaken)

	out := r.finishTurn(BlockedFree)
	assert.Equal(t, BlockedFree, out)
	assert.Zero(t, p.TimeTaken)
	assert.Equal(t, BlockedFree, r.LastOutcome())
}

func TestAssertNotInRock(t *testing.T) {
	field := dungeon.NewMap(8, 8, grid.Floor)
	p := actor.NewPlayer(grid.Coord{X: 3, Y: 3})
	field.SetFeature(p.Pos, grid.RockWall)
	r, _ := newTestResolver(field, p, &seqSrc{values: []int{0}})

	assert.Panics(t, func() { r.assertNotInRock() })

	p.TeleportedIntoRock = true
	assert.NotPanics(t, func() { r.assertNotInRock() })
}
