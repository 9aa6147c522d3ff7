package movement_test

import (
	"go.uber.org/zap"

	"github.com/hollowmere/delve/internal/config"
	"github.com/hollowmere/delve/internal/game/actor"
	"github.com/hollowmere/delve/internal/game/combat"
	"github.com/hollowmere/delve/internal/game/dungeon"
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/monster"
	"github.com/hollowmere/delve/internal/game/movement"
	"github.com/hollowmere/delve/internal/game/travel"
)

// fixedSrc returns queued values in order, then repeats the last one. Values
// larger than the requested bound are clamped to bound-1.
type fixedSrc struct {
	values []int
	idx    int
}

func (f *fixedSrc) Intn(n int) int {
	v := f.values[f.idx]
	if f.idx < len(f.values)-1 {
		f.idx++
	}
	if v >= n {
		v = n - 1
	}
	return v
}

// confirmStub answers prompts from a queue, falling back to the prompt's
// default, and records every prompt text.
type confirmStub struct {
	answers []bool
	idx     int
	prompts []string
	dir     grid.Delta
}

func (c *confirmStub) Confirm(prompt string, defaultYes bool) bool {
	c.prompts = append(c.prompts, prompt)
	if c.idx < len(c.answers) {
		v := c.answers[c.idx]
		c.idx++
		return v
	}
	return defaultYes
}

func (c *confirmStub) PromptDirection(prompt string) grid.Delta {
	c.prompts = append(c.prompts, prompt)
	return c.dir
}

// combatStub records melee calls without touching any state.
type combatStub struct {
	attacked []*monster.Monster
	result   combat.Result
}

func (c *combatStub) ResolveMelee(p *actor.Player, mon *monster.Monster) combat.Result {
	c.attacked = append(c.attacked, mon)
	return c.result
}

// env bundles a resolver with all its injected collaborators.
type env struct {
	cfg     config.GameConfig
	player  *actor.Player
	field   *dungeon.Map
	cbt     *combatStub
	msg     *message.Buffer
	confirm *confirmStub
	run     *travel.Runner
	src     *fixedSrc
	r       *movement.Resolver
}

// newEnv builds a walled floor room of the given size with the player at
// start. draws queues the random values consumed during the turn; an empty
// queue defaults to a single zero.
func newEnv(w, h int, start grid.Coord, draws ...int) *env {
	field := dungeon.NewMap(w, h, grid.Floor)
	for x := 0; x < w; x++ {
		field.SetFeature(grid.Coord{X: x, Y: 0}, grid.RockWall)
		field.SetFeature(grid.Coord{X: x, Y: h - 1}, grid.RockWall)
	}
	for y := 0; y < h; y++ {
		field.SetFeature(grid.Coord{X: 0, Y: y}, grid.RockWall)
		field.SetFeature(grid.Coord{X: w - 1, Y: y}, grid.RockWall)
	}

	if len(draws) == 0 {
		draws = []int{0}
	}

	e := &env{
		cfg:     config.Default().Game,
		player:  actor.NewPlayer(start),
		field:   field,
		cbt:     &combatStub{},
		msg:     &message.Buffer{},
		confirm: &confirmStub{},
		run:     travel.NewRunner(0),
		src:     &fixedSrc{values: draws},
	}
	e.r = movement.NewResolver(e.cfg, e.player, e.field, e.cbt, e.msg, e.confirm, e.run, e.src, zap.NewNop())
	return e
}

// rebuild re-wires the resolver after cfg or runner changes.
func (e *env) rebuild() {
	e.r = movement.NewResolver(e.cfg, e.player, e.field, e.cbt, e.msg, e.confirm, e.run, e.src, zap.NewNop())
}

// addMonster places a monster and returns it.
func (e *env) addMonster(name string, att monster.Attitude, kind monster.Kind, at grid.Coord) *monster.Monster {
	mon := monster.New(name, att, kind, at)
	mon.HP = 5
	mon.Evasion = 5
	mon.DamageDice = "1d4"
	if err := e.field.Place(mon); err != nil {
		panic(err)
	}
	return mon
}

var (
	east  = grid.Delta{DX: 1, DY: 0}
	west  = grid.Delta{DX: -1, DY: 0}
	north = grid.Delta{DX: 0, DY: -1}
)
