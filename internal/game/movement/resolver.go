// Package movement resolves one player move input into exactly one outcome:
// a walk, an attack, a position swap, a dig, a door interaction, a portal
// entry, or a block. It orchestrates the grid, combat, status, and travel
// collaborators and owns the turn's time accounting.
package movement

import (
	"go.uber.org/zap"

	"github.com/hollowmere/delve/internal/config"
	"github.com/hollowmere/delve/internal/game/actor"
	"github.com/hollowmere/delve/internal/game/combat"
	"github.com/hollowmere/delve/internal/game/dice"
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/monster"
	"github.com/hollowmere/delve/internal/game/status"
	"github.com/hollowmere/delve/internal/game/travel"
)

// Field is the grid contract the resolver consumes. The dungeon package
// provides the concrete implementation; tests may substitute their own.
type Field interface {
	InBounds(c grid.Coord) bool
	FeatureAt(c grid.Coord) grid.Feature
	SetFeature(c grid.Coord, f grid.Feature)
	DestroyWall(c grid.Coord)

	OccupantAt(c grid.Coord) *monster.Monster
	MoveOccupant(mon *monster.Monster, dest grid.Coord)
	RemoveOccupant(mon *monster.Monster)
	Monsters() []*monster.Monster

	Adjacent(c grid.Coord) []grid.Coord
	ConnectedDoor(c grid.Coord) []grid.Coord
	Sanctuary(c grid.Coord) bool
	TrapAt(c grid.Coord) string
	AddBlood(c grid.Coord)
	Noise(loudness int, at grid.Coord)

	DoorVeto(c grid.Coord) (bool, string, error)
	DoorAlreadyOpenMessage(c grid.Coord) string
	NoteDoorOpened(c grid.Coord)
}

// Combat is the melee collaborator. The exchange is side-effecting and may
// kill the defender.
type Combat interface {
	ResolveMelee(p *actor.Player, mon *monster.Monster) combat.Result
}

// Confirmer is the blocking confirmation UI. Confirm suspends only the
// current move resolution; nothing else acts while a prompt is pending.
type Confirmer interface {
	// Confirm asks a yes/no question and blocks for the answer.
	Confirm(prompt string, defaultYes bool) bool
	// PromptDirection asks for a compass direction; the zero delta means the
	// player cancelled.
	PromptDirection(prompt string) grid.Delta
}

// Outcome is the single result of one move resolution. Exactly one outcome
// is realized per invocation.
type Outcome uint8

const (
	// BlockedFree is a refused move that consumed no time.
	BlockedFree Outcome = iota
	// BlockedTurn is a refused move that still consumed the turn.
	BlockedTurn
	// Attack means melee was resolved against the destination occupant.
	Attack
	// Swap means the player exchanged places with the occupant.
	Swap
	// Walk is an ordinary committed move.
	Walk
	// Dig is a committed move that tunnelled through a wall.
	Dig
	// DoorOpened and DoorClosed are door-state transitions.
	DoorOpened
	DoorClosed
	// PortalEntered means the player stepped into a malign gateway.
	PortalEntered
	// Aborted means a confirmation prompt cancelled the action.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case BlockedFree:
		return "blocked-free"
	case BlockedTurn:
		return "blocked-turn"
	case Attack:
		return "attack"
	case Swap:
		return "swap"
	case Walk:
		return "walk"
	case Dig:
		return "dig"
	case DoorOpened:
		return "door-opened"
	case DoorClosed:
		return "door-closed"
	case PortalEntered:
		return "portal-entered"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Resolver is the turn processor for a single player. It is single-threaded:
// one resolution completes fully, prompts included, before the next input.
type Resolver struct {
	cfg     config.GameConfig
	player  *actor.Player
	field   Field
	combat  Combat
	msg     message.Messenger
	confirm Confirmer
	run     *travel.Runner
	src     dice.Source
	logger  *zap.Logger

	// Repeating marks the current input as a queued/repeated command, which
	// forbids lunging.
	Repeating bool

	// HastyConduct, AllyTriggers, and AcrobatUpdate are the turn-ending hooks
	// owned by higher-level subsystems (god conducts, allied attacks, status
	// upkeep). Any of them may be nil. AllyTriggers reports whether an allied
	// attack fired, which suppresses the acrobat update.
	HastyConduct  func()
	AllyTriggers  func(initial grid.Coord) bool
	AcrobatUpdate func()

	lastOutcome Outcome
}

// NewResolver wires a move resolver.
//
// Precondition: all arguments must be non-nil (hooks excepted).
func NewResolver(
	cfg config.GameConfig,
	p *actor.Player,
	field Field,
	cbt Combat,
	msg message.Messenger,
	confirm Confirmer,
	run *travel.Runner,
	src dice.Source,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		cfg:     cfg,
		player:  p,
		field:   field,
		combat:  cbt,
		msg:     msg,
		confirm: confirm,
		run:     run,
		src:     src,
		logger:  logger,
	}
}

// LastOutcome returns the outcome of the most recent entry-point call.
func (r *Resolver) LastOutcome() Outcome {
	return r.lastOutcome
}

// beginTurn resets the per-turn accounting before resolving an input.
func (r *Resolver) beginTurn() {
	r.player.TimeTaken = r.cfg.BaselineDelay
	r.player.TurnIsOver = false
}

// finishTurn enforces the time invariant: a turn that was not consumed costs
// zero time, and records the outcome.
func (r *Resolver) finishTurn(out Outcome) Outcome {
	if !r.player.TurnIsOver {
		r.player.TimeTaken = 0
	}
	r.lastOutcome = out
	r.logger.Debug("move resolved",
		zap.String("outcome", out.String()),
		zap.Stringer("pos", r.player.Pos),
		zap.Int("time_taken", r.player.TimeTaken),
		zap.Bool("turn_over", r.player.TurnIsOver),
	)
	return out
}

// applyMoveTime converts the baseline delay into the final move cost:
// base * speed, stochastically rounded by the move divisor, plus any fixed
// extra cost; floored by the travel pace while running. Every turn-consuming
// movement path routes through here exactly once.
func (r *Resolver) applyMoveTime(extra int) {
	p := r.player
	p.TimeTaken *= p.Speed
	p.TimeTaken = dice.DivRandRound(p.TimeTaken, r.cfg.MoveDivisor, r.src)
	p.TimeTaken += extra

	if r.run.Running() && r.run.Pace() > 0 {
		if floor := dice.DivRoundUp(100, r.run.Pace()); p.TimeTaken < floor {
			p.TimeTaken = floor
		}
	}

	p.Effects.Extend(status.NoHop, p.TimeTaken)
}

// assertNotInRock is the consistency precondition on every move: the player
// never starts inside solid terrain unless the debug teleport flag is set.
func (r *Resolver) assertNotInRock() {
	p := r.player
	if r.field.InBounds(p.Pos) && r.field.FeatureAt(p.Pos).IsSolid() && !p.TeleportedIntoRock {
		panic("movement: player inside solid terrain at " + p.Pos.String())
	}
}
