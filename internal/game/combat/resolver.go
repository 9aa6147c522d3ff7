// Package combat resolves melee exchanges between the player and a single
// monster. The movement resolver treats it as an external collaborator: it
// only calls ResolveMelee and trusts the side effects.
package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hollowmere/delve/internal/game/actor"
	"github.com/hollowmere/delve/internal/game/dice"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/monster"
)

// OccupantRemover is the subset of the dungeon map the resolver needs to
// take a dead monster off the board. A local interface avoids a dependency
// on the dungeon package.
type OccupantRemover interface {
	RemoveOccupant(mon *monster.Monster)
}

// Result summarises one melee exchange.
type Result struct {
	// AttackRoll is the raw d20 result.
	AttackRoll int
	// Hit is true when the roll met the defender's evasion.
	Hit bool
	// Damage is the damage dealt on a hit.
	Damage int
	// Killed is true when the defender died from this exchange.
	Killed bool
}

// Resolver performs melee resolution. It owns no game state; the map and
// messenger are injected.
type Resolver struct {
	roller *dice.Roller
	src    dice.Source
	msg    message.Messenger
	field  OccupantRemover
	logger *zap.Logger
}

// NewResolver creates a melee resolver.
//
// Precondition: all arguments must be non-nil.
func NewResolver(src dice.Source, msg message.Messenger, field OccupantRemover, logger *zap.Logger) *Resolver {
	return &Resolver{
		roller: dice.NewLoggedRoller(src, logger),
		src:    src,
		msg:    msg,
		field:  field,
		logger: logger,
	}
}

// ResolveMelee has the player strike mon once. On a hit the player's damage
// dice are rolled; a monster reduced to zero HP dies and is removed from the
// occupant index.
//
// Precondition: p and mon must be non-nil; mon must still be on the board.
// Postcondition: exactly one attack message is emitted; mon.HP reflects the
// exchange; a killed monster is no longer an occupant.
func (r *Resolver) ResolveMelee(p *actor.Player, mon *monster.Monster) Result {
	roll := r.src.Intn(20) + 1
	res := Result{AttackRoll: roll}

	if roll < mon.Evasion {
		r.msg.Emit(fmt.Sprintf("You miss %s.", withArticle(mon.Name)), message.Plain)
		r.logger.Debug("melee miss",
			zap.String("defender", mon.Name),
			zap.Int("roll", roll),
			zap.Int("evasion", mon.Evasion),
		)
		return res
	}

	dmg, err := r.roller.RollExpr(p.DamageDice)
	if err != nil {
		panic("combat: invalid player damage dice " + p.DamageDice + ": " + err.Error())
	}
	res.Hit = true
	res.Damage = dmg.Total()
	mon.HP -= res.Damage

	if mon.HP <= 0 {
		res.Killed = true
		r.field.RemoveOccupant(mon)
		r.msg.Emit(fmt.Sprintf("You kill %s!", withArticle(mon.Name)), message.MonsterDamage)
	} else {
		r.msg.Emit(fmt.Sprintf("You hit %s.", withArticle(mon.Name)), message.Plain)
	}

	r.logger.Debug("melee hit",
		zap.String("defender", mon.Name),
		zap.Int("roll", roll),
		zap.Int("damage", res.Damage),
		zap.Bool("killed", res.Killed),
	)
	return res
}

// withArticle prefixes a monster name with "the" unless it already carries one.
func withArticle(name string) string {
	if len(name) >= 4 && name[:4] == "the " {
		return name
	}
	return "the " + name
}
