package movement

import (
	"fmt"

	"github.com/hollowmere/delve/internal/game/dice"
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/monster"
	"github.com/hollowmere/delve/internal/game/status"
)

const msgOkay = "Okay, then."

// freeSelfFromNet spends the turn struggling against a net or web. Escape
// succeeds one time in three; either way the whole turn is consumed.
func (r *Resolver) freeSelfFromNet() {
	p := r.player
	if dice.OneChanceIn(3, r.src) {
		p.Effects.SetAttr(status.HeldInNet, 0)
		r.msg.Emit("You break free from the net!", message.Plain)
		return
	}
	r.msg.Emit("You struggle against the net.", message.Plain)
}

// cancelConfusedMove runs the pre-randomization confirmation: if the player
// stands next to hazardous terrain (lava first) or a monster an accidental
// swing would provoke, ask before stumbling. Declining cancels the action.
//
// Postcondition: returns true iff the player declined; no state is mutated.
func (r *Resolver) cancelConfusedMove(stationary bool) bool {
	p := r.player

	// Unseen doubles as the "no hazard found" sentinel; it never borders the
	// player on a valid map.
	dangerous := grid.Unseen
	var badMonsterName string
	for _, n := range r.field.Adjacent(p.Pos) {
		feat := r.field.FeatureAt(n)
		if !stationary && feat.IsDangerous() && p.Airborne() &&
			(dangerous == grid.Unseen || feat == grid.Lava) {
			dangerous = feat
			if feat == grid.Lava {
				break
			}
			continue
		}
		// A swing at a non-hostile provokes it; that is the other hazard worth
		// a prompt. Sanctuary suppresses accidental attacks entirely.
		mon := r.field.OccupantAt(n)
		if mon != nil && mon.Visible && mon.AngeredByAttacks() &&
			mon.Attitude != monster.Hostile &&
			!(r.field.Sanctuary(p.Pos) && r.field.Sanctuary(mon.Pos)) {
			badMonsterName = mon.Name
		}
	}

	if dangerous == grid.Unseen && badMonsterName == "" {
		return false
	}

	verb := "stumble around"
	if stationary {
		verb = "swing wildly"
	}
	var hazard string
	if dangerous != grid.Unseen {
		hazard = dangerous.Description()
	} else {
		hazard = "the " + badMonsterName
	}
	prompt := fmt.Sprintf("Are you sure you want to %s while confused and next to %s?", verb, hazard)

	if !r.confirm.Confirm(prompt, false) {
		r.msg.Emit(msgOkay, message.Plain)
		return true
	}
	return false
}

// confuseDirection applies the confusion randomization: with probability 2/3
// the requested delta is replaced by a uniform pick from the nine relative
// offsets, including the zero delta.
func (r *Resolver) confuseDirection(move grid.Delta) grid.Delta {
	if dice.OneChanceIn(3, r.src) {
		return move
	}
	return grid.Delta{DX: r.src.Intn(3) - 1, DY: r.src.Intn(3) - 1}
}

// cancelBarbedMove asks once per commitment whether the player really wants
// to move with barbs in their skin. The acceptance is remembered until the
// barbs re-trigger.
//
// Postcondition: returns true iff the player declined; on acceptance only the
// confirmation marker is set.
func (r *Resolver) cancelBarbedMove(lunging bool) bool {
	p := r.player
	if !p.Effects.Has(status.Barbs) || p.Effects.HasProp(status.BarbsMoveConfirmed) {
		return false
	}

	prompt := "The barbs in your skin will harm you if you move."
	if lunging {
		prompt += " Lunging like this could really hurt!"
	}
	prompt += " Continue?"
	if !r.confirm.Confirm(prompt, false) {
		r.msg.Emit(msgOkay, message.Plain)
		return true
	}

	p.Effects.SetProp(status.BarbsMoveConfirmed, "")
	return false
}

// applyBarbsDamage hurts a barbed player who committed to moving: 2d(potency)
// damage and a blood decal at the vacated cell. One time in three the spikes
// snap loose; otherwise the duration stretches by the time the move took
// (lunges stretch nothing — their cost lands on the follow-up move).
func (r *Resolver) applyBarbsDamage(lunging bool, origin grid.Coord) {
	p := r.player
	if !p.Effects.Has(status.Barbs) {
		return
	}

	r.msg.Emit("The barbed spikes dig painfully into your body as you move.", message.Warn)
	p.HP -= dice.RollDice(2, p.Effects.Attr(status.BarbsPotency), r.src)
	r.field.AddBlood(origin)

	if dice.OneChanceIn(3, r.src) {
		r.extractBarbs()
	}
	if p.Effects.Has(status.Barbs) && !lunging {
		p.Effects.Extend(status.Barbs, p.TimeTaken)
	}
}

// extractBarbs ends the barbs effect and clears its confirmation marker so a
// fresh application prompts again.
func (r *Resolver) extractBarbs() {
	p := r.player
	r.msg.Emit("The barbed spikes snap loose.", message.Duration)
	p.Effects.Clear(status.Barbs)
	p.Effects.SetAttr(status.BarbsPotency, 0)
	p.Effects.EraseProp(status.BarbsMoveConfirmed)
}

// removeIceArmour cracks off icy armour when the player moves.
func (r *Resolver) removeIceArmour() {
	p := r.player
	if p.Effects.Has(status.IcyArmour) {
		r.msg.Emit("Your icy armour cracks and falls away as you move.", message.Duration)
		p.Effects.Clear(status.IcyArmour)
	}
}

// removeWaterHold frees the player from an engulfing monster on reposition.
func (r *Resolver) removeWaterHold() {
	p := r.player
	if p.Effects.Has(status.WaterHold) {
		r.msg.Emit("You slip free of the water engulfing you.", message.Plain)
		p.Effects.Clear(status.WaterHold)
		p.Effects.EraseProp(status.WaterHolder)
	}
}

// clearConstriction disengages any grapple; repositioning invalidates it.
func (r *Resolver) clearConstriction() {
	r.player.ConstrictedBy = ""
}

// attemptEscapeConstriction tries to break a grapple before a move. Failure
// wastes the turn struggling.
//
// Postcondition: returns true iff the player may proceed with the move.
func (r *Resolver) attemptEscapeConstriction() bool {
	p := r.player
	if !p.Constricted() {
		return true
	}
	if dice.OneChanceIn(2, r.src) {
		r.msg.Emit(fmt.Sprintf("You escape %s's grasp.", p.ConstrictedBy), message.Plain)
		p.ConstrictedBy = ""
		return true
	}
	r.msg.Emit(fmt.Sprintf("You struggle to escape %s's grasp.", p.ConstrictedBy), message.Plain)
	return false
}

// applyNoxiousBog leaves a toxic bog cell behind a bog-trailing player.
func (r *Resolver) applyNoxiousBog(oldPos grid.Coord) {
	p := r.player
	if !p.Effects.Has(status.NoxiousBog) {
		return
	}
	if r.field.FeatureAt(oldPos).IsSolid() {
		if !p.TeleportedIntoRock {
			panic("movement: bog trail from solid cell " + oldPos.String())
		}
		return
	}
	if r.field.FeatureAt(oldPos) == grid.Floor {
		r.field.SetFeature(oldPos, grid.ToxicBog)
	}
}

// applyCloudTrail drops a trailing cloud at the vacated cell.
//
// Postcondition: returns true iff a cloud was placed.
func (r *Resolver) applyCloudTrail(oldPos grid.Coord) bool {
	p := r.player
	if !p.Effects.Has(status.CloudTrail) {
		return false
	}
	if r.field.FeatureAt(oldPos).IsSolid() {
		if !p.TeleportedIntoRock {
			panic("movement: cloud trail from solid cell " + oldPos.String())
		}
		return false
	}
	// Cloud lifetime is 3-10 turns; the roll is drawn even though the cloud
	// table itself lives outside this module.
	_ = dice.Range(3, 10, r.src)
	r.msg.Emit("A cloud billows up behind you.", message.Plain)
	return true
}

// movePlayerToGrid repositions the player as stepped movement and fires the
// destination's location effects.
func (r *Resolver) movePlayerToGrid(dest grid.Coord) {
	p := r.player
	p.Pos = dest
	if trap := r.field.TrapAt(dest); trap != "" {
		r.msg.Emit(fmt.Sprintf("You set off %s!", trap), message.Danger)
		p.HP -= dice.RollDice(1, 4, r.src)
	}
}

// applyMonsterLocationEffects fires the displaced occupant's location effects
// after a swap. This must run only after the player has vacated the cell, so
// a trap can never act on an occupant that conceptually has not moved yet.
func (r *Resolver) applyMonsterLocationEffects(mon *monster.Monster) {
	if trap := r.field.TrapAt(mon.Pos); trap != "" {
		r.msg.Emit(fmt.Sprintf("%s sets off %s!", TheName(mon), trap), message.Plain)
		mon.HP -= dice.RollDice(1, 4, r.src)
		if mon.HP <= 0 {
			r.field.RemoveOccupant(mon)
			r.msg.Emit(fmt.Sprintf("%s is killed!", TheName(mon)), message.MonsterDamage)
		}
	}
}
