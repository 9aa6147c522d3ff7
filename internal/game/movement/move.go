package movement

import (
	"fmt"

	"github.com/hollowmere/delve/internal/game/actor"
	"github.com/hollowmere/delve/internal/game/dice"
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/monster"
)

// MovePlayer resolves one movement input end to end: status gates, the
// optional lunge, destination classification, swap/attack/refusal, the move
// commit, and the turn's time accounting. Exactly one outcome is realized,
// and a turn that was not consumed costs zero time.
func (r *Resolver) MovePlayer(move grid.Delta) Outcome {
	r.beginTurn()
	return r.finishTurn(r.movePlayer(move))
}

func (r *Resolver) movePlayer(move grid.Delta) Outcome {
	p := r.player
	r.assertNotInRock()

	// One net-escape attempt consumes the whole turn.
	if p.Held() {
		r.freeSelfFromNet()
		p.TurnIsOver = true
		return BlockedTurn
	}

	initial := p.Pos
	attacking := false
	moving := true // cleared when a refused swap prevents eventual movement
	doSwap := false
	var swapDest grid.Coord
	extraTime := 0 // extra cost independent of movement speed

	// When confused, sometimes make a random move.
	if p.Confused() {
		if p.Stationary() {
			// Don't pick a random cell to attack into: trying to move takes no
			// time, and a free aim oracle shouldn't either.
			r.msg.Emit("You cannot move. (Attack without moving to swing in place.)", message.Plain)
			return BlockedFree
		}

		if r.cancelConfusedMove(false) {
			return Aborted
		}
		if r.cancelBarbedMove(false) {
			return Aborted
		}

		move = r.confuseDirection(move)
		if move.IsZero() {
			r.msg.Emit("You're too confused to move!", message.Plain)
			p.BerserkPenaltyArmed = true
			p.TurnIsOver = true
			return BlockedTurn
		}

		stumble := p.Pos.Add(move)
		if !r.field.InBounds(stumble) || !p.CanPassThrough(r.field.FeatureAt(stumble)) {
			p.TurnIsOver = true
			desc := r.field.FeatureAt(stumble).Description()
			if p.Digging { // no actual progress
				r.msg.Emit(fmt.Sprintf("Your mandibles retract as you bump into %s.", desc), message.Plain)
				p.Digging = false
			} else {
				r.msg.Emit(fmt.Sprintf("You bump into %s.", desc), message.Plain)
			}
			p.BerserkPenaltyArmed = true
			return BlockedTurn
		}
	}

	lunged := false
	if p.CanLunge {
		switch r.lungeForward(move) {
		case lungeAbort:
			// A prompt response cancelled the move entirely.
			r.assertNotInRock()
			return Aborted
		case lungeSuccess:
			lunged = true
			// The lunge moved us; rebase the turn on the new position.
			initial = p.Pos
			r.assertNotInRock()
		case lungeFail:
			r.assertNotInRock()
		}
	}

	targ := p.Pos.Add(move)
	// You can't walk out of bounds.
	if !r.field.InBounds(targ) {
		if p.Digging {
			r.msg.Emit("This wall is too hard to dig through.", message.Plain)
		}
		return BlockedFree
	}

	walkVerb := p.WalkVerb()
	targMonst := r.field.OccupantAt(targ)

	// A fungus-form player wades through plant occupants as if they were
	// terrain, at 1.5x the normal move delay.
	if r.fungusPassthrough(targMonst) && !p.Stationary() {
		p.TimeTaken = dice.DivRandRound(p.TimeTaken*3, 2, r.src)
		r.msg.Emit(fmt.Sprintf("You %s carefully through the fungus.", walkVerb), message.Plain)
		targMonst = nil
	}

	targPass := p.CanPassThrough(r.field.FeatureAt(targ)) && !p.Stationary()

	if p.Digging {
		if r.field.FeatureAt(targ).IsDiggable() {
			targPass = true
		} else { // moving or attacking ends the dig
			p.Digging = false
			if r.field.FeatureAt(targ).IsSolid() {
				r.msg.Emit("You can't dig through that.", message.Plain)
			} else {
				r.msg.Emit("You retract your mandibles.", message.Plain)
			}
		}
	}

	// You can swap places with a friendly monster when you're not confused,
	// or with anything when both cells are inside a sanctuary.
	tryToSwap := targMonst != nil &&
		((targMonst.WontAttack() && !p.Confused()) ||
			(r.field.Sanctuary(p.Pos) && r.field.Sanctuary(targ)))

	// Restraining monsters never bind a confused stumble.
	var beholder, fmonger *monster.Monster
	if !p.Confused() {
		beholder = r.beholderBlocking(targ)
		fmonger = r.fearmongerBlocking(targ)
	}

	if r.run.CheckStop() {
		// Cancelling the follow-up move after a lunge still ends the turn.
		if lunged {
			r.finalizeCancelledLunge(initial)
			return Aborted
		}
		p.TurnIsOver = false
		return BlockedFree
	}

	if targMonst != nil && !targMonst.Submerged {
		switch {
		case tryToSwap && beholder == nil && fmonger == nil:
			if dest, ok := r.swapCheck(targMonst); ok {
				doSwap = true
				swapDest = dest
			} else {
				r.run.Stop()
				moving = false
			}

		case targMonst.Attitude == monster.Neutral && !p.Confused() && targMonst.Visible:
			r.msg.Emit(fmt.Sprintf("%s refuses to make way for you. (Attack it to force the issue.)",
				TheName(targMonst)), message.Plain)
			return BlockedFree

		case !tryToSwap: // attack!
			// Don't let movement attempts locate invisible monsters for free.
			if !targMonst.Visible && !p.Confused() {
				if !r.confirm.Confirm("Something unseen blocks your way! Attack it?", false) {
					r.msg.Emit(msgOkay, message.Plain)
					r.run.Stop()
					if lunged {
						r.finalizeCancelledLunge(initial)
						return Aborted
					}
					p.TurnIsOver = false
					return Aborted
				}
			}

			p.TurnIsOver = true
			r.combat.ResolveMelee(p, targMonst)
			p.BerserkPenaltyArmed = false
			attacking = true
		}
	} else if p.Form == actor.FormFungus && moving && !p.Confused() && p.Nervous() {
		r.msg.Emit("You're too terrified to move while being watched!", message.Plain)
		r.run.Stop()
		p.TurnIsOver = false
		return BlockedFree
	}

	wasRunning := r.run.Running()
	outcome := BlockedFree

	if !attacking && targPass && moving && beholder == nil && fmonger == nil {
		// A confused stumble toward open danger stops at the brink.
		if p.Confused() && r.field.FeatureAt(targ).IsDangerous() {
			r.msg.Emit(fmt.Sprintf("You nearly stumble into %s!",
				r.field.FeatureAt(targ).Description()), message.Danger)
			p.BerserkPenaltyArmed = true
			p.TurnIsOver = true
			return BlockedTurn
		}

		if !p.Confused() && !r.checkMoveTo(targ, walkVerb) {
			r.run.Stop()
			if lunged {
				r.finalizeCancelledLunge(initial)
				return Aborted
			}
			p.TurnIsOver = false
			return Aborted
		}

		// When confused, the barbed prompt already ran before randomizing.
		if !p.Confused() && r.cancelBarbedMove(false) {
			return Aborted
		}

		if !r.attemptEscapeConstriction() {
			p.TurnIsOver = true
			return BlockedTurn
		}

		outcome = Walk
		if p.Digging {
			r.msg.Emit(fmt.Sprintf("You dig through %s.", r.field.FeatureAt(targ).Description()), message.Plain)
			r.field.DestroyWall(targ)
			r.field.Noise(r.cfg.DigNoise, p.Pos)
			extraTime += r.cfg.DigExtraCost()
			outcome = Dig
		}

		if doSwap {
			if !r.swapPlaces(targMonst, swapDest) {
				r.run.Stop()
				p.TurnIsOver = false
				return BlockedFree
			}
			outcome = Swap
		}

		if wasRunning && r.run.TrailEmpty() {
			r.run.AppendTrail(p.Pos)
		} else if !wasRunning {
			r.run.ClearTrail()
		}

		oldPos := p.Pos
		// Don't trigger movement effects when confusion produced no move.
		if targ != p.Pos {
			r.removeWaterHold()
			r.clearConstriction()
			r.movePlayerToGrid(targ)
			r.applyBarbsDamage(false, oldPos)
			r.removeIceArmour()
			r.applyNoxiousBog(oldPos)
			r.applyCloudTrail(oldPos)
		}

		// Only now is it safe to fire the swapped occupant's location effects;
		// doing so earlier could act on a cell the player still held.
		if doSwap {
			r.applyMonsterLocationEffects(targMonst)
		}

		if r.run.Running() {
			r.run.AppendTrail(p.Pos)
		}

		r.applyMoveTime(extraTime)
		p.TurnIsOver = true
	} else if r.shouldOpenDoorInstead(targ, attacking) {
		return r.openDoor(move, true)
	} else if !targPass && r.field.FeatureAt(targ) == grid.MalignGateway && !attacking && !p.Stationary() {
		if !r.confirm.Confirm("Are you sure you wish to approach this portal? There's no "+
			"telling what its forces would wreak upon your fragile self.", false) {
			r.msg.Emit(msgOkay, message.Plain)
			return Aborted
		}
		p.TurnIsOver = true
		r.enterMalignPortal()
		return PortalEntered
	} else if !targPass && !attacking {
		feat := r.field.FeatureAt(targ)
		switch {
		case p.Stationary():
			r.msg.Emit("You cannot move.", message.Plain)
		case feat == grid.OpenSea:
			r.msg.Emit("The ferocious winds and tides of the open sea thwart your progress.", message.Plain)
		case feat == grid.LavaSea:
			r.msg.Emit("The endless sea of lava is not a nice place.", message.Plain)
		}
		r.run.Stop()
		p.TurnIsOver = false
		return BlockedFree
	} else if beholder != nil && !attacking {
		r.msg.Emit(fmt.Sprintf("You cannot move away from %s!", theName(beholder)), message.Plain)
		r.run.Stop()
		return BlockedFree
	} else if fmonger != nil && !attacking {
		r.msg.Emit(fmt.Sprintf("You cannot move closer to %s!", theName(fmonger)), message.Plain)
		r.run.Stop()
		return BlockedFree
	}

	if attacking {
		outcome = Attack
	}

	// Turn-ending bookkeeping shared by every committed path.
	r.run.AdvanceMode()
	p.BerserkPenaltyArmed = !attacking

	if !attacking && r.HastyConduct != nil &&
		((r.run.Running() && dice.OneChanceIn(10, r.src)) ||
			(lunged && dice.OneChanceIn(2, r.src))) {
		r.HastyConduct()
	}

	allied := false
	if !attacking && r.AllyTriggers != nil {
		allied = r.AllyTriggers(initial)
	}
	// Moving without attacking keeps acrobatics going.
	if !attacking && moving && !allied && r.AcrobatUpdate != nil {
		r.AcrobatUpdate()
	}

	return outcome
}

// shouldOpenDoorInstead reports whether a move into a closed door should be
// resolved as an open command: always by hand, and mid-run only when
// travel-open-doors is configured.
func (r *Resolver) shouldOpenDoorInstead(targ grid.Coord, attacking bool) bool {
	if attacking {
		return false
	}
	if !r.field.FeatureAt(targ).IsClosedDoor() {
		return false
	}
	return r.cfg.TravelOpenDoors || !r.run.Running()
}

// enterMalignPortal throws the player through the gateway: ejected, hurt, and
// left wherever the portal spat them out.
func (r *Resolver) enterMalignPortal() {
	p := r.player
	r.msg.Emit("You are twisted violently and ejected from the portal!", message.Danger)
	p.HP -= dice.RollDice(2, 4, r.src)
	r.blinkPlayer()
}

// blinkPlayer relocates the player to a random nearby traversable cell, the
// short-range displacement a malign portal inflicts.
func (r *Resolver) blinkPlayer() {
	p := r.player
	for tries := 0; tries < 40; tries++ {
		dest := grid.Coord{
			X: p.Pos.X + r.src.Intn(7) - 3,
			Y: p.Pos.Y + r.src.Intn(7) - 3,
		}
		if dest == p.Pos || !r.field.InBounds(dest) {
			continue
		}
		if !r.field.FeatureAt(dest).IsTraversable() || r.field.OccupantAt(dest) != nil {
			continue
		}
		p.Pos = dest
		return
	}
	// Nowhere to blink to; the player stays put.
}
