package movement

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hollowmere/delve/internal/game/dice"
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/monster"
)

// lungeResult is the three-way result of a lunge attempt.
type lungeResult uint8

const (
	// lungeFail means something invalid prevented the lunge; the normal
	// single-cell move proceeds unchanged.
	lungeFail lungeResult = iota
	// lungeAbort means a prompt response should cancel the whole action.
	lungeAbort
	// lungeSuccess means the player advanced one cell toward the target.
	lungeSuccess
)

// lungeForward lunges the player toward a hostile monster in the direction of
// the move input, if one is visible within the tracer range and the single
// cell of advance is valid. Anything invalid along the path cancels the
// lunge without touching the player's position, time, or durations.
//
// Precondition: move must be a unit compass delta.
func (r *Resolver) lungeForward(move grid.Delta) lungeResult {
	p := r.player

	if !move.IsUnit() {
		panic("movement: lunge with non-unit delta")
	}

	if r.Repeating {
		r.msg.Emit("You can't repeat lunging.", message.Plain)
		return lungeFail
	}

	// Status effects that forbid the reposition outright.
	if p.Nervous() || p.Confused() || p.Stationary() || p.Constricted() {
		return lungeFail
	}

	// Trace the requested direction cell by cell, out to the tracer range,
	// looking for the first visible occupant.
	var target *monster.Monster
	for i := 1; i <= r.cfg.LungeRange; i++ {
		cell := p.Pos.Add(move.Scale(i))
		feat := r.field.FeatureAt(cell)

		// The path is broken by deep water, lava, and the like before any
		// target; shallow water alone is traversable for scanning purposes.
		if !feat.IsTraversable() && feat != grid.ShallowWater {
			break
		}
		if feat.IsSolid() || feat.IsOpaque() {
			break
		}

		mon := r.field.OccupantAt(cell)
		if mon == nil {
			continue
		}
		// Invisible occupants don't stop the scan.
		if !mon.Visible {
			continue
		}
		// The first visible occupant must be a live hostile, not scenery.
		if mon.WontAttack() || mon.Attitude == monster.Neutral || mon.Kind == monster.Firewood {
			break
		}
		target = mon
		break
	}
	if target == nil {
		return lungeFail
	}

	dest := p.Pos.Add(move)

	// Never lunge onto the player's own cell, however the input got here.
	if dest == p.Pos {
		return lungeFail
	}

	if beholder := r.beholderBlocking(dest); beholder != nil {
		r.msg.Emit(fmt.Sprintf("You cannot lunge away from %s!", theName(beholder)), message.Plain)
		return lungeFail
	}
	if fmonger := r.fearmongerBlocking(dest); fmonger != nil {
		r.msg.Emit(fmt.Sprintf("You cannot lunge closer to %s!", theName(fmonger)), message.Plain)
		return lungeFail
	}

	// The advance cell must be empty; an invisible blocker is surfaced.
	if blocker := r.field.OccupantAt(dest); blocker != nil {
		if !blocker.Visible {
			r.msg.Emit("Something unexpectedly blocked you, preventing you from lunging!", message.Plain)
		}
		return lungeFail
	}

	feat := r.field.FeatureAt(dest)
	if feat.IsDangerous() || feat.IsSolid() || feat.IsOpaque() {
		return lungeFail
	}

	// A declined prompt cancels the whole player action, not just the lunge:
	// committing the reposition without its follow-up move would desynchronize
	// the time accounting.
	if !r.checkMoveTo(dest, "lunge") {
		return lungeAbort
	}
	if r.cancelBarbedMove(true) {
		return lungeAbort
	}

	// Validity checks passed; commit the reposition.
	r.removeWaterHold()
	r.clearConstriction()
	oldPos := p.Pos

	r.msg.Emit(fmt.Sprintf("You lunge towards %s!", theName(target)), message.Plain)
	// Stepped movement, not a blink: location effects fire normally.
	r.movePlayerToGrid(dest)

	r.applyBarbsDamage(true, oldPos)
	r.removeIceArmour()
	r.applyNoxiousBog(oldPos)
	r.applyCloudTrail(oldPos)

	if r.run.Running() {
		r.run.AppendTrail(p.Pos)
	}

	r.logger.Debug("lunge committed",
		zap.String("target", target.Name),
		zap.Stringer("from", oldPos),
		zap.Stringer("to", dest),
	)
	return lungeSuccess
}

// finalizeCancelledLunge charges the turn after a lunge whose follow-up move
// was cancelled by a prompt. The reposition already happened and messaging
// already fired, so the move delay, turn end, and post-move bookkeeping must
// still be applied; the lunge's own cost is folded into this single step.
func (r *Resolver) finalizeCancelledLunge(initial grid.Coord) {
	p := r.player

	r.applyMoveTime(0)
	p.TurnIsOver = true
	p.BerserkPenaltyArmed = true

	// Lunging is hasty.
	if r.HastyConduct != nil && dice.OneChanceIn(2, r.src) {
		r.HastyConduct()
	}

	allied := false
	if r.AllyTriggers != nil {
		allied = r.AllyTriggers(initial)
	}
	if !allied && r.AcrobatUpdate != nil {
		r.AcrobatUpdate()
	}
}
