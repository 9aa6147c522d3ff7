package movement

import (
	"fmt"

	"github.com/hollowmere/delve/internal/game/actor"
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/monster"
)

// countAdjacent scans the eight neighbours for features accepted by match,
// merging the cells of a multi-cell gate into one logical door. When exactly
// one distinct door is found, the returned delta points at it (letting the
// caller skip the direction prompt).
//
// Pure read; no state is mutated.
func (r *Resolver) countAdjacent(match func(grid.Feature) bool) (int, grid.Delta) {
	p := r.player
	num := 0
	var delta grid.Delta
	counted := make(map[grid.Coord]bool)

	for _, n := range r.field.Adjacent(p.Pos) {
		feat := r.field.FeatureAt(n)
		if !match(feat) {
			continue
		}
		// Already included in a gate, skip this door.
		if counted[n] {
			continue
		}
		if feat.IsDoor() {
			for _, c := range r.field.ConnectedDoor(n) {
				counted[c] = true
			}
		}
		num++
		delta = n.Sub(p.Pos)
	}
	return num, delta
}

// checkMoveTo runs the dangerous-terrain and trap confirmations for moving
// onto dest. It inspects but never mutates; all reads are idempotent until
// the confirmation succeeds.
//
// Postcondition: returns true iff the move may proceed.
func (r *Resolver) checkMoveTo(dest grid.Coord, verb string) bool {
	feat := r.field.FeatureAt(dest)

	if feat.IsDangerous() {
		prompt := fmt.Sprintf("Are you sure you want to %s over %s?", verb, feat.Description())
		if !r.confirm.Confirm(prompt, false) {
			r.msg.Emit(msgOkay, message.Plain)
			return false
		}
	}

	if trap := r.field.TrapAt(dest); trap != "" {
		prompt := fmt.Sprintf("Really %s onto %s?", verb, trap)
		if !r.confirm.Confirm(prompt, false) {
			r.msg.Emit(msgOkay, message.Plain)
			return false
		}
	}

	return true
}

// beholderBlocking returns a visible beholder the move to dest would retreat
// from, or nil. A beholder forbids increasing the distance between you.
func (r *Resolver) beholderBlocking(dest grid.Coord) *monster.Monster {
	p := r.player
	for _, mon := range r.field.Monsters() {
		if !mon.Beholder || !mon.Visible {
			continue
		}
		if dest.Distance(mon.Pos) > p.Pos.Distance(mon.Pos) {
			return mon
		}
	}
	return nil
}

// fearmongerBlocking returns a visible fearmonger the move to dest would
// approach, or nil. A fearmonger forbids decreasing the distance.
func (r *Resolver) fearmongerBlocking(dest grid.Coord) *monster.Monster {
	p := r.player
	for _, mon := range r.field.Monsters() {
		if !mon.Fearmonger || !mon.Visible {
			continue
		}
		if dest.Distance(mon.Pos) < p.Pos.Distance(mon.Pos) {
			return mon
		}
	}
	return nil
}

// fungusPassthrough reports whether a fungus-form player treats mon as
// passable plant terrain: stationary scenery that shares the player's genus.
func (r *Resolver) fungusPassthrough(mon *monster.Monster) bool {
	return mon != nil &&
		r.player.Form == actor.FormFungus &&
		mon.Kind == monster.Firewood
}
