package movement

import (
	"fmt"

	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/monster"
)

// swapCheck finds where the displaced monster should go when the player swaps
// into its cell. The player's own cell is the only candidate: a monster that
// cannot survive there refuses the swap.
//
// Postcondition: on true, the returned cell is habitable for mon and carries
// no other occupant. No state is mutated.
func (r *Resolver) swapCheck(mon *monster.Monster) (grid.Coord, bool) {
	dest := r.player.Pos
	if !mon.Habitable(r.field.FeatureAt(dest)) {
		r.msg.Emit(fmt.Sprintf("You cannot swap places with %s.", theName(mon)), message.Plain)
		return grid.Coord{}, false
	}
	return dest, true
}

// swapPlaces moves the displaced monster into dest. It moves only the
// monster; the caller moves the player afterwards and then applies the
// monster's location effects, so a trap can never act on an occupant that
// has not yet conceptually vacated its old cell.
//
// Special occupants override the exchange: a wandering mushroom merges with a
// toadstool standing at dest, and a friendly foxfire dissipates instead of
// swapping.
//
// Postcondition: returns true iff the player's own move may proceed.
func (r *Resolver) swapPlaces(mon *monster.Monster, dest grid.Coord) bool {
	if !r.field.InBounds(dest) {
		panic("movement: swap destination out of bounds at " + dest.String())
	}
	if !mon.Habitable(r.field.FeatureAt(dest)) {
		panic("movement: swap destination not habitable for " + mon.Name)
	}

	if blocker := r.field.OccupantAt(dest); blocker != nil {
		if mon.Kind == monster.WanderingMushroom && blocker.Kind == monster.Toadstool {
			// The mushroom folds itself into the toadstool; the toadstool's
			// location effects wait for its own turn, and the player will
			// trigger the vacated cell's effects soon enough.
			r.field.RemoveOccupant(mon)
			r.msg.Emit(fmt.Sprintf("%s merges with %s.", TheName(mon), theName(blocker)), message.Plain)
			return true
		}
		r.msg.Emit("Something prevents you from swapping places.", message.Plain)
		return false
	}

	// A friendly foxfire dissipates instead of damaging the player.
	if mon.Kind == monster.Foxfire {
		r.field.RemoveOccupant(mon)
		r.msg.Emit(fmt.Sprintf("%s dissipates!", TheName(mon)), message.MonsterDamage)
		return true
	}

	r.msg.Emit("You swap places.", message.Plain)
	r.field.MoveOccupant(mon, dest)
	return true
}

// theName returns "the <name>" for mid-sentence use.
func theName(mon *monster.Monster) string {
	return "the " + mon.Name
}

// TheName returns "The <name>" for sentence starts.
func TheName(mon *monster.Monster) string {
	return "The " + mon.Name
}
