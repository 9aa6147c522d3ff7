package movement

import (
	"go.uber.org/zap"

	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
)

// OpenDoor resolves an open command. A zero delta means the player gave no
// direction: the neighbours are scanned, a lone candidate is picked silently
// (when easy-door is on), and multiple candidates prompt for a direction.
func (r *Resolver) OpenDoor(move grid.Delta) Outcome {
	r.beginTurn()
	return r.finishTurn(r.openDoor(move, false))
}

// CloseDoor resolves a close command, with the same direction disambiguation
// as OpenDoor.
func (r *Resolver) CloseDoor(move grid.Delta) Outcome {
	r.beginTurn()
	p := r.player

	if p.Held() {
		r.msg.Emit("You can't close doors while caught in a net.", message.Plain)
		return r.finishTurn(BlockedFree)
	}
	if p.Confused() {
		r.msg.Emit("You're too confused!", message.Plain)
		return r.finishTurn(BlockedFree)
	}

	delta := move
	if delta.IsZero() {
		num, found := r.countAdjacent(grid.Feature.IsOpenDoor)
		switch {
		case num == 0:
			r.msg.Emit("There's nothing to close nearby.", message.Plain)
			return r.finishTurn(BlockedFree)
		case num == 1 && r.cfg.EasyDoor:
			delta = found
		default:
			delta = r.confirm.PromptDirection("Which direction?")
			if delta.IsZero() {
				return r.finishTurn(Aborted)
			}
		}
	}

	doorPos := p.Pos.Add(delta)
	feat := r.field.FeatureAt(doorPos)

	switch {
	case feat.IsOpenDoor():
		return r.finishTurn(r.playerCloseDoor(doorPos))
	case feat.IsClosedDoor() || feat.IsSealedDoor():
		r.msg.Emit("It's already closed!", message.Plain)
		return r.finishTurn(BlockedFree)
	default:
		r.msg.Emit("There isn't anything that you can close there!", message.Plain)
		return r.finishTurn(BlockedFree)
	}
}

// openDoor carries the shared open logic. fromMove marks a call from the
// move orchestrator, where the net and confusion gates already ran and the
// turn accounting is finished by the caller.
func (r *Resolver) openDoor(move grid.Delta, fromMove bool) Outcome {
	p := r.player

	if !fromMove {
		if p.Held() {
			r.freeSelfFromNet()
			p.TurnIsOver = true
			return BlockedTurn
		}
		if p.Confused() {
			r.msg.Emit("You're too confused!", message.Plain)
			return BlockedFree
		}
	}

	delta := move
	// The player hasn't picked a direction yet.
	if delta.IsZero() {
		num, found := r.countAdjacent(grid.Feature.IsClosedDoor)
		switch {
		case num == 0:
			r.msg.Emit("There's nothing to open nearby.", message.Plain)
			return BlockedFree
		case num == 1 && r.cfg.EasyDoor:
			delta = found
		default:
			delta = r.confirm.PromptDirection("Which direction?")
			if delta.IsZero() {
				return Aborted
			}
		}
	}

	doorPos := p.Pos.Add(delta)

	// Doors may be locked by map markers or their Lua hooks.
	vetoed, reason, err := r.field.DoorVeto(doorPos)
	if err != nil {
		r.logger.Warn("door veto hook failed", zap.Stringer("door", doorPos), zap.Error(err))
	}
	if vetoed {
		if reason == "" {
			reason = "The door is shut tight!"
		}
		r.msg.Emit(reason, message.Plain)
		// Fumbling at a stuck door while confused still wastes the turn.
		if p.Confused() {
			p.TurnIsOver = true
			return BlockedTurn
		}
		return BlockedFree
	}

	feat := r.field.FeatureAt(doorPos)
	switch {
	case feat.IsClosedDoor():
		return r.playerOpenDoor(doorPos)
	case feat.IsOpenDoor():
		already := r.field.DoorAlreadyOpenMessage(doorPos)
		if already == "" {
			already = "It's already open!"
		}
		r.msg.Emit(already, message.Plain)
		return BlockedFree
	case feat.IsSealedDoor():
		r.msg.Emit("That door is sealed shut!", message.Plain)
		return BlockedFree
	default:
		r.msg.Emit("There isn't anything that you can open there!", message.Plain)
		return BlockedFree
	}
}

// playerOpenDoor opens every cell of the gate containing doorPos.
//
// Postcondition: all gate cells are in the open state; the turn is consumed.
func (r *Resolver) playerOpenDoor(doorPos grid.Coord) Outcome {
	cells := r.field.ConnectedDoor(doorPos)
	for _, c := range cells {
		r.field.SetFeature(c, r.field.FeatureAt(c).Opened())
	}
	if len(cells) > 1 {
		r.msg.Emit("You open the gate.", message.Plain)
	} else {
		r.msg.Emit("You open the door.", message.Plain)
	}
	r.field.NoteDoorOpened(doorPos)
	r.player.TurnIsOver = true
	return DoorOpened
}

// playerCloseDoor closes every cell of the gate containing doorPos, refusing
// when a creature stands in the doorway.
func (r *Resolver) playerCloseDoor(doorPos grid.Coord) Outcome {
	cells := r.field.ConnectedDoor(doorPos)
	for _, c := range cells {
		if mon := r.field.OccupantAt(c); mon != nil {
			r.msg.Emit("There's a creature in the doorway!", message.Plain)
			return BlockedFree
		}
		if c == r.player.Pos {
			r.msg.Emit("You can't close the door on yourself!", message.Plain)
			return BlockedFree
		}
	}
	for _, c := range cells {
		r.field.SetFeature(c, r.field.FeatureAt(c).Closed())
	}
	if len(cells) > 1 {
		r.msg.Emit("You close the gate.", message.Plain)
	} else {
		r.msg.Emit("You close the door.", message.Plain)
	}
	r.player.TurnIsOver = true
	return DoorClosed
}
