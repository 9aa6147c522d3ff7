// Package actor models the player: position, form, movement statuses, and
// the per-turn accounting the move resolver finalizes.
package actor

import (
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/status"
)

// Form is the player's current shape. Forms change passability and which
// moves are allowed at all.
type Form uint8

const (
	FormNormal Form = iota
	// FormFungus treats plant occupants as passable terrain but refuses to
	// move while watched by a hostile.
	FormFungus
	// FormTree is rooted: voluntary movement is blocked entirely.
	FormTree
	// FormSpider crawls; cosmetic for movement purposes.
	FormSpider
)

// Player is the single player-controlled actor. It lives for the whole game
// and is mutated exclusively by the commit phase of move resolution.
type Player struct {
	// Pos is the player's cell.
	Pos grid.Coord
	// Form is the current transformation.
	Form Form
	// Effects is the status/duration store.
	Effects *status.Effects

	// HP is the player's remaining health.
	HP int
	// DamageDice is the player's melee damage expression.
	DamageDice string
	// Speed is the movement speed multiplier applied to base delay; 10 is
	// normal speed (the same constant the delay formula divides by).
	Speed int

	// TimeTaken accumulates the time cost of the current turn. It is reset to
	// the baseline delay at the start of each input.
	TimeTaken int
	// TurnIsOver marks that the current input consumed a turn.
	TurnIsOver bool
	// BerserkPenaltyArmed marks that this turn was spent not attacking, which
	// upsets a berserk rage.
	BerserkPenaltyArmed bool

	// Digging is true while the player is actively tunnelling; it makes
	// diggable walls passable and ends when anything else happens.
	Digging bool
	// CanLunge grants the directional gap-closing attack.
	CanLunge bool
	// Watched is true while a hostile monster can see the player; a fungus
	// form player is too nervous to move while watched.
	Watched bool
	// ConstrictedBy names the monster currently holding the player, if any.
	ConstrictedBy string
	// TeleportedIntoRock is a debug override permitting the player to start a
	// move inside solid terrain without tripping the consistency assert.
	TeleportedIntoRock bool
}

// NewPlayer creates a player at pos with normal speed and an empty status store.
func NewPlayer(pos grid.Coord) *Player {
	return &Player{
		Pos:        pos,
		Effects:    status.NewEffects(),
		HP:         20,
		DamageDice: "1d6",
		Speed:      10,
	}
}

// Confused reports whether the player is under a confusion duration.
func (p *Player) Confused() bool {
	return p.Effects.Has(status.Confusion)
}

// Stationary reports whether the player's form forbids voluntary movement.
func (p *Player) Stationary() bool {
	return p.Form == FormTree
}

// Nervous reports whether the player refuses to move while observed
// (fungus form being watched).
func (p *Player) Nervous() bool {
	return p.Form == FormFungus && p.Watched
}

// Constricted reports whether a monster is currently holding the player in place.
func (p *Player) Constricted() bool {
	return p.ConstrictedBy != ""
}

// Held reports whether the player is caught in a net or web.
func (p *Player) Held() bool {
	return p.Effects.Attr(status.HeldInNet) > 0
}

// Airborne reports whether the player is currently flying.
func (p *Player) Airborne() bool {
	return p.Effects.Has(status.Flight)
}

// CanPassThrough reports whether the player may occupy a cell with the given
// feature. Dangerous liquids are passable only while airborne; the dangerous-
// terrain confirmation is the caller's concern.
func (p *Player) CanPassThrough(f grid.Feature) bool {
	if f.IsSolid() {
		return false
	}
	if f.IsDangerous() {
		return p.Airborne()
	}
	return true
}

// WalkVerb returns the flavour verb for the player's current locomotion.
func (p *Player) WalkVerb() string {
	switch {
	case p.Airborne():
		return "fly"
	case p.Form == FormSpider:
		return "crawl"
	default:
		return "walk"
	}
}
