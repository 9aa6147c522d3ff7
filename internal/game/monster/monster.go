// Package monster models dungeon occupants as the movement resolver sees
// them: disposition toward the player, special-kind behaviour, visibility,
// and the small combat block the melee resolver reads.
package monster

import (
	"github.com/google/uuid"

	"github.com/hollowmere/delve/internal/game/grid"
)

// Attitude is a monster's disposition toward the player.
type Attitude uint8

const (
	Hostile Attitude = iota
	Neutral
	Friendly
)

func (a Attitude) String() string {
	switch a {
	case Hostile:
		return "hostile"
	case Neutral:
		return "neutral"
	case Friendly:
		return "friendly"
	}
	return "unknown"
}

// Kind selects special movement behaviour for a monster. Swap and lunge
// resolution dispatch on Kind rather than comparing names.
type Kind uint8

const (
	// Ordinary monsters have no special movement interactions.
	Ordinary Kind = iota
	// Firewood monsters are inert scenery (plants); they are never valid
	// lunge targets.
	Firewood
	// Foxfire is an ephemeral light construct; a friendly one dissipates
	// instead of swapping places with the player.
	Foxfire
	// WanderingMushroom merges with an adjacent Toadstool when displaced by
	// a swap instead of exchanging cells.
	WanderingMushroom
	// Toadstool is the stationary fungus a WanderingMushroom merges with.
	Toadstool
)

// Monster is one dungeon occupant. The movement module references monsters
// through the occupant index for the duration of a single move resolution; it
// never owns them.
type Monster struct {
	// ID uniquely identifies this monster instance.
	ID uuid.UUID
	// Name is the display name, without article.
	Name string
	// Attitude is the current disposition toward the player.
	Attitude Attitude
	// Kind selects special movement behaviour.
	Kind Kind
	// Pos is the monster's current cell.
	Pos grid.Coord
	// Submerged monsters cannot be attacked or swapped with by walking into them.
	Submerged bool
	// Visible reports whether the player can currently see this monster.
	Visible bool
	// Aquatic monsters treat deep water as habitable terrain.
	Aquatic bool
	// Beholder forbids the player from increasing distance to this monster.
	Beholder bool
	// Fearmonger forbids the player from decreasing distance to this monster.
	Fearmonger bool

	// HP is remaining health; the combat resolver removes the monster at 0.
	HP int
	// Evasion is the target number a melee attack roll must meet.
	Evasion int
	// DamageDice is the monster's melee damage expression, e.g. "1d6+1".
	DamageDice string
}

// New creates a monster with a fresh instance ID.
func New(name string, att Attitude, kind Kind, pos grid.Coord) *Monster {
	return &Monster{
		ID:       uuid.New(),
		Name:     name,
		Attitude: att,
		Kind:     kind,
		Pos:      pos,
		Visible:  true,
	}
}

// WontAttack reports whether the monster will not attack the player, which is
// what qualifies it for a position swap.
func (m *Monster) WontAttack() bool {
	return m.Attitude == Friendly
}

// AngeredByAttacks reports whether stumbling into this monster while confused
// would provoke it. Inert scenery does not care.
func (m *Monster) AngeredByAttacks() bool {
	return m.Kind != Firewood
}

// Habitable reports whether the monster could stand on the given feature.
func (m *Monster) Habitable(f grid.Feature) bool {
	if f.IsSolid() {
		return false
	}
	switch f {
	case grid.Lava, grid.ToxicBog:
		return false
	case grid.DeepWater:
		return m.Aquatic
	}
	return true
}
