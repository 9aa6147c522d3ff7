package grid

// Feature identifies the terrain occupying one dungeon cell.
type Feature uint8

// Terrain feature kinds. The door variants matter individually to the door
// handler; everything else is classified through the predicates below.
const (
	Unseen Feature = iota
	Floor
	RockWall
	PermaWall
	ClosedDoor
	ClosedClearDoor
	RunedDoor
	RunedClearDoor
	OpenDoor
	OpenClearDoor
	SealedDoor
	SealedClearDoor
	ShallowWater
	DeepWater
	Lava
	ToxicBog
	Tree
	Grate
	Statue
	OpenSea
	LavaSea
	MalignGateway
)

var featureNames = map[Feature]string{
	Unseen:          "an unseen expanse",
	Floor:           "the floor",
	RockWall:        "a rock wall",
	PermaWall:       "an unnaturally hard wall",
	ClosedDoor:      "a closed door",
	ClosedClearDoor: "a closed translucent door",
	RunedDoor:       "a runed door",
	RunedClearDoor:  "a runed translucent door",
	OpenDoor:        "an open door",
	OpenClearDoor:   "an open translucent door",
	SealedDoor:      "a sealed door",
	SealedClearDoor: "a sealed translucent door",
	ShallowWater:    "some shallow water",
	DeepWater:       "the deep water",
	Lava:            "the lava",
	ToxicBog:        "a patch of toxic bog",
	Tree:            "a tree",
	Grate:           "an iron grate",
	Statue:          "a granite statue",
	OpenSea:         "the open sea",
	LavaSea:         "an endless sea of lava",
	MalignGateway:   "a malign gateway",
}

// Description returns the player-facing name of the feature, suitable for
// "You bump into %s." style messages.
func (f Feature) Description() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return "something strange"
}

// IsSolid reports whether f physically fills its cell: walls, closed and
// sealed doors, trees, grates, statues, endless terrain, and gateways.
func (f Feature) IsSolid() bool {
	switch f {
	case RockWall, PermaWall, Tree, Grate, Statue,
		ClosedDoor, ClosedClearDoor, RunedDoor, RunedClearDoor,
		SealedDoor, SealedClearDoor,
		OpenSea, LavaSea, MalignGateway, Unseen:
		return true
	}
	return false
}

// IsOpaque reports whether f blocks line of sight. Clear door variants are
// solid but see-through.
func (f Feature) IsOpaque() bool {
	switch f {
	case RockWall, PermaWall, Tree, ClosedDoor, RunedDoor, SealedDoor, Unseen:
		return true
	}
	return false
}

// IsDoor reports whether f is any door variant, open or shut.
func (f Feature) IsDoor() bool {
	switch f {
	case ClosedDoor, ClosedClearDoor, RunedDoor, RunedClearDoor,
		OpenDoor, OpenClearDoor, SealedDoor, SealedClearDoor:
		return true
	}
	return false
}

// IsClosedDoor reports whether f is a door that an open command can act on.
// Runed variants behave as closed.
func (f Feature) IsClosedDoor() bool {
	switch f {
	case ClosedDoor, ClosedClearDoor, RunedDoor, RunedClearDoor:
		return true
	}
	return false
}

// IsOpenDoor reports whether f is a door in the open state.
func (f Feature) IsOpenDoor() bool {
	return f == OpenDoor || f == OpenClearDoor
}

// IsSealedDoor reports whether f is magically sealed shut.
func (f Feature) IsSealedDoor() bool {
	return f == SealedDoor || f == SealedClearDoor
}

// Opened returns the open-state counterpart of a closed or runed door.
//
// Precondition: f.IsClosedDoor() must be true.
func (f Feature) Opened() Feature {
	switch f {
	case ClosedDoor, RunedDoor:
		return OpenDoor
	case ClosedClearDoor, RunedClearDoor:
		return OpenClearDoor
	}
	panic("grid: Opened called on non-closed feature " + f.Description())
}

// Closed returns the closed-state counterpart of an open door.
//
// Precondition: f.IsOpenDoor() must be true.
func (f Feature) Closed() Feature {
	switch f {
	case OpenDoor:
		return ClosedDoor
	case OpenClearDoor:
		return ClosedClearDoor
	}
	panic("grid: Closed called on non-open feature " + f.Description())
}

// IsDangerous reports whether standing on f harms a walking actor. Lava is
// always reported first by callers scanning for hazards.
func (f Feature) IsDangerous() bool {
	return f == Lava || f == DeepWater || f == ToxicBog
}

// IsTraversable reports whether an ordinary walking actor may occupy f.
func (f Feature) IsTraversable() bool {
	return !f.IsSolid() && !f.IsDangerous()
}

// IsDiggable reports whether f can be tunnelled through while digging.
func (f Feature) IsDiggable() bool {
	return f == RockWall || f == Grate
}

// IsWater reports whether f is a water feature of any depth.
func (f Feature) IsWater() bool {
	return f == ShallowWater || f == DeepWater || f == OpenSea
}
