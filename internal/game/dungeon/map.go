// Package dungeon provides the concrete dungeon grid: the feature table, the
// occupant index, map markers, and the region flags (sanctuary, traps) the
// movement resolver queries.
package dungeon

import (
	"fmt"

	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/monster"
	"github.com/hollowmere/delve/internal/scripting"
)

// DoorMarker carries per-door metadata: a veto reason, an optional Lua hook
// deciding the veto, and a custom "already open" message.
type DoorMarker struct {
	// VetoReason is the message shown when the door refuses to open. Used
	// directly when no script is set; otherwise the script's reason wins.
	VetoReason string
	// VetoScript is an optional Lua hook; see scripting.EvalDoorVeto.
	VetoScript string
	// AlreadyOpenVerb overrides the default "It's already open!" message.
	AlreadyOpenVerb string
	// OpenCount is how many times this door has been opened.
	OpenCount int
}

// Map is one dungeon level. It is not safe for concurrent use; the
// single-threaded turn processor owns it.
type Map struct {
	width, height int
	features      []grid.Feature
	occupants     map[grid.Coord]*monster.Monster
	sanctuary     map[grid.Coord]bool
	traps         map[grid.Coord]string
	blood         map[grid.Coord]bool
	doorMarkers   map[grid.Coord]*DoorMarker
	noises        []NoiseEvent
	// scriptLimit caps Lua opcodes per door hook; 0 = scripting default.
	scriptLimit int
}

// NoiseEvent is one recorded noise on the level.
type NoiseEvent struct {
	Loudness int
	At       grid.Coord
}

// NewMap creates a width x height map filled with the given feature.
//
// Precondition: width > 0 and height > 0.
func NewMap(width, height int, fill grid.Feature) *Map {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("dungeon: NewMap called with invalid size %dx%d", width, height))
	}
	m := &Map{
		width:       width,
		height:      height,
		features:    make([]grid.Feature, width*height),
		occupants:   make(map[grid.Coord]*monster.Monster),
		sanctuary:   make(map[grid.Coord]bool),
		traps:       make(map[grid.Coord]string),
		blood:       make(map[grid.Coord]bool),
		doorMarkers: make(map[grid.Coord]*DoorMarker),
	}
	for i := range m.features {
		m.features[i] = fill
	}
	return m
}

// Width returns the map width in cells.
func (m *Map) Width() int { return m.width }

// Height returns the map height in cells.
func (m *Map) Height() int { return m.height }

// InBounds reports whether c lies on the map.
func (m *Map) InBounds(c grid.Coord) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height
}

// FeatureAt returns the feature at c, or Unseen for out-of-bounds cells.
func (m *Map) FeatureAt(c grid.Coord) grid.Feature {
	if !m.InBounds(c) {
		return grid.Unseen
	}
	return m.features[c.Y*m.width+c.X]
}

// SetFeature replaces the feature at c.
//
// Precondition: c must be in bounds.
func (m *Map) SetFeature(c grid.Coord, f grid.Feature) {
	if !m.InBounds(c) {
		panic("dungeon: SetFeature out of bounds at " + c.String())
	}
	m.features[c.Y*m.width+c.X] = f
}

// DestroyWall converts a diggable cell to floor.
//
// Precondition: the feature at c must be diggable.
func (m *Map) DestroyWall(c grid.Coord) {
	if !m.FeatureAt(c).IsDiggable() {
		panic("dungeon: DestroyWall on non-diggable cell at " + c.String())
	}
	m.SetFeature(c, grid.Floor)
}

// OccupantAt returns the monster standing at c, or nil.
func (m *Map) OccupantAt(c grid.Coord) *monster.Monster {
	return m.occupants[c]
}

// Place adds mon to the occupant index at its current position.
//
// Precondition: mon's cell must be in bounds and unoccupied.
func (m *Map) Place(mon *monster.Monster) error {
	if !m.InBounds(mon.Pos) {
		return fmt.Errorf("dungeon: placing %q out of bounds at %s", mon.Name, mon.Pos)
	}
	if m.occupants[mon.Pos] != nil {
		return fmt.Errorf("dungeon: cell %s already occupied", mon.Pos)
	}
	m.occupants[mon.Pos] = mon
	return nil
}

// MoveOccupant relocates mon to dest, updating the occupant index.
//
// Precondition: dest must be in bounds and unoccupied.
func (m *Map) MoveOccupant(mon *monster.Monster, dest grid.Coord) {
	if !m.InBounds(dest) || m.occupants[dest] != nil {
		panic("dungeon: MoveOccupant to invalid cell " + dest.String())
	}
	delete(m.occupants, mon.Pos)
	mon.Pos = dest
	m.occupants[dest] = mon
}

// RemoveOccupant deletes mon from the occupant index (death, dissipation, merge).
func (m *Map) RemoveOccupant(mon *monster.Monster) {
	if m.occupants[mon.Pos] == mon {
		delete(m.occupants, mon.Pos)
	}
}

// Monsters returns every occupant currently on the map, in no particular order.
func (m *Map) Monsters() []*monster.Monster {
	out := make([]*monster.Monster, 0, len(m.occupants))
	for _, mon := range m.occupants {
		out = append(out, mon)
	}
	return out
}

// Noise records a noise event of the given loudness at a cell. Monster AI
// consumes the queue; this module only needs it recorded once per event.
func (m *Map) Noise(loudness int, at grid.Coord) {
	m.noises = append(m.noises, NoiseEvent{Loudness: loudness, At: at})
}

// Noises returns the recorded noise events in order.
func (m *Map) Noises() []NoiseEvent {
	return m.noises
}

// Adjacent returns the in-bounds neighbours of c in reading order.
func (m *Map) Adjacent(c grid.Coord) []grid.Coord {
	out := make([]grid.Coord, 0, 8)
	for _, d := range grid.Compass {
		n := c.Add(d)
		if m.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// ConnectedDoor returns every cell of the multi-cell gate containing c: the
// flood fill of cells sharing c's exact feature. A single door returns just
// itself.
//
// Precondition: the feature at c must be a door.
func (m *Map) ConnectedDoor(c grid.Coord) []grid.Coord {
	feat := m.FeatureAt(c)
	if !feat.IsDoor() {
		panic("dungeon: ConnectedDoor on non-door cell " + c.String())
	}
	seen := map[grid.Coord]bool{c: true}
	frontier := []grid.Coord{c}
	var all []grid.Coord
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		all = append(all, cur)
		for _, n := range m.Adjacent(cur) {
			if !seen[n] && m.FeatureAt(n) == feat {
				seen[n] = true
				frontier = append(frontier, n)
			}
		}
	}
	return all
}

// Sanctuary reports whether c lies inside a sanctuary region.
func (m *Map) Sanctuary(c grid.Coord) bool {
	return m.sanctuary[c]
}

// SetSanctuary marks or clears the sanctuary flag at c.
func (m *Map) SetSanctuary(c grid.Coord, on bool) {
	if on {
		m.sanctuary[c] = true
	} else {
		delete(m.sanctuary, c)
	}
}

// TrapAt returns the name of the trap at c, or "" if none.
func (m *Map) TrapAt(c grid.Coord) string {
	return m.traps[c]
}

// SetTrap places a named trap at c.
func (m *Map) SetTrap(c grid.Coord, name string) {
	m.traps[c] = name
}

// ClearTrap removes the trap at c after it fires.
func (m *Map) ClearTrap(c grid.Coord) {
	delete(m.traps, c)
}

// AddBlood leaves a blood decal at c.
func (m *Map) AddBlood(c grid.Coord) {
	m.blood[c] = true
}

// BloodAt reports whether c carries a blood decal.
func (m *Map) BloodAt(c grid.Coord) bool {
	return m.blood[c]
}

// DoorMarkerAt returns the marker attached to the door at c, or nil.
func (m *Map) DoorMarkerAt(c grid.Coord) *DoorMarker {
	return m.doorMarkers[c]
}

// SetDoorMarker attaches marker metadata to the door at c.
func (m *Map) SetDoorMarker(c grid.Coord, marker *DoorMarker) {
	m.doorMarkers[c] = marker
}

// DoorVeto evaluates whether the door at c refuses to open, returning the
// veto and its player-facing reason (empty = use the caller's default).
// A marker with a script delegates to the Lua hook; a hook error is treated
// as a plain veto with the marker's static reason.
func (m *Map) DoorVeto(c grid.Coord) (bool, string, error) {
	marker := m.doorMarkers[c]
	if marker == nil {
		return false, "", nil
	}
	if marker.VetoScript != "" {
		veto, err := scripting.EvalDoorVeto(marker.VetoScript, marker.OpenCount, m.scriptLimit)
		if err != nil {
			return true, marker.VetoReason, fmt.Errorf("dungeon: door hook at %s: %w", c, err)
		}
		reason := veto.Reason
		if reason == "" {
			reason = marker.VetoReason
		}
		return veto.Vetoed, reason, nil
	}
	if marker.VetoReason != "" {
		return true, marker.VetoReason, nil
	}
	return false, "", nil
}

// DoorAlreadyOpenMessage returns the marker's custom "already open" message
// for the door at c, or "" when the default applies.
func (m *Map) DoorAlreadyOpenMessage(c grid.Coord) string {
	if marker := m.doorMarkers[c]; marker != nil {
		return marker.AlreadyOpenVerb
	}
	return ""
}

// NoteDoorOpened increments the open counter on the door marker at c, if any.
func (m *Map) NoteDoorOpened(c grid.Coord) {
	if marker := m.doorMarkers[c]; marker != nil {
		marker.OpenCount++
	}
}
