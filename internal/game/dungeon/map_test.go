package dungeon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowmere/delve/internal/game/dungeon"
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/monster"
)

func TestNewMap(t *testing.T) {
	m := dungeon.NewMap(4, 3, grid.Floor)
	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 3, m.Height())
	assert.Equal(t, grid.Floor, m.FeatureAt(grid.Coord{X: 3, Y: 2}))

	assert.Panics(t, func() { dungeon.NewMap(0, 3, grid.Floor) })
}

func TestMap_Bounds(t *testing.T) {
	m := dungeon.NewMap(4, 3, grid.Floor)
	assert.True(t, m.InBounds(grid.Coord{}))
	assert.False(t, m.InBounds(grid.Coord{X: 4, Y: 0}))
	assert.False(t, m.InBounds(grid.Coord{X: 0, Y: -1}))

	assert.Equal(t, grid.Unseen, m.FeatureAt(grid.Coord{X: -1, Y: 0}),
		"out-of-bounds cells read as unseen")
	assert.Panics(t, func() { m.SetFeature(grid.Coord{X: 9, Y: 9}, grid.Lava) })
}

func TestMap_DestroyWall(t *testing.T) {
	m := dungeon.NewMap(3, 3, grid.Floor)
	wall := grid.Coord{X: 1, Y: 1}
	m.SetFeature(wall, grid.RockWall)
	m.DestroyWall(wall)
	assert.Equal(t, grid.Floor, m.FeatureAt(wall))

	assert.Panics(t, func() { m.DestroyWall(wall) }, "floor is not diggable")
}

func TestMap_Occupants(t *testing.T) {
	m := dungeon.NewMap(5, 5, grid.Floor)
	mon := monster.New("gnoll", monster.Hostile, monster.Ordinary, grid.Coord{X: 2, Y: 2})
	require.NoError(t, m.Place(mon))
	assert.Same(t, mon, m.OccupantAt(grid.Coord{X: 2, Y: 2}))

	other := monster.New("rat", monster.Hostile, monster.Ordinary, grid.Coord{X: 2, Y: 2})
	assert.Error(t, m.Place(other), "placement onto an occupied cell must fail")

	m.MoveOccupant(mon, grid.Coord{X: 3, Y: 3})
	assert.Nil(t, m.OccupantAt(grid.Coord{X: 2, Y: 2}))
	assert.Same(t, mon, m.OccupantAt(grid.Coord{X: 3, Y: 3}))
	assert.Equal(t, grid.Coord{X: 3, Y: 3}, mon.Pos)

	m.RemoveOccupant(mon)
	assert.Nil(t, m.OccupantAt(grid.Coord{X: 3, Y: 3}))
	assert.Empty(t, m.Monsters())
}

func TestMap_Adjacent(t *testing.T) {
	m := dungeon.NewMap(3, 3, grid.Floor)
	assert.Len(t, m.Adjacent(grid.Coord{X: 1, Y: 1}), 8)
	assert.Len(t, m.Adjacent(grid.Coord{X: 0, Y: 0}), 3, "corner cells have three neighbours")
	assert.Len(t, m.Adjacent(grid.Coord{X: 1, Y: 0}), 5, "edge cells have five neighbours")
}

// TestMap_ConnectedDoor verifies the gate flood fill: contiguous cells sharing
// the exact door feature form one gate, and differing variants do not merge.
func TestMap_ConnectedDoor(t *testing.T) {
	m := dungeon.NewMap(6, 3, grid.RockWall)
	for _, c := range []grid.Coord{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}} {
		m.SetFeature(c, grid.ClosedDoor)
	}
	// A different door variant adjacent to the gate stays separate.
	m.SetFeature(grid.Coord{X: 4, Y: 1}, grid.ClosedClearDoor)

	gate := m.ConnectedDoor(grid.Coord{X: 2, Y: 1})
	assert.Len(t, gate, 3)
	assert.NotContains(t, gate, grid.Coord{X: 4, Y: 1})

	single := m.ConnectedDoor(grid.Coord{X: 4, Y: 1})
	assert.Equal(t, []grid.Coord{{X: 4, Y: 1}}, single)

	assert.Panics(t, func() { m.ConnectedDoor(grid.Coord{X: 0, Y: 0}) })
}

func TestMap_RegionFlags(t *testing.T) {
	m := dungeon.NewMap(4, 4, grid.Floor)
	c := grid.Coord{X: 1, Y: 2}

	m.SetSanctuary(c, true)
	assert.True(t, m.Sanctuary(c))
	m.SetSanctuary(c, false)
	assert.False(t, m.Sanctuary(c))

	m.SetTrap(c, "a dart trap")
	assert.Equal(t, "a dart trap", m.TrapAt(c))
	m.ClearTrap(c)
	assert.Empty(t, m.TrapAt(c))

	m.AddBlood(c)
	assert.True(t, m.BloodAt(c))
}

func TestMap_Noise(t *testing.T) {
	m := dungeon.NewMap(4, 4, grid.Floor)
	m.Noise(6, grid.Coord{X: 1, Y: 1})
	m.Noise(10, grid.Coord{X: 2, Y: 2})

	noises := m.Noises()
	require.Len(t, noises, 2)
	assert.Equal(t, dungeon.NoiseEvent{Loudness: 6, At: grid.Coord{X: 1, Y: 1}}, noises[0])
}

func TestMap_DoorVeto(t *testing.T) {
	m := dungeon.NewMap(4, 4, grid.Floor)
	door := grid.Coord{X: 1, Y: 1}
	m.SetFeature(door, grid.ClosedDoor)

	// No marker: no veto.
	veto, reason, err := m.DoorVeto(door)
	require.NoError(t, err)
	assert.False(t, veto)
	assert.Empty(t, reason)

	// Static reason vetoes unconditionally.
	m.SetDoorMarker(door, &dungeon.DoorMarker{VetoReason: "It will not budge!"})
	veto, reason, err = m.DoorVeto(door)
	require.NoError(t, err)
	assert.True(t, veto)
	assert.Equal(t, "It will not budge!", reason)
}

func TestMap_DoorVeto_Script(t *testing.T) {
	m := dungeon.NewMap(4, 4, grid.Floor)
	door := grid.Coord{X: 1, Y: 1}
	m.SetFeature(door, grid.ClosedDoor)
	m.SetDoorMarker(door, &dungeon.DoorMarker{
		VetoScript: `
function veto_door(open_count)
  if open_count == 0 then
    return true, "The hinges are rusted shut."
  end
  return false, ""
end
`,
	})

	veto, reason, err := m.DoorVeto(door)
	require.NoError(t, err)
	assert.True(t, veto)
	assert.Equal(t, "The hinges are rusted shut.", reason)

	// After one successful open the hook relents.
	m.NoteDoorOpened(door)
	veto, _, err = m.DoorVeto(door)
	require.NoError(t, err)
	assert.False(t, veto)
}

func TestMap_DoorVeto_ScriptError(t *testing.T) {
	m := dungeon.NewMap(4, 4, grid.Floor)
	door := grid.Coord{X: 1, Y: 1}
	m.SetFeature(door, grid.ClosedDoor)
	m.SetDoorMarker(door, &dungeon.DoorMarker{
		VetoReason: "Something resists.",
		VetoScript: `this is not lua`,
	})

	veto, reason, err := m.DoorVeto(door)
	assert.Error(t, err)
	assert.True(t, veto, "a broken hook fails shut")
	assert.Equal(t, "Something resists.", reason)
}

func TestMap_DoorAlreadyOpenMessage(t *testing.T) {
	m := dungeon.NewMap(4, 4, grid.Floor)
	door := grid.Coord{X: 1, Y: 1}
	m.SetFeature(door, grid.OpenDoor)
	assert.Empty(t, m.DoorAlreadyOpenMessage(door))

	m.SetDoorMarker(door, &dungeon.DoorMarker{AlreadyOpenVerb: "The portcullis is already raised."})
	assert.Equal(t, "The portcullis is already raised.", m.DoorAlreadyOpenMessage(door))
}
