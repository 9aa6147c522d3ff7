package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/hollowmere/delve/internal/game/grid"
)

func TestDelta_IsUnit(t *testing.T) {
	for _, d := range grid.Compass {
		assert.True(t, d.IsUnit(), "compass delta %+v must be unit", d)
	}
	assert.False(t, grid.Delta{}.IsUnit(), "zero delta is not unit")
	assert.False(t, grid.Delta{DX: 2, DY: 0}.IsUnit())
	assert.False(t, grid.Delta{DX: 0, DY: -2}.IsUnit())
}

func TestCompass_Complete(t *testing.T) {
	// Eight distinct unit deltas, none zero.
	seen := make(map[grid.Delta]bool)
	for _, d := range grid.Compass {
		assert.False(t, seen[d], "duplicate compass delta %+v", d)
		seen[d] = true
	}
	assert.Len(t, seen, 8)
}

func TestCoord_AddSub(t *testing.T) {
	c := grid.Coord{X: 3, Y: 4}
	d := grid.Delta{DX: -1, DY: 2}
	moved := c.Add(d)
	assert.Equal(t, grid.Coord{X: 2, Y: 6}, moved)
	assert.Equal(t, d, moved.Sub(c))
}

func TestCoord_Distance(t *testing.T) {
	tests := []struct {
		a, b grid.Coord
		want int
	}{
		{grid.Coord{0, 0}, grid.Coord{0, 0}, 0},
		{grid.Coord{0, 0}, grid.Coord{1, 1}, 1},
		{grid.Coord{0, 0}, grid.Coord{3, 1}, 3},
		{grid.Coord{5, 5}, grid.Coord{2, 9}, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Distance(tt.b))
		assert.Equal(t, tt.want, tt.b.Distance(tt.a), "distance must be symmetric")
	}
}

// TestCoord_Distance_Property verifies a single compass step changes Chebyshev
// distance to any anchor by at most one.
func TestCoord_Distance_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		anchor := grid.Coord{
			X: rapid.IntRange(-50, 50).Draw(rt, "ax"),
			Y: rapid.IntRange(-50, 50).Draw(rt, "ay"),
		}
		from := grid.Coord{
			X: rapid.IntRange(-50, 50).Draw(rt, "fx"),
			Y: rapid.IntRange(-50, 50).Draw(rt, "fy"),
		}
		step := rapid.SampledFrom(grid.Compass).Draw(rt, "step")

		before := from.Distance(anchor)
		after := from.Add(step).Distance(anchor)
		diff := before - after
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(rt, diff, 1)
	})
}

func TestFeature_DoorStates(t *testing.T) {
	assert.Equal(t, grid.OpenDoor, grid.ClosedDoor.Opened())
	assert.Equal(t, grid.OpenDoor, grid.RunedDoor.Opened())
	assert.Equal(t, grid.OpenClearDoor, grid.ClosedClearDoor.Opened())
	assert.Equal(t, grid.ClosedDoor, grid.OpenDoor.Closed())
	assert.Equal(t, grid.ClosedClearDoor, grid.OpenClearDoor.Closed())

	assert.Panics(t, func() { grid.Floor.Opened() })
	assert.Panics(t, func() { grid.SealedDoor.Opened() })
	assert.Panics(t, func() { grid.ClosedDoor.Closed() })
}

func TestFeature_Predicates(t *testing.T) {
	assert.True(t, grid.RockWall.IsSolid())
	assert.True(t, grid.ClosedDoor.IsSolid())
	assert.False(t, grid.OpenDoor.IsSolid())
	assert.False(t, grid.Lava.IsSolid())

	assert.True(t, grid.ClosedClearDoor.IsSolid())
	assert.False(t, grid.ClosedClearDoor.IsOpaque(), "clear doors are see-through")
	assert.True(t, grid.ClosedDoor.IsOpaque())

	assert.True(t, grid.RunedDoor.IsClosedDoor(), "runed doors open like closed doors")
	assert.False(t, grid.SealedDoor.IsClosedDoor())
	assert.True(t, grid.SealedClearDoor.IsSealedDoor())

	assert.True(t, grid.Lava.IsDangerous())
	assert.True(t, grid.DeepWater.IsDangerous())
	assert.True(t, grid.ToxicBog.IsDangerous())
	assert.False(t, grid.ShallowWater.IsDangerous())

	assert.True(t, grid.Floor.IsTraversable())
	assert.True(t, grid.ShallowWater.IsTraversable())
	assert.False(t, grid.DeepWater.IsTraversable())
	assert.False(t, grid.Tree.IsTraversable())

	assert.True(t, grid.RockWall.IsDiggable())
	assert.True(t, grid.Grate.IsDiggable())
	assert.False(t, grid.PermaWall.IsDiggable())
	assert.False(t, grid.Statue.IsDiggable())
}

func TestFeature_Description(t *testing.T) {
	assert.Equal(t, "a rock wall", grid.RockWall.Description())
	assert.Equal(t, "the lava", grid.Lava.Description())
	assert.Equal(t, "something strange", grid.Feature(200).Description())
}
