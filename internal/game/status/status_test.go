package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollowmere/delve/internal/game/status"
)

func TestEffects_Durations(t *testing.T) {
	e := status.NewEffects()
	assert.False(t, e.Has(status.Confusion))
	assert.Zero(t, e.Get(status.Confusion))

	e.Set(status.Confusion, 5)
	assert.True(t, e.Has(status.Confusion))
	assert.Equal(t, 5, e.Get(status.Confusion))

	e.Extend(status.Confusion, 3)
	assert.Equal(t, 8, e.Get(status.Confusion))

	e.Clear(status.Confusion)
	assert.False(t, e.Has(status.Confusion))
}

// TestEffects_ExtendInactive verifies expired effects do not revive: extending
// a duration that is not active is a no-op.
func TestEffects_ExtendInactive(t *testing.T) {
	e := status.NewEffects()
	e.Extend(status.Barbs, 10)
	assert.False(t, e.Has(status.Barbs))
}

func TestEffects_SetNonPositiveClears(t *testing.T) {
	e := status.NewEffects()
	e.Set(status.IcyArmour, 4)
	e.Set(status.IcyArmour, 0)
	assert.False(t, e.Has(status.IcyArmour))

	e.Set(status.IcyArmour, 4)
	e.Extend(status.IcyArmour, -10)
	assert.False(t, e.Has(status.IcyArmour), "extending below zero must clear")
}

func TestEffects_Attributes(t *testing.T) {
	e := status.NewEffects()
	assert.Zero(t, e.Attr(status.BarbsPotency))

	e.SetAttr(status.BarbsPotency, 3)
	assert.Equal(t, 3, e.Attr(status.BarbsPotency))

	e.SetAttr(status.BarbsPotency, 0)
	assert.Zero(t, e.Attr(status.BarbsPotency))
}

func TestEffects_Props(t *testing.T) {
	e := status.NewEffects()
	assert.False(t, e.HasProp(status.BarbsMoveConfirmed))

	// Presence is the flag even with an empty value.
	e.SetProp(status.BarbsMoveConfirmed, "")
	assert.True(t, e.HasProp(status.BarbsMoveConfirmed))

	e.SetProp(status.WaterHolder, "an elemental wellspring")
	assert.Equal(t, "an elemental wellspring", e.PropValue(status.WaterHolder))

	e.EraseProp(status.BarbsMoveConfirmed)
	assert.False(t, e.HasProp(status.BarbsMoveConfirmed))
}
