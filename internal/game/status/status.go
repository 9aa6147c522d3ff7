// Package status tracks the named durations, numeric attributes, and ad hoc
// properties that movement resolution reads and mutates on the player:
// confusion, barbed skin, icy armour, trailing terrain effects, and the like.
package status

// Duration names a timed effect on the player. Durations are measured in the
// same abstract time units as move delay.
type Duration string

// Movement-relevant durations.
const (
	Confusion  Duration = "confusion"
	Barbs      Duration = "barbs"
	IcyArmour  Duration = "icy_armour"
	NoxiousBog Duration = "noxious_bog"
	CloudTrail Duration = "cloud_trail"
	WaterHold  Duration = "water_hold"
	Flight     Duration = "flight"
	NoHop      Duration = "no_hop"
)

// Attribute names a numeric quality on the player that is not a countdown.
type Attribute string

// Movement-relevant attributes.
const (
	// BarbsPotency scales barb damage: moving with barbs deals 2d(potency).
	BarbsPotency Attribute = "barbs_potency"
	// HeldInNet is nonzero while the player is caught in a net or web.
	HeldInNet Attribute = "held_in_net"
)

// Prop names a boolean flag with no duration, such as one-per-commitment
// confirmation markers.
type Prop string

// Movement-relevant props.
const (
	// BarbsMoveConfirmed marks that the player already accepted the barbed
	// movement prompt for the current commitment; cleared when barbs re-trigger.
	BarbsMoveConfirmed Prop = "barbs_move_confirmed"
	// WaterHolder names the monster engulfing the player, if any.
	WaterHolder Prop = "water_holder"
)

// Effects is the per-player status store. It is not safe for concurrent use;
// the turn processor is single-threaded and owns it exclusively.
type Effects struct {
	durations  map[Duration]int
	attributes map[Attribute]int
	props      map[Prop]string
}

// NewEffects creates an empty status store.
func NewEffects() *Effects {
	return &Effects{
		durations:  make(map[Duration]int),
		attributes: make(map[Attribute]int),
		props:      make(map[Prop]string),
	}
}

// Has reports whether the named duration is currently active.
func (e *Effects) Has(d Duration) bool {
	return e.durations[d] > 0
}

// Get returns the remaining time of the named duration, or 0 if inactive.
func (e *Effects) Get(d Duration) int {
	return e.durations[d]
}

// Set replaces the remaining time of the named duration.
//
// Postcondition: Get(d) == remaining when remaining > 0; otherwise Has(d) is false.
func (e *Effects) Set(d Duration, remaining int) {
	if remaining <= 0 {
		delete(e.durations, d)
		return
	}
	e.durations[d] = remaining
}

// Extend adds delta to the remaining time of an already-active duration.
// Extending an inactive duration is a no-op: expired effects do not revive.
func (e *Effects) Extend(d Duration, delta int) {
	if !e.Has(d) {
		return
	}
	e.Set(d, e.durations[d]+delta)
}

// Clear removes the named duration entirely.
//
// Postcondition: Has(d) is false.
func (e *Effects) Clear(d Duration) {
	delete(e.durations, d)
}

// Attr returns the value of the named attribute, or 0 if unset.
func (e *Effects) Attr(a Attribute) int {
	return e.attributes[a]
}

// SetAttr replaces the value of the named attribute. A zero value unsets it.
func (e *Effects) SetAttr(a Attribute, value int) {
	if value == 0 {
		delete(e.attributes, a)
		return
	}
	e.attributes[a] = value
}

// HasProp reports whether the named prop is set.
func (e *Effects) HasProp(p Prop) bool {
	_, ok := e.props[p]
	return ok
}

// PropValue returns the string value of the named prop, or "" if unset.
func (e *Effects) PropValue(p Prop) string {
	return e.props[p]
}

// SetProp sets the named prop to value (which may be empty: presence is the flag).
func (e *Effects) SetProp(p Prop, value string) {
	e.props[p] = value
}

// EraseProp removes the named prop.
//
// Postcondition: HasProp(p) is false.
func (e *Effects) EraseProp(p Prop) {
	delete(e.props, p)
}
