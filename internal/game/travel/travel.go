// Package travel tracks the player's sustained-run state and the travel
// trail recorded along a multi-turn run.
package travel

import "github.com/hollowmere/delve/internal/game/grid"

// Mode is the run state machine. A run starts on the first move input and
// continues until something interrupts it.
type Mode uint8

const (
	Stopped Mode = iota
	Start
	Continue
)

// Runner owns the run mode, the configured travel pace, and the travel trail.
// It is not safe for concurrent use.
type Runner struct {
	mode Mode
	// pace is the configured travel speed; 0 means no floor on move delay.
	pace int
	// stopCheck, when set, is consulted once per move; returning true stops
	// the run and cancels the move in progress.
	stopCheck func() bool
	trail     []grid.Coord
}

// NewRunner creates a stopped Runner with the given travel pace.
func NewRunner(pace int) *Runner {
	return &Runner{pace: pace}
}

// Running reports whether a run is in progress (started or continuing).
func (r *Runner) Running() bool {
	return r.mode != Stopped
}

// Mode returns the current run mode.
func (r *Runner) Mode() Mode {
	return r.mode
}

// Pace returns the configured travel speed, or 0 when unset.
func (r *Runner) Pace() int {
	return r.pace
}

// Begin puts the runner into the Start state.
func (r *Runner) Begin() {
	r.mode = Start
}

// AdvanceMode promotes Start to Continue after the first successful move.
func (r *Runner) AdvanceMode() {
	if r.mode == Start {
		r.mode = Continue
	}
}

// Stop halts the run. The trail is kept for display until the next run begins.
func (r *Runner) Stop() {
	r.mode = Stopped
}

// SetStopCheck installs the "should running stop" hook.
func (r *Runner) SetStopCheck(fn func() bool) {
	r.stopCheck = fn
}

// CheckStop consults the stop hook while a run is in progress, stopping the
// run when it fires. A stopped runner never consults the hook.
//
// Postcondition: returns true iff the run was stopped by the hook.
func (r *Runner) CheckStop() bool {
	if r.mode != Stopped && r.stopCheck != nil && r.stopCheck() {
		r.Stop()
		return true
	}
	return false
}

// AppendTrail records pos at the end of the travel trail.
func (r *Runner) AppendTrail(pos grid.Coord) {
	r.trail = append(r.trail, pos)
}

// ClearTrail discards the recorded trail.
func (r *Runner) ClearTrail() {
	r.trail = nil
}

// Trail returns a copy of the recorded trail.
func (r *Runner) Trail() []grid.Coord {
	out := make([]grid.Coord, len(r.trail))
	copy(out, r.trail)
	return out
}

// TrailEmpty reports whether no trail cells are recorded.
func (r *Runner) TrailEmpty() bool {
	return len(r.trail) == 0
}
