package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// DoorVeto is the decision returned by a door marker hook.
type DoorVeto struct {
	// Vetoed is true when the door refuses to open.
	Vetoed bool
	// Reason is the player-facing veto message; empty means the caller's
	// default "shut tight" message applies.
	Reason string
}

// EvalDoorVeto runs a door marker script in a fresh sandboxed VM and returns
// its decision. The script must define a global function
//
//	function veto_door(open_count)
//	    return true, "The door refuses to budge."
//	end
//
// taking the number of times this door has been opened before and returning
// a boolean veto plus an optional reason string.
//
// Precondition: script must be non-empty.
// Postcondition: Returns the hook's decision, or an error if the script does
// not load, does not define veto_door, or exceeds the instruction limit.
func EvalDoorVeto(script string, openCount, instLimit int) (DoorVeto, error) {
	if script == "" {
		return DoorVeto{}, fmt.Errorf("scripting: empty door hook script")
	}

	L := NewSandboxedState(instLimit)
	defer L.Close()

	if err := L.DoString(script); err != nil {
		return DoorVeto{}, fmt.Errorf("scripting: loading door hook: %w", err)
	}

	fn := L.GetGlobal("veto_door")
	if fn == lua.LNil {
		return DoorVeto{}, fmt.Errorf("scripting: door hook does not define veto_door")
	}

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 2, Protect: true},
		lua.LNumber(openCount)); err != nil {
		return DoorVeto{}, fmt.Errorf("scripting: calling veto_door: %w", err)
	}

	reason := L.Get(-1)
	vetoed := L.Get(-2)
	L.Pop(2)

	out := DoorVeto{Vetoed: lua.LVAsBool(vetoed)}
	if s, ok := reason.(lua.LString); ok {
		out.Reason = string(s)
	}
	return out, nil
}
