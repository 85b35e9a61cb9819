package domevents

import "github.com/domcore/whatwgdom/logutil"

// Dispatcher is anything that both is a Target (for path composition)
// and exposes the EventTarget listener list it should fire against.
// domtree.Node implements this by embedding EventTarget and its own
// Parent/ShadowHost logic.
type Dispatcher interface {
	Target
	Listeners() *EventTarget
}

// composedPath builds the path from target up to the root, piercing
// shadow hosts when composed is true and stopping at the shadow
// boundary otherwise (spec §4.9 step 2).
func composedPath(target Dispatcher, composed bool) []Dispatcher {
	path := []Dispatcher{target}
	var cur Target = target
	for {
		parent := cur.Parent()
		if parent == nil {
			if host, ok := cur.ShadowHost(); ok && composed {
				parent = host
			} else {
				break
			}
		}
		d, ok := parent.(Dispatcher)
		if !ok {
			break
		}
		path = append(path, d)
		cur = parent
	}
	return path
}

// Dispatch runs the phase-ordered algorithm of spec §4.9 and returns
// !event.DefaultPrevented(), matching dispatchEvent's return value.
func Dispatch(target Dispatcher, ev *Event) bool {
	ev.target = target
	path := composedPath(target, ev.Composed)

	// path[0] is target; path[1:] are ancestors out to the root.
	ancestors := path[1:]

	// CAPTURING: root -> target exclusive, only capture listeners.
	ev.phase = PhaseCapturing
	for i := len(ancestors) - 1; i >= 0; i-- {
		if !runNode(ancestors[i], ev, func(c bool) bool { return c }) {
			return finishDispatch(ev)
		}
	}

	// AT_TARGET: both capture and bubble listeners, target only.
	ev.phase = PhaseAtTarget
	if !runNode(target, ev, nil) {
		return finishDispatch(ev)
	}

	// BUBBLING: target -> root exclusive, only non-capture listeners.
	if ev.Bubbles {
		ev.phase = PhaseBubbling
		for _, node := range ancestors {
			if !runNode(node, ev, func(c bool) bool { return !c }) {
				break
			}
		}
	}

	return finishDispatch(ev)
}

// finishDispatch performs spec §4.9 step 6/7's unconditional cleanup
// ("clear current_target, set event_phase=NONE") before returning the
// dispatch result, regardless of whether propagation ran to completion
// or was stopped partway through.
func finishDispatch(ev *Event) bool {
	ev.currentTarget = nil
	ev.phase = PhaseNone
	return !ev.defaultPrevented
}

// runNode fires the matching listeners on one node and reports whether
// dispatch should continue to further nodes (false if stopPropagation
// or stopImmediatePropagation was called).
func runNode(node Dispatcher, ev *Event, want func(capture bool) bool) bool {
	ev.currentTarget = node
	matched := node.Listeners().listenersMatching(ev.Type, want)
	for _, l := range matched {
		if err := l.callback(ev); err != nil {
			logutil.CallbackError("eventListener", err, "type", ev.Type)
		}
		if ev.immediateStopped {
			return false
		}
	}
	return !ev.propagationStopped
}
