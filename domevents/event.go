// Package domevents implements spec §4.9: EventTarget, listener
// registration with capture/once/passive options, and phase-ordered
// dispatch over a composed path that can pierce shadow boundaries.
//
// The listener-handle shape (type/callback/capture identity, options
// struct) is grounded on the teacher's dom/events.go EventBinding and
// EventManager, which keyed bindings the same way for a real DOM; the
// phase-ordered dispatch algorithm itself has no teacher counterpart
// (the teacher dispatches through a real browser) and is built directly
// from the capturing/at-target/bubbling walk described in the spec.
package domevents

// Phase is the event's current dispatch phase.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// Target is the minimal surface Event needs from whatever is
// dispatching it — domtree.Node satisfies this so domevents never
// imports domtree.
type Target interface {
	Parent() Target
	// ShadowHost returns the element a shadow root is attached to, or
	// (nil, false) for anything that is not itself a shadow root. Used
	// to pierce shadow boundaries when composing a path with
	// composed=true.
	ShadowHost() (Target, bool)
}

// Event is a dispatched event (spec §4.9). Construct with NewEvent and
// pass to Dispatch.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool
	Composed   bool

	target        Target
	currentTarget Target
	phase         Phase

	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool
}

// NewEvent constructs an undispatched event of the given type.
func NewEvent(eventType string, bubbles, cancelable, composed bool) *Event {
	return &Event{Type: eventType, Bubbles: bubbles, Cancelable: cancelable, Composed: composed}
}

func (e *Event) Target() Target        { return e.target }
func (e *Event) CurrentTarget() Target { return e.currentTarget }
func (e *Event) EventPhase() Phase     { return e.phase }
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// PreventDefault marks the event's default action as prevented, if the
// event is cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// StopPropagation prevents the event from reaching any further nodes
// after the current one finishes its listeners.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// StopImmediatePropagation prevents the event from reaching any further
// nodes, and also aborts the remaining listeners on the current node.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediateStopped = true
}
