package domevents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domcore/whatwgdom/domerr"
)

type node struct {
	name     string
	parent   *node
	et       EventTarget
	shadowOf *node // if set, this node is the shadow root of shadowOf
}

func (n *node) Parent() Target {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) ShadowHost() (Target, bool) {
	if n.shadowOf == nil {
		return nil, false
	}
	return n.shadowOf, true
}

func (n *node) Listeners() *EventTarget { return &n.et }

func TestAddEventListenerDedupsByIdentity(t *testing.T) {
	n := &node{name: "n"}
	cb := func(e *Event) error { return nil }
	require.NoError(t, n.et.AddEventListener("click", cb, Options{}))
	require.NoError(t, n.et.AddEventListener("click", cb, Options{}))
	assert.Len(t, n.et.t.listeners, 1)
}

func TestAddEventListenerRejectsOverCap(t *testing.T) {
	n := &node{name: "n"}
	n.et.SetMaxListeners(1)
	require.NoError(t, n.et.AddEventListener("a", func(e *Event) error { return nil }, Options{}))
	err := n.et.AddEventListener("b", func(e *Event) error { return nil }, Options{})
	require.Error(t, err)
	kind, ok := domerr.Of(err)
	require.True(t, ok)
	assert.Equal(t, domerr.TooManyListeners, kind)
}

func TestDispatchOrderingWithStopImmediatePropagation(t *testing.T) {
	target := &node{name: "target"}
	var calls []string

	l1 := func(e *Event) error { calls = append(calls, "L1"); return nil }
	l2 := func(e *Event) error { calls = append(calls, "L2"); e.StopImmediatePropagation(); return nil }
	l3 := func(e *Event) error { calls = append(calls, "L3"); return nil }

	require.NoError(t, target.et.AddEventListener("click", l1, Options{}))
	require.NoError(t, target.et.AddEventListener("click", l2, Options{}))
	require.NoError(t, target.et.AddEventListener("click", l3, Options{}))

	ev := NewEvent("click", true, true, false)
	Dispatch(target, ev)

	assert.Equal(t, []string{"L1", "L2"}, calls)
}

func TestDispatchCapturingThenBubbling(t *testing.T) {
	root := &node{name: "root"}
	mid := &node{name: "mid", parent: root}
	leaf := &node{name: "leaf", parent: mid}

	var order []string
	require.NoError(t, root.et.AddEventListener("click", func(e *Event) error {
		order = append(order, "root-capture")
		return nil
	}, Options{Capture: true}))
	require.NoError(t, leaf.et.AddEventListener("click", func(e *Event) error {
		order = append(order, "leaf-target")
		return nil
	}, Options{}))
	require.NoError(t, mid.et.AddEventListener("click", func(e *Event) error {
		order = append(order, "mid-bubble")
		return nil
	}, Options{}))

	ev := NewEvent("click", true, true, false)
	result := Dispatch(leaf, ev)

	assert.True(t, result)
	assert.Equal(t, []string{"root-capture", "leaf-target", "mid-bubble"}, order)
}

func TestDispatchDoesNotBubbleWhenNotBubbles(t *testing.T) {
	root := &node{name: "root"}
	leaf := &node{name: "leaf", parent: root}

	called := false
	require.NoError(t, root.et.AddEventListener("click", func(e *Event) error {
		called = true
		return nil
	}, Options{}))

	ev := NewEvent("click", false, true, false)
	Dispatch(leaf, ev)
	assert.False(t, called)
}

func TestDispatchComposedPiercesShadowBoundary(t *testing.T) {
	host := &node{name: "host"}
	shadowRoot := &node{name: "shadow-root", shadowOf: host}
	inner := &node{name: "inner", parent: shadowRoot}

	called := false
	require.NoError(t, host.et.AddEventListener("click", func(e *Event) error {
		called = true
		return nil
	}, Options{}))

	ev := NewEvent("click", true, true, true)
	Dispatch(inner, ev)
	assert.True(t, called)
}

func TestDispatchNotComposedStopsAtShadowBoundary(t *testing.T) {
	host := &node{name: "host"}
	shadowRoot := &node{name: "shadow-root", shadowOf: host}
	inner := &node{name: "inner", parent: shadowRoot}

	called := false
	require.NoError(t, host.et.AddEventListener("click", func(e *Event) error {
		called = true
		return nil
	}, Options{}))

	ev := NewEvent("click", true, true, false)
	Dispatch(inner, ev)
	assert.False(t, called)
}

func TestOnceListenerFiresOnlyOnce(t *testing.T) {
	n := &node{name: "n"}
	count := 0
	require.NoError(t, n.et.AddEventListener("click", func(e *Event) error {
		count++
		return nil
	}, Options{Once: true}))

	Dispatch(n, NewEvent("click", false, false, false))
	Dispatch(n, NewEvent("click", false, false, false))
	assert.Equal(t, 1, count)
}

func TestDispatchClearsCurrentTargetAndPhaseWhenStoppedEarly(t *testing.T) {
	root := &node{name: "root"}
	mid := &node{name: "mid", parent: root}
	leaf := &node{name: "leaf", parent: mid}

	require.NoError(t, root.et.AddEventListener("click", func(e *Event) error {
		e.StopPropagation()
		return nil
	}, Options{Capture: true}))
	leafCalled := false
	require.NoError(t, leaf.et.AddEventListener("click", func(e *Event) error {
		leafCalled = true
		return nil
	}, Options{}))

	ev := NewEvent("click", true, true, false)
	Dispatch(leaf, ev)

	assert.False(t, leafCalled, "stopPropagation during capturing must prevent the target phase from running")
	assert.Nil(t, ev.CurrentTarget(), "current_target must be cleared even when dispatch stops early")
	assert.Equal(t, PhaseNone, ev.EventPhase(), "event_phase must be reset to NONE even when dispatch stops early")
}

func TestDispatchClearsCurrentTargetAndPhaseAfterStopImmediatePropagationAtTarget(t *testing.T) {
	target := &node{name: "target"}
	require.NoError(t, target.et.AddEventListener("click", func(e *Event) error {
		e.StopImmediatePropagation()
		return nil
	}, Options{}))

	ev := NewEvent("click", true, true, false)
	Dispatch(target, ev)

	assert.Nil(t, ev.CurrentTarget())
	assert.Equal(t, PhaseNone, ev.EventPhase())
}

func TestPreventDefaultOnlyWhenCancelable(t *testing.T) {
	ev := NewEvent("click", false, false, false)
	ev.PreventDefault()
	assert.False(t, ev.DefaultPrevented())

	ev2 := NewEvent("click", false, true, false)
	ev2.PreventDefault()
	assert.True(t, ev2.DefaultPrevented())
}
