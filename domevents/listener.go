package domevents

import (
	"reflect"

	"github.com/domcore/whatwgdom/domerr"
)

// DefaultMaxListenersPerTarget is the configuration constant from
// spec §6 (max_listeners_per_target).
const DefaultMaxListenersPerTarget = 10_000

// Options mirrors AddEventListenerOptions.
type Options struct {
	Capture bool
	Once    bool
	Passive bool
	// Abort, if non-nil, is a host-supplied cancellation source (spec §C
	// supplemented feature, generalizing AbortSignal without this package
	// depending on a concrete signal type): once closed, the listener is
	// dropped the next time this target's listeners are consulted, without
	// firing.
	Abort <-chan struct{}
}

// Callback is a listener function. Errors it returns are caught and
// logged by Dispatch, never surfaced to the caller that triggered the
// event (spec §7).
type Callback func(*Event) error

type listener struct {
	eventType string
	callback  Callback
	capture   bool
	once      bool
	passive   bool
	abort     <-chan struct{}
}

func (l listener) aborted() bool {
	if l.abort == nil {
		return false
	}
	select {
	case <-l.abort:
		return true
	default:
		return false
	}
}

// identity mirrors the spec's (type, callback, capture) dedup key.
// Go func values aren't comparable, so callback identity is taken from
// the underlying code pointer via reflect — two listeners registered
// from the same function literal compare equal even across separate
// closures, mirroring how two references to the same JS function
// compare equal regardless of which call created them.
func (l listener) identity() (string, uintptr, bool) {
	return l.eventType, reflect.ValueOf(l.callback).Pointer(), l.capture
}

// target is the state behind an EventTarget (spec §4.9): the ordered
// listener list and its per-target cap. The zero value is ready to use.
type target struct {
	listeners    []listener
	maxListeners int
}

// EventTarget is the embeddable mixin implementing addEventListener /
// removeEventListener / dispatchEvent. The zero value is ready to use.
type EventTarget struct {
	t target
}

// AddEventListener registers cb for eventType. A registration already
// present for the same (eventType, cb, opts.Capture) is silently
// ignored, matching the spec's dedup rule.
func (et *EventTarget) AddEventListener(eventType string, cb Callback, opts Options) error {
	max := et.t.maxListeners
	if max == 0 {
		max = DefaultMaxListenersPerTarget
	}
	l := listener{eventType: eventType, callback: cb, capture: opts.Capture, once: opts.Once, passive: opts.Passive, abort: opts.Abort}
	key := func(x listener) (string, uintptr, bool) { return x.identity() }
	wantType, wantPtr, wantCapture := key(l)
	for _, existing := range et.t.listeners {
		gotType, gotPtr, gotCapture := key(existing)
		if gotType == wantType && gotPtr == wantPtr && gotCapture == wantCapture {
			return nil
		}
	}
	if len(et.t.listeners) >= max {
		return domerr.New(domerr.TooManyListeners, "target already has %d listeners", max)
	}
	et.t.listeners = append(et.t.listeners, l)
	return nil
}

// RemoveEventListener removes the listener matching (eventType, cb,
// capture), if any.
func (et *EventTarget) RemoveEventListener(eventType string, cb Callback, capture bool) {
	want := listener{eventType: eventType, callback: cb, capture: capture}
	wantType, wantPtr, wantCapture := want.identity()
	out := et.t.listeners[:0:0]
	for _, existing := range et.t.listeners {
		gotType, gotPtr, gotCapture := existing.identity()
		if gotType == wantType && gotPtr == wantPtr && gotCapture == wantCapture {
			continue
		}
		out = append(out, existing)
	}
	et.t.listeners = out
}

// SetMaxListeners overrides DefaultMaxListenersPerTarget (mostly for
// tests).
func (et *EventTarget) SetMaxListeners(n int) { et.t.maxListeners = n }

// listenersMatching returns a snapshot, in registration order, of this
// target's listeners for eventType satisfying want (nil means "any
// capture value" — used at the target node, where both capturing and
// bubbling listeners fire together). Matched once-listeners are removed
// from the live list.
func (et *EventTarget) listenersMatching(eventType string, want func(capture bool) bool) []listener {
	var matched []listener
	var remaining []listener
	for _, l := range et.t.listeners {
		if l.aborted() {
			continue
		}
		if l.eventType == eventType && (want == nil || want(l.capture)) {
			matched = append(matched, l)
			if l.once {
				continue
			}
		}
		remaining = append(remaining, l)
	}
	et.t.listeners = remaining
	return matched
}
