package mutationobserver

import (
	"sync"

	"github.com/domcore/whatwgdom/domerr"
)

// DefaultMaxQueueSize is the configuration constant from spec §6
// (mutation_queue_max_size).
const DefaultMaxQueueSize = 10_000

// Options mirrors MutationObserverInit (spec §4.10).
type Options struct {
	ChildList             bool
	Attributes            bool
	CharacterData         bool
	AttributeOldValue     bool
	CharacterDataOldValue bool
	Subtree               bool
	AttributeFilter       []string // nil means "no filter, all attributes"
}

// normalize applies the implied-default rule (an old-value or filter
// option implies its corresponding observed-type flag) and validates
// that at least one observed type ends up set.
func (o Options) normalize() (Options, error) {
	if o.AttributeOldValue || o.AttributeFilter != nil {
		o.Attributes = true
	}
	if o.CharacterDataOldValue {
		o.CharacterData = true
	}
	if !o.ChildList && !o.Attributes && !o.CharacterData {
		return o, domerr.New(domerr.InvalidState, "observe() requires at least one of childList, attributes, characterData")
	}
	return o, nil
}

func (o Options) watchesAttribute(name string) bool {
	if !o.Attributes {
		return false
	}
	if o.AttributeFilter == nil {
		return true
	}
	for _, f := range o.AttributeFilter {
		if f == name {
			return true
		}
	}
	return false
}

// Registration ties one Observer to one target with a set of options.
// It is held by both the Observer (Observer.registrations) and the
// target (in the target's own rare-data side table, maintained by the
// caller — this package never touches a target's internals directly).
type Registration struct {
	Observer *Observer
	Target   any
	Options  Options
}

// Matches reports whether this registration subscribes to a mutation of
// the given type, optionally filtered by attribute name.
func (r *Registration) Matches(t RecordType, attrName string) bool {
	switch t {
	case TypeChildList:
		return r.Options.ChildList
	case TypeCharacterData:
		return r.Options.CharacterData
	case TypeAttributes:
		return r.Options.watchesAttribute(attrName)
	default:
		return false
	}
}

// Observer is a MutationObserver (spec §4.10). The zero value is not
// usable; construct with New.
type Observer struct {
	mu            sync.Mutex
	callback      func([]Record)
	maxQueueSize  int
	queue         []Record
	registrations []*Registration
	dropped       int
}

// New constructs an Observer that delivers snapshots to callback when
// the host calls Notify.
func New(callback func([]Record)) *Observer {
	return &Observer{callback: callback, maxQueueSize: DefaultMaxQueueSize}
}

// SetMaxQueueSize overrides the default bound (mostly for tests).
func (o *Observer) SetMaxQueueSize(n int) { o.maxQueueSize = n }

// Observe registers (or re-registers with new options) a target. If the
// target is already registered for this observer, its options are
// replaced in place rather than adding a second registration.
func (o *Observer) Observe(target any, opts Options) (*Registration, error) {
	normalized, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for _, reg := range o.registrations {
		if reg.Target == target {
			reg.Options = normalized
			return reg, nil
		}
	}
	reg := &Registration{Observer: o, Target: target, Options: normalized}
	o.registrations = append(o.registrations, reg)
	return reg, nil
}

// Disconnect removes every registration this observer holds and clears
// its pending record queue, returning the removed registrations so the
// caller can unlink them from each target's own side table.
func (o *Observer) Disconnect() []*Registration {
	o.mu.Lock()
	defer o.mu.Unlock()
	removed := o.registrations
	o.registrations = nil
	o.queue = nil
	return removed
}

// TakeRecords returns and empties the pending record queue without
// invoking the callback.
func (o *Observer) TakeRecords() []Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	records := o.queue
	o.queue = nil
	return records
}

// Notify is the host-driven delivery hook (spec §4.10: "the host calls
// observer.notify() at its own microtask checkpoints"). It snapshots and
// clears the queue, then invokes the callback outside the lock so a
// callback that re-enters Observe/Disconnect does not deadlock.
func (o *Observer) Notify() {
	records := o.TakeRecords()
	if len(records) == 0 || o.callback == nil {
		return
	}
	o.callback(records)
}

// QueueRecord appends r to this observer's queue, evicting the oldest
// record (FIFO) if the bound is exceeded (spec §4.10).
func (o *Observer) QueueRecord(r Record) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.queue) >= o.maxQueueSize {
		o.queue = o.queue[1:]
		o.dropped++
	}
	o.queue = append(o.queue, r)
}

// Dropped reports how many records have been evicted for this observer
// due to the queue bound, for diagnostics.
func (o *Observer) Dropped() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dropped
}
