package mutationobserver

import "sync"

// Registry is a target-keyed table of active registrations: "which
// observers, with which options, are watching this node". A Document
// holds one Registry for its whole tree; domtree looks registrations up
// by walking a node's ancestors (spec §4.10's "subtree" propagation)
// rather than storing the list directly on each node, so the table
// itself must support fast per-target lookup.
//
// Grounded on the teacher's dom/mutation_observer.go
// ScopeRegistry/MutationObserverManager: a mutex-guarded map from a
// target key to its watchers, with Register/Unregister/Lookup methods.
type Registry struct {
	mu    sync.RWMutex
	byKey map[any][]*Registration
}

// NewRegistry constructs an empty registration table.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[any][]*Registration)}
}

// Register records reg as watching its own Target.
func (r *Registry) Register(reg *Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byKey[reg.Target]
	for _, existing := range list {
		if existing == reg {
			return
		}
	}
	r.byKey[reg.Target] = append(list, reg)
}

// Unregister removes every registration in regs from the table,
// regardless of which target each was filed under.
func (r *Registry) Unregister(regs []*Registration) {
	if len(regs) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	remove := make(map[*Registration]bool, len(regs))
	for _, reg := range regs {
		remove[reg] = true
	}
	for key, list := range r.byKey {
		kept := list[:0:0]
		for _, reg := range list {
			if !remove[reg] {
				kept = append(kept, reg)
			}
		}
		if len(kept) == 0 {
			delete(r.byKey, key)
		} else {
			r.byKey[key] = kept
		}
	}
}

// For returns the registrations filed directly under target (an empty
// slice if none). Callers wanting subtree propagation additionally walk
// ancestors and filter by Options.Subtree themselves.
func (r *Registry) For(target any) []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byKey[target]
	out := make([]*Registration, len(list))
	copy(out, list)
	return out
}

// Dispatch delivers r to every registration in regs whose options match
// the record's type and (for attribute records) name, queuing it on
// each matching registration's observer.
func Dispatch(regs []*Registration, r Record) {
	for _, reg := range regs {
		if reg.Matches(r.Type, r.AttrName) {
			reg.Observer.QueueRecord(r)
		}
	}
}
