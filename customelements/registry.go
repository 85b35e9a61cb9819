// Package customelements implements spec §4.7: the CustomElementRegistry
// (name validation, definition lookup, pending-upgrade tracking) and the
// upgrade algorithm of §4.7.3/§4.7.4.
//
// The registration-table shape (mutex-guarded map, define/lookup,
// options-style construction) follows the teacher's general package
// idiom of small structs wrapping a guarded map; the upgrade-candidate
// bookkeeping and reentrancy guard are built directly from spec.md's
// description since the teacher (a browser-binding library) never
// implements its own custom-element registry — it only calls into one.
package customelements

import (
	"sync"

	"github.com/domcore/whatwgdom/domerr"
	"github.com/domcore/whatwgdom/logutil"
)

// Registry is a Document's CustomElementRegistry.
type Registry struct {
	mu                sync.Mutex
	definitions       map[string]*Definition
	upgradeCandidates map[string][]UpgradeTarget
	isDefining        bool
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions:       make(map[string]*Definition),
		upgradeCandidates: make(map[string][]UpgradeTarget),
	}
}

// Define registers a new custom element (spec §4.7.2). Reentrant calls
// from within a constructor or upgrade candidate processing fail with
// RegistryDefinitionRunning.
func (r *Registry) Define(typeName, localName, namespace string, callbacks Callbacks, observed []string, disableInternals, disableShadow bool) (*Definition, error) {
	r.mu.Lock()
	if r.isDefining {
		r.mu.Unlock()
		return nil, domerr.New(domerr.RegistryDefinitionRunning, "define(%q) called reentrantly", localName)
	}
	r.isDefining = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.isDefining = false
		r.mu.Unlock()
	}()

	if err := ValidateName(localName); err != nil {
		return nil, err
	}

	k := key(namespace, localName)

	r.mu.Lock()
	if _, exists := r.definitions[k]; exists {
		r.mu.Unlock()
		return nil, domerr.New(domerr.CustomElementAlreadyDefined, "%q is already defined", localName)
	}

	observedSet := make(map[string]bool, len(observed))
	for _, name := range observed {
		observedSet[name] = true
	}
	def := &Definition{
		TypeName:         typeName,
		LocalName:        localName,
		Namespace:        namespace,
		Callbacks:        callbacks,
		ObservedAttrs:    observedSet,
		DisableInternals: disableInternals,
		DisableShadow:    disableShadow,
	}
	r.definitions[k] = def
	candidates := r.upgradeCandidates[k]
	delete(r.upgradeCandidates, k)
	r.mu.Unlock()

	for _, el := range candidates {
		if el.State() == Undefined {
			if err := r.tryUpgrade(el, def); err != nil {
				logutil.CallbackError("customElement.constructor", err, "element", el.TagName())
			}
		}
	}
	return def, nil
}

// Lookup returns the definition registered for (namespace, localName),
// if any.
func (r *Registry) Lookup(namespace, localName string) (*Definition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.definitions[key(namespace, localName)]
	return def, ok
}

// MarkUpgradeCandidate records el (currently in state Undefined) to be
// retried when a matching definition arrives. No-op if a definition
// already exists — callers should attempt TryUpgrade first.
func (r *Registry) MarkUpgradeCandidate(el UpgradeTarget) {
	k := key(el.Namespace(), el.TagName())
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.definitions[k]; exists {
		return
	}
	r.upgradeCandidates[k] = append(r.upgradeCandidates[k], el)
}

// TryUpgrade attempts to upgrade el per spec §4.7.3. It is a no-op if
// el is not in state Undefined or no definition matches its tag name.
func (r *Registry) TryUpgrade(el UpgradeTarget) error {
	if el.State() != Undefined {
		return nil
	}
	def, ok := r.Lookup(el.Namespace(), el.TagName())
	if !ok {
		return nil
	}
	return r.tryUpgrade(el, def)
}

func (r *Registry) tryUpgrade(el UpgradeTarget, def *Definition) error {
	if def.Callbacks.Constructor != nil {
		if err := def.Callbacks.Constructor(el); err != nil {
			el.SetState(Failed)
			return domerr.Wrap(domerr.ConstructorThrew, err, "constructor for %q threw", el.TagName())
		}
	}
	el.SetState(Custom)
	el.SetDefinition(def)
	el.EnqueueUpgradeReaction()
	return nil
}

// UpgradeOptions controls the tree-walk performed by Upgrade.
type UpgradeOptions struct {
	// IncludeShadow descends into attached shadow roots as well as the
	// light tree. Default (false) matches spec §4.7.4's "traverse
	// light-tree children only".
	IncludeShadow bool
}

// Upgrade performs the depth-first pre-order traversal of §4.7.4,
// calling TryUpgrade on every element found. Non-element nodes are
// skipped but still traversed for their children.
func (r *Registry) Upgrade(root Walkable, opts UpgradeOptions) {
	if el, ok := root.AsElement(); ok {
		if err := r.TryUpgrade(el); err != nil {
			logutil.CallbackError("customElement.constructor", err, "element", el.TagName())
		}
	}
	if opts.IncludeShadow {
		if shadow, ok := root.ShadowRoot(); ok {
			r.Upgrade(shadow, opts)
		}
	}
	for _, child := range root.Children() {
		r.Upgrade(child, opts)
	}
}
