package domtree

import (
	"github.com/domcore/whatwgdom/ceactions"
	"github.com/domcore/whatwgdom/customelements"
	"github.com/domcore/whatwgdom/domerr"
	"github.com/domcore/whatwgdom/logutil"
	"github.com/domcore/whatwgdom/mutationobserver"
	"github.com/domcore/whatwgdom/qualname"
)

// Element is an ergonomic view over an Element-kind Node.
type Element struct {
	*Node
}

// AsElement narrows a generic Node to an Element view, or reports false
// if n is not a KindElement node.
func AsElement(n *Node) (Element, bool) {
	if n == nil || n.Kind != KindElement {
		return Element{}, false
	}
	return Element{n}, true
}

// SetIsUndefined marks an Uncustomized element as a custom-element
// upgrade candidate (spec §8 scenario 1's `child.setIsUndefined()`).
// Called by a host layer (e.g. a parser) that recognizes the tag name
// as one that may gain a definition later.
func (n *Node) SetIsUndefined() {
	if n.Kind != KindElement {
		return
	}
	n.ceState = customelements.Undefined
}

// --- attribute model (spec §4.4) ---

// GetAttribute returns the value of the (unnamespaced) attribute named
// name, and whether it was present.
func (n *Node) GetAttribute(name string) (string, bool) {
	return n.GetAttributeNS("", name)
}

// GetAttributeNS returns the value of the namespaced attribute, and
// whether it was present.
func (n *Node) GetAttributeNS(namespace, local string) (string, bool) {
	return n.attrs.Get(n.resolveName(namespace, local))
}

// HasAttribute reports whether the (unnamespaced) attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// resolveName builds the lookup key for an attribute getter/remover.
// Getters never fail on a malformed name (they simply find nothing);
// only the setAttribute-family methods validate and surface
// InvalidCharacter to the caller.
func (n *Node) resolveName(namespace, local string) qualname.Name {
	qn, _ := qualname.New(n.ownerDocument.doc.pool, "", local, namespace)
	return qn
}

// SetAttribute sets an unnamespaced attribute, opening a [CEReactions]
// scope, enqueuing an attribute_changed reaction if observed, and
// queuing an `attributes` mutation record (spec §4.4).
func (n *Node) SetAttribute(name, value string) error {
	return n.SetAttributeNS("", "", name, value)
}

// SetAttributeNS sets a namespaced attribute (spec §4.4).
func (n *Node) SetAttributeNS(namespace, prefix, local, value string) error {
	if n.Kind != KindElement {
		return domerr.New(domerr.NotSupported, "setAttribute on a non-element node")
	}
	pool := n.ownerDocument.doc.pool
	qn, err := qualname.New(pool, prefix, local, namespace)
	if err != nil {
		return err
	}

	stack := &n.ownerDocument.doc.reactions
	pop := stack.Push()
	defer pop()

	oldValue, existed := n.attrs.Set(qn, value)
	var oldPtr *string
	if existed {
		oldPtr = &oldValue
	}
	n.afterAttributeChange(local, namespace, oldPtr, &value)
	return nil
}

// RemoveAttribute removes an unnamespaced attribute.
func (n *Node) RemoveAttribute(name string) error { return n.RemoveAttributeNS("", name) }

// RemoveAttributeNS removes a namespaced attribute.
func (n *Node) RemoveAttributeNS(namespace, local string) error {
	if n.Kind != KindElement {
		return domerr.New(domerr.NotSupported, "removeAttribute on a non-element node")
	}
	want := n.resolveName(namespace, local)

	stack := &n.ownerDocument.doc.reactions
	pop := stack.Push()
	defer pop()

	oldValue, existed := n.attrs.Remove(want)
	if !existed {
		return nil
	}
	if n.rare != nil {
		n.rare.evictAttr(local, namespace)
	}
	n.afterAttributeChange(local, namespace, &oldValue, nil)
	return nil
}

// ToggleAttribute adds the attribute (with empty value) if absent, or
// removes it if present, unless force pins the outcome. Returns the
// attribute's presence after the call.
func (n *Node) ToggleAttribute(name string, force *bool) (bool, error) {
	has := n.HasAttribute(name)
	want := !has
	if force != nil {
		want = *force
	}
	switch {
	case want && !has:
		return true, n.SetAttribute(name, "")
	case !want && has:
		return false, n.RemoveAttribute(name)
	default:
		return has, nil
	}
}

// afterAttributeChange enqueues the attribute_changed reaction (if the
// attribute is observed by this element's definition) and a mutation
// record, and must run inside an already-open [CEReactions] scope.
func (n *Node) afterAttributeChange(local, namespace string, oldValue, newValue *string) {
	if n.ceState == customelements.Custom && n.ceDefinition.Observes(local) {
		n.enqueueReaction(ceactions.Reaction{
			Kind:          ceactions.AttributeChanged,
			AttrName:      local,
			AttrNamespace: namespace,
			AttrOld:       oldValue,
			AttrNew:       newValue,
		})
	}

	record := mutationobserver.Record{Type: mutationobserver.TypeAttributes, Target: n, AttrName: local, AttrNS: namespace}
	doc := n.ownerDocument
	for target, subtreeOnly := n, false; target != nil; target, subtreeOnly = target.parent, true {
		for _, reg := range doc.doc.observers.For(target) {
			if !reg.Matches(mutationobserver.TypeAttributes, local) {
				continue
			}
			if subtreeOnly && !reg.Options.Subtree {
				continue
			}
			rec := record
			if reg.Options.AttributeOldValue && oldValue != nil {
				v := *oldValue
				rec.OldValue = &v
			}
			reg.Observer.QueueRecord(rec)
		}
	}
}

// runReaction invokes the custom-element callback for one queued
// reaction, catching and logging any error (spec §7). Only constructor
// failure (handled separately, during upgrade itself) may propagate.
func (n *Node) runReaction(r ceactions.Reaction) {
	def := n.ceDefinition
	if def == nil {
		return
	}
	var err error
	switch r.Kind {
	case ceactions.Upgrade:
		// The constructor already ran synchronously during upgrade;
		// this entry exists only to preserve enqueue-order semantics
		// alongside any Connected reaction queued right after it.
	case ceactions.Connected:
		if def.Callbacks.Connected != nil {
			err = callProtected(func() error { def.Callbacks.Connected(n); return nil })
		}
	case ceactions.Disconnected:
		if def.Callbacks.Disconnected != nil {
			err = callProtected(func() error { def.Callbacks.Disconnected(n); return nil })
		}
	case ceactions.Adopted:
		if def.Callbacks.Adopted != nil {
			err = callProtected(func() error { def.Callbacks.Adopted(n, r.OldDocument, r.NewDocument); return nil })
		}
	case ceactions.AttributeChanged:
		if def.Callbacks.AttributeChanged != nil {
			err = callProtected(func() error {
				def.Callbacks.AttributeChanged(n, r.AttrName, r.AttrNamespace, r.AttrOld, r.AttrNew)
				return nil
			})
		}
	}
	if err != nil {
		logutil.CallbackError("customElement."+r.Kind.String(), err, "element", n.TagName())
	}
}

func callProtected(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = domerr.New(domerr.ConstructorThrew, "panic: %v", rec)
		}
	}()
	return fn()
}

// --- shadow tree (spec §4.4) ---

// AttachShadowOptions mirrors ShadowRootInit.
type AttachShadowOptions struct {
	Mode           ShadowRootMode
	DelegatesFocus bool
	SlotAssignment SlotAssignment
	Clonable       bool
	Serializable   bool
}

// AttachShadow creates and attaches a ShadowRoot to this element.
func (n *Node) AttachShadow(opts AttachShadowOptions) (*Node, error) {
	if n.Kind != KindElement {
		return nil, domerr.New(domerr.NotSupported, "attachShadow on a non-element node")
	}
	if n.ceDefinition != nil && n.ceDefinition.DisableShadow {
		return nil, domerr.New(domerr.NotSupported, "attachShadow disabled by custom element definition")
	}
	if n.rare != nil && n.rare.Shadow != nil {
		return nil, domerr.New(domerr.NotSupported, "element already has a shadow root")
	}
	shadow := newNode(KindShadowRoot, n.ownerDocument)
	shadow.shadowHost = n
	shadow.shadowMode = opts.Mode
	shadow.shadowDelegatesFocus = opts.DelegatesFocus
	shadow.shadowSlotAssignment = opts.SlotAssignment
	shadow.shadowClonable = opts.Clonable
	shadow.shadowSerializable = opts.Serializable
	shadow.flags.set(flagConnected, n.IsConnected())
	n.rareData().Shadow = shadow
	return shadow, nil
}

// ShadowRootNode returns the element's shadow root, or nil if it has
// none, or if it exists but is closed-mode (spec §4.4: "shadowRoot()
// returns it iff mode is open"). Internal code that needs the shadow
// regardless of mode goes through rareData().Shadow directly.
func (n *Node) ShadowRootNode() *Node {
	if n.rare == nil || n.rare.Shadow == nil {
		return nil
	}
	if n.rare.Shadow.shadowMode != ShadowModeOpen {
		return nil
	}
	return n.rare.Shadow
}

// ShadowHostNode returns the element a ShadowRoot is attached to, or
// nil if n is not itself a ShadowRoot.
func (n *Node) ShadowHostNode() *Node {
	if n.Kind != KindShadowRoot {
		return nil
	}
	return n.shadowHost
}

// ClassList returns a DOMTokenList bound to this element's class
// attribute (spec §4.4/§4.5).
func (n *Node) ClassList() *DOMTokenList {
	return &DOMTokenList{element: n, attrName: "class"}
}

// Attributes returns a NamedNodeMap view over this element's attributes
// (spec §4.6).
func (n *Node) Attributes() *NamedNodeMap {
	return &NamedNodeMap{element: n}
}
