package domtree

import (
	"sync/atomic"

	"github.com/domcore/whatwgdom/attr"
	"github.com/domcore/whatwgdom/ceactions"
	"github.com/domcore/whatwgdom/customelements"
	"github.com/domcore/whatwgdom/domevents"
	"github.com/domcore/whatwgdom/mutationobserver"
	"github.com/domcore/whatwgdom/qualname"
)

// ShadowRootMode is the openness of a ShadowRoot (spec §3).
type ShadowRootMode int

const (
	ShadowModeOpen ShadowRootMode = iota
	ShadowModeClosed
)

// SlotAssignment controls how a ShadowRoot distributes light-tree
// children into its slots.
type SlotAssignment int

const (
	SlotAssignmentNamed SlotAssignment = iota
	SlotAssignmentManual
)

// Node is the single concrete representation for every node variant in
// the tree (spec §3). Kind says which variant this is; only the fields
// relevant to that Kind are populated — everything else stays zero.
type Node struct {
	Kind  Kind
	flags flags
	// refCount is bumped by acquire/release; mutation itself is
	// single-threaded per Document, but records/observers may hold a
	// reference released from a different goroutine (spec §5), so the
	// counter itself uses atomic ops.
	refCount int32

	parent      *Node
	prevSibling *Node
	nextSibling *Node
	firstChild  *Node
	lastChild   *Node

	ownerDocument *Node // always KindDocument, nil only for a not-yet-adopted node built outside one
	rare          *RareData

	events domevents.EventTarget

	// --- Element ---
	tagName      qualname.Name
	attrs        attr.Map
	ceState      customelements.State
	ceDefinition *customelements.Definition

	// --- CharacterData: Text, CDATASection, Comment ---
	data string

	// --- ProcessingInstruction ---
	piTarget string

	// --- DocumentType ---
	docTypeName string
	publicID    string
	systemID    string

	// --- Attr ---
	attrName     qualname.Name
	attrValue    string
	ownerElement *Node // weak

	// --- Document ---
	doc *documentState

	// --- ShadowRoot ---
	shadowHost           *Node // weak, back to the owning Element
	shadowMode           ShadowRootMode
	shadowDelegatesFocus bool
	shadowSlotAssignment SlotAssignment
	shadowClonable       bool
	shadowSerializable   bool
}

func newNode(kind Kind, owner *Node) *Node {
	return &Node{Kind: kind, ownerDocument: owner, refCount: 1}
}

// --- Reference counting (spec §3's ref_count field) ---

// Acquire increments the node's reference count, for an external holder
// (a MutationRecord, an Observer's target reference) keeping the node
// alive beyond its tree membership.
func (n *Node) Acquire() { atomic.AddInt32(&n.refCount, 1) }

// Release decrements the reference count. Reaching zero is currently
// advisory only (Go's own GC reclaims the struct once nothing
// references it); the counter exists so callers can assert the
// invariant from spec §8 in tests.
func (n *Node) Release() int32 { return atomic.AddInt32(&n.refCount, -1) }

func (n *Node) RefCount() int32 { return atomic.LoadInt32(&n.refCount) }

// --- Navigation ---

func (n *Node) ParentNode() *Node      { return n.parent }
func (n *Node) PreviousSibling() *Node { return n.prevSibling }
func (n *Node) NextSibling() *Node     { return n.nextSibling }
func (n *Node) FirstChild() *Node      { return n.firstChild }
func (n *Node) LastChild() *Node       { return n.lastChild }

// OwnerDocument returns the node's owning Document, or nil if this node
// is itself unowned (should only happen transiently before first
// insertion into a document's factory output — in practice every node
// is created by a Document factory method and always has one).
func (n *Node) OwnerDocument() *Document {
	if n.ownerDocument == nil {
		return nil
	}
	return &Document{n.ownerDocument}
}

// HasChildNodes reports whether this node has at least one child.
func (n *Node) HasChildNodes() bool { return n.firstChild != nil }

// ChildNodes returns the node's children as a snapshot slice, in
// document order.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		out = append(out, c)
	}
	return out
}

// IsConnected reports whether this node's document-order root is a
// Document, walking through shadow hosts (spec §3's is_connected
// invariant).
func (n *Node) IsConnected() bool { return n.flags.has(flagConnected) }

// GetRootNode returns the furthest ancestor of this node. If composed
// is true, traversal pierces shadow boundaries via the host link;
// otherwise it stops at a ShadowRoot.
func (n *Node) GetRootNode(composed bool) *Node {
	cur := n
	for {
		if cur.parent != nil {
			cur = cur.parent
			continue
		}
		if cur.Kind == KindShadowRoot && composed && cur.shadowHost != nil {
			cur = cur.shadowHost
			continue
		}
		return cur
	}
}

// Contains reports whether other is this node or a descendant of it in
// the light tree (spec §C supplemented feature).
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

func (n *Node) updateConnected(connected bool) {
	n.flags.set(flagConnected, connected)
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.updateConnected(connected)
	}
	if n.Kind == KindElement && n.rare != nil && n.rare.Shadow != nil {
		n.rare.Shadow.updateConnected(connected)
	}
}

// rareData lazily allocates this node's RareData side table (spec §3.2).
func (n *Node) rareData() *RareData {
	if n.rare == nil {
		n.rare = &RareData{}
		n.flags.set(flagHasRareData, true)
	}
	return n.rare
}

// --- domevents.Dispatcher ---

// Parent implements domevents.Target. A typed-nil *Node must not leak
// out as a non-nil interface value, hence the explicit check.
func (n *Node) Parent() domevents.Target {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// ShadowHost implements domevents.Target: only a ShadowRoot node
// reports a host, letting dispatch pierce the boundary when composed.
func (n *Node) ShadowHost() (domevents.Target, bool) {
	if n.Kind != KindShadowRoot || n.shadowHost == nil {
		return nil, false
	}
	return n.shadowHost, true
}

// Listeners implements domevents.Dispatcher.
func (n *Node) Listeners() *domevents.EventTarget { return &n.events }

// AddEventListener registers a listener for eventType on this node.
func (n *Node) AddEventListener(eventType string, cb domevents.Callback, opts domevents.Options) error {
	return n.events.AddEventListener(eventType, cb, opts)
}

// RemoveEventListener removes a previously registered listener.
func (n *Node) RemoveEventListener(eventType string, cb domevents.Callback, capture bool) {
	n.events.RemoveEventListener(eventType, cb, capture)
}

// DispatchEvent runs the phase-ordered dispatch algorithm with this
// node as the target (spec §4.9).
func (n *Node) DispatchEvent(ev *domevents.Event) bool {
	return domevents.Dispatch(n, ev)
}

// --- ceactions.Reactable ---

// RunPendingReactions drains and invokes this element's queued lifecycle
// reactions in FIFO order (spec §4.8). Callback errors are caught and
// logged, never propagated.
func (n *Node) RunPendingReactions() {
	if n.rare == nil {
		return
	}
	for _, r := range n.rare.Reactions.Drain() {
		n.runReaction(r)
	}
}

// --- customelements.Walkable ---

func (n *Node) Children() []customelements.Walkable {
	out := make([]customelements.Walkable, 0, len(n.ChildNodes()))
	for c := n.firstChild; c != nil; c = c.nextSibling {
		out = append(out, c)
	}
	return out
}

func (n *Node) AsElement() (customelements.UpgradeTarget, bool) {
	if n.Kind != KindElement {
		return nil, false
	}
	return n, true
}

func (n *Node) ShadowRoot() (customelements.Walkable, bool) {
	if n.rare == nil || n.rare.Shadow == nil {
		return nil, false
	}
	return n.rare.Shadow, true
}

// --- customelements.UpgradeTarget ---

func (n *Node) TagName() string   { return n.ownerDocument.doc.pool.String(n.tagName.Local) }
func (n *Node) Namespace() string { return n.ownerDocument.doc.pool.String(n.tagName.Namespace) }
func (n *Node) State() customelements.State { return n.ceState }
func (n *Node) SetState(s customelements.State) { n.ceState = s }
func (n *Node) Definition() *customelements.Definition { return n.ceDefinition }
func (n *Node) SetDefinition(d *customelements.Definition) { n.ceDefinition = d }

// EnqueueUpgradeReaction records the Upgrade reaction and, if the
// element is already connected, a following Connected reaction — an
// element upgraded while already in the tree never receives its own
// insertion's connected callback, since upgrade happens synchronously
// during that same insertion's [CEReactions] scope (spec §4.7.3/§4.8).
func (n *Node) EnqueueUpgradeReaction() {
	n.enqueueReaction(ceactions.Reaction{Kind: ceactions.Upgrade})
	if n.IsConnected() {
		n.enqueueReaction(ceactions.Reaction{Kind: ceactions.Connected})
	}
}

func (n *Node) enqueueReaction(r ceactions.Reaction) {
	n.rareData().Reactions.Append(r)
	n.ownerDocument.doc.reactions.Enqueue(n)
}

// Data returns the character data of a Text/CDATA/Comment/
// ProcessingInstruction node, or the empty string for any other kind.
func (n *Node) Data() string {
	switch n.Kind {
	case KindText, KindCDATA, KindComment, KindProcessingInstruction:
		return n.data
	default:
		return ""
	}
}

// SetData overwrites the character data of a Text/CDATA/Comment/
// ProcessingInstruction node and queues a characterData mutation record
// for any observer watching this node or, with Subtree, an ancestor
// (spec §4.10). A no-op on any other kind.
func (n *Node) SetData(data string) {
	switch n.Kind {
	case KindText, KindCDATA, KindComment, KindProcessingInstruction:
	default:
		return
	}
	old := n.data
	n.data = data
	if old == data || n.ownerDocument == nil {
		return
	}
	doc := n.ownerDocument
	for target, subtreeOnly := n, false; target != nil; target, subtreeOnly = target.parent, true {
		for _, reg := range doc.doc.observers.For(target) {
			if !reg.Matches(mutationobserver.TypeCharacterData, "") {
				continue
			}
			if subtreeOnly && !reg.Options.Subtree {
				continue
			}
			rec := mutationobserver.Record{Type: mutationobserver.TypeCharacterData, Target: n}
			if reg.Options.CharacterDataOldValue {
				v := old
				rec.OldValue = &v
			}
			reg.Observer.QueueRecord(rec)
		}
	}
}
