package domtree

import (
	"github.com/domcore/whatwgdom/ceactions"
	"github.com/domcore/whatwgdom/customelements"
	"github.com/domcore/whatwgdom/domerr"
	"github.com/domcore/whatwgdom/idgen"
	"github.com/domcore/whatwgdom/mutationobserver"
	"github.com/domcore/whatwgdom/qualname"
	"github.com/domcore/whatwgdom/stringpool"
)

// documentState holds the capabilities a Document owns and that are
// shared, read-only, by every node beneath it (spec §4.11 / §5's
// "shared-resource policy" — mutated only by the document's owning
// goroutine).
type documentState struct {
	pool      *stringpool.Pool
	reactions ceactions.Stack
	registry  *customelements.Registry
	observers *mutationobserver.Registry
	idGen     idgen.Generator
}

// Document is the root of a tree (spec §4.11): a KindDocument Node plus
// the capabilities every descendant shares.
type Document struct {
	*Node
}

// NewDocument constructs an empty Document with its own StringPool,
// CEReactionsStack, CustomElementRegistry and mutation-observer
// registry.
func NewDocument() *Document {
	n := &Node{Kind: KindDocument, refCount: 1}
	n.flags.set(flagConnected, true) // a Document is the root of connectedness (spec §3's is_connected invariant)
	n.doc = &documentState{
		pool:      stringpool.New(),
		registry:  customelements.NewRegistry(),
		observers: mutationobserver.NewRegistry(),
		idGen:     idgen.Documents,
	}
	n.ownerDocument = n
	doc := &Document{n}
	return doc
}

// Registry returns the document's CustomElementRegistry.
func (d *Document) Registry() *customelements.Registry { return d.doc.registry }

// Observers returns the document's mutation-observer registration table.
func (d *Document) Observers() *mutationobserver.Registry { return d.doc.observers }

// StringPool returns the document's interning pool.
func (d *Document) StringPool() *stringpool.Pool { return d.doc.pool }

// FlushBackupQueue is the host-driven microtask-checkpoint surrogate of
// spec §4.8, invoking any reactions left in the backup queue.
func (d *Document) FlushBackupQueue() { d.doc.reactions.FlushBackup() }

// --- Factory methods (spec §4.11) ---

func (d *Document) newElement(name qualname.Name) *Node {
	n := newNode(KindElement, d.Node)
	n.tagName = name
	n.ceState = customelements.Uncustomized
	return n
}

// CreateElement creates an element in the null namespace, in state
// Uncustomized. A caller that knows the tag name is (or might become) a
// custom element marks it with MarkAsUpgradeCandidate; tree insertion
// then drives the actual upgrade attempt (spec §4.7.3/§8 scenario 1).
func (d *Document) CreateElement(tag string) (*Node, error) {
	name, err := qualname.Unnamespaced(d.doc.pool, tag)
	if err != nil {
		return nil, err
	}
	return d.newElement(name), nil
}

// CreateElementNS creates an element in the given namespace, parsing a
// possibly-prefixed qualifiedName (spec §4.2).
func (d *Document) CreateElementNS(namespace, qualifiedName string) (*Node, error) {
	name, err := qualname.Parse(d.doc.pool, namespace, qualifiedName)
	if err != nil {
		return nil, err
	}
	return d.newElement(name), nil
}

// MarkAsUpgradeCandidate sets el to the Undefined custom-element state
// and registers it with the registry to be retried when a matching
// definition is later added (spec §8 scenario 2's
// `elem.setIsUndefined()`).
func (d *Document) MarkAsUpgradeCandidate(el *Node) {
	if el.Kind != KindElement {
		return
	}
	el.ceState = customelements.Undefined
	d.doc.registry.MarkUpgradeCandidate(el)
}

// CreateTextNode creates a Text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	n := newNode(KindText, d.Node)
	n.data = data
	return n
}

// CreateComment creates a Comment node with the given data.
func (d *Document) CreateComment(data string) *Node {
	n := newNode(KindComment, d.Node)
	n.data = data
	return n
}

// CreateCDATASection creates a CDATASection node with the given data.
func (d *Document) CreateCDATASection(data string) *Node {
	n := newNode(KindCDATA, d.Node)
	n.data = data
	return n
}

// CreateProcessingInstruction creates a ProcessingInstruction node.
func (d *Document) CreateProcessingInstruction(target, data string) *Node {
	n := newNode(KindProcessingInstruction, d.Node)
	n.piTarget = target
	n.data = data
	return n
}

// CreateDocumentType creates a standalone DocumentType node.
func (d *Document) CreateDocumentType(name, publicID, systemID string) *Node {
	n := newNode(KindDocumentType, d.Node)
	n.docTypeName = name
	n.publicID = publicID
	n.systemID = systemID
	return n
}

// CreateDocumentFragment creates an empty DocumentFragment.
func (d *Document) CreateDocumentFragment() *Node {
	return newNode(KindDocumentFragment, d.Node)
}

// CreateAttribute creates a standalone, unowned Attr node (spec §4.6).
func (d *Document) CreateAttribute(name string) (*Node, error) {
	qn, err := qualname.Unnamespaced(d.doc.pool, name)
	if err != nil {
		return nil, err
	}
	n := newNode(KindAttr, d.Node)
	n.attrName = qn
	return n, nil
}

// AdoptNode performs the adoption protocol of spec §4.3: it rewrites
// ownerDocument across node's whole subtree and fires `adopted`
// reactions for every custom element encountered, without firing
// connect/disconnect. node must not have a parent; adopting a node
// still attached to a tree is the caller's responsibility to detach
// first (mirrors the spec's own layering of adoptNode under
// removeChild/insertBefore).
func (d *Document) AdoptNode(node *Node) error {
	if node.parent != nil {
		return domerr.New(domerr.HierarchyRequest, "adoptNode requires a node with no parent")
	}
	pop := d.doc.reactions.Push()
	defer pop()
	d.adoptSubtree(node)
	return nil
}

func (d *Document) adoptSubtree(n *Node) {
	oldDoc := n.ownerDocument
	n.ownerDocument = d.Node
	if n.Kind == KindElement && n.ceState == customelements.Custom && n.ceDefinition != nil && n.ceDefinition.Callbacks.Adopted != nil {
		n.enqueueReaction(ceactions.Reaction{Kind: ceactions.Adopted, OldDocument: oldDoc, NewDocument: d.Node})
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		d.adoptSubtree(c)
	}
	if n.Kind == KindElement && n.rare != nil && n.rare.Shadow != nil {
		d.adoptSubtree(n.rare.Shadow)
	}
}
