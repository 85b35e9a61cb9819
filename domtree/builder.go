package domtree

import "github.com/domcore/whatwgdom/domevents"

// ElementBuilder is a fluent helper for constructing an element subtree
// in one expression, grounded on the teacher's dom.ElementBuilder
// (SetAttribute/SetClass/SetID/SetText/AppendChild chain) — generalized
// here from a JS-backed live element to a plain *Node, with errors
// collected rather than discarded (there is no JS exception boundary to
// swallow them at).
type ElementBuilder struct {
	doc     *Document
	element *Node
	err     error
}

// NewElement starts building a new element of the given tag name in doc.
func NewElement(doc *Document, tag string) *ElementBuilder {
	el, err := doc.CreateElement(tag)
	return &ElementBuilder{doc: doc, element: el, err: err}
}

// NewElementNS starts building a new namespaced element.
func NewElementNS(doc *Document, namespace, qualifiedName string) *ElementBuilder {
	el, err := doc.CreateElementNS(namespace, qualifiedName)
	return &ElementBuilder{doc: doc, element: el, err: err}
}

// SetAttribute sets an unnamespaced attribute.
func (b *ElementBuilder) SetAttribute(name, value string) *ElementBuilder {
	if b.err != nil {
		return b
	}
	b.err = b.element.SetAttribute(name, value)
	return b
}

// SetClass sets the class attribute outright.
func (b *ElementBuilder) SetClass(className string) *ElementBuilder {
	return b.SetAttribute("class", className)
}

// SetID sets the id attribute.
func (b *ElementBuilder) SetID(id string) *ElementBuilder {
	return b.SetAttribute("id", id)
}

// SetText replaces the element's children with a single Text node
// (there is no innerHTML/serialization surface in this core, per §1's
// non-goals — only structural text content).
func (b *ElementBuilder) SetText(text string) *ElementBuilder {
	if b.err != nil {
		return b
	}
	t := b.doc.CreateTextNode(text)
	_, b.err = b.element.AppendChild(t)
	return b
}

// AppendChild appends an already-built node.
func (b *ElementBuilder) AppendChild(child *Node) *ElementBuilder {
	if b.err != nil {
		return b
	}
	_, b.err = b.element.AppendChild(child)
	return b
}

// AppendElement appends another builder's element, propagating its
// error if it has not already failed.
func (b *ElementBuilder) AppendElement(child *ElementBuilder) *ElementBuilder {
	if b.err != nil {
		return b
	}
	if child.err != nil {
		b.err = child.err
		return b
	}
	return b.AppendChild(child.element)
}

// OnEvent registers an event listener on the element under construction.
func (b *ElementBuilder) OnEvent(eventType string, cb domevents.Callback) *ElementBuilder {
	if b.err != nil {
		return b
	}
	b.err = b.element.AddEventListener(eventType, cb, domevents.Options{})
	return b
}

// Build returns the constructed element and any error encountered along
// the chain (the first one, further calls after a failure are no-ops).
func (b *ElementBuilder) Build() (*Node, error) {
	return b.element, b.err
}
