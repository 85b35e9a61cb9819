package domtree

import (
	"github.com/domcore/whatwgdom/attr"
	"github.com/domcore/whatwgdom/domerr"
)

// NamedNodeMap is a live view over an element's AttributeMap producing
// Attr nodes on demand, caching them so repeated accesses return the
// same identity (spec §4.6).
type NamedNodeMap struct {
	element *Node
}

// Length returns the number of attributes on the backing element.
func (m *NamedNodeMap) Length() int { return m.element.attrs.Len() }

// Item returns the Attr node for the i'th attribute in insertion order.
func (m *NamedNodeMap) Item(i int) *Node {
	return m.attrNodeFor(m.element.attrs.At(i))
}

// GetNamedItem returns the Attr node for an unnamespaced attribute.
func (m *NamedNodeMap) GetNamedItem(name string) (*Node, bool) {
	return m.GetNamedItemNS("", name)
}

// GetNamedItemNS returns the Attr node for a namespaced attribute.
func (m *NamedNodeMap) GetNamedItemNS(namespace, local string) (*Node, bool) {
	want := m.element.resolveName(namespace, local)
	value, ok := m.element.attrs.Get(want)
	if !ok {
		return nil, false
	}
	return m.attrNodeFor(attr.Entry{Name: want, Value: value}), true
}

// attrNodeFor returns the cached Attr node for entry, creating one (and
// caching it) on first access — the cache is what gives the returned
// Attr a stable identity across repeated calls (spec §4.6).
func (m *NamedNodeMap) attrNodeFor(entry attr.Entry) *Node {
	pool := m.element.ownerDocument.doc.pool
	local := pool.String(entry.Name.Local)
	namespace := pool.String(entry.Name.Namespace)

	rd := m.element.rareData()
	if cached, ok := rd.cachedAttr(local, namespace); ok {
		cached.attrValue = entry.Value
		return cached
	}
	n := newNode(KindAttr, m.element.ownerDocument)
	n.attrName = entry.Name
	n.attrValue = entry.Value
	n.ownerElement = m.element
	rd.cacheAttr(local, namespace, n)
	return n
}

// RemoveNamedItem removes and returns the detached Attr node for an
// unnamespaced attribute name, failing NotFound if absent.
func (m *NamedNodeMap) RemoveNamedItem(name string) (*Node, error) {
	return m.RemoveNamedItemNS("", name)
}

// RemoveNamedItemNS removes and returns the detached Attr node for a
// namespaced attribute, failing NotFound if absent.
func (m *NamedNodeMap) RemoveNamedItemNS(namespace, local string) (*Node, error) {
	attrNode, ok := m.GetNamedItemNS(namespace, local)
	if !ok {
		return nil, domerr.New(domerr.NotFound, "no attribute %q", local)
	}
	if err := m.element.RemoveAttributeNS(namespace, local); err != nil {
		return nil, err
	}
	attrNode.ownerElement = nil
	return attrNode, nil
}

// SetNamedItem writes attrNode's (name, value) through to the
// AttributeMap. Fails InUseAttribute if attrNode already belongs to a
// different element; returns the replaced Attr node, if any (with its
// owner_element link cleared).
func (m *NamedNodeMap) SetNamedItem(attrNode *Node) (*Node, error) {
	if attrNode.Kind != KindAttr {
		return nil, domerr.New(domerr.HierarchyRequest, "SetNamedItem requires an Attr node")
	}
	if attrNode.ownerElement != nil && attrNode.ownerElement != m.element {
		return nil, domerr.New(domerr.InUseAttribute, "attribute already owned by another element")
	}
	local := m.element.ownerDocument.doc.pool.String(attrNode.attrName.Local)
	namespace := m.element.ownerDocument.doc.pool.String(attrNode.attrName.Namespace)

	var replaced *Node
	if prev, ok := m.GetNamedItemNS(namespace, local); ok {
		prev.ownerElement = nil
		replaced = prev
	}
	if err := m.element.SetAttributeNS(namespace, "", local, attrNode.attrValue); err != nil {
		return nil, err
	}
	attrNode.ownerElement = m.element
	m.element.rareData().cacheAttr(local, namespace, attrNode)
	return replaced, nil
}
