package domtree

// Name returns this Attr node's qualified local name.
func (n *Node) Name() string {
	if n.Kind != KindAttr {
		return ""
	}
	return n.ownerDocument.doc.pool.String(n.attrName.Local)
}

// Value returns this Attr node's current value.
func (n *Node) Value() string {
	if n.Kind != KindAttr {
		return ""
	}
	return n.attrValue
}

// OwnerElement returns the element this Attr is attached to, or nil if
// detached.
func (n *Node) OwnerElement() *Node {
	if n.Kind != KindAttr {
		return nil
	}
	return n.ownerElement
}

// SetValue mutates an Attr node's value directly (spec §C supplemented
// feature). If the Attr is attached to an element, the write is routed
// through SetAttributeNS so it still opens a [CEReactions] scope,
// enqueues attribute_changed reactions, and queues mutation records —
// identical to calling setAttribute on the owning element. A detached
// Attr (no owner_element) just updates its own value.
func (n *Node) SetValue(value string) error {
	if n.Kind != KindAttr {
		return nil
	}
	if n.ownerElement == nil {
		n.attrValue = value
		return nil
	}
	pool := n.ownerDocument.doc.pool
	local := pool.String(n.attrName.Local)
	namespace := pool.String(n.attrName.Namespace)
	if err := n.ownerElement.SetAttributeNS(namespace, "", local, value); err != nil {
		return err
	}
	n.attrValue = value
	return nil
}
