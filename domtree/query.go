package domtree

// Matcher is a host-supplied predicate over an Element view (spec §C
// supplemented feature): since CSS selector matching is out of scope
// for this core, traversal helpers accept one of these instead of a
// selector string, so a host can plug in whatever selector engine it
// likes without this package depending on one.
type Matcher func(Element) bool

// QuerySelector returns the first element in this node's light-tree
// descendants (depth-first, document order) satisfying match, or false
// if none does.
func (n *Node) QuerySelector(match Matcher) (Element, bool) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if el, ok := AsElement(c); ok && match(el) {
			return el, true
		}
		if el, ok := c.QuerySelector(match); ok {
			return el, true
		}
	}
	return Element{}, false
}

// QuerySelectorAll returns every element in this node's light-tree
// descendants satisfying match, in document order.
func (n *Node) QuerySelectorAll(match Matcher) []Element {
	var out []Element
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if el, ok := AsElement(c); ok && match(el) {
			out = append(out, el)
		}
		out = append(out, c.QuerySelectorAll(match)...)
	}
	return out
}
