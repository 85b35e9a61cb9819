// Package attr implements the AttributeMap from spec §3/§4.2: an
// ordered sequence of (QualifiedName, value) pairs keyed by identity
// (local name, namespace), insertion-ordered and stable across unrelated
// mutations.
package attr

import "github.com/domcore/whatwgdom/qualname"

// Entry is one attribute: its qualified name and current value.
type Entry struct {
	Name  qualname.Name
	Value string
}

// Map is an ordered set of attributes. The zero value is an empty map
// ready to use. Typical size is small (≤5) so a slice scan beats a hash
// map's overhead and keeps iteration order trivially insertion order.
type Map struct {
	entries []Entry
}

// Get returns the value of the attribute identified by name, if present.
func (m *Map) Get(name qualname.Name) (string, bool) {
	if i := m.indexOf(name); i >= 0 {
		return m.entries[i].Value, true
	}
	return "", false
}

// Set writes value for name, overwriting in place (preserving order) if
// the attribute already exists, or appending it otherwise. Returns the
// previous value and whether one existed.
func (m *Map) Set(name qualname.Name, value string) (previous string, existed bool) {
	if i := m.indexOf(name); i >= 0 {
		previous = m.entries[i].Value
		m.entries[i].Value = value
		// Store the new Name, so a differently-prefixed write updates the
		// serialization prefix; the (local, namespace) identity is the same.
		m.entries[i].Name = name
		return previous, true
	}
	m.entries = append(m.entries, Entry{Name: name, Value: value})
	return "", false
}

// Remove deletes the attribute identified by name, preserving the order
// of the remaining entries. Returns the removed value, if any.
func (m *Map) Remove(name qualname.Name) (previous string, existed bool) {
	i := m.indexOf(name)
	if i < 0 {
		return "", false
	}
	previous = m.entries[i].Value
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return previous, true
}

// Has reports whether name is present.
func (m *Map) Has(name qualname.Name) bool {
	return m.indexOf(name) >= 0
}

// Len returns the number of attributes.
func (m *Map) Len() int { return len(m.entries) }

// At returns the i'th attribute in insertion order.
func (m *Map) At(i int) Entry { return m.entries[i] }

// Each calls fn for every attribute in insertion order. fn must not
// mutate the Map.
func (m *Map) Each(fn func(Entry)) {
	for _, e := range m.entries {
		fn(e)
	}
}

func (m *Map) indexOf(name qualname.Name) int {
	for i, e := range m.entries {
		if e.Name.SameIdentity(name) {
			return i
		}
	}
	return -1
}
