// Package qualname implements the (prefix, localName, namespaceURI)
// qualified-name model from spec §3/§4.2: parsing a "prefix:local"
// string, validating XML-Name syntax, and providing the identity rule
// (local name + namespace) that AttributeMap and NamedNodeMap key on.
package qualname

import (
	"strings"

	"github.com/domcore/whatwgdom/domerr"
	"github.com/domcore/whatwgdom/stringpool"
)

// Name is a qualified name. Identity for AttributeMap purposes is
// (Local, Namespace) only — Prefix is carried for serialization.
type Name struct {
	Prefix    stringpool.Handle
	Local     stringpool.Handle
	Namespace stringpool.Handle // stringpool.Zero means "no namespace"
	hasPrefix bool
	hasNS     bool
}

// SameIdentity reports whether a and b have the same (local, namespace)
// pair — the only equality AttributeMap/NamedNodeMap ever use.
func (n Name) SameIdentity(o Name) bool {
	return n.Local == o.Local && n.Namespace == o.Namespace
}

// HasPrefix reports whether the name was parsed with an explicit prefix.
func (n Name) HasPrefix() bool { return n.hasPrefix }

// HasNamespace reports whether the name carries a non-empty namespace.
func (n Name) HasNamespace() bool { return n.hasNS }

// New builds a namespaced Name directly from separate parts, without
// parsing a "prefix:local" string; it validates local (and prefix, if
// given) as XML Names and fails with InvalidCharacter otherwise, or when
// a prefix is given without a namespace. Used by the NS-suffixed
// Element APIs (§4.4) which take prefix/local/namespace separately.
func New(pool *stringpool.Pool, prefix, local, namespace string) (Name, error) {
	if !isXMLName(local) {
		return Name{}, domerr.New(domerr.InvalidCharacter, "invalid local name %q", local)
	}
	n := Name{
		Local: pool.Intern(local),
		hasNS: namespace != "",
	}
	if namespace != "" {
		n.Namespace = pool.Intern(namespace)
	}
	if prefix != "" {
		if !isXMLName(prefix) {
			return Name{}, domerr.New(domerr.InvalidCharacter, "invalid prefix %q", prefix)
		}
		if namespace == "" {
			return Name{}, domerr.New(domerr.InvalidCharacter, "prefixed name %q:%q requires a namespace", prefix, local)
		}
		n.Prefix = pool.Intern(prefix)
		n.hasPrefix = true
	}
	return n, nil
}

// Unnamespaced builds a Name with no namespace and no prefix — the
// common case for getAttribute/setAttribute (§4.4).
func Unnamespaced(pool *stringpool.Pool, local string) (Name, error) {
	return New(pool, "", local, "")
}

// Parse splits "qualified_name" on a single ':' and validates both
// halves as XML Names (spec §4.2). Fails with InvalidCharacter on empty,
// leading/trailing colon, multiple colons, or a non-Name character.
func Parse(pool *stringpool.Pool, namespace, qualifiedName string) (Name, error) {
	if qualifiedName == "" {
		return Name{}, domerr.New(domerr.InvalidCharacter, "qualified name is empty")
	}
	idx := strings.IndexByte(qualifiedName, ':')
	if idx < 0 {
		return New(pool, "", qualifiedName, namespace)
	}
	if strings.IndexByte(qualifiedName[idx+1:], ':') >= 0 {
		return Name{}, domerr.New(domerr.InvalidCharacter, "multiple colons in %q", qualifiedName)
	}
	prefix, local := qualifiedName[:idx], qualifiedName[idx+1:]
	if prefix == "" || local == "" {
		return Name{}, domerr.New(domerr.InvalidCharacter, "leading or trailing colon in %q", qualifiedName)
	}
	return New(pool, prefix, local, namespace)
}

// isXMLName reports whether s is a non-empty XML Name: first character
// in [A-Za-z_:], remaining characters in [A-Za-z0-9._:-].
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 0 {
			if !isNameStartChar(c) {
				return false
			}
			continue
		}
		if !isNameChar(c) {
			return false
		}
	}
	return true
}

func isNameStartChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' || c == ':'
}

func isNameChar(c byte) bool {
	return isNameStartChar(c) || (c >= '0' && c <= '9') || c == '.' || c == '-'
}
