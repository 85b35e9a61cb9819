package domtree

import (
	"strings"

	"github.com/domcore/whatwgdom/domerr"
)

const tokenWhitespace = " \t\n\r\f"

// DOMTokenList is a live ordered-set view over one attribute of an
// element (spec §4.5). Duplicates collapse in Length/Item/iteration,
// per the "Open Questions" decision in DESIGN.md — the stored attribute
// string itself is only normalized by the next Add/Remove/Toggle/Replace,
// not by a read; SetValue stores its argument verbatim.
type DOMTokenList struct {
	element  *Node
	attrName string
}

func validateToken(t string) error {
	if t == "" {
		return domerr.New(domerr.Syntax, "DOMTokenList token must not be empty")
	}
	if strings.ContainsAny(t, tokenWhitespace) {
		return domerr.New(domerr.InvalidCharacter, "DOMTokenList token %q contains whitespace", t)
	}
	return nil
}

// orderedUnique splits raw on ASCII whitespace and collapses duplicates,
// keeping first-occurrence order (spec's "ordered set" glossary entry).
func orderedUnique(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return strings.ContainsRune(tokenWhitespace, r) })
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func (l *DOMTokenList) tokens() []string {
	raw, _ := l.element.GetAttribute(l.attrName)
	return orderedUnique(raw)
}

func (l *DOMTokenList) write(tokens []string) error {
	return l.element.SetAttribute(l.attrName, strings.Join(tokens, " "))
}

// Value returns the attribute's current raw value (not deduplicated).
func (l *DOMTokenList) Value() string {
	v, _ := l.element.GetAttribute(l.attrName)
	return v
}

// SetValue replaces the attribute's raw value outright.
func (l *DOMTokenList) SetValue(v string) error {
	return l.element.SetAttribute(l.attrName, v)
}

// Length returns the number of unique tokens.
func (l *DOMTokenList) Length() int { return len(l.tokens()) }

// Item returns the i'th unique token, or "" with ok=false if out of
// range.
func (l *DOMTokenList) Item(i int) (string, bool) {
	tokens := l.tokens()
	if i < 0 || i >= len(tokens) {
		return "", false
	}
	return tokens[i], true
}

// Contains reports whether token is present.
func (l *DOMTokenList) Contains(token string) bool {
	for _, t := range l.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// Add appends each of tokens (deduplicated) to the set. Validation runs
// for every token before any mutation is applied, so a failure leaves
// the attribute untouched (spec §4.5/§8 scenario 5).
func (l *DOMTokenList) Add(tokens ...string) error {
	for _, t := range tokens {
		if err := validateToken(t); err != nil {
			return err
		}
	}
	current := l.tokens()
	seen := make(map[string]bool, len(current))
	for _, t := range current {
		seen[t] = true
	}
	for _, t := range tokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		current = append(current, t)
	}
	return l.write(current)
}

// Remove deletes each of tokens from the set, if present. Validation
// runs for every token before any mutation.
func (l *DOMTokenList) Remove(tokens ...string) error {
	for _, t := range tokens {
		if err := validateToken(t); err != nil {
			return err
		}
	}
	remove := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		remove[t] = true
	}
	var out []string
	for _, t := range l.tokens() {
		if !remove[t] {
			out = append(out, t)
		}
	}
	return l.write(out)
}

// Toggle adds token if absent (or force=true) or removes it if present
// (or force=false), returning the token's final presence.
func (l *DOMTokenList) Toggle(token string, force *bool) (bool, error) {
	if err := validateToken(token); err != nil {
		return false, err
	}
	has := l.Contains(token)
	want := !has
	if force != nil {
		want = *force
	}
	switch {
	case want && !has:
		return true, l.Add(token)
	case !want && has:
		return false, l.Remove(token)
	default:
		return has, nil
	}
}

// Replace swaps the first occurrence of old with new (collapsing any
// duplicate old/new tokens), returning whether old was present.
func (l *DOMTokenList) Replace(old, newToken string) (bool, error) {
	if err := validateToken(old); err != nil {
		return false, err
	}
	if err := validateToken(newToken); err != nil {
		return false, err
	}
	current := l.tokens()
	replaced := false
	out := make([]string, 0, len(current))
	seen := make(map[string]bool, len(current))
	for _, t := range current {
		if t == old && !replaced {
			replaced = true
			t = newToken
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if !replaced {
		return false, nil
	}
	return true, l.write(out)
}

// Supports is a placeholder hook for a host-defined list of supported
// tokens (e.g. rel=""); this core has no such list, so it always
// reports true.
func (l *DOMTokenList) Supports(string) bool { return true }
