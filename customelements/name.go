package customelements

import "github.com/domcore/whatwgdom/domerr"

// reserved holds the built-in-element names a custom name may never
// collide with (spec §4.7.1), even though they otherwise look like
// valid PCEN names.
var reserved = map[string]bool{
	"annotation-xml":  true,
	"color-profile":   true,
	"font-face":       true,
	"font-face-src":   true,
	"font-face-uri":   true,
	"font-face-format": true,
	"font-face-name":  true,
	"missing-glyph":   true,
}

// ValidateName checks name against the PotentialCustomElementName rules:
// length ≥ 3, first byte in [a-z], a '-' at position ≥ 1, and every
// byte drawn from the PCEN character set. Returns
// domerr.ReservedCustomElementName for a name on the reserved list,
// domerr.InvalidCustomElementName for any other violation.
func ValidateName(name string) error {
	if reserved[name] {
		return domerr.New(domerr.ReservedCustomElementName, "%q is a reserved built-in element name", name)
	}
	if !isValidCustomElementName(name) {
		return domerr.New(domerr.InvalidCustomElementName, "%q is not a valid custom element name", name)
	}
	return nil
}

func isValidCustomElementName(name string) bool {
	if len(name) < 3 {
		return false
	}
	if name[0] < 'a' || name[0] > 'z' {
		return false
	}
	hasHyphen := false
	for i := 1; i < len(name); i++ {
		if name[i] == '-' {
			hasHyphen = true
		}
		if !isPCENChar(name[i]) {
			return false
		}
	}
	return hasHyphen
}

// isPCENChar implements the PCEN character class:
// [a-z0-9._-] ∪ {0xB7} ∪ [0xC0-0xD6] ∪ [0xD8-0xF6] ∪ [0xF8-].
//
// name is treated as a byte string (interned Go strings are already
// UTF-8); the 0xC0+ ranges below therefore only ever match the lead
// byte of a multi-byte rune, which is enough to keep ASCII-only callers
// (the overwhelming common case) fast while still accepting the wider
// XML NameChar ranges the spec carries over from the Unicode name
// grammar.
func isPCENChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '.' || b == '_' || b == '-':
		return true
	case b == 0xB7:
		return true
	case b >= 0xC0 && b <= 0xD6:
		return true
	case b >= 0xD8 && b <= 0xF6:
		return true
	case b >= 0xF8:
		return true
	default:
		return false
	}
}
