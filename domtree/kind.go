// Package domtree implements spec §3/§4.2-4.6/§4.11: the polymorphic
// node graph, reference-counted lifetime, tree mutation operations, the
// attribute model (AttributeMap/DOMTokenList/NamedNodeMap), shadow-tree
// attachment, and the Document that owns a tree's shared capabilities
// (StringPool, CEReactionsStack, CustomElementRegistry, observer
// registry).
//
// Node variants are encoded as a single struct carrying a Kind
// discriminator plus the fields each variant needs (spec §9's
// "discriminator + payload" design note), rather than as a Go
// interface hierarchy: behavior specific to one variant lives in
// methods that assert the discriminator is what they expect, mirroring
// the teacher's own mockdom.Node (one struct, a Tag/NodeType field, and
// tag-name/attribute/children fields that are simply unused for text
// nodes).
package domtree

// Kind discriminates the concrete variant a Node represents (spec §3).
type Kind int8

const (
	KindDocument Kind = iota
	KindDocumentFragment
	KindElement
	KindText
	KindCDATA
	KindComment
	KindProcessingInstruction
	KindDocumentType
	KindAttr
	KindShadowRoot
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindDocumentFragment:
		return "document-fragment"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindCDATA:
		return "cdata-section"
	case KindComment:
		return "comment"
	case KindProcessingInstruction:
		return "processing-instruction"
	case KindDocumentType:
		return "document-type"
	case KindAttr:
		return "attr"
	case KindShadowRoot:
		return "shadow-root"
	default:
		return "unknown"
	}
}

// flags is the per-node bitset of spec §3.
type flags uint8

const (
	flagHasParent flags = 1 << iota
	flagConnected
	flagInShadowTree
	flagHasRareData
)

func (f flags) has(bit flags) bool { return f&bit != 0 }

func (f *flags) set(bit flags, v bool) {
	if v {
		*f |= bit
	} else {
		*f &^= bit
	}
}
