package domtree

import (
	"github.com/domcore/whatwgdom/ceactions"
	"github.com/domcore/whatwgdom/mutationobserver"
)

// RareData is the lazily-allocated side table of spec §3.2: shadow
// root, per-element reaction queue, mutation-observer registrations,
// and the Attr-node cache backing NamedNodeMap's identity guarantee.
// Allocated on first need so a plain Text or Comment node never pays
// for it.
type RareData struct {
	Shadow        *Node
	Reactions     ceactions.Queue
	Registrations []*mutationobserver.Registration

	// attrCache maps an attribute's (local,namespace) identity string to
	// the Attr node previously handed out for it, so repeated
	// NamedNodeMap accesses return the same identity (spec §4.6).
	attrCache map[string]*Node
}

func attrCacheKey(local, namespace string) string { return namespace + "\x00" + local }

func (rd *RareData) cachedAttr(local, namespace string) (*Node, bool) {
	if rd.attrCache == nil {
		return nil, false
	}
	n, ok := rd.attrCache[attrCacheKey(local, namespace)]
	return n, ok
}

func (rd *RareData) cacheAttr(local, namespace string, attrNode *Node) {
	if rd.attrCache == nil {
		rd.attrCache = make(map[string]*Node)
	}
	rd.attrCache[attrCacheKey(local, namespace)] = attrNode
}

func (rd *RareData) evictAttr(local, namespace string) {
	delete(rd.attrCache, attrCacheKey(local, namespace))
}
