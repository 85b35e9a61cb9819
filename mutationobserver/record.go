// Package mutationobserver implements spec §4.10: registration, bounded
// record queueing, takeRecords, and host-driven delivery. Targets and
// node references are carried as `any` rather than a concrete domtree
// type so this package has no dependency on domtree — domtree depends on
// this package (to queue records), not the other way around.
//
// The registration-table shape (map keyed by an id, guarded by a mutex,
// register/unregister/get) is grounded on the teacher's
// dom/mutation_observer.go ScopeRegistry/MutationObserverManager, whose
// job (remember which targets an observer is watching) is the same
// shape even though the teacher observes a real browser DOM and this
// observes the in-memory tree directly.
package mutationobserver

// RecordType discriminates which kind of change a Record describes.
type RecordType string

const (
	TypeAttributes    RecordType = "attributes"
	TypeCharacterData RecordType = "characterData"
	TypeChildList     RecordType = "childList"
)

// Record is one queued MutationRecord (spec §3).
type Record struct {
	Type      RecordType
	Target    any
	Added     []any
	Removed   []any
	PrevSib   any
	NextSib   any
	AttrName  string
	AttrNS    string
	OldValue  *string // nil unless the registration asked for old values
}
