package domtree

import "github.com/domcore/whatwgdom/mutationobserver"

// Observe registers obs to watch target, performing both halves of
// spec §4.10's observe(target, options) as one operation: the
// registration is appended to the observer (so it can later
// Disconnect/TakeRecords), to this document's registry (so
// queueChildListRecord/afterAttributeChange/SetData can find it by
// walking target's ancestors), and to target's own RareData side
// table (so a future target-side cleanup — or a second call to
// Observe with different options — can find and replace it).
func (d *Document) Observe(target *Node, obs *mutationobserver.Observer, opts mutationobserver.Options) (*mutationobserver.Registration, error) {
	reg, err := obs.Observe(target, opts)
	if err != nil {
		return nil, err
	}
	d.doc.observers.Register(reg)
	rare := target.rareData()
	for _, existing := range rare.Registrations {
		if existing == reg {
			return reg, nil
		}
	}
	rare.Registrations = append(rare.Registrations, reg)
	return reg, nil
}

// DisconnectObserver stops obs from receiving any further records
// (spec §4.10's disconnect()): every registration it holds is removed
// from this document's registry and from each watched target's own
// RareData.Registrations, not just from the observer itself.
func (d *Document) DisconnectObserver(obs *mutationobserver.Observer) {
	removed := obs.Disconnect()
	if len(removed) == 0 {
		return
	}
	d.doc.observers.Unregister(removed)
	for _, reg := range removed {
		target, ok := reg.Target.(*Node)
		if !ok || target.rare == nil {
			continue
		}
		kept := target.rare.Registrations[:0:0]
		for _, existing := range target.rare.Registrations {
			if existing != reg {
				kept = append(kept, existing)
			}
		}
		target.rare.Registrations = kept
	}
}
