// Package ceactions implements the [CEReactions] scoping and reaction
// queue machinery of spec §4.8: a per-Document LIFO stack of "element
// queues" pushed on entry to a [CEReactions]-annotated operation and
// drained, in enqueue order, on exit — plus a backup queue for
// enqueues that happen with no scope open.
//
// The stack/scope shape is grounded on the teacher's
// reactivity.CleanupScope: a parent-linked scope pushed onto a current-
// scope variable and disposed (here: drained) on exit, generalized from
// UI-effect disposers to custom-element lifecycle reactions.
package ceactions

import "github.com/domcore/whatwgdom/logutil"

// Reactable is anything that can hold pending reactions and run them.
// domtree.Element implements this by draining its own per-element
// reaction queue (stored in its RareData) in FIFO order.
type Reactable interface {
	// RunPendingReactions invokes and clears every reaction queued on
	// this element since the last drain. Must never panic: callback
	// errors are caught and logged by the implementation, per spec §7.
	RunPendingReactions()
}

// Stack is a Document's CEReactionsStack: a LIFO stack of element
// queues. The zero value is a ready-to-use, empty stack (no scope open).
type Stack struct {
	frames [][]Reactable
	backup []Reactable
}

// Push opens a new [CEReactions] scope, returning a function that closes
// it. Callers MUST defer the returned function so the scope closes on
// every return path, including panics — mirroring the teacher's
// scope-dispose-on-every-exit-path discipline.
func (s *Stack) Push() (pop func()) {
	s.frames = append(s.frames, nil)
	logutil.Debugf("ceactions: scope pushed", "depth", len(s.frames))
	return func() {
		s.pop()
	}
}

func (s *Stack) pop() {
	if len(s.frames) == 0 {
		return
	}
	i := len(s.frames) - 1
	frame := s.frames[i]
	s.frames = s.frames[:i]
	logutil.Debugf("ceactions: scope popped", "depth", i, "elements", len(frame))
	for _, el := range frame {
		el.RunPendingReactions()
	}
}

// Enqueue records that el has a pending reaction (the reaction itself
// was already appended to el's own queue by the caller). If a scope is
// open, el is added to the top frame (once); otherwise it goes to the
// backup queue for the host to flush later via FlushBackup.
func (s *Stack) Enqueue(el Reactable) {
	if len(s.frames) == 0 {
		s.backup = appendOnce(s.backup, el)
		return
	}
	i := len(s.frames) - 1
	s.frames[i] = appendOnce(s.frames[i], el)
}

// FlushBackup drains the backup element queue. The host calls this at
// its own microtask-checkpoint surrogate (spec §4.8's "backup element
// queue ... functionally a microtask-checkpoint surrogate").
func (s *Stack) FlushBackup() {
	backup := s.backup
	s.backup = nil
	for _, el := range backup {
		el.RunPendingReactions()
	}
}

// Depth reports how many nested [CEReactions] scopes are currently open.
func (s *Stack) Depth() int { return len(s.frames) }

func appendOnce(frame []Reactable, el Reactable) []Reactable {
	for _, existing := range frame {
		if existing == el {
			return frame
		}
	}
	return append(frame, el)
}
