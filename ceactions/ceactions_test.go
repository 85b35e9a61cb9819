package ceactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeElement struct {
	queue Queue
	ran   []ReactionKind
}

func (f *fakeElement) RunPendingReactions() {
	for _, r := range f.queue.Drain() {
		f.ran = append(f.ran, r.Kind)
	}
}

func TestEnqueueWithNoScopeGoesToBackup(t *testing.T) {
	var stack Stack
	el := &fakeElement{}
	el.queue.Append(Reaction{Kind: Connected})
	stack.Enqueue(el)

	assert.Empty(t, el.ran, "backup queue must not run until flushed")
	stack.FlushBackup()
	assert.Equal(t, []ReactionKind{Connected}, el.ran)
}

func TestScopeDrainsOnPop(t *testing.T) {
	var stack Stack
	el := &fakeElement{}
	pop := stack.Push()
	el.queue.Append(Reaction{Kind: Upgrade})
	stack.Enqueue(el)
	assert.Empty(t, el.ran)

	pop()
	assert.Equal(t, []ReactionKind{Upgrade}, el.ran)
}

func TestSameElementNotDuplicatedInFrame(t *testing.T) {
	var stack Stack
	el := &fakeElement{}
	pop := stack.Push()
	el.queue.Append(Reaction{Kind: Connected})
	stack.Enqueue(el)
	el.queue.Append(Reaction{Kind: Disconnected})
	stack.Enqueue(el)

	pop()
	assert.Equal(t, []ReactionKind{Connected, Disconnected}, el.ran)
}

func TestNestedScopesAreIndependent(t *testing.T) {
	var stack Stack
	outer := &fakeElement{}
	inner := &fakeElement{}

	popOuter := stack.Push()
	outer.queue.Append(Reaction{Kind: Connected})
	stack.Enqueue(outer)

	popInner := stack.Push()
	inner.queue.Append(Reaction{Kind: Upgrade})
	stack.Enqueue(inner)
	popInner()

	assert.Equal(t, []ReactionKind{Upgrade}, inner.ran)
	assert.Empty(t, outer.ran, "outer frame must not drain until its own pop")

	popOuter()
	assert.Equal(t, []ReactionKind{Connected}, outer.ran)
}
