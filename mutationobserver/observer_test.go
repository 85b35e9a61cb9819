package mutationobserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domcore/whatwgdom/domerr"
)

func TestObserveRejectsNoObservedTypes(t *testing.T) {
	o := New(nil)
	_, err := o.Observe("target", Options{})
	require.Error(t, err)
	kind, ok := domerr.Of(err)
	require.True(t, ok)
	assert.Equal(t, domerr.InvalidState, kind)
}

func TestObserveImpliesAttributesFromOldValue(t *testing.T) {
	o := New(nil)
	reg, err := o.Observe("target", Options{AttributeOldValue: true})
	require.NoError(t, err)
	assert.True(t, reg.Options.Attributes)
}

func TestObserveSameTargetReplacesOptionsInPlace(t *testing.T) {
	o := New(nil)
	first, err := o.Observe("target", Options{ChildList: true})
	require.NoError(t, err)
	second, err := o.Observe("target", Options{Attributes: true})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.False(t, second.Options.ChildList)
	assert.True(t, second.Options.Attributes)
}

func TestQueueRecordEvictsOldestWhenFull(t *testing.T) {
	o := New(nil)
	o.SetMaxQueueSize(2)
	o.QueueRecord(Record{Type: TypeChildList, Target: "a"})
	o.QueueRecord(Record{Type: TypeChildList, Target: "b"})
	o.QueueRecord(Record{Type: TypeChildList, Target: "c"})

	records := o.TakeRecords()
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].Target)
	assert.Equal(t, "c", records[1].Target)
	assert.Equal(t, 1, o.Dropped())
}

func TestTakeRecordsClearsQueue(t *testing.T) {
	o := New(nil)
	o.QueueRecord(Record{Type: TypeChildList, Target: "a"})
	assert.Len(t, o.TakeRecords(), 1)
	assert.Empty(t, o.TakeRecords())
}

func TestNotifyInvokesCallbackAndClearsQueue(t *testing.T) {
	var delivered []Record
	o := New(func(records []Record) {
		delivered = append(delivered, records...)
	})
	o.QueueRecord(Record{Type: TypeAttributes, Target: "a", AttrName: "class"})
	o.Notify()

	require.Len(t, delivered, 1)
	assert.Equal(t, "class", delivered[0].AttrName)
	assert.Empty(t, o.TakeRecords())
}

func TestNotifyWithEmptyQueueDoesNotInvokeCallback(t *testing.T) {
	called := false
	o := New(func(records []Record) { called = true })
	o.Notify()
	assert.False(t, called)
}

func TestDisconnectRemovesRegistrationsAndClearsQueue(t *testing.T) {
	o := New(nil)
	_, err := o.Observe("target", Options{ChildList: true})
	require.NoError(t, err)
	o.QueueRecord(Record{Type: TypeChildList, Target: "target"})

	removed := o.Disconnect()
	assert.Len(t, removed, 1)
	assert.Empty(t, o.TakeRecords())

	// Re-observing after disconnect creates a fresh registration.
	reg, err := o.Observe("target", Options{ChildList: true})
	require.NoError(t, err)
	assert.NotSame(t, removed[0], reg)
}

func TestRegistrationMatchesAttributeFilter(t *testing.T) {
	reg := &Registration{Options: Options{Attributes: true, AttributeFilter: []string{"class", "id"}}}
	assert.True(t, reg.Matches(TypeAttributes, "class"))
	assert.False(t, reg.Matches(TypeAttributes, "style"))
}

func TestRegistryDispatchRoutesToMatchingObservers(t *testing.T) {
	registry := NewRegistry()
	var attrDelivered, childDelivered []Record

	attrObserver := New(func(rs []Record) { attrDelivered = append(attrDelivered, rs...) })
	attrReg, err := attrObserver.Observe("node", Options{Attributes: true})
	require.NoError(t, err)
	registry.Register(attrReg)

	childObserver := New(func(rs []Record) { childDelivered = append(childDelivered, rs...) })
	childReg, err := childObserver.Observe("node", Options{ChildList: true})
	require.NoError(t, err)
	registry.Register(childReg)

	Dispatch(registry.For("node"), Record{Type: TypeAttributes, Target: "node", AttrName: "class"})
	attrObserver.Notify()
	childObserver.Notify()

	assert.Len(t, attrDelivered, 1)
	assert.Empty(t, childDelivered)
}

func TestRegistryUnregisterRemovesAcrossKeys(t *testing.T) {
	registry := NewRegistry()
	o := New(nil)
	reg, err := o.Observe("node", Options{ChildList: true})
	require.NoError(t, err)
	registry.Register(reg)
	require.Len(t, registry.For("node"), 1)

	registry.Unregister([]*Registration{reg})
	assert.Empty(t, registry.For("node"))
}
