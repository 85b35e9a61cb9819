package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domcore/whatwgdom/qualname"
	"github.com/domcore/whatwgdom/stringpool"
)

func TestSetThenGetRoundTrips(t *testing.T) {
	pool := stringpool.New()
	id, _ := qualname.Unnamespaced(pool, "id")

	var m Map
	_, existed := m.Set(id, "a")
	assert.False(t, existed)

	v, ok := m.Get(id)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestSetOverwritesInPlacePreservingOrder(t *testing.T) {
	pool := stringpool.New()
	a, _ := qualname.Unnamespaced(pool, "a")
	b, _ := qualname.Unnamespaced(pool, "b")

	var m Map
	m.Set(a, "1")
	m.Set(b, "2")
	prev, existed := m.Set(a, "3")
	assert.True(t, existed)
	assert.Equal(t, "1", prev)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "a", nameLocal(pool, m.At(0)))
	assert.Equal(t, "3", m.At(0).Value)
	assert.Equal(t, "b", nameLocal(pool, m.At(1)))
}

func TestRemovePreservesOrderOfRemaining(t *testing.T) {
	pool := stringpool.New()
	a, _ := qualname.Unnamespaced(pool, "a")
	b, _ := qualname.Unnamespaced(pool, "b")
	c, _ := qualname.Unnamespaced(pool, "c")

	var m Map
	m.Set(a, "1")
	m.Set(b, "2")
	m.Set(c, "3")

	prev, existed := m.Remove(b)
	assert.True(t, existed)
	assert.Equal(t, "2", prev)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "a", nameLocal(pool, m.At(0)))
	assert.Equal(t, "c", nameLocal(pool, m.At(1)))
}

func TestNoDuplicateIdentity(t *testing.T) {
	pool := stringpool.New()
	nsA, _ := qualname.New(pool, "x", "foo", "ns1")
	nsB, _ := qualname.New(pool, "y", "foo", "ns1")

	var m Map
	m.Set(nsA, "1")
	m.Set(nsB, "2")
	assert.Equal(t, 1, m.Len(), "same (local, namespace) must collapse to one entry")
}

func nameLocal(pool *stringpool.Pool, e Entry) string {
	return pool.String(e.Name.Local)
}
