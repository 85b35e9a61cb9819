package qualname

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domcore/whatwgdom/domerr"
	"github.com/domcore/whatwgdom/stringpool"
)

func TestParseUnprefixed(t *testing.T) {
	pool := stringpool.New()
	n, err := Parse(pool, "", "data-v")
	assert.NoError(t, err)
	assert.False(t, n.HasPrefix())
	assert.Equal(t, "data-v", pool.String(n.Local))
}

func TestParsePrefixed(t *testing.T) {
	pool := stringpool.New()
	n, err := Parse(pool, "http://example.com/ns", "svg:rect")
	assert.NoError(t, err)
	assert.True(t, n.HasPrefix())
	assert.Equal(t, "svg", pool.String(n.Prefix))
	assert.Equal(t, "rect", pool.String(n.Local))
}

func TestParseRejectsBadNames(t *testing.T) {
	pool := stringpool.New()
	cases := []string{"", ":foo", "foo:", "a:b:c", "1foo", "foo bar"}
	for _, c := range cases {
		_, err := Parse(pool, "", c)
		assert.Error(t, err, c)
		kind, ok := domerr.Of(err)
		assert.True(t, ok, c)
		assert.Equal(t, domerr.InvalidCharacter, kind, c)
	}
}

func TestSameIdentityIgnoresPrefix(t *testing.T) {
	pool := stringpool.New()
	a, _ := New(pool, "x", "rect", "ns")
	b, _ := New(pool, "y", "rect", "ns")
	assert.True(t, a.SameIdentity(b))
}
