package stringpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternIsIdempotent(t *testing.T) {
	p := New()
	a := p.Intern("div")
	b := p.Intern("div")
	assert.Equal(t, a, b)
	assert.Equal(t, "div", p.String(a))
}

func TestInternDistinguishesDistinctStrings(t *testing.T) {
	p := New()
	a := p.Intern("div")
	b := p.Intern("span")
	assert.NotEqual(t, a, b)
}

func TestEmptyStringIsZeroHandle(t *testing.T) {
	p := New()
	assert.Equal(t, Zero, p.Intern(""))
	assert.Equal(t, "", p.String(Zero))
}
