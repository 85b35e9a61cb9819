package customelements

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domcore/whatwgdom/domerr"
)

type fakeElement struct {
	tagName    string
	namespace  string
	state      State
	def        *Definition
	upgradeRan int
}

func (f *fakeElement) TagName() string        { return f.tagName }
func (f *fakeElement) Namespace() string      { return f.namespace }
func (f *fakeElement) State() State           { return f.state }
func (f *fakeElement) SetState(s State)       { f.state = s }
func (f *fakeElement) Definition() *Definition { return f.def }
func (f *fakeElement) SetDefinition(d *Definition) { f.def = d }
func (f *fakeElement) EnqueueUpgradeReaction() { f.upgradeRan++ }

func TestValidateNameRules(t *testing.T) {
	cases := map[string]error{
		"x-button":       nil,
		"xbutton":        domerr.New(domerr.InvalidCustomElementName, ""),
		"x":              domerr.New(domerr.InvalidCustomElementName, ""),
		"1x-button":      domerr.New(domerr.InvalidCustomElementName, ""),
		"annotation-xml": domerr.New(domerr.ReservedCustomElementName, ""),
	}
	for name, wantErr := range cases {
		err := ValidateName(name)
		if wantErr == nil {
			assert.NoError(t, err, name)
			continue
		}
		require.Error(t, err, name)
		wantKind, _ := domerr.Of(wantErr)
		gotKind, ok := domerr.Of(err)
		require.True(t, ok)
		assert.Equal(t, wantKind, gotKind, name)
	}
}

func TestDefineThenCreateUpgrade(t *testing.T) {
	r := NewRegistry()
	var connectedCalls int
	_, err := r.Define("x-btn", "x-btn", "", Callbacks{
		Connected: func(el UpgradeTarget) { connectedCalls++ },
	}, nil, false, false)
	require.NoError(t, err)

	child := &fakeElement{tagName: "x-btn", state: Undefined}
	require.NoError(t, r.TryUpgrade(child))
	assert.Equal(t, Custom, child.State())
	assert.Equal(t, 1, child.upgradeRan)
}

func TestCreateThenDefineUpgradeCandidate(t *testing.T) {
	r := NewRegistry()
	elem := &fakeElement{tagName: "x-btn", state: Undefined}
	r.MarkUpgradeCandidate(elem)

	var constructed bool
	_, err := r.Define("x-btn", "x-btn", "", Callbacks{
		Constructor: func(el UpgradeTarget) error { constructed = true; return nil },
	}, nil, false, false)
	require.NoError(t, err)

	assert.True(t, constructed)
	assert.Equal(t, Custom, elem.State())
	_, stillCandidate := r.upgradeCandidates["\x00x-btn"]
	assert.False(t, stillCandidate)
}

func TestConstructorThrowSetsFailedState(t *testing.T) {
	r := NewRegistry()
	_, err := r.Define("x-bad", "x-bad", "", Callbacks{
		Constructor: func(el UpgradeTarget) error { return errors.New("boom") },
	}, nil, false, false)
	require.NoError(t, err)

	elem := &fakeElement{tagName: "x-bad", state: Undefined}
	err = r.TryUpgrade(elem)
	require.Error(t, err)
	kind, ok := domerr.Of(err)
	require.True(t, ok)
	assert.Equal(t, domerr.ConstructorThrew, kind)
	assert.Equal(t, Failed, elem.State())
}

func TestDefineRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	_, err := r.Define("x-a", "x-a", "", Callbacks{}, nil, false, false)
	require.NoError(t, err)
	_, err = r.Define("x-a", "x-a", "", Callbacks{}, nil, false, false)
	require.Error(t, err)
	kind, _ := domerr.Of(err)
	assert.Equal(t, domerr.CustomElementAlreadyDefined, kind)
}

func TestUncustomizedNeverUpgrades(t *testing.T) {
	r := NewRegistry()
	_, err := r.Define("x-a", "x-a", "", Callbacks{}, nil, false, false)
	require.NoError(t, err)
	elem := &fakeElement{tagName: "x-a", state: Uncustomized}
	require.NoError(t, r.TryUpgrade(elem))
	assert.Equal(t, Uncustomized, elem.State())
}

type fakeNode struct {
	el       *fakeElement
	children []Walkable
	shadow   Walkable
}

func (n *fakeNode) Children() []Walkable { return n.children }
func (n *fakeNode) AsElement() (UpgradeTarget, bool) {
	if n.el == nil {
		return nil, false
	}
	return n.el, true
}
func (n *fakeNode) ShadowRoot() (Walkable, bool) {
	if n.shadow == nil {
		return nil, false
	}
	return n.shadow, true
}

func TestUpgradeTraversesLightTreeOnlyByDefault(t *testing.T) {
	r := NewRegistry()
	_, err := r.Define("x-a", "x-a", "", Callbacks{}, nil, false, false)
	require.NoError(t, err)

	shadowChild := &fakeElement{tagName: "x-a", state: Undefined}
	lightChild := &fakeElement{tagName: "x-a", state: Undefined}
	root := &fakeNode{
		children: []Walkable{&fakeNode{el: lightChild}},
		shadow:   &fakeNode{el: shadowChild},
	}

	r.Upgrade(root, UpgradeOptions{})
	assert.Equal(t, Custom, lightChild.State())
	assert.Equal(t, Undefined, shadowChild.State())
}

func TestUpgradeIncludesShadowWhenAsked(t *testing.T) {
	r := NewRegistry()
	_, err := r.Define("x-a", "x-a", "", Callbacks{}, nil, false, false)
	require.NoError(t, err)

	shadowChild := &fakeElement{tagName: "x-a", state: Undefined}
	root := &fakeNode{shadow: &fakeNode{el: shadowChild}}

	r.Upgrade(root, UpgradeOptions{IncludeShadow: true})
	assert.Equal(t, Custom, shadowChild.State())
}
