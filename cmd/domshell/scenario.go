package main

import (
	"fmt"

	"github.com/domcore/whatwgdom/customelements"
	"github.com/domcore/whatwgdom/domevents"
	"github.com/domcore/whatwgdom/domtree"
	"github.com/domcore/whatwgdom/mutationobserver"
)

// step is one traced moment of the scenario, in the order it happened.
type step struct {
	label string
	kind  string // "reaction", "event", "record"
}

// scenarioResult is everything the renderers need: the final tree and
// the ordered trace of reactions/events/mutation records observed along
// the way.
type scenarioResult struct {
	doc   *domtree.Document
	root  *domtree.Node
	trace []step
}

// runScenario builds a toy document, defines one custom element,
// mutates the tree and its attributes, dispatches a click, and takes a
// mutation-observer record batch — the same sequence for both `build`
// (print the tree, optionally the trace) and `watch` (print the
// numbered trace, then the tree).
func runScenario() (*scenarioResult, error) {
	res := &scenarioResult{}
	log := func(kind, format string, args ...any) {
		res.trace = append(res.trace, step{kind: kind, label: fmt.Sprintf(format, args...)})
	}

	doc := domtree.NewDocument()
	res.doc = doc

	_, err := doc.Registry().Define("x-widget", "x-widget", "", customelements.Callbacks{
		Constructor: func(el customelements.UpgradeTarget) error {
			log("reaction", "constructor(%s)", el.TagName())
			return nil
		},
		Connected: func(el customelements.UpgradeTarget) {
			log("reaction", "connectedCallback(%s)", el.TagName())
		},
		Disconnected: func(el customelements.UpgradeTarget) {
			log("reaction", "disconnectedCallback(%s)", el.TagName())
		},
		AttributeChanged: func(el customelements.UpgradeTarget, name, ns string, oldValue, newValue *string) {
			log("reaction", "attributeChangedCallback(%s, %s)", el.TagName(), name)
		},
	}, []string{"open"}, false, false)
	if err != nil {
		return nil, fmt.Errorf("define x-widget: %w", err)
	}

	root, err := doc.CreateElement("section")
	if err != nil {
		return nil, err
	}
	res.root = root
	if _, err := doc.AppendChild(root); err != nil {
		return nil, err
	}
	log("event", "document.appendChild(section)")

	obs := mutationobserver.New(nil)
	if _, err := doc.Observe(root, obs, mutationobserver.Options{ChildList: true, Attributes: true, Subtree: true, AttributeOldValue: true}); err != nil {
		return nil, err
	}

	widget, err := doc.CreateElement("x-widget")
	if err != nil {
		return nil, err
	}
	widget.SetIsUndefined()
	if _, err := root.AppendChild(widget); err != nil {
		return nil, err
	}
	log("event", "section.appendChild(x-widget)")

	if err := widget.ClassList().Add("active"); err != nil {
		return nil, err
	}
	log("event", "x-widget.classList.add(\"active\")")

	if err := widget.SetAttribute("open", "true"); err != nil {
		return nil, err
	}
	log("event", "x-widget.setAttribute(\"open\", \"true\")")

	var clickOrder []string
	if err := root.AddEventListener("click", func(ev *domevents.Event) error {
		clickOrder = append(clickOrder, "section")
		return nil
	}, domevents.Options{}); err != nil {
		return nil, err
	}
	if err := widget.AddEventListener("click", func(ev *domevents.Event) error {
		clickOrder = append(clickOrder, "x-widget")
		return nil
	}, domevents.Options{}); err != nil {
		return nil, err
	}

	ev := domevents.NewEvent("click", true, false, false)
	widget.DispatchEvent(ev)
	log("event", "x-widget.dispatchEvent(click) -> bubbled through %v", clickOrder)

	for _, rec := range obs.TakeRecords() {
		switch rec.Type {
		case mutationobserver.TypeChildList:
			log("record", "childList mutation on %s (+%d/-%d)", rec.Target.(*domtree.Node).TagName(), len(rec.Added), len(rec.Removed))
		case mutationobserver.TypeAttributes:
			log("record", "attributes mutation on %s (%s)", rec.Target.(*domtree.Node).TagName(), rec.AttrName)
		case mutationobserver.TypeCharacterData:
			log("record", "characterData mutation on %s", rec.Target.(*domtree.Node).TagName())
		}
	}

	if _, err := root.RemoveChild(widget); err != nil {
		return nil, err
	}
	log("event", "section.removeChild(x-widget)")

	doc.DisconnectObserver(obs)
	log("event", "observer.disconnect()")

	return res, nil
}
