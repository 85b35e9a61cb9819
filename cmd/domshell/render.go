package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/domcore/whatwgdom/domtree"
)

var (
	tagStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	attrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	textStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250"))
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	stepStyles = map[string]lipgloss.Style{
		"reaction": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"event":    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		"record":   lipgloss.NewStyle().Foreground(lipgloss.Color("112")),
	}
)

// renderTree prints n and its light-tree descendants, indented one
// level per depth, styled by node kind.
func renderTree(n *domtree.Node, depth int, out *strings.Builder) {
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case domtree.KindElement:
		line := tagStyle.Render("<"+n.TagName()+">")
		if attrs := n.Attributes(); attrs != nil && attrs.Length() > 0 {
			var parts []string
			for i := 0; i < attrs.Length(); i++ {
				a := attrs.Item(i)
				parts = append(parts, fmt.Sprintf("%s=%q", a.Name(), a.Value()))
			}
			line += " " + attrStyle.Render(strings.Join(parts, " "))
		}
		if !n.IsConnected() {
			line += " " + attrStyle.Render("(disconnected)")
		}
		fmt.Fprintf(out, "%s%s\n", indent, line)
	default:
		fmt.Fprintf(out, "%s%s\n", indent, textStyle.Render(fmt.Sprintf("#%s %q", n.Kind, n.Data())))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		renderTree(c, depth+1, out)
	}
}

func renderHeading(title string) string {
	return headStyle.Render(title)
}

func renderStep(s step) string {
	style, ok := stepStyles[s.kind]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return fmt.Sprintf("[%s] %s", style.Render(s.kind), s.label)
}
