// Package transform holds the formatting rules and the runner that applies
// them to a parsed document. Every transformer is independent and consults
// the disabler registry before touching a node; the suppression semantics
// themselves live in internal/disablers.
package transform

import (
	"fmt"

	"robotidy/internal/ast"
	"robotidy/internal/disablers"
	"robotidy/internal/source"
)

// Document is one file mid-format: its lines (mutated in place by
// transformers), the block tree and the frozen disabler registry. Built-in
// transformers only rewrite within lines, so tree line numbers stay valid
// across the whole run.
type Document struct {
	File      *source.File
	Lines     []string
	Tree      *ast.Block
	Disablers *disablers.DisablersInFile
}

// Line returns the 1-based line n of the working copy.
func (d *Document) Line(n int) string {
	return d.Lines[n-1]
}

// SetLine replaces the 1-based line n of the working copy.
func (d *Document) SetLine(n int, text string) {
	d.Lines[n-1] = text
}

// NodeDisabled reports whether a transformer must leave the node alone.
func (d *Document) NodeDisabled(name string, node *ast.Block) bool {
	return d.Disablers.IsNodeDisabled(name, node, true)
}

// SectionDisabled reports whether a transformer acting on the section header
// line must skip it: either the section body or the header itself carries a
// disabler.
func (d *Document) SectionDisabled(name string, section *ast.Block) bool {
	if d.Disablers.IsNodeDisabled(name, section, true) {
		return true
	}
	return section.Header != nil && d.Disablers.IsHeaderDisabled(name, section.Header.Start)
}

// Transformer is a single named formatting rule. Its name doubles as the
// disabler target authors use in `# robotidy: off=Name`.
type Transformer interface {
	Name() string
	Description() string
	Transform(doc *Document)
}

// Run applies transformers in order, skipping any that are disabled for the
// whole file. It reports whether the document's lines changed.
func Run(doc *Document, transformers []Transformer) bool {
	before := doc.File.Render(doc.Lines)
	for _, t := range transformers {
		if doc.Disablers.IsDisabledInFile(t.Name()) {
			continue
		}
		t.Transform(doc)
	}
	after := doc.File.Render(doc.Lines)
	return string(before) != string(after)
}

// Defaults returns the built-in transformers in their default run order.
func Defaults() []Transformer {
	return []Transformer{
		&NormalizeSectionHeaders{},
		&NormalizeSettingName{},
		&TrimTrailingWhitespace{},
	}
}

// Select resolves transformer names against the built-ins, preserving the
// default order. An empty selection means all of them.
func Select(names []string) ([]Transformer, error) {
	all := Defaults()
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]Transformer, len(all))
	for _, t := range all {
		byName[t.Name()] = t
	}
	selected := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("unknown transformer %q", name)
		}
		selected[name] = true
	}
	var out []Transformer
	for _, t := range all {
		if selected[t.Name()] {
			out = append(out, t)
		}
	}
	return out, nil
}
