package transform

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// canonical spellings of the standard section names, keyed by their
// lowercase singular/plural variants.
var sectionNames = map[string]string{
	"setting":    "Settings",
	"settings":   "Settings",
	"variable":   "Variables",
	"variables":  "Variables",
	"test case":  "Test Cases",
	"test cases": "Test Cases",
	"task":       "Tasks",
	"tasks":      "Tasks",
	"keyword":    "Keywords",
	"keywords":   "Keywords",
	"comment":    "Comments",
	"comments":   "Comments",
}

// NormalizeSectionHeaders rewrites every *** Header *** row to the canonical
// `*** Name ***` form: standard names get their standard spelling, unknown
// names are title-cased. Trailing comments on the header row are kept.
type NormalizeSectionHeaders struct{}

func (t *NormalizeSectionHeaders) Name() string { return "NormalizeSectionHeaders" }

func (t *NormalizeSectionHeaders) Description() string {
	return "Rewrite section headers to the canonical *** Name *** form"
}

func (t *NormalizeSectionHeaders) Transform(doc *Document) {
	caser := cases.Title(language.English)
	for _, section := range doc.Tree.Children {
		header := section.Header
		if header == nil {
			continue
		}
		if doc.SectionDisabled(t.Name(), section) {
			continue
		}
		name, ok := sectionNames[strings.ToLower(strings.TrimSpace(header.Name))]
		if !ok {
			name = caser.String(strings.ToLower(strings.TrimSpace(header.Name)))
		}
		line := "*** " + name + " ***"
		if len(header.Comments) > 0 {
			// keep the comment region exactly as written
			line += "    " + doc.Line(header.Start)[header.Comments[0].Col:]
		}
		doc.SetLine(header.Start, line)
	}
}
