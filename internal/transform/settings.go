package transform

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"robotidy/internal/ast"
)

var bracketSettingPattern = regexp.MustCompile(`^(\s*)\[\s*([A-Za-z ]+?)\s*\](.*)$`)

// canonical spellings of the bracket settings used inside test cases and
// keywords.
var settingNames = map[string]string{
	"documentation": "Documentation",
	"tags":          "Tags",
	"setup":         "Setup",
	"teardown":      "Teardown",
	"template":      "Template",
	"timeout":       "Timeout",
	"arguments":     "Arguments",
	"return":        "Return",
}

// NormalizeSettingName rewrites bracket settings such as `[documentation]`
// to their canonical casing. Only the first line of a statement can carry
// the setting, continuations are left untouched.
type NormalizeSettingName struct{}

func (t *NormalizeSettingName) Name() string { return "NormalizeSettingName" }

func (t *NormalizeSettingName) Description() string {
	return "Normalize the casing of bracket settings like [Documentation]"
}

func (t *NormalizeSettingName) Transform(doc *Document) {
	caser := cases.Title(language.English)
	ast.Walk(doc.Tree, func(b *ast.Block) bool {
		if b.Kind != ast.KindStatement {
			return true
		}
		line := doc.Line(b.Start)
		m := bracketSettingPattern.FindStringSubmatch(line)
		if m == nil {
			return true
		}
		if doc.NodeDisabled(t.Name(), b) {
			return true
		}
		name, ok := settingNames[strings.ToLower(m[2])]
		if !ok {
			name = caser.String(strings.ToLower(m[2]))
		}
		doc.SetLine(b.Start, m[1]+"["+name+"]"+m[3])
		return true
	})
}
