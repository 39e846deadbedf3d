package disablers

import (
	"slices"
	"testing"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		ok      bool
		action  Action
		targets []string
	}{
		{"plain off", "# robotidy: off", true, ActionDisable, []string{AllTransformers}},
		{"plain on", "# robotidy: on", true, ActionEnable, []string{AllTransformers}},
		{"no space after hash", "#robotidy: off", true, ActionDisable, []string{AllTransformers}},
		{"leading whitespace", "   # robotidy: off", true, ActionDisable, []string{AllTransformers}},
		{"no space after colon", "# robotidy:off", true, ActionDisable, []string{AllTransformers}},
		{"single target", "# robotidy: off=NormalizeSectionHeaders", true, ActionDisable, []string{"NormalizeSectionHeaders"}},
		{"multiple targets", "# robotidy: off=Rule1,Rule2", true, ActionDisable, []string{"Rule1", "Rule2"}},
		{"targets with spaces", "# robotidy: off=Rule1, Rule2", true, ActionDisable, []string{"Rule1", "Rule2"}},
		{"on with target", "# robotidy: on=Rule1", true, ActionEnable, []string{"Rule1"}},
		{"trailing prose", "# robotidy: off comment", true, ActionDisable, []string{AllTransformers}},
		{"empty target list", "# robotidy: off=", true, ActionDisable, []string{AllTransformers}},
		{"only commas", "# robotidy: off=, ,", true, ActionDisable, []string{AllTransformers}},
		{"empty entries dropped", "# robotidy: off=Rule1,,Rule2,", true, ActionDisable, []string{"Rule1", "Rule2"}},
		{"not a directive", "# regular comment", false, 0, nil},
		{"wrong keyword", "# robocop: off", false, 0, nil},
		{"empty text", "", false, 0, nil},
		{"missing action", "# robotidy:", false, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseDirective(tt.text)
			if ok != tt.ok {
				t.Fatalf("ParseDirective(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			if d.Action != tt.action {
				t.Errorf("action = %v, want %v", d.Action, tt.action)
			}
			if !slices.Equal(d.Targets, tt.targets) {
				t.Errorf("targets = %v, want %v", d.Targets, tt.targets)
			}
		})
	}
}
