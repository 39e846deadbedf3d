// Package disablers implements the suppression engine of the formatter:
// recognizing `# robotidy: off` / `# robotidy: on` comment directives,
// collecting them into per-transformer disabled line ranges during a single
// tree traversal, and answering transformer queries against those ranges.
package disablers

import (
	"regexp"
	"strings"
)

// AllTransformers is the wildcard target: a directive without an explicit
// target list applies to every transformer.
const AllTransformers = "all"

// The directive grammar. The pattern is deliberately loose about whitespace
// and trailing text; it must keep matching exactly what it always matched.
var disablerPattern = regexp.MustCompile(`^\s*#\s?robotidy:\s?(on|off) ?=?([\w,\s]*)`)

// Action is what a directive does to its targets.
type Action uint8

const (
	// ActionEnable re-enables targets (`on`), closing any open disabler.
	ActionEnable Action = iota
	// ActionDisable suppresses targets (`off`).
	ActionDisable
)

// Directive is a recognized disabler comment.
type Directive struct {
	Action  Action
	Targets []string
}

// ParseDirective recognizes a disabler directive in raw comment text.
// It returns false when the text is not a directive at all.
//
// `# robotidy: off` targets every transformer; `# robotidy: off=Name1,Name2`
// targets the named ones. Names are trimmed and empty entries dropped; when
// no names survive (including the bare `off=` form) the directive falls back
// to the wildcard.
func ParseDirective(text string) (Directive, bool) {
	if text == "" {
		return Directive{}, false
	}
	m := disablerPattern.FindStringSubmatch(text)
	if m == nil {
		return Directive{}, false
	}

	action := ActionEnable
	if m[1] == "off" {
		action = ActionDisable
	}

	return Directive{Action: action, Targets: parseTargets(m[0], m[2])}, true
}

func parseTargets(matched, rawTargets string) []string {
	if rawTargets == "" || !strings.Contains(matched, "=") {
		return []string{AllTransformers}
	}
	var targets []string
	for _, name := range strings.Split(rawTargets, ",") {
		if name = strings.TrimSpace(name); name != "" {
			targets = append(targets, name)
		}
	}
	if len(targets) == 0 {
		return []string{AllTransformers}
	}
	return targets
}
