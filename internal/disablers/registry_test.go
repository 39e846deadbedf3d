package disablers

import (
	"slices"
	"testing"
)

func TestIsNodeDisabledFullMatch(t *testing.T) {
	df := NewDisablersInFile(0, 0, 20)
	df.AddDisabler("Rule1", 3, 7, false)
	df.Finalize()

	tests := []struct {
		name  string
		node  LineRange
		want  bool
	}{
		{"fully inside", LineRange{4, 6}, true},
		{"exact bounds", LineRange{3, 7}, true},
		{"starts before", LineRange{2, 6}, false},
		{"ends after", LineRange{5, 8}, false},
		{"after interval", LineRange{8, 9}, false},
		{"node starting right after end", LineRange{8, 8}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := df.IsNodeDisabled("Rule1", tt.node, true); got != tt.want {
				t.Errorf("IsNodeDisabled(%v) = %v, want %v", tt.node, got, tt.want)
			}
		})
	}

	if df.IsNodeDisabled("Other", LineRange{4, 6}, true) {
		t.Errorf("unrelated target should not be disabled")
	}
}

func TestIsNodeDisabledOverlap(t *testing.T) {
	df := NewDisablersInFile(0, 0, 20)
	df.AddDisabler("Rule1", 3, 7, false)
	df.Finalize()

	if !df.IsNodeDisabled("Rule1", LineRange{5, 10}, false) {
		t.Errorf("overlapping node should be disabled in overlap mode")
	}
	if !df.IsNodeDisabled("Rule1", LineRange{1, 3}, false) {
		t.Errorf("node touching interval start should be disabled in overlap mode")
	}
	if df.IsNodeDisabled("Rule1", LineRange{8, 10}, false) {
		t.Errorf("disjoint node should not be disabled")
	}
}

func TestIsNodeDisabledMalformedEndLine(t *testing.T) {
	df := NewDisablersInFile(0, 0, 20)
	df.AddDisabler("Rule1", 3, 7, false)
	df.Finalize()

	// transformers occasionally hand over nodes with -1 as the end line;
	// the effective end falls back to the start line
	if !df.IsNodeDisabled("Rule1", LineRange{5, -1}, true) {
		t.Errorf("node with malformed end line should use its start line")
	}
}

func TestWildcardCoversEveryTarget(t *testing.T) {
	df := NewDisablersInFile(0, 0, 20)
	df.AddDisabler(AllTransformers, 3, 7, false)
	df.Finalize()

	if !df.IsNodeDisabled("AnyRule", LineRange{4, 5}, true) {
		t.Errorf("wildcard interval should cover any target")
	}
}

func TestFullMatchScanDecidesOnFirstCoveringInterval(t *testing.T) {
	// Overlapping same-target intervals: the scan returns at the first
	// interval (in start order) whose end covers the node's end. A node that
	// is only covered by the union of two overlapping intervals therefore
	// answers "not disabled" in full-match mode. Long-standing behavior that
	// transformers rely on; do not generalize.
	df := NewDisablersInFile(0, 0, 30)
	df.AddDisabler("Rule1", 1, 10, false)
	df.AddDisabler("Rule1", 3, 15, false)
	df.Finalize()

	if df.IsNodeDisabled("Rule1", LineRange{2, 12}, true) {
		t.Errorf("union-covered node should answer false in full-match mode")
	}
	if !df.IsNodeDisabled("Rule1", LineRange{2, 12}, false) {
		t.Errorf("overlap mode should still report the node disabled")
	}
	if !df.IsNodeDisabled("Rule1", LineRange{3, 12}, true) {
		t.Errorf("node inside the second interval should be disabled")
	}
}

func TestApplyGlobalRestriction(t *testing.T) {
	df := NewDisablersInFile(5, 10, 20)
	df.ApplyGlobalRestriction()
	df.Finalize()

	for line := 1; line <= 4; line++ {
		if !df.IsNodeDisabled(AllTransformers, LineRange{line, line}, true) {
			t.Errorf("line %d should be disabled outside the window", line)
		}
	}
	for line := 5; line <= 10; line++ {
		if df.IsNodeDisabled(AllTransformers, LineRange{line, line}, true) {
			t.Errorf("line %d inside the window should not be disabled", line)
		}
	}
	for line := 11; line <= 20; line++ {
		if !df.IsNodeDisabled(AllTransformers, LineRange{line, line}, true) {
			t.Errorf("line %d should be disabled outside the window", line)
		}
	}
}

func TestApplyGlobalRestrictionStartOnly(t *testing.T) {
	// without an end line the window collapses to the start line alone
	df := NewDisablersInFile(5, 0, 10)
	df.ApplyGlobalRestriction()
	df.Finalize()

	if df.IsNodeDisabled(AllTransformers, LineRange{5, 5}, true) {
		t.Errorf("the start line itself should stay enabled")
	}
	if !df.IsNodeDisabled(AllTransformers, LineRange{4, 4}, true) ||
		!df.IsNodeDisabled(AllTransformers, LineRange{6, 6}, true) {
		t.Errorf("everything but the start line should be disabled")
	}
}

func TestHeaderDisabled(t *testing.T) {
	df := NewDisablersInFile(0, 0, 20)
	df.AddDisabledHeader("Rule1", 3)
	df.AddDisabledHeader(AllTransformers, 9)
	df.Finalize()

	if !df.IsHeaderDisabled("Rule1", 3) {
		t.Errorf("header 3 should be disabled for Rule1")
	}
	if df.IsHeaderDisabled("Rule2", 3) {
		t.Errorf("header 3 should not be disabled for Rule2")
	}
	if !df.IsHeaderDisabled("Rule2", 9) {
		t.Errorf("wildcard header 9 should be disabled for every target")
	}
}

func TestWholeFileFlag(t *testing.T) {
	df := NewDisablersInFile(0, 0, 20)
	df.AddDisabler(AllTransformers, 1, 2, true)
	df.Finalize()

	if !df.IsDisabledInFile("AnyRule") {
		t.Errorf("wildcard whole-file flag should cover every target")
	}
	if !df.IsNodeDisabled("AnyRule", LineRange{15, 16}, true) {
		t.Errorf("node queries should report disabled anywhere in a whole-file-disabled document")
	}
}

func TestFinalizeSortsIntervals(t *testing.T) {
	df := NewDisablersInFile(0, 0, 20)
	df.AddDisabler("Rule1", 10, 12, false)
	df.AddDisabler("Rule1", 2, 4, false)
	df.AddDisabler("Rule1", 6, 8, false)
	df.Finalize()

	target, ok := df.Target("Rule1")
	if !ok {
		t.Fatalf("Rule1 registry missing")
	}
	got := target.Intervals()
	want := []Interval{{2, 4}, {6, 8}, {10, 12}}
	if !slices.Equal(got, want) {
		t.Errorf("intervals = %v, want %v", got, want)
	}
}
