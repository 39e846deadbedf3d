package diffview

import (
	"strings"
	"testing"
)

func TestUnifiedEqualInputs(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if got := Unified("x.robot", lines, lines); got != "" {
		t.Errorf("equal inputs should produce no diff, got %q", got)
	}
}

func TestUnifiedSingleChange(t *testing.T) {
	before := []string{"*** settings ***", "Library    OS"}
	after := []string{"*** Settings ***", "Library    OS"}
	got := Unified("x.robot", before, after)

	want := strings.Join([]string{
		"--- x.robot",
		"+++ x.robot",
		"@@ -1,2 +1,2 @@",
		"-*** settings ***",
		"+*** Settings ***",
		" Library    OS",
		"",
	}, "\n")
	if got != want {
		t.Errorf("diff mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnifiedContextWindow(t *testing.T) {
	var before, after []string
	for i := 0; i < 20; i++ {
		line := "line"
		before = append(before, line)
		after = append(after, line)
	}
	after[10] = "changed"

	got := Unified("x.robot", before, after)
	if !strings.Contains(got, "@@ -8,7 +8,7 @@") {
		t.Errorf("hunk should carry 3 lines of context:\n%s", got)
	}
	if strings.Count(got, "\n") > 12 {
		t.Errorf("far-away equal lines should not appear:\n%s", got)
	}
}

func TestUnifiedSeparateHunks(t *testing.T) {
	var before []string
	for i := 0; i < 30; i++ {
		before = append(before, "line")
	}
	after := append([]string(nil), before...)
	after[1] = "first"
	after[28] = "second"

	got := Unified("x.robot", before, after)
	if strings.Count(got, "@@") != 2 {
		t.Errorf("distant changes should land in separate hunks:\n%s", got)
	}
}

func TestUnifiedInsertAndDelete(t *testing.T) {
	before := []string{"a", "b", "c"}
	after := []string{"a", "c", "d"}
	got := Unified("x.robot", before, after)

	if !strings.Contains(got, "-b") || !strings.Contains(got, "+d") {
		t.Errorf("diff should show the delete and the insert:\n%s", got)
	}
}
