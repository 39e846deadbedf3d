package parser

import (
	"testing"

	"robotidy/internal/ast"
	"robotidy/internal/source"
)

func parse(t *testing.T, src string) *ast.Block {
	t.Helper()
	return Parse(source.NewVirtual("test.robot", []byte(src)))
}

func TestParseSections(t *testing.T) {
	src := `*** Settings ***
Library    Collections

*** Test Cases ***
My Test
    Keyword Call
`
	file := parse(t, src)

	if file.Kind != ast.KindFile || file.Start != 1 || file.End != 6 {
		t.Fatalf("unexpected file node: %+v", file)
	}
	if len(file.Children) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(file.Children))
	}

	settings := file.Children[0]
	if settings.Kind != ast.KindSection || settings.Name != "Settings" {
		t.Errorf("unexpected first section: %+v", settings)
	}
	if settings.Header == nil || settings.Header.Kind != ast.KindSectionHeader || settings.Header.Start != 1 {
		t.Errorf("unexpected settings header: %+v", settings.Header)
	}
	if settings.Start != 1 || settings.End != 3 {
		t.Errorf("settings section lines = %d..%d, want 1..3", settings.Start, settings.End)
	}

	tests := file.Children[1]
	if tests.Start != 4 || tests.End != 6 {
		t.Errorf("test section lines = %d..%d, want 4..6", tests.Start, tests.End)
	}
	if len(tests.Children) != 1 {
		t.Fatalf("expected 1 test case, got %d", len(tests.Children))
	}
	test := tests.Children[0]
	if test.Kind != ast.KindTestCase || test.Name != "My Test" || test.Start != 5 || test.End != 6 {
		t.Errorf("unexpected test case: %+v", test)
	}
}

func TestParseImplicitCommentSection(t *testing.T) {
	src := `# leading comment
# another one

*** Settings ***
Library    OS
`
	file := parse(t, src)

	if len(file.Children) != 2 {
		t.Fatalf("expected implicit section + settings, got %d sections", len(file.Children))
	}
	leading := file.Children[0]
	if !leading.IsCommentSection() {
		t.Errorf("leading section should be a pure comment section: %+v", leading)
	}
	if leading.Start != 1 || leading.End != 3 {
		t.Errorf("leading section lines = %d..%d, want 1..3", leading.Start, leading.End)
	}
}

func TestParseLoopNesting(t *testing.T) {
	src := `*** Test Cases ***
Test
    FOR    ${x}    IN    @{xs}
        Log    ${x}
    END
    After
`
	file := parse(t, src)
	test := file.Children[0].Children[0]
	if len(test.Children) != 2 {
		t.Fatalf("expected loop + statement, got %d children", len(test.Children))
	}
	loop := test.Children[0]
	if loop.Kind != ast.KindFor || loop.Start != 3 || loop.End != 5 {
		t.Errorf("unexpected loop: kind=%v lines=%d..%d", loop.Kind, loop.Start, loop.End)
	}
	// body statement + folded END row
	if len(loop.Children) != 2 {
		t.Fatalf("expected 2 loop children, got %d", len(loop.Children))
	}
	if loop.Children[1].Start != 5 {
		t.Errorf("END row should be folded into the loop as a statement")
	}
}

func TestParseBranchChain(t *testing.T) {
	src := `*** Test Cases ***
Test
    IF    $cond
        One
    ELSE IF    $other
        Two
    ELSE
        Three
    END
`
	file := parse(t, src)
	test := file.Children[0].Children[0]
	head := test.Children[0]
	if head.Kind != ast.KindIf {
		t.Fatalf("expected IF block, got %v", head.Kind)
	}

	var branches []*ast.Block
	for b := head; b != nil; b = b.Next {
		branches = append(branches, b)
	}
	if len(branches) != 3 {
		t.Fatalf("expected 3 branches, got %d", len(branches))
	}
	starts := []int{3, 5, 7}
	for i, b := range branches {
		if b.Start != starts[i] {
			t.Errorf("branch %d starts at %d, want %d", i, b.Start, starts[i])
		}
		if b.End != 9 {
			t.Errorf("branch %d ends at %d, want construct end 9", i, b.End)
		}
	}
}

func TestParseTryChain(t *testing.T) {
	src := `*** Test Cases ***
Test
    TRY
        Risky
    EXCEPT    oops
        Recover
    FINALLY
        Cleanup
    END
`
	file := parse(t, src)
	head := file.Children[0].Children[0].Children[0]
	if head.Kind != ast.KindTryBranch {
		t.Fatalf("expected TRY branch, got %v", head.Kind)
	}
	count := 0
	for b := head; b != nil; b = b.Next {
		count++
	}
	if count != 3 {
		t.Errorf("expected 3 branches (TRY/EXCEPT/FINALLY), got %d", count)
	}
}

func TestParseUnterminatedBlock(t *testing.T) {
	src := `*** Test Cases ***
Test
    FOR    ${x}    IN    @{xs}
        Log    ${x}
`
	file := parse(t, src)
	loop := file.Children[0].Children[0].Children[0]
	if loop.Kind != ast.KindFor {
		t.Fatalf("expected FOR block, got %v", loop.Kind)
	}
	if loop.End != 4 {
		t.Errorf("unterminated loop should close at its last line, got %d", loop.End)
	}
}

func TestInlineComments(t *testing.T) {
	src := `*** Test Cases ***
Test
    Keyword Call    arg    # first    # second
`
	file := parse(t, src)
	stmt := file.Children[0].Children[0].Children[0]
	if stmt.Kind != ast.KindStatement {
		t.Fatalf("expected statement, got %v", stmt.Kind)
	}
	if len(stmt.Comments) != 2 {
		t.Fatalf("expected 2 comment tokens, got %d: %+v", len(stmt.Comments), stmt.Comments)
	}
	if stmt.Comments[0].Text != "# first" || stmt.Comments[1].Text != "# second" {
		t.Errorf("unexpected comment texts: %+v", stmt.Comments)
	}
}

func TestContinuationRows(t *testing.T) {
	src := `*** Settings ***
Documentation    first line
...    second line
...    third line
Library    OS
`
	file := parse(t, src)
	section := file.Children[0]
	if len(section.Children) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(section.Children))
	}
	doc := section.Children[0]
	if doc.Start != 2 || doc.End != 4 {
		t.Errorf("continued statement lines = %d..%d, want 2..4", doc.Start, doc.End)
	}
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		line  string
		cells []string
	}{
		{"Keyword Call    arg1    arg2", []string{"Keyword Call", "arg1", "arg2"}},
		{"    Indented    arg", []string{"Indented", "arg"}},
		{"One Space Stays", []string{"One Space Stays"}},
		{"Tab\tSeparated", []string{"Tab", "Separated"}},
		{"", nil},
		{"    ", nil},
	}
	for _, tt := range tests {
		got := splitCells(tt.line)
		if len(got) != len(tt.cells) {
			t.Errorf("splitCells(%q) = %v, want %v", tt.line, got, tt.cells)
			continue
		}
		for i := range got {
			if got[i].text != tt.cells[i] {
				t.Errorf("splitCells(%q)[%d] = %q, want %q", tt.line, i, got[i].text, tt.cells[i])
			}
		}
	}
}
