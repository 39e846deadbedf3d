package parser

import (
	"strings"

	"robotidy/internal/ast"
)

// row is one physical line split into data cells and trailing comment tokens.
type row struct {
	num     int // 1-based line number
	indent  int // column of the first non-separator character
	cells   []string
	comment []ast.Comment

	empty        bool
	commentOnly  bool // first cell starts a comment
	continuation bool // first data cell is the ... marker
	headerName   string
}

// cell is a data or comment cell with its 0-based start column.
type cell struct {
	text string
	col  int
}

// splitCells splits a line on Robot Framework separators: a tab, or a run of
// two or more spaces. A single space stays inside its cell.
func splitCells(line string) []cell {
	var cells []cell
	i, n := 0, len(line)
	for i < n {
		// skip separator
		if line[i] == '\t' {
			i++
			continue
		}
		if line[i] == ' ' {
			j := i
			for j < n && line[j] == ' ' {
				j++
			}
			if j-i >= 2 || i == 0 {
				// leading whitespace is always a separator
				i = j
				continue
			}
		}
		// consume a cell: ends at a tab or at 2+ spaces
		start := i
		for i < n {
			if line[i] == '\t' {
				break
			}
			if line[i] == ' ' {
				j := i
				for j < n && line[j] == ' ' {
					j++
				}
				if j-i >= 2 {
					break
				}
				i = j
				continue
			}
			i++
		}
		text := strings.TrimRight(line[start:i], " ")
		if text != "" {
			cells = append(cells, cell{text: text, col: start})
		}
	}
	return cells
}

func scanRow(line string, num int) row {
	r := row{num: num}
	cells := splitCells(line)
	if len(cells) == 0 {
		r.empty = true
		return r
	}
	r.indent = cells[0].col

	// split off the trailing comment region: the first #-cell starts it,
	// each further #-cell is a separate comment token, non-# cells are
	// absorbed into the current token
	inComment := false
	for _, c := range cells {
		if strings.HasPrefix(c.text, "#") {
			inComment = true
			r.comment = append(r.comment, ast.Comment{Line: num, Col: c.col, Text: c.text})
			continue
		}
		if inComment {
			last := &r.comment[len(r.comment)-1]
			last.Text += "  " + c.text
			continue
		}
		r.cells = append(r.cells, c.text)
	}

	if len(r.cells) == 0 {
		r.commentOnly = true
		return r
	}
	if r.indent == 0 && strings.HasPrefix(r.cells[0], "*") {
		r.headerName = strings.Trim(r.cells[0], "* \t")
	}
	if r.cells[0] == "..." {
		r.continuation = true
	}
	return r
}

// sectionKind classifies a header name; unknown names parse like settings.
type sectionKind uint8

const (
	sectionPlain sectionKind = iota // settings, variables, comments, unknown
	sectionTests                    // test cases / tasks
	sectionKeywords
)

func classifySection(name string) sectionKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "test cases", "test case", "tasks", "task":
		return sectionTests
	case "keywords", "keyword":
		return sectionKeywords
	}
	return sectionPlain
}
