// Package parser builds the block tree the formatter operates on. It is a
// deliberately small, line-oriented reading of Robot Framework structure:
// sections, test cases and keywords, FOR/WHILE/IF/TRY nesting, statement
// continuations and comment tokens. Anything it does not understand becomes a
// plain statement, which keeps the disabler engine and the transformers
// defensive rather than validating.
package parser

import (
	"robotidy/internal/ast"
	"robotidy/internal/source"
)

// Parse builds the document tree for a file.
func Parse(f *source.File) *ast.Block {
	lines := f.Lines()
	rows := make([]row, len(lines))
	for i, line := range lines {
		rows[i] = scanRow(line, i+1)
	}

	file := &ast.Block{Kind: ast.KindFile, Start: 1, End: len(lines)}
	if len(lines) == 0 {
		file.Start, file.End = 0, 0
		return file
	}

	p := &parser{rows: rows}
	for !p.done() {
		section := p.parseSection(file.End)
		if section != nil {
			file.Children = append(file.Children, section)
		}
	}
	return file
}

type parser struct {
	rows []row
	pos  int
}

func (p *parser) done() bool {
	return p.pos >= len(p.rows)
}

func (p *parser) peek() row {
	return p.rows[p.pos]
}

func (p *parser) next() row {
	r := p.rows[p.pos]
	p.pos++
	return r
}

// nextBoundary returns the line just before the next section header, or
// fileEnd when no header follows.
func (p *parser) nextBoundary(fileEnd int) int {
	for i := p.pos; i < len(p.rows); i++ {
		if p.rows[i].headerName != "" {
			return p.rows[i].num - 1
		}
	}
	return fileEnd
}

// parseSection consumes one section: either the implicit leading section
// (content before the first header) or a *** Header *** section.
func (p *parser) parseSection(fileEnd int) *ast.Block {
	start := p.peek().num
	section := &ast.Block{Kind: ast.KindSection, Start: start}

	kind := sectionPlain
	if r := p.peek(); r.headerName != "" {
		header := p.next()
		kind = classifySection(header.headerName)
		section.Name = header.headerName
		section.Header = &ast.Block{
			Kind:     ast.KindSectionHeader,
			Start:    header.num,
			End:      header.num,
			Name:     header.headerName,
			Comments: header.comment,
		}
	}
	section.End = p.nextBoundary(fileEnd)

	switch kind {
	case sectionTests:
		section.Children = p.parseNamedBlocks(ast.KindTestCase)
	case sectionKeywords:
		section.Children = p.parseNamedBlocks(ast.KindKeyword)
	default:
		section.Children = p.parseStatements(stopAtHeader)
	}
	if section.Header == nil && len(section.Children) == 0 {
		// nothing but blank lines before the first header
		return nil
	}
	return section
}

// parseNamedBlocks consumes the body of a test-case or keyword section:
// column-0 rows open a named block, everything indented belongs to it.
func (p *parser) parseNamedBlocks(kind ast.Kind) []*ast.Block {
	var blocks []*ast.Block
	var current *ast.Block
	for !p.done() && p.peek().headerName == "" {
		r := p.peek()
		if r.empty {
			p.next()
			continue
		}
		if r.indent == 0 && !r.commentOnly {
			r = p.next()
			current = &ast.Block{
				Kind:  kind,
				Start: r.num,
				End:   r.num,
				Name:  r.cells[0],
				Header: &ast.Block{
					Kind:     ast.KindStatement,
					Start:    r.num,
					End:      r.num,
					Comments: r.comment,
				},
			}
			current.Children = p.parseStatements(stopAtColumnZero)
			current.End = lastLine(current)
			blocks = append(blocks, current)
			continue
		}
		if current == nil {
			// stray content before the first named block
			blocks = append(blocks, p.parseStatements(stopAtNamedBlock)...)
			continue
		}
		// unreachable: indented rows are consumed by parseStatements above
		p.next()
	}
	return blocks
}

type stopCondition uint8

const (
	stopAtHeader     stopCondition = iota // section headers only
	stopAtColumnZero                      // any column-0 data row (new named block)
	stopAtNamedBlock                      // like stopAtColumnZero; used for stray leading rows
)

func (p *parser) stops(r row, stop stopCondition) bool {
	if r.headerName != "" {
		return true
	}
	if stop == stopAtHeader {
		return false
	}
	return r.indent == 0 && !r.empty && !r.commentOnly
}

// parseStatements consumes rows into statement, comment and control blocks
// until the stop condition (or a block terminator handled by the caller).
func (p *parser) parseStatements(stop stopCondition) []*ast.Block {
	return p.parseSteps(stop, nil)
}

// control keywords that terminate the current body; the caller decides what
// to do with the row itself.
func isTerminator(word string, terminators []string) bool {
	for _, t := range terminators {
		if word == t {
			return true
		}
	}
	return false
}

func (p *parser) parseSteps(stop stopCondition, terminators []string) []*ast.Block {
	var blocks []*ast.Block
	for !p.done() {
		r := p.peek()
		if p.stops(r, stop) {
			break
		}
		if r.empty {
			p.next()
			continue
		}
		if r.commentOnly {
			p.next()
			blocks = append(blocks, &ast.Block{
				Kind:     ast.KindComment,
				Start:    r.num,
				End:      r.num,
				Comments: r.comment,
			})
			continue
		}
		word := r.cells[0]
		if isTerminator(word, terminators) {
			break
		}
		switch word {
		case "FOR":
			blocks = append(blocks, p.parseLoop(ast.KindFor, stop))
		case "WHILE":
			blocks = append(blocks, p.parseLoop(ast.KindWhile, stop))
		case "IF":
			blocks = append(blocks, p.parseBranches(ast.KindIf, stop, []string{"ELSE IF", "ELSE"}))
		case "TRY":
			blocks = append(blocks, p.parseBranches(ast.KindTryBranch, stop, []string{"EXCEPT", "ELSE", "FINALLY"}))
		default:
			blocks = append(blocks, p.parseStatement())
		}
	}
	return blocks
}

// parseStatement consumes one statement row plus its ... continuations.
func (p *parser) parseStatement() *ast.Block {
	r := p.next()
	stmt := &ast.Block{
		Kind:     ast.KindStatement,
		Start:    r.num,
		End:      r.num,
		Comments: r.comment,
	}
	for !p.done() {
		n := p.peek()
		if !n.continuation {
			break
		}
		n = p.next()
		stmt.End = n.num
		stmt.Comments = append(stmt.Comments, n.comment...)
	}
	return stmt
}

// parseLoop consumes a FOR or WHILE block up to its END row.
func (p *parser) parseLoop(kind ast.Kind, stop stopCondition) *ast.Block {
	header := p.parseStatement()
	block := &ast.Block{Kind: kind, Start: header.Start, End: header.End, Header: header}
	block.Children = p.parseSteps(stop, []string{"END"})
	p.consumeEnd(block)
	return block
}

// parseBranches consumes an IF or TRY construct: one block per branch, linked
// through Next, each spanning from its own header to the construct end.
func (p *parser) parseBranches(kind ast.Kind, stop stopCondition, branchWords []string) *ast.Block {
	head := p.parseBranch(kind, stop, branchWords)
	tail := head
	for !p.done() {
		r := p.peek()
		if p.stops(r, stop) || r.empty || r.commentOnly {
			break
		}
		if !isTerminator(r.cells[0], branchWords) {
			break
		}
		branch := p.parseBranch(kind, stop, branchWords)
		tail.Next = branch
		tail = branch
	}
	p.consumeEnd(tail)
	// every branch spans to the construct end
	for b := head; b != nil; b = b.Next {
		b.End = tail.End
	}
	return head
}

func (p *parser) parseBranch(kind ast.Kind, stop stopCondition, branchWords []string) *ast.Block {
	header := p.parseStatement()
	branch := &ast.Block{Kind: kind, Start: header.Start, End: header.End, Header: header}
	terminators := append([]string{"END"}, branchWords...)
	branch.Children = p.parseSteps(stop, terminators)
	branch.End = lastLine(branch)
	return branch
}

// consumeEnd folds the END row into the block: it extends the block's end
// line and its row becomes a child statement, so inline directives on END
// are still seen.
func (p *parser) consumeEnd(block *ast.Block) {
	if p.done() {
		block.End = lastLine(block)
		return
	}
	r := p.peek()
	if r.empty || r.commentOnly || r.headerName != "" || r.cells[0] != "END" {
		// unterminated block; close at the last consumed line
		block.End = lastLine(block)
		return
	}
	end := p.parseStatement()
	block.Children = append(block.Children, end)
	block.End = end.End
}

// lastLine returns the last line covered by the block's header and children.
func lastLine(block *ast.Block) int {
	end := block.End
	if block.Header != nil && block.Header.End > end {
		end = block.Header.End
	}
	for _, child := range block.Children {
		if child.End > end {
			end = child.End
		}
		for next := child.Next; next != nil; next = next.Next {
			if next.End > end {
				end = next.End
			}
		}
	}
	return end
}
