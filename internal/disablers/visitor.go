package disablers

import "robotidy/internal/ast"

// scopeFrame maps target name -> pending disabler start line (0 = none open).
type scopeFrame map[string]int

// RegisterDisablers is the traversal that turns directive comments into the
// per-document registry. One instance handles one document at a time; Visit
// resets all state, so an instance may be reused sequentially.
type RegisterDisablers struct {
	startLine int
	endLine   int

	disablers *DisablersInFile
	scopes    []scopeFrame
	fileLevel bool
}

// NewRegisterDisablers creates a traversal restricted to the optional
// [startLine, endLine] window (zero = no bound).
func NewRegisterDisablers(startLine, endLine int) *RegisterDisablers {
	return &RegisterDisablers{startLine: startLine, endLine: endLine}
}

// Disablers returns the registry built by the last Visit.
func (r *RegisterDisablers) Disablers() *DisablersInFile {
	return r.disablers
}

// IsDisabledInFile answers the whole-file query against the last Visit.
func (r *RegisterDisablers) IsDisabledInFile(name string) bool {
	return r.disablers.IsDisabledInFile(name)
}

// Visit walks the document tree once, collecting every disabler into a fresh
// registry, and finalizes it. The returned registry is read-only.
func (r *RegisterDisablers) Visit(file *ast.Block) *DisablersInFile {
	r.disablers = NewDisablersInFile(r.startLine, r.endLine, file.End)
	r.disablers.ApplyGlobalRestriction()
	r.scopes = r.scopes[:0]
	r.fileLevel = false

	r.pushScope()
	for i, section := range file.Children {
		// A leading pure-comment block states file-wide intent: disablers
		// still open when it closes become whole-file flags rather than
		// ordinary intervals.
		r.fileLevel = i == 0 && section.IsCommentSection()
		r.visitBlock(section)
	}
	r.fileLevel = false
	r.closeScope(file.End)

	r.disablers.Finalize()
	return r.disablers
}

func (r *RegisterDisablers) visitBlock(block *ast.Block) {
	switch block.Kind {
	case ast.KindSection:
		if block.Header != nil {
			r.visitSectionHeader(block.Header)
		}
		r.visitScope(block, block.End)
	case ast.KindTestCase, ast.KindKeyword, ast.KindFor, ast.KindWhile:
		if block.Header != nil {
			r.visitStatement(block.Header)
		}
		r.visitScope(block, block.End)
	case ast.KindIf, ast.KindTryBranch:
		r.visitBranchChain(block)
	case ast.KindComment:
		r.visitComment(block)
	case ast.KindStatement:
		r.visitStatement(block)
	case ast.KindSectionHeader:
		r.visitSectionHeader(block)
	case ast.KindFile:
		// nested file nodes do not occur in well-formed trees
		r.visitScope(block, block.End)
	}
}

func (r *RegisterDisablers) visitScope(block *ast.Block, endLine int) {
	r.pushScope()
	for _, child := range block.Children {
		r.visitBlock(child)
	}
	r.closeScope(endLine)
}

// visitBranchChain opens one scope per branch of an IF or TRY construct.
// A non-final branch closes one line before the next branch's header, so its
// auto-closed disablers never consume lines belonging to a sibling branch.
func (r *RegisterDisablers) visitBranchChain(head *ast.Block) {
	for branch := head; branch != nil; branch = branch.Next {
		if branch.Header != nil {
			r.visitStatement(branch.Header)
		}
		endLine := branch.End
		if branch.Next != nil {
			endLine = branch.Next.Start - 1
		}
		r.visitScope(branch, endLine)
	}
}

// visitComment handles a full-line comment: directives open and close pending
// disablers in the current scope frame, anchored at the comment's own line.
func (r *RegisterDisablers) visitComment(block *ast.Block) {
	frame := r.scopes[len(r.scopes)-1]
	for _, comment := range block.Comments {
		directive, ok := ParseDirective(comment.Text)
		if !ok {
			continue
		}
		switch directive.Action {
		case ActionEnable:
			for _, name := range directive.Targets {
				startLine := frame[name]
				if startLine == 0 {
					// enable with nothing open is a no-op
					continue
				}
				// a matched pair never promotes to the whole-file flag
				r.disablers.AddDisabler(name, startLine, block.Start, false)
				frame[name] = 0
			}
		case ActionDisable:
			for _, name := range directive.Targets {
				if frame[name] == 0 {
					// earliest pending start wins; repeats are no-ops
					frame[name] = block.Start
				}
			}
		}
	}
}

// visitStatement handles inline directives trailing a statement. Only `off`
// matters here and it self-closes: the interval spans exactly the statement's
// own lines. Each trailing comment is evaluated independently.
func (r *RegisterDisablers) visitStatement(block *ast.Block) {
	for _, comment := range block.Comments {
		directive, ok := ParseDirective(comment.Text)
		if !ok || directive.Action != ActionDisable {
			continue
		}
		for _, name := range directive.Targets {
			r.disablers.AddDisabler(name, block.Start, block.End, false)
		}
	}
}

// visitSectionHeader marks the header's own line as header-disabled when its
// trailing comment carries an `off` directive. The section body's interval
// tracking is unaffected.
func (r *RegisterDisablers) visitSectionHeader(header *ast.Block) {
	for _, comment := range header.Comments {
		directive, ok := ParseDirective(comment.Text)
		if !ok || directive.Action != ActionDisable {
			continue
		}
		for _, name := range directive.Targets {
			r.disablers.AddDisabledHeader(name, header.Start)
		}
		break
	}
}

func (r *RegisterDisablers) pushScope() {
	r.scopes = append(r.scopes, make(scopeFrame))
}

// closeScope pops the top frame and registers an interval for every target
// still pending, closed at the scope's own end line.
func (r *RegisterDisablers) closeScope(endLine int) {
	frame := r.scopes[len(r.scopes)-1]
	r.scopes = r.scopes[:len(r.scopes)-1]
	for name, startLine := range frame {
		if startLine == 0 {
			continue
		}
		r.disablers.AddDisabler(name, startLine, endLine, r.fileLevel)
	}
}
