// Package ast defines the block tree a parsed Robot Framework file is
// represented as. Nodes carry inclusive 1-based line ranges; the disabler
// engine and the transformers never look at raw text below this level.
package ast

// Kind identifies the structural role of a Block.
type Kind uint8

const (
	// KindFile is the root of a document.
	KindFile Kind = iota
	// KindSection is a *** Header *** section, or the implicit comment
	// section formed by content before the first header.
	KindSection
	// KindTestCase is a named test case (or task) inside its section.
	KindTestCase
	// KindKeyword is a user keyword inside a keywords section.
	KindKeyword
	// KindFor is a FOR ... END loop.
	KindFor
	// KindWhile is a WHILE ... END loop.
	KindWhile
	// KindIf is one branch of an IF / ELSE IF / ELSE chain.
	KindIf
	// KindTryBranch is one branch of a TRY / EXCEPT / ELSE / FINALLY chain.
	KindTryBranch
	// KindStatement is a single (possibly continued) data or keyword-call row.
	KindStatement
	// KindComment is a standalone comment row.
	KindComment
	// KindSectionHeader is the *** Header *** row itself.
	KindSectionHeader
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindSection:
		return "section"
	case KindTestCase:
		return "test case"
	case KindKeyword:
		return "keyword"
	case KindFor:
		return "for"
	case KindWhile:
		return "while"
	case KindIf:
		return "if"
	case KindTryBranch:
		return "try branch"
	case KindStatement:
		return "statement"
	case KindComment:
		return "comment"
	case KindSectionHeader:
		return "section header"
	}
	return "unknown"
}

// IsScope reports whether a block of this kind opens its own disabler scope.
func (k Kind) IsScope() bool {
	switch k {
	case KindFile, KindSection, KindTestCase, KindKeyword, KindFor, KindWhile, KindIf, KindTryBranch:
		return true
	}
	return false
}

// Comment is one comment token attached to a row.
type Comment struct {
	Line int
	Col  int // 0-based column of the '#' within the line
	Text string
}

// Block is a node of the document tree.
//
// Start and End are inclusive 1-based line numbers. For If and TryBranch
// blocks, Next links the following branch of the same construct; the head
// branch's End spans the whole construct (including END), while every chained
// branch spans from its own header to the construct end.
type Block struct {
	Kind     Kind
	Start    int
	End      int
	Name     string // section/test/keyword name, when meaningful
	Header   *Block // SectionHeader of a Section; header row of a control block
	Children []*Block
	Next     *Block // next branch in an IF/TRY chain
	Comments []Comment
}

// Lines returns the node's inclusive line range.
func (b *Block) Lines() (start, end int) {
	return b.Start, b.End
}

// IsCommentSection reports whether b is a section with no header whose rows
// are all comments (the implicit leading comment section).
func (b *Block) IsCommentSection() bool {
	if b == nil || b.Kind != KindSection || b.Header != nil {
		return false
	}
	for _, child := range b.Children {
		if child.Kind != KindComment {
			return false
		}
	}
	return true
}

// Walk calls fn for b and every descendant in document order, following
// branch chains. Traversal stops early when fn returns false.
func Walk(b *Block, fn func(*Block) bool) bool {
	for node := b; node != nil; node = node.Next {
		if !fn(node) {
			return false
		}
		if node.Header != nil && !fn(node.Header) {
			return false
		}
		for _, child := range node.Children {
			if !Walk(child, fn) {
				return false
			}
		}
	}
	return true
}
