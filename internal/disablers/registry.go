package disablers

import "slices"

// Node is anything with an inclusive 1-based line range. *ast.Block satisfies
// it; LineRange covers ad-hoc queries.
type Node interface {
	Lines() (start, end int)
}

// LineRange is a bare line interval usable as a query Node.
type LineRange struct {
	Start, End int
}

// Lines returns the range's inclusive bounds.
func (r LineRange) Lines() (start, end int) {
	return r.Start, r.End
}

// Interval is an inclusive range of suppressed lines owned by one target.
type Interval struct {
	Start, End int
}

// DisabledLines holds the suppression state of a single target: registered
// intervals, disabled header lines, and the whole-file flag.
type DisabledLines struct {
	startLine int
	endLine   int
	fileEnd   int

	intervals []Interval
	headers   map[int]struct{}
	wholeFile bool
}

func newDisabledLines(startLine, endLine, fileEnd int) *DisabledLines {
	return &DisabledLines{
		startLine: startLine,
		endLine:   endLine,
		fileEnd:   fileEnd,
		headers:   make(map[int]struct{}),
	}
}

func (d *DisabledLines) addDisabler(start, end int) {
	d.intervals = append(d.intervals, Interval{Start: start, End: end})
}

func (d *DisabledLines) addDisabledHeader(line int) {
	d.headers[line] = struct{}{}
}

// applyGlobalRestriction synthesizes disablers for everything outside the
// caller's [startLine, endLine] processing window. A zero startLine means no
// window; a zero endLine restricts to startLine alone.
func (d *DisabledLines) applyGlobalRestriction() {
	if d.startLine == 0 {
		return
	}
	endLine := d.endLine
	if endLine == 0 {
		endLine = d.startLine
	}
	if d.startLine > 1 {
		d.addDisabler(1, d.startLine-1)
	}
	if endLine < d.fileEnd {
		d.addDisabler(endLine+1, d.fileEnd)
	}
}

func (d *DisabledLines) sort() {
	slices.SortStableFunc(d.intervals, func(a, b Interval) int {
		return a.Start - b.Start
	})
}

func (d *DisabledLines) isHeaderDisabled(line int) bool {
	_, ok := d.headers[line]
	return ok
}

func (d *DisabledLines) isNodeDisabled(node Node, fullMatch bool) bool {
	if node == nil {
		return false
	}
	if d.wholeFile {
		return true
	}
	if len(d.intervals) == 0 {
		return false
	}
	start, end := node.Lines()
	if end < start {
		// tolerate malformed nodes reporting -1 or 0 as their end line
		end = start
	}
	if fullMatch {
		// Intervals are sorted by start line only; the first interval whose
		// end covers the node decides the answer. Known defect: a node
		// covered only by the union of overlapping intervals answers false.
		// Transformers depend on this exact scan order.
		for _, interval := range d.intervals {
			if interval.End >= end {
				return interval.Start <= start
			}
		}
		return false
	}
	for _, interval := range d.intervals {
		if start <= interval.End && end >= interval.Start {
			return true
		}
	}
	return false
}

// Intervals exposes the sorted interval list, for reporting.
func (d *DisabledLines) Intervals() []Interval {
	return slices.Clone(d.intervals)
}

// HeaderLines returns the disabled header lines in ascending order.
func (d *DisabledLines) HeaderLines() []int {
	lines := make([]int, 0, len(d.headers))
	for line := range d.headers {
		lines = append(lines, line)
	}
	slices.Sort(lines)
	return lines
}

// WholeFile reports whether the target is suppressed for the entire file.
func (d *DisabledLines) WholeFile() bool {
	return d.wholeFile
}

// DisablersInFile is the per-document registry: one DisabledLines per target
// that appeared in a directive, plus the always-present wildcard entry.
//
// It is populated during a single traversal pass, frozen by Finalize, and
// read-only afterwards. Queries before Finalize are outside the contract.
type DisablersInFile struct {
	startLine int
	endLine   int
	fileEnd   int
	targets   map[string]*DisabledLines
}

// NewDisablersInFile creates a registry for a document of fileEnd lines,
// optionally restricted to the [startLine, endLine] window (zero = no bound).
func NewDisablersInFile(startLine, endLine, fileEnd int) *DisablersInFile {
	df := &DisablersInFile{
		startLine: startLine,
		endLine:   endLine,
		fileEnd:   fileEnd,
		targets:   make(map[string]*DisabledLines),
	}
	df.targets[AllTransformers] = newDisabledLines(startLine, endLine, fileEnd)
	return df
}

// ApplyGlobalRestriction registers wildcard disablers for all lines outside
// the processing window. It runs before any explicit directive so that
// out-of-window lines stay suppressed no matter what the file says.
func (df *DisablersInFile) ApplyGlobalRestriction() {
	df.targets[AllTransformers].applyGlobalRestriction()
}

func (df *DisablersInFile) target(name string) *DisabledLines {
	t, ok := df.targets[name]
	if !ok {
		t = newDisabledLines(df.startLine, df.endLine, df.fileEnd)
		df.targets[name] = t
	}
	return t
}

// AddDisabler registers an inclusive disabled interval for a target.
// fileLevel additionally raises the target's whole-file flag.
func (df *DisablersInFile) AddDisabler(name string, start, end int, fileLevel bool) {
	t := df.target(name)
	t.addDisabler(start, end)
	if fileLevel {
		t.wholeFile = true
	}
}

// AddDisabledHeader marks a section header line as disabled for a target.
func (df *DisablersInFile) AddDisabledHeader(name string, line int) {
	df.target(name).addDisabledHeader(line)
}

// Finalize sorts every target's intervals by start line. It must run once,
// after the traversal and before the first query.
func (df *DisablersInFile) Finalize() {
	for _, t := range df.targets {
		t.sort()
	}
}

// IsDisabledInFile reports whether the named transformer (or everything, via
// the wildcard) is suppressed for the whole file.
func (df *DisablersInFile) IsDisabledInFile(name string) bool {
	if df.targets[AllTransformers].wholeFile {
		return true
	}
	t, ok := df.targets[name]
	return ok && t.wholeFile
}

// IsHeaderDisabled reports whether the section header at the given line is
// suppressed for the named transformer.
func (df *DisablersInFile) IsHeaderDisabled(name string, line int) bool {
	if df.targets[AllTransformers].isHeaderDisabled(line) {
		return true
	}
	t, ok := df.targets[name]
	return ok && t.isHeaderDisabled(line)
}

// IsNodeDisabled reports whether the node is suppressed for the named
// transformer. With fullMatch the node must lie inside a single interval
// (containment); otherwise any shared line counts (intersection). The
// wildcard target is always checked as well.
func (df *DisablersInFile) IsNodeDisabled(name string, node Node, fullMatch bool) bool {
	if df.targets[AllTransformers].isNodeDisabled(node, fullMatch) {
		return true
	}
	t, ok := df.targets[name]
	return ok && t.isNodeDisabled(node, fullMatch)
}

// Target returns the registry entry for a target name, if any directive
// created one. The wildcard entry always exists.
func (df *DisablersInFile) Target(name string) (*DisabledLines, bool) {
	t, ok := df.targets[name]
	return t, ok
}

// TargetNames returns every target that appeared in a directive, wildcard
// included, in sorted order.
func (df *DisablersInFile) TargetNames() []string {
	names := make([]string, 0, len(df.targets))
	for name := range df.targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
