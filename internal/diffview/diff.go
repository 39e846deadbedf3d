// Package diffview renders unified diffs between the original and the
// formatted content of a file.
package diffview

import (
	"strconv"
	"strings"
)

const contextLines = 3

type opKind uint8

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type op struct {
	kind opKind
	text string
}

// Unified computes a unified diff between two line slices, labelled with the
// file path. It returns "" when the inputs are equal.
func Unified(path string, before, after []string) string {
	ops := diffOps(before, after)
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("--- " + path + "\n")
	b.WriteString("+++ " + path + "\n")
	for _, h := range hunks {
		b.WriteString(h.header())
		for _, o := range h.ops {
			switch o.kind {
			case opEqual:
				b.WriteString(" " + o.text + "\n")
			case opDelete:
				b.WriteString("-" + o.text + "\n")
			case opInsert:
				b.WriteString("+" + o.text + "\n")
			}
		}
	}
	return b.String()
}

// diffOps produces the edit script via a longest-common-subsequence table.
// Robot files are small, the quadratic table is fine.
func diffOps(before, after []string) []op {
	n, m := len(before), len(after)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if before[i] == after[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []op
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case before[i] == after[j]:
			ops = append(ops, op{opEqual, before[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, op{opDelete, before[i]})
			i++
		default:
			ops = append(ops, op{opInsert, after[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, op{opDelete, before[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, op{opInsert, after[j]})
	}
	return ops
}

type hunk struct {
	beforeStart, beforeCount int
	afterStart, afterCount   int
	ops                      []op
}

func (h *hunk) header() string {
	var b strings.Builder
	b.WriteString("@@ -")
	writeRange(&b, h.beforeStart, h.beforeCount)
	b.WriteString(" +")
	writeRange(&b, h.afterStart, h.afterCount)
	b.WriteString(" @@\n")
	return b.String()
}

func writeRange(b *strings.Builder, start, count int) {
	if count == 1 {
		b.WriteString(strconv.Itoa(start))
		return
	}
	if count == 0 && start > 0 {
		start--
	}
	b.WriteString(strconv.Itoa(start))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(count))
}

// groupHunks splits the edit script into hunks of changes surrounded by up to
// contextLines of equal lines.
func groupHunks(ops []op) []*hunk {
	changed := false
	for _, o := range ops {
		if o.kind != opEqual {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	var hunks []*hunk
	beforeLine, afterLine := 1, 1
	i := 0
	for i < len(ops) {
		if ops[i].kind == opEqual {
			beforeLine++
			afterLine++
			i++
			continue
		}

		// back up for leading context
		start := i
		ctx := 0
		for start > 0 && ops[start-1].kind == opEqual && ctx < contextLines {
			start--
			ctx++
		}
		h := &hunk{
			beforeStart: beforeLine - ctx,
			afterStart:  afterLine - ctx,
		}

		// extend until a run of more than 2*contextLines equal lines, or EOF
		end := i
		for end < len(ops) {
			if ops[end].kind != opEqual {
				end++
				continue
			}
			run := 0
			for end+run < len(ops) && ops[end+run].kind == opEqual {
				run++
			}
			if end+run == len(ops) || run > 2*contextLines {
				break
			}
			end += run
		}
		tail := end
		for tail < len(ops) && ops[tail].kind == opEqual && tail-end < contextLines {
			tail++
		}

		for _, o := range ops[start:tail] {
			h.ops = append(h.ops, o)
			switch o.kind {
			case opEqual:
				h.beforeCount++
				h.afterCount++
			case opDelete:
				h.beforeCount++
			case opInsert:
				h.afterCount++
			}
		}
		hunks = append(hunks, h)

		// advance the line counters over everything consumed
		for _, o := range ops[i:tail] {
			switch o.kind {
			case opEqual:
				beforeLine++
				afterLine++
			case opDelete:
				beforeLine++
			case opInsert:
				afterLine++
			}
		}
		i = tail
	}
	return hunks
}
