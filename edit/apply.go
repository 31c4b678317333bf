// Package edit applies a set of non-overlapping text edits to a
// source string in one pass (§4.7).
package edit

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tidysql/tidysql/lint"
)

// ErrorKind tags the reason ApplyEdits rejected an edit list.
type ErrorKind int

const (
	// Overlap: an edit's start lies before the cursor left by a
	// preceding edit (or a prior zero-length edit at the same offset).
	Overlap ErrorKind = iota
	// OutOfBounds: an edit's end exceeds the source length.
	OutOfBounds
	// InvalidBoundary: an edit's start or end is not a UTF-8 boundary.
	InvalidBoundary
)

func (k ErrorKind) String() string {
	switch k {
	case Overlap:
		return "overlap"
	case OutOfBounds:
		return "out of bounds"
	case InvalidBoundary:
		return "invalid utf-8 boundary"
	default:
		return "unknown"
	}
}

// Error reports why ApplyEdits failed, carrying the offending edit.
type Error struct {
	Kind ErrorKind
	Edit lint.TextEdit
}

func (e *Error) Error() string {
	return fmt.Sprintf("edit: %s at %s", e.Kind, e.Edit.Range)
}

// ApplyEdits applies edits to text, stably sorted by Range.Start, and
// returns the result. An empty edit list returns text unchanged.
// Edits must not overlap; at most one zero-length edit is allowed per
// offset (a second would interleave ambiguously with the first and is
// rejected as Overlap, matching §9's open-question decision).
func ApplyEdits(text string, edits []lint.TextEdit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	sorted := make([]lint.TextEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start < sorted[j].Range.Start
	})

	var out strings.Builder
	cursor := 0
	zeroEditAt := -1
	for _, e := range sorted {
		if e.Range.Start < cursor {
			return "", &Error{Kind: Overlap, Edit: e}
		}
		if e.Range.Start == e.Range.End {
			if e.Range.Start == zeroEditAt {
				return "", &Error{Kind: Overlap, Edit: e}
			}
			zeroEditAt = e.Range.Start
		}
		if e.Range.End > len(text) {
			return "", &Error{Kind: OutOfBounds, Edit: e}
		}
		if !utf8.RuneStart(byteAt(text, e.Range.Start)) || !utf8.RuneStart(byteAt(text, e.Range.End)) {
			return "", &Error{Kind: InvalidBoundary, Edit: e}
		}
		out.WriteString(text[cursor:e.Range.Start])
		out.WriteString(e.Replacement)
		cursor = e.Range.End
	}
	out.WriteString(text[cursor:])
	return out.String(), nil
}

// byteAt returns the byte at i, or a value that always passes
// RuneStart (the boundary at end-of-string is valid by definition).
func byteAt(text string, i int) byte {
	if i >= len(text) {
		return 0
	}
	return text[i]
}
