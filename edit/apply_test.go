package edit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidysql/tidysql/lint"
	"github.com/tidysql/tidysql/syntax"
)

func syntaxRange(start, end int) syntax.Range {
	return syntax.Range{Start: start, End: end}
}

func TestApplyEditsEmpty(t *testing.T) {
	out, err := ApplyEdits("select 1", nil)
	require.NoError(t, err)
	require.Equal(t, "select 1", out)
}

func TestApplyEditsTwoReplacements(t *testing.T) {
	// "select a from t": two replacements given out of source order,
	// "from" -> "TABLE" and "select" -> "SELECT".
	text := "select a from t"
	edits := []lint.TextEdit{
		{Range: syntaxRange(9, 13), Replacement: "TABLE"},
		{Range: syntaxRange(0, 6), Replacement: "SELECT"},
	}
	out, err := ApplyEdits(text, edits)
	require.NoError(t, err)
	require.Equal(t, "SELECT a TABLE t", out)
}

func TestApplyEditsInsertAtEnd(t *testing.T) {
	text := "select 1 union select 2"
	unionEnd := 14
	edits := []lint.TextEdit{{Range: syntaxRange(unionEnd, unionEnd), Replacement: " DISTINCT"}}
	out, err := ApplyEdits(text, edits)
	require.NoError(t, err)
	require.Equal(t, "select 1 union DISTINCT select 2", out)
}

func TestApplyEditsOverlapFails(t *testing.T) {
	_, err := ApplyEdits("abcdef", []lint.TextEdit{
		{Range: syntaxRange(1, 4), Replacement: "X"},
		{Range: syntaxRange(3, 5), Replacement: "Y"},
	})
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, Overlap, e.Kind)
}

func TestApplyEditsOutOfBounds(t *testing.T) {
	_, err := ApplyEdits("abc", []lint.TextEdit{{Range: syntaxRange(1, 10), Replacement: "x"}})
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, OutOfBounds, e.Kind)
}

func TestApplyEditsDoubleZeroLengthAtSameOffsetOverlaps(t *testing.T) {
	_, err := ApplyEdits("abc", []lint.TextEdit{
		{Range: syntaxRange(1, 1), Replacement: "x"},
		{Range: syntaxRange(1, 1), Replacement: "y"},
	})
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, Overlap, e.Kind)
}

func TestApplyEditsSortedOrderIndependent(t *testing.T) {
	text := "abcdef"
	edits := []lint.TextEdit{
		{Range: syntaxRange(4, 5), Replacement: "E"},
		{Range: syntaxRange(0, 1), Replacement: "A"},
	}
	out, err := ApplyEdits(text, edits)
	require.NoError(t, err)
	require.Equal(t, "AbcdEf", out)
}
