package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testTok struct {
	kind       Kind
	raw        string
	whitespace bool
	comment    bool
	meta       bool
}

func (t testTok) Kind() Kind         { return t.kind }
func (t testTok) Raw() string        { return t.raw }
func (t testTok) IsWhitespace() bool { return t.whitespace }
func (t testTok) IsComment() bool    { return t.comment }
func (t testTok) IsMeta() bool       { return t.meta }

func tok(kind Kind, raw string) testTok  { return testTok{kind: kind, raw: raw} }
func ws(raw string) testTok              { return testTok{kind: Whitespace, raw: raw, whitespace: true} }
func meta(kind Kind, raw string) testTok { return testTok{kind: kind, raw: raw, meta: true} }

// buildSelectOneTree builds "select 1" as:
// Root
//
//	SelectStatement
//	  SelectClause
//	    Keyword("select")
//	    Literal
//	      Number("1")
func buildSelectOneTree(t *testing.T) *Tree {
	t.Helper()
	text := "select 1"
	b := NewBuilder(text)
	b.EnterNode(SelectStatement, 1)
	b.EnterNode(SelectClause, 2)
	b.Token(tok(Keyword, "select"))
	b.Token(ws(" "))
	b.EnterNode(Literal, 1)
	b.Token(tok(Number, "1"))
	b.ExitNode(Literal)
	b.ExitNode(SelectClause)
	b.ExitNode(SelectStatement)
	tree, err := b.Finish()
	require.NoError(t, err)
	return tree
}

func TestBuilderRoundTrip(t *testing.T) {
	tree := buildSelectOneTree(t)
	require.Equal(t, "select 1", tree.Text())

	root := tree.Root()
	require.Equal(t, Root, root.Kind())

	var rebuilt string
	for _, el := range root.DescendantsWithTokens() {
		if el.IsToken {
			rebuilt += el.Token.TextIncludingTrivia()
		}
	}
	require.Equal(t, tree.Text(), rebuilt)
}

func TestBuilderNodeShape(t *testing.T) {
	tree := buildSelectOneTree(t)
	root := tree.Root()

	stmt, ok := root.ChildAt(0)
	require.True(t, ok)
	require.Equal(t, SelectStatement, stmt.Kind())
	require.Equal(t, "select 1", stmt.Text())

	clause, ok := stmt.ChildAt(0)
	require.True(t, ok)
	require.Equal(t, SelectClause, clause.Kind())

	children := clause.ChildrenWithTokens()
	require.Len(t, children, 2)
	require.True(t, children[0].IsToken)
	require.Equal(t, Keyword, children[0].Token.Kind())
	require.Equal(t, "select", children[0].Token.Text())
	require.False(t, children[1].IsToken)
	require.Equal(t, Literal, children[1].Kind())

	lit := children[1].Node
	litChildren := lit.ChildrenWithTokens()
	require.Len(t, litChildren, 1)
	require.Equal(t, "1", litChildren[0].Token.Text())
}

func TestBuilderTrailingTriviaAttachment(t *testing.T) {
	tree := buildSelectOneTree(t)
	root := tree.Root()
	stmt, _ := root.ChildAt(0)
	clause, _ := stmt.ChildAt(0)
	kwEl := clause.ChildrenWithTokens()[0]
	kw := kwEl.Token

	require.Equal(t, "select", kw.Text())
	require.Equal(t, "select ", kw.TextIncludingTrivia())

	trailing := kw.TrailingTrivia()
	require.Len(t, trailing, 1)
	require.Equal(t, " ", trailing[0].Text())
	require.Empty(t, kw.LeadingTrivia())
}

func TestBuilderTokenAtOffset(t *testing.T) {
	tree := buildSelectOneTree(t)
	root := tree.Root()

	r := root.TokenAtOffset(0)
	single, ok := r.RightBiased()
	require.True(t, ok)
	require.Equal(t, Keyword, single.Kind())

	// Offset 6 is where "select" meets the whitespace; whitespace is not
	// significant, so the result is the single token containing 6.
	gap := root.TokenAtOffset(6)
	require.Equal(t, OffsetSingle, gap.Kind)
	left, _ := gap.LeftBiased()
	require.Equal(t, Whitespace, left.Kind())
	num, _ := root.TokenAtOffset(7).LeftBiased()
	require.Equal(t, Number, num.Kind())
}

func TestBuilderCoveringElement(t *testing.T) {
	tree := buildSelectOneTree(t)
	root := tree.Root()

	el := root.CoveringElement(Range{Start: 7, End: 8})
	require.True(t, el.IsToken)
	require.Equal(t, Number, el.Token.Kind())

	el = root.CoveringElement(Range{Start: 0, End: 8})
	require.False(t, el.IsToken)
	require.Equal(t, SelectClause, el.Node.Kind())
}

func TestBuilderCoveringElementPanicsOutOfRange(t *testing.T) {
	tree := buildSelectOneTree(t)
	root := tree.Root()
	require.Panics(t, func() {
		root.CoveringElement(Range{Start: 0, End: 100})
	})
}

func TestBuilderMetaTokenNotAChild(t *testing.T) {
	text := "select 1"
	b := NewBuilder(text)
	b.EnterNode(SelectStatement, 1)
	b.Token(meta(Meta, ""))
	b.Token(tok(Keyword, "select"))
	b.Token(ws(" "))
	b.Token(tok(Number, "1"))
	b.ExitNode(SelectStatement)
	tree, err := b.Finish()
	require.NoError(t, err)

	stmt, ok := tree.Root().ChildAt(0)
	require.True(t, ok)
	children := stmt.ChildrenWithTokens()
	require.Len(t, children, 2)
	require.Equal(t, Keyword, children[0].Token.Kind())
}

func TestBuilderUnbalancedNodesPanics(t *testing.T) {
	b := NewBuilder("select 1")
	b.EnterNode(SelectStatement, 1)
	b.Token(tok(Keyword, "select"))
	b.Token(ws(" "))
	b.Token(tok(Number, "1"))
	require.Panics(t, func() {
		b.Finish()
	})
}

func TestBuilderExitNodeWithoutEnterPanics(t *testing.T) {
	b := NewBuilder("x")
	b.Token(tok(Identifier, "x"))
	require.Panics(t, func() {
		b.ExitNode(SelectStatement)
	})
}

func TestBuilderAbandonDiscardsState(t *testing.T) {
	b := NewBuilder("select 1")
	b.EnterNode(SelectStatement, 1)
	b.Token(tok(Keyword, "select"))
	require.NotPanics(t, func() {
		b.Abandon()
	})
}
