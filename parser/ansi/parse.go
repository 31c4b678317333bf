package ansi

import (
	"fmt"
	"strings"

	"github.com/tidysql/tidysql/parser"
	"github.com/tidysql/tidysql/syntax"
)

// node is a throwaway, plain-value parse tree: every grammar rule below
// builds one of these instead of calling into syntax.Builder directly.
// A builder's EnterNode/ExitNode stream is forward-only (no way to wrap
// an already-closed sibling, the way rowan's "precede" marker does), so
// expressions with unknown shape at lookahead time (is `a = b` a
// BinaryExpr, or is `a` just a bare ColumnRef?) are parsed into this
// tree first; emit then walks it once, in one pass, to produce a
// correctly ordered event stream (§4.1).
type node struct {
	kind     syntax.Kind
	lo, hi   int // half-open range over the shared items slice
	children []*node
}

// scanAll runs the scanner to completion, discarding its own EOF marker
// (the builder appends its own terminating sentinel in Finish).
func scanAll(source string) []scannedToken {
	sc := newScanner(source)
	var items []scannedToken
	for {
		t := sc.next()
		if t.kind == syntax.EOF {
			return items
		}
		items = append(items, t)
	}
}

func isSignificant(k syntax.Kind) bool {
	return !k.IsTrivia() && !k.IsMeta()
}

func buildSignificantIndex(items []scannedToken) []int {
	var sig []int
	for i, t := range items {
		if isSignificant(t.kind) {
			sig = append(sig, i)
		}
	}
	return sig
}

type astParser struct {
	items []scannedToken
	sig   []int
	pos   int
}

func (p *astParser) peek() scannedToken {
	if p.pos >= len(p.sig) {
		return scannedToken{kind: syntax.EOF}
	}
	return p.items[p.sig[p.pos]]
}

func (p *astParser) peekGlobalIdx() int {
	if p.pos < len(p.sig) {
		return p.sig[p.pos]
	}
	return len(p.items)
}

func (p *astParser) atKind(k syntax.Kind) bool { return p.peek().kind == k }

func (p *astParser) atKeyword(word string) bool {
	t := p.peek()
	return t.kind == syntax.Keyword && strings.EqualFold(t.raw, word)
}

// bump consumes the current significant token and returns its index
// into the shared items slice.
func (p *astParser) bump() int {
	idx := p.peekGlobalIdx()
	p.pos++
	return idx
}

func describeTok(t scannedToken) string {
	if t.kind == syntax.EOF {
		return "end of input"
	}
	return t.raw
}

func (p *astParser) fail(format string, args ...any) error {
	return &parser.ParseFailureError{Description: fmt.Sprintf(format, args...)}
}

// parseQuery parses a select expression: one or more simple selects
// chained by set operators. The result is a flat list alternating
// SelectStatement and SetOperator nodes, fed directly as root children
// (there is no dedicated "compound statement" kind in the syntax
// enumeration).
func (p *astParser) parseQuery() ([]*node, error) {
	first, err := p.parseSimpleSelect()
	if err != nil {
		return nil, err
	}
	tops := []*node{first}
	for p.atSetOperatorStart() {
		op, err := p.parseSetOperator()
		if err != nil {
			return nil, err
		}
		next, err := p.parseSimpleSelect()
		if err != nil {
			return nil, err
		}
		tops = append(tops, op, next)
	}
	return tops, nil
}

func (p *astParser) atSetOperatorStart() bool {
	return p.atKeyword("union") || p.atKeyword("intersect") || p.atKeyword("except")
}

func (p *astParser) parseSetOperator() (*node, error) {
	lo := p.bump()
	hi := lo + 1
	if p.atKeyword("all") || p.atKeyword("distinct") {
		hi = p.bump() + 1
	}
	return &node{kind: syntax.SetOperator, lo: lo, hi: hi}, nil
}

func (p *astParser) parseSimpleSelect() (*node, error) {
	if !p.atKeyword("select") {
		return nil, p.fail("expected SELECT, found %q", describeTok(p.peek()))
	}
	sel, err := p.parseSelectClause()
	if err != nil {
		return nil, err
	}
	children := []*node{sel}
	lo, hi := sel.lo, sel.hi

	if p.atKeyword("from") {
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		children = append(children, from)
		hi = from.hi
	}

	if p.atKeyword("where") {
		w, err := p.parseWhereClause()
		if err != nil {
			return nil, err
		}
		children = append(children, w)
		hi = w.hi
	}
	if p.atKeyword("group") {
		g, err := p.parseGroupByClause()
		if err != nil {
			return nil, err
		}
		children = append(children, g)
		hi = g.hi
	}
	if p.atKeyword("having") {
		h, err := p.parseHavingClause()
		if err != nil {
			return nil, err
		}
		children = append(children, h)
		hi = h.hi
	}
	if p.atKeyword("order") {
		o, err := p.parseOrderByClause()
		if err != nil {
			return nil, err
		}
		children = append(children, o)
		hi = o.hi
	}

	return &node{kind: syntax.SelectStatement, lo: lo, hi: hi, children: children}, nil
}

func (p *astParser) parseSelectClause() (*node, error) {
	lo := p.bump() // 'select'
	if p.atKeyword("distinct") || p.atKeyword("all") {
		p.bump()
	}
	cols, err := p.parseColumnList()
	if err != nil {
		return nil, err
	}
	return &node{kind: syntax.SelectClause, lo: lo, hi: cols.hi, children: []*node{cols}}, nil
}

// parseSelectItem parses one expression plus an optional AS alias. The
// alias token, if present, simply extends the expression node's own
// range rather than introducing a dedicated alias node kind.
func (p *astParser) parseSelectItem() (*node, error) {
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.atKeyword("as") {
		p.bump()
		if p.atKind(syntax.Identifier) || p.atKind(syntax.QuotedIdentifier) {
			idx := p.bump()
			e = &node{kind: e.kind, lo: e.lo, hi: idx + 1, children: e.children}
		}
	}
	return e, nil
}

func (p *astParser) parseColumnList() (*node, error) {
	first, err := p.parseSelectItem()
	if err != nil {
		return nil, err
	}
	lo, hi := first.lo, first.hi
	children := []*node{first}
	for p.atKind(syntax.Comma) {
		p.bump()
		next, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
		hi = next.hi
	}
	return &node{kind: syntax.ColumnList, lo: lo, hi: hi, children: children}, nil
}

func (p *astParser) parseFromClause() (*node, error) {
	lo := p.bump() // 'from'
	first, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	children := []*node{first}
	hi := first.hi
	for p.atKind(syntax.Comma) {
		p.bump()
		next, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
		hi = next.hi
	}
	for p.atJoinStart() {
		j, err := p.parseJoin()
		if err != nil {
			return nil, err
		}
		children = append(children, j)
		hi = j.hi
	}
	return &node{kind: syntax.FromClause, lo: lo, hi: hi, children: children}, nil
}

func (p *astParser) atJoinStart() bool {
	return p.atKeyword("join") || p.atKeyword("inner") || p.atKeyword("left") ||
		p.atKeyword("right") || p.atKeyword("full") || p.atKeyword("cross")
}

// parseJoin consumes a join-type keyword sequence, 'join', a table
// reference and an optional ON condition, all wrapped as a TableRef —
// the closest available node kind, since the enumeration has no
// dedicated join kind.
func (p *astParser) parseJoin() (*node, error) {
	lo := -1
	for p.atKeyword("inner") || p.atKeyword("left") || p.atKeyword("right") ||
		p.atKeyword("full") || p.atKeyword("outer") || p.atKeyword("cross") {
		idx := p.bump()
		if lo == -1 {
			lo = idx
		}
	}
	if !p.atKeyword("join") {
		return nil, p.fail("expected JOIN, found %q", describeTok(p.peek()))
	}
	joinIdx := p.bump()
	if lo == -1 {
		lo = joinIdx
	}
	table, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	children := []*node{table}
	hi := table.hi
	if p.atKeyword("on") {
		p.bump()
		cond, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		children = append(children, cond)
		hi = cond.hi
	}
	return &node{kind: syntax.TableRef, lo: lo, hi: hi, children: children}, nil
}

func (p *astParser) parseTableRef() (*node, error) {
	t := p.peek()
	if t.kind != syntax.Identifier && t.kind != syntax.QuotedIdentifier {
		return nil, p.fail("expected table name, found %q", describeTok(t))
	}
	lo := p.bump()
	hi := lo + 1
	for p.atKind(syntax.Dot) {
		p.bump()
		nt := p.peek()
		if nt.kind != syntax.Identifier && nt.kind != syntax.QuotedIdentifier {
			return nil, p.fail("expected identifier after '.'")
		}
		hi = p.bump() + 1
	}
	if p.atKeyword("as") {
		p.bump()
		if p.atKind(syntax.Identifier) {
			hi = p.bump() + 1
		}
	} else if p.atKind(syntax.Identifier) {
		hi = p.bump() + 1
	}
	return &node{kind: syntax.TableRef, lo: lo, hi: hi}, nil
}

func (p *astParser) parseWhereClause() (*node, error) {
	lo := p.bump() // 'where'
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &node{kind: syntax.WhereClause, lo: lo, hi: e.hi, children: []*node{e}}, nil
}

func (p *astParser) parseHavingClause() (*node, error) {
	lo := p.bump() // 'having'
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &node{kind: syntax.HavingClause, lo: lo, hi: e.hi, children: []*node{e}}, nil
}

func (p *astParser) parseGroupByClause() (*node, error) {
	lo := p.bump() // 'group'
	if !p.atKeyword("by") {
		return nil, p.fail("expected BY, found %q", describeTok(p.peek()))
	}
	p.bump()
	first, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	children := []*node{first}
	hi := first.hi
	for p.atKind(syntax.Comma) {
		p.bump()
		next, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
		hi = next.hi
	}
	return &node{kind: syntax.GroupByClause, lo: lo, hi: hi, children: children}, nil
}

func (p *astParser) parseOrderByClause() (*node, error) {
	lo := p.bump() // 'order'
	if !p.atKeyword("by") {
		return nil, p.fail("expected BY, found %q", describeTok(p.peek()))
	}
	p.bump()

	parseItem := func() (*node, error) {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.atKeyword("asc") || p.atKeyword("desc") {
			idx := p.bump()
			e = &node{kind: e.kind, lo: e.lo, hi: idx + 1, children: e.children}
		}
		return e, nil
	}

	first, err := parseItem()
	if err != nil {
		return nil, err
	}
	children := []*node{first}
	hi := first.hi
	for p.atKind(syntax.Comma) {
		p.bump()
		next, err := parseItem()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
		hi = next.hi
	}
	return &node{kind: syntax.OrderByClause, lo: lo, hi: hi, children: children}, nil
}

// binaryPrecedence reports whether t can act as a binary operator, and
// its precedence (higher binds tighter).
func binaryPrecedence(t scannedToken) (int, bool) {
	if t.kind == syntax.Keyword {
		switch strings.ToLower(t.raw) {
		case "or":
			return 1, true
		case "and":
			return 2, true
		case "is", "in", "like", "between":
			return 3, true
		}
		return 0, false
	}
	if t.kind == syntax.Operator {
		switch t.raw {
		case "=", "<>", "<", ">", "<=", ">=":
			return 3, true
		case "+", "-":
			return 4, true
		case "*", "/":
			return 5, true
		}
	}
	return 0, false
}

func (p *astParser) parseExpr(minPrec int) (*node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binaryPrecedence(p.peek())
		if !ok || prec < minPrec {
			return left, nil
		}
		p.bump() // operator token; lives in the gap between left and right
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &node{kind: syntax.BinaryExpr, lo: left.lo, hi: right.hi, children: []*node{left, right}}
	}
}

func (p *astParser) parsePrimary() (*node, error) {
	t := p.peek()
	switch {
	case t.kind == syntax.LeftParen:
		lo := p.bump()
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if !p.atKind(syntax.RightParen) {
			return nil, p.fail("expected ')', found %q", describeTok(p.peek()))
		}
		hi := p.bump() + 1
		return &node{kind: syntax.ParenExpr, lo: lo, hi: hi, children: []*node{inner}}, nil

	case t.kind == syntax.Number || t.kind == syntax.String:
		idx := p.bump()
		return &node{kind: syntax.Literal, lo: idx, hi: idx + 1}, nil

	case t.kind == syntax.Keyword && isLiteralKeyword(t.raw):
		idx := p.bump()
		return &node{kind: syntax.Literal, lo: idx, hi: idx + 1}, nil

	case t.kind == syntax.Identifier || t.kind == syntax.QuotedIdentifier || t.kind == syntax.VariableIdentifier:
		lo := p.bump()
		hi := lo + 1
		for p.atKind(syntax.Dot) {
			p.bump()
			nt := p.peek()
			if nt.kind != syntax.Identifier && nt.kind != syntax.QuotedIdentifier {
				return nil, p.fail("expected identifier after '.'")
			}
			hi = p.bump() + 1
		}
		return &node{kind: syntax.ColumnRef, lo: lo, hi: hi}, nil

	default:
		return nil, p.fail("unexpected token %q", describeTok(t))
	}
}

func isLiteralKeyword(raw string) bool {
	switch strings.ToLower(raw) {
	case "null", "true", "false":
		return true
	}
	return false
}

// emit replays a node tree (and the shared items slice it indexes
// into) as a single ordered stream of Builder events. Any item between
// two children that the node owns directly (an operator, a keyword, a
// trivia run) is fed with no surrounding node.
func emit(b *syntax.Builder, items []scannedToken, n *node) {
	if len(n.children) == 0 {
		b.EnterNode(n.kind, n.hi-n.lo)
		for i := n.lo; i < n.hi; i++ {
			b.Token(items[i])
		}
		b.ExitNode(n.kind)
		return
	}

	b.EnterNode(n.kind, len(n.children)*2)
	pos := n.lo
	for _, c := range n.children {
		for pos < c.lo {
			b.Token(items[pos])
			pos++
		}
		emit(b, items, c)
		pos = c.hi
	}
	for pos < n.hi {
		b.Token(items[pos])
		pos++
	}
	b.ExitNode(n.kind)
}

func feedRange(b *syntax.Builder, items []scannedToken, lo, hi int) {
	for i := lo; i < hi; i++ {
		b.Token(items[i])
	}
}

// parseFunc is the parser.Func this package registers: it builds a
// throwaway node tree over the whole input, then replays it into b in
// one linear pass.
func parseFunc(b *syntax.Builder, source string) error {
	items := scanAll(source)
	ap := &astParser{items: items, sig: buildSignificantIndex(items)}

	tops, err := ap.parseQuery()
	if err != nil {
		return err
	}

	pos := 0
	for _, n := range tops {
		feedRange(b, items, pos, n.lo)
		emit(b, items, n)
		pos = n.hi
	}

	if ap.pos < len(ap.sig) && items[ap.sig[ap.pos]].kind == syntax.Semicolon {
		semiIdx := ap.sig[ap.pos]
		feedRange(b, items, pos, semiIdx)
		b.Token(items[semiIdx])
		pos = semiIdx + 1
		ap.pos++
	}

	if ap.pos != len(ap.sig) {
		return ap.fail("unexpected trailing input near %q", describeTok(ap.peek()))
	}

	feedRange(b, items, pos, len(items))
	return nil
}

// Parse is the reference implementation of the external parser
// collaborator described in §6.1, good enough to exercise every lint
// rule and the top-level pipeline.
func Parse(source string) (*syntax.Tree, parser.ParseError) {
	return parser.Run(source, parseFunc)
}

// ParseFunc is parseFunc exported as a parser.Func, for registration
// in a dialect-to-parser table (package tidysql's parser registry).
var ParseFunc parser.Func = parseFunc
