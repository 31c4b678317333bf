// Package parser defines the contract between TidySQL's core and the
// external lexer/parser collaborator (dialect-specific SQL grammars are
// out of scope for the core itself). It also ships one reference
// implementation, parser/ansi, good enough to drive every lint rule and
// the top-level pipeline without a real multi-dialect grammar.
package parser

import (
	"fmt"

	"github.com/tidysql/tidysql/dialect"
	"github.com/tidysql/tidysql/syntax"
)

// ParseError is the sum type an external parser reports back through
// (§6.1). Concrete variants below are the only implementations.
type ParseError interface {
	error
	isParseError()
}

// LexIssue is one error surfaced while scanning, before any tree could
// be built.
type LexIssue struct {
	Message string
	Range   syntax.Range
}

// UnknownDialectError is returned when no parser is registered for the
// requested dialect.
type UnknownDialectError struct {
	Dialect dialect.Kind
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("tidysql: no parser registered for dialect %s", e.Dialect)
}
func (*UnknownDialectError) isParseError() {}

// LexError carries one or more scanning failures.
type LexError struct {
	Issues []LexIssue
}

func (e *LexError) Error() string {
	if len(e.Issues) == 0 {
		return "tidysql: lex error"
	}
	return fmt.Sprintf("tidysql: lex error: %s", e.Issues[0].Message)
}
func (*LexError) isParseError() {}

// ParseFailureError is one grammar-level failure, optionally located.
type ParseFailureError struct {
	Description string
	Range       *syntax.Range
}

func (e *ParseFailureError) Error() string {
	return fmt.Sprintf("tidysql: parse error: %s", e.Description)
}
func (*ParseFailureError) isParseError() {}

// UnparsableError reports that a tree was built, but one or more
// Unparsable nodes remain in it.
type UnparsableError struct {
	Ranges []syntax.Range
}

func (e *UnparsableError) Error() string {
	return fmt.Sprintf("tidysql: %d unparsable section(s)", len(e.Ranges))
}
func (*UnparsableError) isParseError() {}

// PanicError wraps a recovered panic from the parser.
type PanicError struct {
	Message string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("tidysql: parser panicked: %s", e.Message)
}
func (*PanicError) isParseError() {}

// Func is a dialect-specific scan+parse routine that drives a builder.
// It may panic; always invoke it through Run rather than calling it
// directly, so a panic is converted to a PanicError instead of
// corrupting the arena (§4.1 Finalisation, §5).
type Func func(b *syntax.Builder, source string) error

// Run drives f to populate a fresh builder over source, handling the
// three failure paths the core must distinguish: a returned error
// (lex/parse failure), a panic, and Unparsable nodes left in an
// otherwise successfully built tree.
func Run(source string, f Func) (*syntax.Tree, ParseError) {
	b := syntax.NewBuilder(source)

	tree, perr := runGuarded(b, source, f)
	if perr != nil {
		return nil, perr
	}

	if ranges := unparsableRanges(tree); len(ranges) > 0 {
		return tree, &UnparsableError{Ranges: ranges}
	}
	return tree, nil
}

func runGuarded(b *syntax.Builder, source string, f Func) (tree *syntax.Tree, perr ParseError) {
	defer func() {
		if r := recover(); r != nil {
			b.Abandon()
			tree = nil
			perr = &PanicError{Message: fmt.Sprint(r)}
		}
	}()

	if err := f(b, source); err != nil {
		b.Abandon()
		if pe, ok := err.(ParseError); ok {
			return nil, pe
		}
		return nil, &ParseFailureError{Description: err.Error()}
	}

	t, err := b.Finish()
	if err != nil {
		return nil, &ParseFailureError{Description: err.Error()}
	}
	return t, nil
}

func unparsableRanges(t *syntax.Tree) []syntax.Range {
	var out []syntax.Range
	for _, n := range t.Root().Descendants() {
		if n.Kind() == syntax.Unparsable {
			out = append(out, n.Range())
		}
	}
	return out
}
