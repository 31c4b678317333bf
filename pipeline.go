// Package tidysql is the top-level pipeline (§4.8): translating a
// Config into a parse call, running the lint dispatcher, and applying
// fixes — the single entry point external collaborators (a CLI, an
// LSP server, a Wasm bridge) drive.
package tidysql

import (
	"fmt"

	"github.com/tidysql/tidysql/config"
	"github.com/tidysql/tidysql/dialect"
	"github.com/tidysql/tidysql/edit"
	"github.com/tidysql/tidysql/lint"
	"github.com/tidysql/tidysql/lint/rules"
	"github.com/tidysql/tidysql/parser"
	"github.com/tidysql/tidysql/parser/ansi"
	"github.com/tidysql/tidysql/syntax"
)

// parsers is the dialect-to-parser registry (§6.1). Dialects without a
// real grammar fall back to the ANSI reference parser — good enough to
// drive every rule, not a claim of dialect-correctness.
var parsers = map[dialect.Kind]parser.Func{
	dialect.ANSI: ansi.ParseFunc,
}

// RegisterParser installs f as the parser for kind, overriding any
// existing registration. Intended for callers wiring in a real
// dialect-specific grammar.
func RegisterParser(kind dialect.Kind, f parser.Func) {
	parsers[kind] = f
}

// FixErrorKind tags why FixWithConfig failed.
type FixErrorKind int

const (
	FixErrorParse FixErrorKind = iota
	FixErrorApply
)

// FixError wraps either a parse failure or an edit-application
// failure encountered by FixWithConfig (§7).
type FixError struct {
	Kind  FixErrorKind
	Parse parser.ParseError
	Apply error
}

func (e *FixError) Error() string {
	switch e.Kind {
	case FixErrorParse:
		return fmt.Sprintf("tidysql: fix failed: %s", e.Parse)
	default:
		return fmt.Sprintf("tidysql: fix failed: %s", e.Apply)
	}
}

func (e *FixError) Unwrap() error {
	if e.Kind == FixErrorParse {
		return e.Parse
	}
	return e.Apply
}

func resolveDialect(cfg *config.Config) (dialect.Kind, bool) {
	if cfg.Core.Dialect == "" {
		return dialect.Default, true
	}
	return dialect.Parse(cfg.Core.Dialect)
}

func parse(source string, kind dialect.Kind) (*syntax.Tree, parser.ParseError) {
	f, ok := parsers[kind]
	if !ok && kind.Valid() {
		f, ok = ansi.ParseFunc, true
	}
	if !ok {
		return nil, &parser.UnknownDialectError{Dialect: kind}
	}
	return parser.Run(source, f)
}

// CheckWithConfig runs the full lint pipeline over source (§4.8): on a
// parse failure it synthesises diagnostics per §7 instead of running
// any rule.
func CheckWithConfig(source string, cfg *config.Config) []lint.Diagnostic {
	kind, ok := resolveDialect(cfg)
	if !ok {
		return parseErrorDiagnostics(&parser.UnknownDialectError{Dialect: kind})
	}

	tree, perr := parse(source, kind)
	if perr != nil {
		return parseErrorDiagnostics(perr)
	}

	ctx := &lint.Context{Dialect: kind, Tree: tree, Config: cfg}
	return lint.Run(ctx, rules.NodeRules(), rules.TokenRules())
}

// FixWithConfig parses and lints source, then applies every emitted
// fix's edits in one atomic pass (§4.8). Returns the input unchanged
// if no rule offered a fix.
func FixWithConfig(source string, cfg *config.Config) (string, *FixError) {
	kind, ok := resolveDialect(cfg)
	if !ok {
		return "", &FixError{Kind: FixErrorParse, Parse: &parser.UnknownDialectError{Dialect: kind}}
	}

	tree, perr := parse(source, kind)
	if perr != nil {
		return "", &FixError{Kind: FixErrorParse, Parse: perr}
	}

	ctx := &lint.Context{Dialect: kind, Tree: tree, Config: cfg}
	diags := lint.Run(ctx, rules.NodeRules(), rules.TokenRules())

	var edits []lint.TextEdit
	for _, d := range diags {
		if d.Fix == nil {
			continue
		}
		edits = append(edits, d.Fix.Edits...)
	}
	if len(edits) == 0 {
		return source, nil
	}

	fixed, err := edit.ApplyEdits(source, edits)
	if err != nil {
		return "", &FixError{Kind: FixErrorApply, Apply: err}
	}
	return fixed, nil
}

// parseErrorDiagnostics lowers a parser.ParseError to the fixed
// diagnostic codes §7 names. All are severity Error; no lint rule
// runs when the parser fails.
func parseErrorDiagnostics(perr parser.ParseError) []lint.Diagnostic {
	switch e := perr.(type) {
	case *parser.UnknownDialectError:
		return []lint.Diagnostic{{
			Code:     "unknown_dialect",
			Message:  e.Error(),
			Severity: config.Error,
		}}
	case *parser.LexError:
		out := make([]lint.Diagnostic, 0, len(e.Issues))
		for _, issue := range e.Issues {
			out = append(out, lint.Diagnostic{
				Code:     "lex_error",
				Message:  issue.Message,
				Severity: config.Error,
				Range:    issue.Range,
			})
		}
		return out
	case *parser.ParseFailureError:
		d := lint.Diagnostic{
			Code:     "parse_error",
			Message:  e.Description,
			Severity: config.Error,
		}
		if e.Range != nil {
			d.Range = *e.Range
		}
		return []lint.Diagnostic{d}
	case *parser.UnparsableError:
		out := make([]lint.Diagnostic, 0, len(e.Ranges))
		for _, r := range e.Ranges {
			out = append(out, lint.Diagnostic{
				Code:     "unparsable",
				Message:  "Unparsable section.",
				Severity: config.Error,
				Range:    r,
			})
		}
		return out
	case *parser.PanicError:
		return []lint.Diagnostic{{
			Code:     "parser_panic",
			Message:  e.Error(),
			Severity: config.Error,
		}}
	default:
		return []lint.Diagnostic{{
			Code:     "parse_error",
			Message:  perr.Error(),
			Severity: config.Error,
		}}
	}
}
