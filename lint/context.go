// Package lint is TidySQL's rule dispatcher: a single preorder walk
// over a syntax.Tree that hands each node or token to every registered
// rule whose matcher accepts it (§4.3).
package lint

import (
	"github.com/tidysql/tidysql/config"
	"github.com/tidysql/tidysql/dialect"
	"github.com/tidysql/tidysql/syntax"
)

// Context is what every rule receives alongside the node or token it
// is asked to check: the active dialect, a shared tree reference, and
// the config. Rules are pure functions of Context — they must not
// mutate Tree or Config.
type Context struct {
	Dialect dialect.Kind
	Tree    *syntax.Tree
	Config  *config.Config
}

// NodeRule is a rule that fires on nodes of one specific kind.
type NodeRule interface {
	Code() string
	Target() syntax.Kind
	Level(cfg *config.Config) config.Severity
	Check(ctx *Context, node syntax.Node, diags *[]Diagnostic)
}

// TokenRule is a rule that fires on every token whose kind its
// Matches predicate accepts.
type TokenRule interface {
	Code() string
	Matches(kind syntax.Kind) bool
	Level(cfg *config.Config) config.Severity
	Check(ctx *Context, tok syntax.Token, diags *[]Diagnostic)
}
