package rules

import (
	"strings"

	"github.com/tidysql/tidysql/config"
	"github.com/tidysql/tidysql/dialect"
	"github.com/tidysql/tidysql/lint"
	"github.com/tidysql/tidysql/syntax"
)

// explicitUnion flags SetOperator nodes spelling a bare "union" with
// no ALL/DISTINCT qualifier, on dialects where that's ambiguous (§4.5).
type explicitUnion struct{}

func (explicitUnion) Code() string { return "explicit_union" }

func (explicitUnion) Target() syntax.Kind { return syntax.SetOperator }

func (explicitUnion) Level(cfg *config.Config) config.Severity {
	return cfg.Lints.ExplicitUnion.Level
}

func (explicitUnion) Check(ctx *lint.Context, node syntax.Node, diags *[]lint.Diagnostic) {
	if !dialect.ExplicitUnionDialects[ctx.Dialect] {
		return
	}

	tok, ok := unionToken(node)
	if !ok {
		return
	}

	upper := strings.ToUpper(node.Text())
	if !strings.Contains(upper, "UNION") {
		return
	}
	if strings.Contains(upper, "ALL") || strings.Contains(upper, "DISTINCT") {
		return
	}

	diag := lint.Diagnostic{
		Code:     "explicit_union",
		Message:  "Use UNION DISTINCT or UNION ALL.",
		Severity: ctx.Config.Lints.ExplicitUnion.Level,
		Range:    tok.Range(),
	}
	diag = diag.WithFix(unionFix(tok))
	*diags = append(*diags, diag)
}

func unionToken(node syntax.Node) (syntax.Token, bool) {
	for _, el := range node.ChildrenWithTokens() {
		if el.IsToken && strings.EqualFold(el.Token.Text(), "union") {
			return el.Token, true
		}
	}
	return syntax.Token{}, false
}

func unionFix(tok syntax.Token) lint.Fix {
	suffix := " DISTINCT"
	if !hasASCIIUpper(tok.Text()) {
		suffix = " distinct"
	}
	end := tok.Range().End
	return lint.SingleFix("Add DISTINCT to UNION", lint.TextEdit{
		Range:       syntax.Range{Start: end, End: end},
		Replacement: suffix,
	})
}

func hasASCIIUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}
