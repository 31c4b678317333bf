// Package rules is TidySQL's fixed lint-rule registry (§4.3–§4.6):
// one file per rule, wired together by NodeRules/TokenRules.
package rules

import (
	"fmt"
	"strings"

	"github.com/tidysql/tidysql/config"
	"github.com/tidysql/tidysql/lint"
	"github.com/tidysql/tidysql/syntax"
)

// disallowNames flags tokens whose stripped text matches a configured
// name or regex (§4.4).
type disallowNames struct{}

func (disallowNames) Code() string { return "disallow_names" }

func (disallowNames) Matches(kind syntax.Kind) bool {
	return kind != syntax.LineComment && kind != syntax.BlockComment
}

func (disallowNames) Level(cfg *config.Config) config.Severity {
	return cfg.Lints.DisallowNames.Level
}

func (disallowNames) Check(ctx *lint.Context, tok syntax.Token, diags *[]lint.Diagnostic) {
	opts := ctx.Config.Lints.DisallowNames.Options
	if len(opts.Names) == 0 && len(opts.Regexes) == 0 {
		return
	}

	candidate := stripIdentifierQuotes(tok.Text())
	if candidate == "" {
		return
	}

	nameMatch := false
	for _, name := range opts.Names {
		if strings.EqualFold(name, candidate) {
			nameMatch = true
			break
		}
	}

	regexMatch := false
	if !nameMatch {
		for _, re := range opts.CompiledRegexes() {
			if re.MatchString(candidate) {
				regexMatch = true
				break
			}
		}
	}

	if !nameMatch && !regexMatch {
		return
	}

	*diags = append(*diags, lint.Diagnostic{
		Code:     "disallow_names",
		Message:  fmt.Sprintf("Disallowed name: %s.", candidate),
		Severity: ctx.Config.Lints.DisallowNames.Level,
		Range:    tok.Range(),
	})
}

func stripIdentifierQuotes(text string) string {
	if len(text) < 2 {
		return text
	}
	first, last := text[0], text[len(text)-1]
	switch {
	case first == '"' && last == '"':
	case first == '`' && last == '`':
	case first == '[' && last == ']':
	default:
		return text
	}
	return text[1 : len(text)-1]
}
