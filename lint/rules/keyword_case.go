package rules

import (
	"fmt"

	"github.com/tidysql/tidysql/config"
	"github.com/tidysql/tidysql/lint"
	"github.com/tidysql/tidysql/syntax"
)

// keywordCase flags keyword tokens against a single required case, no
// document-level inference (the simpler sibling of
// inconsistent_capitalisation — see SPEC_FULL.md's supplemented
// features).
type keywordCase struct{}

func (keywordCase) Code() string { return "keyword_case" }

func (keywordCase) Matches(kind syntax.Kind) bool {
	return kind == syntax.Keyword
}

func (keywordCase) Level(cfg *config.Config) config.Severity {
	return cfg.Lints.KeywordCase.Level
}

func (keywordCase) Check(ctx *lint.Context, tok syntax.Token, diags *[]lint.Diagnostic) {
	opts := ctx.Config.Lints.KeywordCase.Options
	text := tok.Text()

	if config.IsIgnoredWord(text, opts.IgnoreWords, nil) {
		return
	}

	policy := opts.RequiredCase
	if isCorrectCase(text, policy) {
		return
	}

	fixed := applyCase(text, policy)
	fix := lint.SingleFix("Fix keyword case", lint.TextEdit{
		Range:       tok.Range(),
		Replacement: fixed,
	})

	diag := lint.Diagnostic{
		Code:     "keyword_case",
		Message:  fmt.Sprintf("Keywords must be %s.", policyDescription(policy)),
		Severity: ctx.Config.Lints.KeywordCase.Level,
		Range:    tok.Range(),
	}
	*diags = append(*diags, diag.WithFix(fix))
}
