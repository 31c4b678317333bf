package rules

import (
	"fmt"

	"github.com/tidysql/tidysql/config"
	"github.com/tidysql/tidysql/lint"
	"github.com/tidysql/tidysql/syntax"
)

// inconsistentCapitalisation flags keyword tokens that don't match the
// configured (or inferred) case policy (§4.6).
type inconsistentCapitalisation struct{}

func (inconsistentCapitalisation) Code() string { return "inconsistent_capitalisation" }

func (inconsistentCapitalisation) Matches(kind syntax.Kind) bool {
	return kind == syntax.Keyword
}

func (inconsistentCapitalisation) Level(cfg *config.Config) config.Severity {
	return cfg.Lints.InconsistentCapitalisation.Level
}

func (inconsistentCapitalisation) Check(ctx *lint.Context, tok syntax.Token, diags *[]lint.Diagnostic) {
	opts := ctx.Config.Lints.InconsistentCapitalisation.Options
	text := tok.Text()

	if config.IsIgnoredWord(text, opts.IgnoreWords, opts.IgnoreWordsRegex) {
		return
	}

	policy := resolvePolicy(opts.CapitalisationPolicy, ctx.Tree)
	if isCorrectCase(text, policy) {
		return
	}

	fixed := applyCase(text, policy)
	fix := lint.SingleFix("Fix keyword capitalisation", lint.TextEdit{
		Range:       tok.Range(),
		Replacement: fixed,
	})

	diag := lint.Diagnostic{
		Code:     "inconsistent_capitalisation",
		Message:  fmt.Sprintf("Keywords must be %s.", policyDescription(policy)),
		Severity: ctx.Config.Lints.InconsistentCapitalisation.Level,
		Range:    tok.Range(),
	}
	*diags = append(*diags, diag.WithFix(fix))
}

func policyDescription(p config.CapitalisationPolicy) string {
	switch p {
	case config.Upper:
		return "uppercase"
	case config.Lower, config.Snake:
		return "lowercase"
	case config.Pascal, config.Capitalise:
		return "capitalised"
	case config.Camel:
		return "camelCase"
	default:
		return "consistent"
	}
}

func resolvePolicy(policy config.CapitalisationPolicy, tree *syntax.Tree) config.CapitalisationPolicy {
	if policy != config.Consistent {
		return policy
	}
	return inferPolicy(tree)
}

// inferPolicy counts all-upper versus all-lower keyword tokens across
// the whole tree; mixed-case keywords don't vote. A tie favours Upper.
func inferPolicy(tree *syntax.Tree) config.CapitalisationPolicy {
	var upper, lower int
	for _, el := range tree.Root().DescendantsWithTokens() {
		if !el.IsToken || el.Token.Kind() != syntax.Keyword {
			continue
		}
		text := el.Token.Text()
		switch {
		case isAllUpper(text):
			upper++
		case isAllLower(text):
			lower++
		}
	}
	if upper >= lower {
		return config.Upper
	}
	return config.Lower
}

func isCorrectCase(text string, policy config.CapitalisationPolicy) bool {
	switch policy {
	case config.Upper:
		return isAllUpper(text)
	case config.Lower, config.Snake, config.Camel:
		return isAllLower(text)
	case config.Pascal, config.Capitalise:
		return isCapitalised(text)
	default:
		return true
	}
}

func applyCase(text string, policy config.CapitalisationPolicy) string {
	switch policy {
	case config.Upper:
		return toASCIIUpper(text)
	case config.Lower, config.Snake, config.Camel:
		return toASCIILower(text)
	case config.Pascal, config.Capitalise:
		return capitalise(text)
	default:
		return text
	}
}

func isAllUpper(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= 'a' && text[i] <= 'z' {
			return false
		}
	}
	return true
}

func isAllLower(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= 'A' && text[i] <= 'Z' {
			return false
		}
	}
	return true
}

// isCapitalised accepts the empty string vacuously — "first byte is
// uppercase" holds trivially when there is no first byte.
func isCapitalised(text string) bool {
	if len(text) == 0 {
		return true
	}
	if text[0] < 'A' || text[0] > 'Z' {
		return false
	}
	return isAllLower(text[1:])
}

func capitalise(text string) string {
	if len(text) == 0 {
		return text
	}
	out := []byte(toASCIILower(text))
	if out[0] >= 'a' && out[0] <= 'z' {
		out[0] -= 'a' - 'A'
	}
	return string(out)
}

func toASCIIUpper(text string) string {
	out := []byte(text)
	for i, b := range out {
		if b >= 'a' && b <= 'z' {
			out[i] = b - ('a' - 'A')
		}
	}
	return string(out)
}

func toASCIILower(text string) string {
	out := []byte(text)
	for i, b := range out {
		if b >= 'A' && b <= 'Z' {
			out[i] = b + ('a' - 'A')
		}
	}
	return string(out)
}
