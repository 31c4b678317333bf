package lint

import "github.com/tidysql/tidysql/config"

// Run walks ctx.Tree's root with DescendantsWithTokens, dispatching
// each node to every nodeRule whose Target matches and each token to
// every tokenRule whose Matches predicate accepts, skipping any rule
// whose effective severity is config.Allow (§4.3). Diagnostics come
// back in source order, with same-position rules in registry order —
// the dispatcher does not dedupe, reorder, or filter beyond the Allow
// gate.
func Run(ctx *Context, nodeRules []NodeRule, tokenRules []TokenRule) []Diagnostic {
	var diags []Diagnostic
	for _, el := range ctx.Tree.Root().DescendantsWithTokens() {
		if el.IsToken {
			for _, r := range tokenRules {
				if !r.Matches(el.Token.Kind()) {
					continue
				}
				if r.Level(ctx.Config) == config.Allow {
					continue
				}
				r.Check(ctx, el.Token, &diags)
			}
			continue
		}
		for _, r := range nodeRules {
			if r.Target() != el.Node.Kind() {
				continue
			}
			if r.Level(ctx.Config) == config.Allow {
				continue
			}
			r.Check(ctx, el.Node, &diags)
		}
	}
	return diags
}
