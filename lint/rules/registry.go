package rules

import "github.com/tidysql/tidysql/lint"

// NodeRules is the fixed registry of node-targeted rules, in dispatch
// order (§4.3, §9 "Dispatcher shape": adding a rule is one edit here).
func NodeRules() []lint.NodeRule {
	return []lint.NodeRule{
		explicitUnion{},
	}
}

// TokenRules is the fixed registry of token-targeted rules, in
// dispatch order.
func TokenRules() []lint.TokenRule {
	return []lint.TokenRule{
		disallowNames{},
		inconsistentCapitalisation{},
		keywordCase{},
	}
}
