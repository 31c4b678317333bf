package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidysql/tidysql/config"
	"github.com/tidysql/tidysql/dialect"
	"github.com/tidysql/tidysql/edit"
	"github.com/tidysql/tidysql/lint"
	"github.com/tidysql/tidysql/lint/rules"
	"github.com/tidysql/tidysql/parser/ansi"
)

func run(t *testing.T, source string, cfg *config.Config, dlct dialect.Kind) []lint.Diagnostic {
	t.Helper()
	tree, err := ansi.Parse(source)
	require.Nil(t, err)
	ctx := &lint.Context{Dialect: dlct, Tree: tree, Config: cfg}
	return lint.Run(ctx, rules.NodeRules(), rules.TokenRules())
}

// S1 — uppercase keywords (consistent).
func TestInconsistentCapitalisationConsistentTieBreaksUpper(t *testing.T) {
	cfg := &config.Config{}
	cfg.Lints.InconsistentCapitalisation.Level = config.Warn
	cfg.Lints.DisallowNames.Level = config.Allow
	cfg.Lints.ExplicitUnion.Level = config.Allow
	cfg.Lints.KeywordCase.Level = config.Allow

	// Two all-upper keywords (SELECT, FROM) against two all-lower ones
	// (where, and): a tie, so the inferred policy is Upper.
	source := "SELECT a FROM t where a = 1 and b = 2"
	diags := run(t, source, cfg, dialect.ANSI)
	require.Len(t, diags, 2)
	for _, d := range diags {
		require.Equal(t, "inconsistent_capitalisation", d.Code)
		require.Equal(t, "Keywords must be uppercase.", d.Message)
	}

	var edits []lint.TextEdit
	for _, d := range diags {
		edits = append(edits, d.Fix.Edits...)
	}
	fixed, err := edit.ApplyEdits(source, edits)
	require.NoError(t, err)
	require.Equal(t, "SELECT a FROM t WHERE a = 1 AND b = 2", fixed)
}

// S2 — disallowed name with identifier quotes.
func TestDisallowNamesQuotedIdentifier(t *testing.T) {
	cfg := &config.Config{}
	cfg.Lints.DisallowNames.Level = config.Warn
	cfg.Lints.DisallowNames.Options.Names = []string{"forbidden"}
	cfg.Lints.InconsistentCapitalisation.Level = config.Allow
	cfg.Lints.ExplicitUnion.Level = config.Allow
	cfg.Lints.KeywordCase.Level = config.Allow

	diags := run(t, `select "forbidden" from t`, cfg, dialect.ANSI)
	require.Len(t, diags, 1)
	require.Equal(t, "disallow_names", diags[0].Code)
	require.Equal(t, "Disallowed name: forbidden.", diags[0].Message)
	require.Nil(t, diags[0].Fix)
}

// S3 — explicit union.
func TestExplicitUnionFlaggedOnANSI(t *testing.T) {
	cfg := &config.Config{}
	cfg.Lints.ExplicitUnion.Level = config.Warn
	cfg.Lints.DisallowNames.Level = config.Allow
	cfg.Lints.InconsistentCapitalisation.Level = config.Allow
	cfg.Lints.KeywordCase.Level = config.Allow

	source := "select 1 union select 2"
	diags := run(t, source, cfg, dialect.ANSI)
	require.Len(t, diags, 1)
	require.Equal(t, "explicit_union", diags[0].Code)
	require.Equal(t, "Use UNION DISTINCT or UNION ALL.", diags[0].Message)
	require.NotNil(t, diags[0].Fix)

	fixed, err := edit.ApplyEdits(source, diags[0].Fix.Edits)
	require.NoError(t, err)
	require.Equal(t, "select 1 union distinct select 2", fixed)
}

// S4 — explicit union suppressed by dialect.
func TestExplicitUnionSuppressedOnPostgres(t *testing.T) {
	cfg := &config.Config{}
	cfg.Lints.ExplicitUnion.Level = config.Warn
	cfg.Lints.DisallowNames.Level = config.Allow
	cfg.Lints.InconsistentCapitalisation.Level = config.Allow
	cfg.Lints.KeywordCase.Level = config.Allow

	diags := run(t, "select 1 union select 2", cfg, dialect.Postgres)
	require.Empty(t, diags)
}

func TestExplicitUnionAllNotFlagged(t *testing.T) {
	cfg := &config.Config{}
	cfg.Lints.ExplicitUnion.Level = config.Warn
	diags := run(t, "select 1 union all select 2", cfg, dialect.ANSI)
	for _, d := range diags {
		require.NotEqual(t, "explicit_union", d.Code)
	}
}

func TestInconsistentCapitalisationIgnoreWords(t *testing.T) {
	cfg := &config.Config{}
	cfg.Lints.InconsistentCapitalisation.Level = config.Warn
	cfg.Lints.InconsistentCapitalisation.Options.CapitalisationPolicy = config.Upper
	cfg.Lints.InconsistentCapitalisation.Options.IgnoreWords = []string{"from"}
	cfg.Lints.DisallowNames.Level = config.Allow
	cfg.Lints.ExplicitUnion.Level = config.Allow
	cfg.Lints.KeywordCase.Level = config.Allow

	diags := run(t, "select a from t", cfg, dialect.ANSI)
	require.Len(t, diags, 1)
	require.Equal(t, "SELECT", func() string {
		return diags[0].Fix.Edits[0].Replacement
	}())
}

func TestKeywordCaseLowerPolicy(t *testing.T) {
	cfg := &config.Config{}
	cfg.Lints.KeywordCase.Level = config.Warn
	cfg.Lints.KeywordCase.Options.RequiredCase = config.Lower
	cfg.Lints.DisallowNames.Level = config.Allow
	cfg.Lints.ExplicitUnion.Level = config.Allow
	cfg.Lints.InconsistentCapitalisation.Level = config.Allow

	diags := run(t, "SELECT a FROM t", cfg, dialect.ANSI)
	require.Len(t, diags, 2)
	for _, d := range diags {
		require.Equal(t, "keyword_case", d.Code)
		require.Equal(t, "Keywords must be lowercase.", d.Message)
	}
}

func TestAllowSeverityDisablesRule(t *testing.T) {
	cfg := &config.Config{}
	cfg.Lints.DisallowNames.Level = config.Allow
	cfg.Lints.DisallowNames.Options.Names = []string{"forbidden"}
	cfg.Lints.InconsistentCapitalisation.Level = config.Allow
	cfg.Lints.ExplicitUnion.Level = config.Allow
	cfg.Lints.KeywordCase.Level = config.Allow

	diags := run(t, `select "forbidden" from t`, cfg, dialect.ANSI)
	require.Empty(t, diags)
}
