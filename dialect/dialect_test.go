package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidysql/tidysql/dialect"
)

func TestParse(t *testing.T) {
	k, ok := dialect.Parse("Postgres")
	require.True(t, ok)
	assert.Equal(t, dialect.Postgres, k)

	_, ok = dialect.Parse("oracle")
	assert.False(t, ok)
}

func TestAllHaveNames(t *testing.T) {
	for _, k := range dialect.All {
		assert.NotEmpty(t, k.String())
		assert.True(t, k.Valid())
	}
}

func TestDefaultIsANSI(t *testing.T) {
	assert.Equal(t, dialect.ANSI, dialect.Kind(dialect.Default))
}

func TestExplicitUnionDialectsSubsetOfAll(t *testing.T) {
	for k := range dialect.ExplicitUnionDialects {
		assert.True(t, k.Valid())
	}
	assert.False(t, dialect.ExplicitUnionDialects[dialect.Postgres])
}
