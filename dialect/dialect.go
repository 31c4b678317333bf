// Package dialect enumerates the SQL dialects TidySQL understands.
package dialect

// Kind is a closed enumeration of the SQL dialects the core can be
// configured for. The zero value is not a valid Kind; use Default.
type Kind int

const (
	ANSI Kind = iota + 1
	Athena
	BigQuery
	ClickHouse
	Databricks
	DuckDB
	MySQL
	Postgres
	Redshift
	Snowflake
	SparkSQL
	SQLite
	Trino
	TSQL
)

// Default is the dialect used when a config does not name one.
const Default = ANSI

func (k Kind) String() string {
	return kindToName[k]
}

// Valid reports whether k is one of the 14 known dialects.
func (k Kind) Valid() bool {
	_, ok := kindToName[k]
	return ok
}

var kindToName = map[Kind]string{
	ANSI:       "ansi",
	Athena:     "athena",
	BigQuery:   "bigquery",
	ClickHouse: "clickhouse",
	Databricks: "databricks",
	DuckDB:     "duckdb",
	MySQL:      "mysql",
	Postgres:   "postgres",
	Redshift:   "redshift",
	Snowflake:  "snowflake",
	SparkSQL:   "sparksql",
	SQLite:     "sqlite",
	Trino:      "trino",
	TSQL:       "tsql",
}

var nameToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(kindToName))
	for k, name := range kindToName {
		m[name] = k
	}
	return m
}()

// Parse maps a lower/upper-case dialect name (as found in a config file)
// to its Kind. An unknown name returns ok=false.
func Parse(name string) (k Kind, ok bool) {
	k, ok = nameToKind[lower(name)]
	return
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// All lists every dialect in declaration order, for config validation
// and CLI help text.
var All = []Kind{
	ANSI, Athena, BigQuery, ClickHouse, Databricks, DuckDB, MySQL,
	Postgres, Redshift, Snowflake, SparkSQL, SQLite, Trino, TSQL,
}

// ExplicitUnionDialects is the set of dialects the explicit-union rule
// runs on (§4.5 of the spec).
var ExplicitUnionDialects = map[Kind]bool{
	ANSI:       true,
	BigQuery:   true,
	ClickHouse: true,
	Databricks: true,
	MySQL:      true,
	Redshift:   true,
	Snowflake:  true,
	Trino:      true,
}

func init() {
	for _, k := range All {
		if kindToName[k] == "" {
			panic("dialect: missing name for kind")
		}
	}
}
