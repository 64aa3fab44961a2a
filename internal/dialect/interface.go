package dialect

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// Conn holds the connection settings shared by every driver.
type Conn struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Params   map[string]string
}

// Dialect abstracts database-specific operations.
type Dialect interface {
	// Connection
	DriverName() string
	DefaultPort() int
	DSN(c Conn) string

	// Artifact text
	Target(c Conn, schema string) string
	UseStatement(target string) string
	QuoteIdent(name string) string

	// Query Generation
	CleanQuery(table string) string
	ForeignKeysQuery() string
	PlaceholderFormat() sq.PlaceholderFormat

	// Execution Hooks (clean)
	// CleanHooks returns the statements BeforeClean and AfterClean run; empty when none.
	CleanHooks() (before, after string)
	BeforeClean(tx *sql.Tx) error
	AfterClean(tx *sql.Tx) error
}
