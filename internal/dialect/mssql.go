package dialect

import (
	"database/sql"
	"fmt"
	"net/url"

	sq "github.com/Masterminds/squirrel"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) DriverName() string { return "sqlserver" }

func (d *MSSQLDialect) DefaultPort() int { return 1433 }

func (d *MSSQLDialect) DSN(c Conn) string {
	params := url.Values{}
	params.Set("database", c.Database)
	return urlDSN("sqlserver", c, d.DefaultPort(), "", params)
}

// Target is always the database: USE cannot select a schema.
func (d *MSSQLDialect) Target(c Conn, schema string) string {
	return c.Database
}

func (d *MSSQLDialect) UseStatement(target string) string {
	return fmt.Sprintf("USE %s", d.QuoteIdent(target))
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return quoteWith(name, "[", "]")
}

// CleanQuery uses DELETE: TRUNCATE is refused on tables referenced by a foreign key.
func (d *MSSQLDialect) CleanQuery(table string) string {
	return deleteQuery(d.QuoteIdent(table))
}

func (d *MSSQLDialect) ForeignKeysQuery() string {
	return `SELECT KCU1.TABLE_NAME, KCU1.COLUMN_NAME, KCU2.TABLE_NAME AS REF_TABLE, KCU2.COLUMN_NAME AS REF_COLUMN FROM INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS RC JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU1 ON RC.CONSTRAINT_NAME = KCU1.CONSTRAINT_NAME JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU2 ON RC.UNIQUE_CONSTRAINT_NAME = KCU2.CONSTRAINT_NAME WHERE KCU1.TABLE_SCHEMA = SCHEMA_NAME()`
}

func (d *MSSQLDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.AtP
}

func (d *MSSQLDialect) CleanHooks() (before, after string) { return "", "" }

func (d *MSSQLDialect) BeforeClean(tx *sql.Tx) error { return nil }

func (d *MSSQLDialect) AfterClean(tx *sql.Tx) error { return nil }
