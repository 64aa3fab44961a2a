package dialect

import (
	"database/sql"
	"fmt"
	"net/url"

	sq "github.com/Masterminds/squirrel"
)

// PostgresDialect serves both lib/pq ("postgres") and pgx ("pgx") drivers.
type PostgresDialect struct {
	driver string
}

func (d *PostgresDialect) DriverName() string {
	if d.driver == "" {
		return "postgres"
	}
	return d.driver
}

func (d *PostgresDialect) DefaultPort() int { return 5432 }

func (d *PostgresDialect) DSN(c Conn) string {
	params := url.Values{}
	params.Set("sslmode", "disable")
	return urlDSN("postgres", c, d.DefaultPort(), "/"+c.Database, params)
}

// Target is a schema, not a database: the connection already selects the database.
func (d *PostgresDialect) Target(c Conn, schema string) string {
	if schema == "" {
		return "public"
	}
	return schema
}

func (d *PostgresDialect) UseStatement(target string) string {
	return fmt.Sprintf("SET search_path TO %s", d.QuoteIdent(target))
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`, `"`)
}

func (d *PostgresDialect) CleanQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s CASCADE", d.QuoteIdent(table))
}

func (d *PostgresDialect) ForeignKeysQuery() string {
	return `SELECT kcu.table_name, kcu.column_name, ccu.table_name AS referenced_table_name, ccu.column_name AS referenced_column_name FROM information_schema.key_column_usage kcu JOIN information_schema.constraint_column_usage ccu ON kcu.constraint_name = ccu.constraint_name JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name WHERE kcu.table_schema = current_schema() AND tc.constraint_type = 'FOREIGN KEY'`
}

func (d *PostgresDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Dollar
}

func (d *PostgresDialect) CleanHooks() (before, after string) {
	return "SET CONSTRAINTS ALL DEFERRED", "SET CONSTRAINTS ALL IMMEDIATE"
}

func (d *PostgresDialect) BeforeClean(tx *sql.Tx) error {
	before, _ := d.CleanHooks()
	_, err := tx.Exec(before)
	return err
}

func (d *PostgresDialect) AfterClean(tx *sql.Tx) error {
	_, after := d.CleanHooks()
	_, err := tx.Exec(after)
	return err
}
