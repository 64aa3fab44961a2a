package dialect

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	go_ora "github.com/sijms/go-ora/v2"
)

type OracleDialect struct{}

func (d *OracleDialect) DriverName() string { return "oracle" }

func (d *OracleDialect) DefaultPort() int { return 1521 }

// DSN treats Database as the service name.
func (d *OracleDialect) DSN(c Conn) string {
	port := c.Port
	if port == 0 {
		port = d.DefaultPort()
	}
	return go_ora.BuildUrl(c.Host, port, c.Database, c.User, c.Password, c.Params)
}

// Target defaults to the connecting user's schema.
func (d *OracleDialect) Target(c Conn, schema string) string {
	if schema != "" {
		return strings.ToUpper(schema)
	}
	return strings.ToUpper(c.User)
}

func (d *OracleDialect) UseStatement(target string) string {
	return fmt.Sprintf("ALTER SESSION SET CURRENT_SCHEMA = %s", target)
}

// QuoteIdent leaves names unquoted so Oracle folds them to upper case.
func (d *OracleDialect) QuoteIdent(name string) string {
	return name
}

func (d *OracleDialect) CleanQuery(table string) string {
	return deleteQuery(table)
}

func (d *OracleDialect) ForeignKeysQuery() string {
	return `
SELECT
    c.TABLE_NAME,
    cc.COLUMN_NAME,
    r.TABLE_NAME AS REF_TABLE,
    rcc.COLUMN_NAME AS REF_COLUMN
FROM USER_CONSTRAINTS c
JOIN USER_CONS_COLUMNS cc
    ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME
    AND c.OWNER = cc.OWNER
JOIN USER_CONSTRAINTS r
    ON c.R_CONSTRAINT_NAME = r.CONSTRAINT_NAME
    AND c.R_OWNER = r.OWNER
JOIN USER_CONS_COLUMNS rcc
    ON r.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME
    AND r.OWNER = rcc.OWNER
    AND cc.POSITION = rcc.POSITION
WHERE c.CONSTRAINT_TYPE = 'R'`
}

func (d *OracleDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Colon
}

func (d *OracleDialect) CleanHooks() (before, after string) { return "", "" }

func (d *OracleDialect) BeforeClean(tx *sql.Tx) error { return nil }

func (d *OracleDialect) AfterClean(tx *sql.Tx) error { return nil }
