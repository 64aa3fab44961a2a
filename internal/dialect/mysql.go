package dialect

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	sq "github.com/Masterminds/squirrel"
)

type MysqlDialect struct{}

func (d *MysqlDialect) DriverName() string { return "mysql" }

func (d *MysqlDialect) DefaultPort() int { return 3306 }

func (d *MysqlDialect) DSN(c Conn) string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = hostPort(c, d.DefaultPort())
	cfg.DBName = c.Database
	if len(c.Params) > 0 {
		cfg.Params = c.Params
	}
	return cfg.FormatDSN()
}

func (d *MysqlDialect) Target(c Conn, schema string) string {
	if schema != "" {
		return schema
	}
	return c.Database
}

func (d *MysqlDialect) UseStatement(target string) string {
	return fmt.Sprintf("USE %s", d.QuoteIdent(target))
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return quoteWith(name, "`", "`")
}

func (d *MysqlDialect) CleanQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

// ForeignKeysQuery lists (table, column, referenced table, referenced column) in the current database.
func (d *MysqlDialect) ForeignKeysQuery() string {
	return `SELECT TABLE_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME FROM information_schema.KEY_COLUMN_USAGE WHERE TABLE_SCHEMA = DATABASE() AND REFERENCED_TABLE_NAME IS NOT NULL`
}

func (d *MysqlDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (d *MysqlDialect) CleanHooks() (before, after string) {
	return "SET FOREIGN_KEY_CHECKS = 0", "SET FOREIGN_KEY_CHECKS = 1"
}

func (d *MysqlDialect) BeforeClean(tx *sql.Tx) error {
	before, _ := d.CleanHooks()
	_, err := tx.Exec(before)
	return err
}

func (d *MysqlDialect) AfterClean(tx *sql.Tx) error {
	_, after := d.CleanHooks()
	_, err := tx.Exec(after)
	return err
}
