// Package artifact owns the naming convention shared by the writer and the
// loader: MOCK_<Table>_DATA.sql, one file per table.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	prefix = "MOCK_"
	suffix = "_DATA.sql"
)

// FileName returns the artifact file name for table.
func FileName(table string) string {
	return prefix + table + suffix
}

// TableName is the inverse of FileName. ok is false for files that do not
// follow the convention.
func TableName(file string) (table string, ok bool) {
	if !strings.HasPrefix(file, prefix) || !strings.HasSuffix(file, suffix) {
		return "", false
	}
	table = strings.TrimSuffix(strings.TrimPrefix(file, prefix), suffix)
	if table == "" {
		return "", false
	}
	return table, true
}

// Path joins dir and the artifact file name of table.
func Path(dir, table string) string {
	return filepath.Join(dir, FileName(table))
}

// Write creates dir if needed and replaces the artifact of table wholesale.
func Write(dir, table, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	path := Path(dir, table)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", path, err)
	}
	return path, nil
}

// Discover returns the table names of every artifact in dir, sorted.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read artifact dir: %w", err)
	}

	var tables []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if table, ok := TableName(e.Name()); ok {
			tables = append(tables, table)
		}
	}
	sort.Strings(tables)
	return tables, nil
}
