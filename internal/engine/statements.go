package engine

import (
	"fmt"
	"strings"

	"db-seed/internal/dialect"
)

// Writer renders artifacts for one store. Target is the database (or schema)
// selected by the leading statement of every artifact.
type Writer struct {
	Dialect dialect.Dialect
	Target  string
}

// Statements renders one INSERT per row, naming every header and quoting every
// value as text. Embedded single quotes are doubled; nothing else is escaped.
func (w Writer) Statements(t *RawTable, table string) string {
	cols := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		cols[i] = w.Dialect.QuoteIdent(h)
	}
	return w.render(table, cols, t.Rows)
}

func (w Writer) render(table string, cols []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(w.Dialect.UseStatement(w.Target))
	b.WriteString(";\n\n")

	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES (", w.Dialect.QuoteIdent(table), strings.Join(cols, ", "))
	for _, row := range rows {
		b.WriteString(prefix)
		for i, v := range row {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(QuoteValue(v))
		}
		b.WriteString(");\n")
	}
	return b.String()
}

// QuoteValue renders v as a single-quoted text literal.
func QuoteValue(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

var closers = map[rune]rune{'\'': '\'', '"': '"', '`': '`', '[': ']'}

// SplitStatements splits artifact text on ';' outside quoted literals and
// identifiers, trimming each fragment and dropping blank ones.
func SplitStatements(text string) []string {
	var (
		stmts []string
		start int
		quote rune
	)
	flush := func(end int) {
		if s := strings.TrimSpace(text[start:end]); s != "" {
			stmts = append(stmts, s)
		}
	}

	for i, ch := range text {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == ';':
			flush(i)
			start = i + 1
		default:
			if c, ok := closers[ch]; ok {
				quote = c
			}
		}
	}
	flush(len(text))
	return stmts
}
