package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// RawTable is a rectangular text dataset for one table. Every row has exactly
// len(Headers) cells; values are never type-coerced.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Index returns the position of a header, or -1.
func (t *RawTable) Index(column string) int {
	for i, h := range t.Headers {
		if h == column {
			return i
		}
	}
	return -1
}

// Has reports whether column is one of the headers.
func (t *RawTable) Has(column string) bool {
	return t.Index(column) >= 0
}

// Clone returns a deep copy.
func (t *RawTable) Clone() *RawTable {
	c := &RawTable{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	return c
}

// Parse reads comma-separated text. The first record is the header row.
func Parse(text string) (*RawTable, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))
	// 0: every record must have as many fields as the header
	r.FieldsPerRecord = 0

	headers, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ValidationError{Err: ErrMalformedInput, Detail: "missing header row"}
	}
	if err != nil {
		return nil, &ValidationError{Err: ErrMalformedInput, Detail: err.Error()}
	}

	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, &ValidationError{Err: ErrMalformedInput, Detail: fmt.Sprintf("header %d is empty", i+1)}
		}
		if seen[h] {
			return nil, &ValidationError{Column: h, Err: ErrMalformedInput, Detail: "duplicate header"}
		}
		seen[h] = true
		headers[i] = h
	}

	t := &RawTable{Headers: headers}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ValidationError{Err: ErrMalformedInput, Detail: err.Error()}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ExtractColumns collects the values of each requested column in row order.
// It fails without a partial result if any column is absent.
func ExtractColumns(t *RawTable, columns []string) (map[string][]string, error) {
	idx := make([]int, len(columns))
	for i, col := range columns {
		idx[i] = t.Index(col)
		if idx[i] < 0 {
			return nil, &ValidationError{Column: col, Err: ErrColumnNotFound}
		}
	}

	out := make(map[string][]string, len(columns))
	for i, col := range columns {
		values := make([]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			values = append(values, row[idx[i]])
		}
		out[col] = values
	}
	return out, nil
}

// Inject rewrites every column that has a pool: each cell becomes an
// independent uniform draw, with replacement, from that pool. The input table
// is left untouched. An empty pool for a targeted column is an error.
func Inject(t *RawTable, pools map[string][]string, faker *gofakeit.Faker) (*RawTable, error) {
	type target struct {
		idx  int
		pool []string
	}
	var targets []target
	for i, h := range t.Headers {
		pool, ok := pools[h]
		if !ok {
			continue
		}
		if len(pool) == 0 {
			return nil, &ValidationError{Column: h, Err: ErrEmptyPool, Detail: "no captured values to reference"}
		}
		targets = append(targets, target{idx: i, pool: pool})
	}

	out := t.Clone()
	for _, row := range out.Rows {
		for _, tg := range targets {
			row[tg.idx] = faker.RandomString(tg.pool)
		}
	}
	return out, nil
}
