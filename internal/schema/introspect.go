package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"db-seed/internal/dialect"
)

// ForeignKey is one referencing column found in the live database.
type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
}

// ForeignKeys reads the foreign keys of the current database or schema.
// Self references are dropped; they never constrain load order.
func ForeignKeys(ctx context.Context, db *sql.DB, d dialect.Dialect) ([]ForeignKey, error) {
	rows, err := db.QueryContext(ctx, d.ForeignKeysQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var tName, cName, rTable, rCol sql.NullString
		if err := rows.Scan(&tName, &cName, &rTable, &rCol); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if !tName.Valid || !rTable.Valid || strings.EqualFold(tName.String, rTable.String) {
			continue
		}
		fks = append(fks, ForeignKey{Table: tName.String, Column: cName.String, RefTable: rTable.String, RefColumn: rCol.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys: %w", err)
	}
	return fks, nil
}

// OrderViolation is a foreign key the load order does not satisfy.
type OrderViolation struct {
	ForeignKey
	Reason string
}

func (v OrderViolation) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s: %s", v.Table, v.Column, v.RefTable, v.RefColumn, v.Reason)
}

// CheckOrder compares the plan's load order with the live foreign keys.
// Names match case-insensitively. Keys between tables outside the plan are ignored.
func CheckOrder(p *Plan, fks []ForeignKey) []OrderViolation {
	pos := make(map[string]int)
	for i, name := range p.LoadOrder() {
		pos[strings.ToUpper(name)] = i
	}

	var out []OrderViolation
	for _, fk := range fks {
		child, inChild := pos[strings.ToUpper(fk.Table)]
		parent, inParent := pos[strings.ToUpper(fk.RefTable)]
		switch {
		case !inChild:
			continue
		case !inParent:
			out = append(out, OrderViolation{fk, fmt.Sprintf("%s is not loaded by the plan", fk.RefTable)})
		case parent > child:
			out = append(out, OrderViolation{fk, fmt.Sprintf("%s loads after %s", fk.RefTable, fk.Table)})
		}
	}
	return out
}

// SuggestOrder orders names so that each one follows the tables it references.
// Cycles are broken by promoting the table with the fewest unresolved
// dependencies, preferring one that takes part in the cycle.
func SuggestOrder(names []string, fks []ForeignKey) []string {
	canon := make(map[string]string, len(names))
	for _, n := range names {
		canon[strings.ToUpper(n)] = n
	}
	deps := make(map[string][]string)
	for _, fk := range fks {
		child, ok1 := canon[strings.ToUpper(fk.Table)]
		parent, ok2 := canon[strings.ToUpper(fk.RefTable)]
		if ok1 && ok2 && child != parent {
			deps[child] = append(deps[child], parent)
		}
	}

	var sorted []string
	processed := make(map[string]bool)

	for len(sorted) < len(names) {
		added := false

		for _, n := range names {
			if processed[n] {
				continue
			}
			ready := true
			for _, dep := range deps[n] {
				if !processed[dep] {
					ready = false
					break
				}
			}
			if ready {
				sorted = append(sorted, n)
				processed[n] = true
				added = true
			}
		}
		if added {
			continue
		}

		// Cycle: pick a table to load early.
		best, bestScore := "", 0
		for _, n := range names {
			if processed[n] {
				continue
			}
			score := 0
			circular := false
			for _, dep := range deps[n] {
				if processed[dep] {
					continue
				}
				score -= 100
				for _, back := range deps[dep] {
					if back == n {
						circular = true
					}
				}
			}
			if circular {
				score += 500
			}
			if best == "" || score > bestScore || (score == bestScore && n < best) {
				best, bestScore = n, score
			}
		}
		log.Printf("Breaking circular dependency at %s (score %d)", best, bestScore)
		sorted = append(sorted, best)
		processed[best] = true
	}
	return sorted
}
