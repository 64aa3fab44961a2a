package schema

import (
	"fmt"
	"strings"
)

// PlanError reports a table declaration that breaks the dependency contract.
type PlanError struct {
	Table  string
	Reason string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("invalid plan at table %q: %s", e.Table, e.Reason)
}

// Plan is a validated, dependency-ordered list of tables plus the credential
// tables derived from them.
type Plan struct {
	Tables []*Table
	Auth   []AuthSpec

	byName map[string]*Table
}

// NewPlan validates the declared order. Every DependsOn entry must name a table
// declared strictly earlier; the order is never inferred or rearranged.
func NewPlan(tables []Table, auth []AuthSpec) (*Plan, error) {
	p := &Plan{byName: make(map[string]*Table)}

	for i := range tables {
		t := tables[i]
		if strings.TrimSpace(t.Name) == "" {
			return nil, &PlanError{Table: fmt.Sprintf("#%d", i+1), Reason: "table name is empty"}
		}
		key := strings.ToUpper(t.Name)
		if _, dup := p.byName[key]; dup {
			return nil, &PlanError{Table: t.Name, Reason: "declared more than once"}
		}
		for _, dep := range t.DependsOn {
			if strings.EqualFold(dep, t.Name) {
				return nil, &PlanError{Table: t.Name, Reason: "depends on itself"}
			}
			if _, ok := p.byName[strings.ToUpper(dep)]; !ok {
				return nil, &PlanError{Table: t.Name, Reason: fmt.Sprintf("depends on %q which is not declared before it", dep)}
			}
		}
		p.byName[key] = &t
		p.Tables = append(p.Tables, &t)
	}

	seen := make(map[string]bool)
	for _, a := range auth {
		if _, ok := p.byName[strings.ToUpper(a.Table)]; !ok {
			return nil, &PlanError{Table: a.Table, Reason: "credential source table is not declared"}
		}
		if a.IDColumn == "" || a.NameColumn == "" {
			return nil, &PlanError{Table: a.Table, Reason: "credential id_column and name_column are required"}
		}
		if a.AuthTable == "" {
			a.AuthTable = a.Table + "Auth"
		}
		key := strings.ToUpper(a.AuthTable)
		if _, clash := p.byName[key]; clash || seen[key] {
			return nil, &PlanError{Table: a.AuthTable, Reason: "credential table name collides with another table"}
		}
		seen[key] = true
		p.Auth = append(p.Auth, a)
	}

	return p, nil
}

// Names returns the declared table names in order.
func (p *Plan) Names() []string {
	names := make([]string, 0, len(p.Tables))
	for _, t := range p.Tables {
		names = append(names, t.Name)
	}
	return names
}

// Lookup finds a declared table, case-insensitively.
func (p *Plan) Lookup(name string) (*Table, bool) {
	t, ok := p.byName[strings.ToUpper(name)]
	return t, ok
}

// LoadOrder is the declared order followed by the derived credential tables.
func (p *Plan) LoadOrder() []string {
	order := p.Names()
	for _, a := range p.Auth {
		order = append(order, a.AuthTable)
	}
	return order
}

// AuthColumns returns the columns of table that feed credential derivation.
func (p *Plan) AuthColumns(table string) []string {
	var cols []string
	for _, a := range p.Auth {
		if strings.EqualFold(a.Table, table) {
			cols = append(cols, a.IDColumn, a.NameColumn)
		}
	}
	return cols
}
