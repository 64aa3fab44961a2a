package schema_test

import (
	"strings"
	"testing"

	"db-seed/internal/schema"
)

func TestCheckOrder_DefaultPlanAgainstMatchingKeys(t *testing.T) {
	p, err := schema.NewPlan(schema.DefaultTables(), schema.DefaultAuth())
	if err != nil {
		t.Fatal(err)
	}
	fks := []schema.ForeignKey{
		{Table: "salesorder", Column: "VIN", RefTable: "VEHICLE", RefColumn: "VIN"},
		{Table: "ServiceLine", Column: "PartID", RefTable: "Part", RefColumn: "PartID"},
		{Table: "EmployeeAuth", Column: "EmployeeID", RefTable: "Employee", RefColumn: "EmployeeID"},
		{Table: "AuditLog", Column: "UserID", RefTable: "Users", RefColumn: "ID"},
	}

	if got := schema.CheckOrder(p, fks); len(got) != 0 {
		t.Errorf("Expected no violations, got %v", got)
	}
}

func TestCheckOrder_ReportsViolations(t *testing.T) {
	p, err := schema.NewPlan([]schema.Table{
		{Name: "Orders", Keys: []string{"OrderID"}},
		{Name: "Users", Keys: []string{"UserID"}},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	fks := []schema.ForeignKey{
		{Table: "Orders", Column: "UserID", RefTable: "Users", RefColumn: "UserID"},
		{Table: "Users", Column: "RegionID", RefTable: "Regions", RefColumn: "RegionID"},
	}

	got := schema.CheckOrder(p, fks)
	if len(got) != 2 {
		t.Fatalf("Expected 2 violations, got %d (%v)", len(got), got)
	}
	if !strings.Contains(got[0].String(), "Users loads after Orders") {
		t.Errorf("Unexpected first violation: %s", got[0])
	}
	if !strings.Contains(got[1].Reason, "Regions is not loaded") {
		t.Errorf("Unexpected second violation: %s", got[1])
	}
}

func TestSuggestOrder_Simple(t *testing.T) {
	fks := []schema.ForeignKey{
		{Table: "OrderItems", RefTable: "Orders"},
		{Table: "Orders", RefTable: "Users"},
	}

	sorted := schema.SuggestOrder([]string{"OrderItems", "Orders", "Users"}, fks)

	want := []string{"Users", "Orders", "OrderItems"}
	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, sorted)
		}
	}
}

func TestSuggestOrder_ComplexCircular(t *testing.T) {
	// A -> B -> C -> D -> E -> A, F -> E, G independent
	fks := []schema.ForeignKey{
		{Table: "A", RefTable: "B"},
		{Table: "B", RefTable: "C"},
		{Table: "C", RefTable: "D"},
		{Table: "D", RefTable: "E"},
		{Table: "E", RefTable: "A"},
		{Table: "F", RefTable: "E"},
	}
	names := []string{"A", "B", "C", "D", "E", "F", "G"}

	sorted := schema.SuggestOrder(names, fks)

	if len(sorted) != len(names) {
		t.Fatalf("Expected %d tables, got %d", len(names), len(sorted))
	}
	if sorted[0] != "G" {
		t.Errorf("Expected independent table G first, got %s", sorted[0])
	}
	pos := make(map[string]int)
	for i, n := range sorted {
		pos[n] = i
	}
	if pos["F"] < pos["E"] {
		t.Errorf("F must follow E: %v", sorted)
	}
}
