package engine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"db-seed/internal/engine"
	"db-seed/internal/schema"
)

func TestUsername(t *testing.T) {
	tests := map[string]string{
		"Ann Lee":        "annlee.username",
		"  Bo\tKim ":     "bokim.username",
		"MARY JANE WATT": "maryjanewatt.username",
	}
	for name, want := range tests {
		if got := engine.Username(name); got != want {
			t.Errorf("Username(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDeriveAuth(t *testing.T) {
	spec := schema.AuthSpec{Table: "Employee", IDColumn: "EmployeeID", NameColumn: "Name", AuthTable: "EmployeeAuth"}
	ids := []string{"10", "11"}
	names := []string{"Ann Lee", "Bo Kim"}

	text, err := engine.DeriveAuth(mysqlWriter(), spec, ids, names, gofakeit.New(7))
	if err != nil {
		t.Fatal(err)
	}

	stmts := engine.SplitStatements(text)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 1 selection + 2 rows:\n%s", len(stmts), text)
	}

	// replay the same seed to learn which passwords were drawn
	twin := gofakeit.New(7)
	for i, stmt := range stmts[1:] {
		password := twin.Password(true, true, true, false, false, 10)
		if len(password) != 10 {
			t.Fatalf("password length %d", len(password))
		}
		if strings.Contains(stmt, password) {
			t.Errorf("row %d contains the raw password", i)
		}
		want := "INSERT INTO `EmployeeAuth` (`EmployeeID`, `Username`, `PasswordHash`) VALUES ('" +
			ids[i] + "', '" + engine.Username(names[i]) + "', '" + engine.HashPassword(password) + "')"
		if stmt != want {
			t.Errorf("row %d =\n%s\nwant\n%s", i, stmt, want)
		}
	}
	if !strings.Contains(stmts[1], "annlee.username") || !strings.Contains(stmts[2], "bokim.username") {
		t.Errorf("unexpected usernames:\n%s", text)
	}
}

func TestDeriveAuth_LengthMismatch(t *testing.T) {
	spec := schema.AuthSpec{Table: "Customer", IDColumn: "CustomerID", NameColumn: "Name"}

	text, err := engine.DeriveAuth(mysqlWriter(), spec, []string{"1", "2"}, []string{"Ann"}, gofakeit.New(1))
	if !errors.Is(err, engine.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if text != "" {
		t.Error("no artifact text expected on failure")
	}
}

func TestHashPassword(t *testing.T) {
	// sha256("password")
	want := "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	if got := engine.HashPassword("password"); got != want {
		t.Errorf("HashPassword = %s", got)
	}
}
