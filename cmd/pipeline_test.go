package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"db-seed/internal/dialect"
	"db-seed/internal/engine"
	"db-seed/internal/schema"
	"db-seed/internal/store"
)

type recordingSession struct {
	execs  *[]string
	closed bool
}

func (s *recordingSession) Begin(ctx context.Context) (store.Unit, error) {
	return &recordingUnit{execs: s.execs}, nil
}

func (s *recordingSession) Close() error {
	s.closed = true
	return nil
}

type recordingUnit struct {
	execs *[]string
}

func (u *recordingUnit) Exec(ctx context.Context, stmt string) error {
	*u.execs = append(*u.execs, stmt)
	return nil
}

func (u *recordingUnit) Commit() error   { return nil }
func (u *recordingUnit) Rollback() error { return nil }

type fixedCounter int

func (c fixedCounter) Count(ctx context.Context, table string) (int, error) {
	return int(c), nil
}

func writeInput(t *testing.T, dir, table, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, table+".csv"), []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Generating and then loading in one process is what the run command does;
// both phases start and stop their own progress display.
func TestGenerateThenLoad_SameProcess(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeInput(t, in, "Customer", "CustomerID,Name\n1,Ann Lee\n2,Bo Chen\n")
	writeInput(t, in, "Vehicle", "VIN,CustomerID\nV1,9\n")

	cfg := &Config{
		Driver:    "mysql",
		Conn:      dialect.Conn{Database: "AutoBase"},
		Source:    SourceFile,
		InputDir:  in,
		OutputDir: out,
		Count:     1,
	}
	plan, err := schema.NewPlan([]schema.Table{
		{Name: "Customer", Keys: []string{"CustomerID"}},
		{Name: "Vehicle", Keys: []string{"VIN"}, DependsOn: []string{"Customer"}},
	}, []schema.AuthSpec{
		{Table: "Customer", IDColumn: "CustomerID", NameColumn: "Name"},
	})
	if err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	report, err := runGenerate(cmd, cfg, plan)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if report.Generated() != 3 {
		t.Fatalf("Expected 3 artifacts, got %d", report.Generated())
	}

	var execs []string
	sess := &recordingSession{execs: &execs}
	open := func(ctx context.Context) (store.Session, error) { return sess, nil }

	results, err := loadArtifacts(context.Background(), out, plan.LoadOrder(), open, fixedCounter(100))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 load results, got %d", len(results))
	}
	for _, r := range results {
		if r.Status != engine.StatusVerifiedOK {
			t.Errorf("%s status = %s", r.Table, r.Status)
		}
	}
	// one USE per artifact plus 2 + 1 + 2 inserts
	if len(execs) != 8 {
		t.Errorf("Expected 8 statements, got %d: %v", len(execs), execs)
	}
	if !sess.closed {
		t.Error("session not closed")
	}

	// A second generation after a load must still be able to show progress.
	if _, err := runGenerate(cmd, cfg, plan); err != nil {
		t.Fatalf("second generate failed: %v", err)
	}
}
