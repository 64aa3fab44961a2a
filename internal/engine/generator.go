package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/fatih/color"

	"db-seed/internal/artifact"
	"db-seed/internal/schema"
)

// Acquirer produces the raw data of one table. A *SkipError result leaves the
// table out of the run; any other error aborts it.
type Acquirer interface {
	Acquire(ctx context.Context, table *schema.Table) (*RawTable, error)
}

// Discoverer is implemented by sources that can list inputs outside the plan.
type Discoverer interface {
	Discover(known []string) ([]string, error)
}

const (
	StatusGenerated  = "GENERATED"
	StatusSkipped    = "SKIPPED"
	StatusDiscovered = "DISCOVERED"
	StatusDerived    = "DERIVED"
)

// TableResult describes what one generation step produced.
type TableResult struct {
	Table    string
	Status   string
	Rows     int
	Injected []string // "Column <- SourceTable"
	File     string
	Reason   string
}

type Report struct {
	Tables []TableResult
}

// Generated counts the artifacts written.
func (r *Report) Generated() int {
	n := 0
	for _, t := range r.Tables {
		if t.Status != StatusSkipped {
			n++
		}
	}
	return n
}

// Run is the state of one generation pass, handed to every step.
type Run struct {
	Pools  *Pools
	Report *Report
}

// Generator turns acquired tables into artifacts, in plan order.
type Generator struct {
	Plan       *schema.Plan
	Source     Acquirer
	Writer     Writer
	OutDir     string
	Faker      *gofakeit.Faker
	Discover   bool // also convert inputs the source finds outside the plan
	OnProgress func()
}

// Generate runs one full pass. On a fatal error the report so far is returned
// with it; artifacts already written stay on disk.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	if g.Faker == nil {
		g.Faker = gofakeit.New(0)
	}
	run := &Run{Pools: NewPools(), Report: &Report{}}

	for _, t := range g.Plan.Tables {
		if err := g.generateTable(ctx, run, t, StatusGenerated); err != nil {
			return run.Report, err
		}
		g.progress()
	}

	if g.Discover {
		if d, ok := g.Source.(Discoverer); ok {
			extras, err := d.Discover(g.Plan.LoadOrder())
			if err != nil {
				return run.Report, fmt.Errorf("discover inputs: %w", err)
			}
			for _, name := range extras {
				log.Printf("Found undeclared input for %s", name)
				if err := g.generateTable(ctx, run, &schema.Table{Name: name}, StatusDiscovered); err != nil {
					return run.Report, err
				}
			}
		}
	}

	for _, spec := range g.Plan.Auth {
		if err := g.deriveAuth(run, spec); err != nil {
			return run.Report, err
		}
		g.progress()
	}

	return run.Report, nil
}

func (g *Generator) progress() {
	if g.OnProgress != nil {
		g.OnProgress()
	}
}

func (g *Generator) generateTable(ctx context.Context, run *Run, t *schema.Table, status string) error {
	log.Printf("Fetching rows for %s...", t.Name)
	raw, err := g.Source.Acquire(ctx, t)
	if IsSkip(err) {
		color.Yellow("⚠️  %v", err)
		run.Report.Tables = append(run.Report.Tables, TableResult{Table: t.Name, Status: StatusSkipped, Reason: err.Error()})
		return nil
	}
	if err != nil {
		return err
	}

	// Foreign keys: headers named like a key column of an earlier table.
	sources := run.Pools.Sources(t.Name)
	fk := make(map[string][]string)
	var injected []string
	for _, h := range raw.Headers {
		if src, ok := sources[h]; ok {
			fk[h] = src.Values
			injected = append(injected, fmt.Sprintf("%s <- %s", h, src.Table))
		}
	}
	if len(fk) > 0 {
		raw, err = Inject(raw, fk, g.Faker)
		if err != nil {
			return withTable(err, t.Name)
		}
	}

	// Capture after injection so the pool holds exactly what is written.
	var capture []string
	for _, col := range append(append([]string(nil), t.Keys...), g.Plan.AuthColumns(t.Name)...) {
		if !raw.Has(col) {
			color.Yellow("⚠️  %s has no column %s; it will not be captured", t.Name, col)
			continue
		}
		capture = append(capture, col)
	}
	captured, err := ExtractColumns(raw, capture)
	if err != nil {
		return withTable(err, t.Name)
	}
	run.Pools.Capture(t.Name, captured, t.Keys)

	path, err := artifact.Write(g.OutDir, t.Name, g.Writer.Statements(raw, t.Name))
	if err != nil {
		return err
	}

	sort.Strings(injected)
	run.Report.Tables = append(run.Report.Tables, TableResult{
		Table:    t.Name,
		Status:   status,
		Rows:     len(raw.Rows),
		Injected: injected,
		File:     path,
	})
	log.Printf("Saved %s data to %s (%d rows)", t.Name, path, len(raw.Rows))
	return nil
}

// deriveAuth is mandatory: login depends on these rows, so missing source
// columns abort the run instead of skipping.
func (g *Generator) deriveAuth(run *Run, spec schema.AuthSpec) error {
	ids := run.Pools.Lookup(spec.Table, spec.IDColumn)
	names := run.Pools.Lookup(spec.Table, spec.NameColumn)
	if len(ids) == 0 || len(names) == 0 {
		return &ValidationError{
			Table:  spec.Table,
			Err:    ErrMissingAuthSource,
			Detail: fmt.Sprintf("%s needs non-empty %s and %s", spec.AuthTable, spec.IDColumn, spec.NameColumn),
		}
	}

	text, err := DeriveAuth(g.Writer, spec, ids, names, g.Faker)
	if err != nil {
		return err
	}
	path, err := artifact.Write(g.OutDir, spec.AuthTable, text)
	if err != nil {
		return err
	}

	run.Report.Tables = append(run.Report.Tables, TableResult{
		Table:  spec.AuthTable,
		Status: StatusDerived,
		Rows:   len(ids),
		File:   path,
	})
	log.Printf("Created credentials for %s -> %s", spec.Table, path)
	return nil
}

func withTable(err error, table string) error {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Table == "" {
		ve.Table = table
	}
	return err
}
