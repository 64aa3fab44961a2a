package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"db-seed/internal/artifact"
	"db-seed/internal/store"
)

const (
	StatusLoaded     = "LOADED"
	StatusVerifiedOK = "VERIFIED_OK"
)

// LoadResult reports one artifact. Rows counts its INSERT statements.
type LoadResult struct {
	Table      string
	File       string
	Status     string
	Statements int
	Rows       int
	Actual     int
}

// Loader applies artifacts to the store, one commit unit per file.
type Loader struct {
	Dir        string
	Open       store.Opener
	OnProgress func()
}

// LoadAll loads the artifacts of order first, then every other artifact found
// in Dir. Missing artifacts are skipped with a warning. The first rejected
// statement aborts the run with a *LoadError; files committed before it stay applied.
func (l *Loader) LoadAll(ctx context.Context, order []string) (results []LoadResult, err error) {
	sess, err := l.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to release connection: %w", cerr)
		}
	}()

	consumed := make(map[string]bool)
	for _, table := range order {
		consumed[table] = true
		res, err := l.loadFile(ctx, sess, table, StatusLoaded)
		if IsSkip(err) {
			color.Yellow("⚠️  %s not found in %s", artifact.FileName(table), l.Dir)
			results = append(results, LoadResult{Table: table, File: artifact.FileName(table), Status: StatusSkipped})
			continue
		}
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	discovered, err := artifact.Discover(l.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		color.Yellow("⚠️  artifact dir %s does not exist", l.Dir)
		return results, nil
	}
	if err != nil {
		return results, err
	}
	for _, table := range discovered {
		if consumed[table] {
			continue
		}
		consumed[table] = true
		log.Printf("Found undeclared artifact for %s", table)
		res, err := l.loadFile(ctx, sess, table, StatusDiscovered)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

func (l *Loader) loadFile(ctx context.Context, sess store.Session, table, status string) (LoadResult, error) {
	name := artifact.FileName(table)
	res := LoadResult{Table: table, File: name, Status: status}

	data, err := os.ReadFile(filepath.Join(l.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return res, &SkipError{Table: table, Err: ErrNotFound}
	}
	if err != nil {
		return res, &LoadError{File: name, Err: err}
	}

	log.Printf("Inserting data from %s...", name)
	stmts := SplitStatements(string(data))

	unit, err := sess.Begin(ctx)
	if err != nil {
		return res, &LoadError{File: name, Err: err}
	}
	for i, stmt := range stmts {
		if err := unit.Exec(ctx, stmt); err != nil {
			unit.Rollback()
			return res, &LoadError{File: name, Err: fmt.Errorf("statement %d: %w", i+1, err)}
		}
		if isInsert(stmt) {
			res.Rows++
		}
	}
	if err := unit.Commit(); err != nil {
		return res, &LoadError{File: name, Err: fmt.Errorf("commit: %w", err)}
	}

	res.Statements = len(stmts)
	if l.OnProgress != nil {
		l.OnProgress()
	}
	return res, nil
}

func isInsert(stmt string) bool {
	return len(stmt) >= 6 && strings.EqualFold(stmt[:6], "INSERT")
}

// RowCounter counts the rows of a table.
type RowCounter interface {
	Count(ctx context.Context, table string) (int, error)
}

// Verify re-counts every loaded table and flags tables holding fewer rows than
// their artifact inserted.
func Verify(ctx context.Context, c RowCounter, results []LoadResult) []LoadResult {
	verified := make([]LoadResult, 0, len(results))
	for _, res := range results {
		if res.Status == StatusSkipped {
			verified = append(verified, res)
			continue
		}

		n, err := c.Count(ctx, res.Table)
		switch {
		case err != nil:
			res.Status = fmt.Sprintf("VERIFY_FAIL: %v", err)
		case n < res.Rows:
			res.Status = fmt.Sprintf("PARTIAL: %d/%d", n, res.Rows)
		default:
			res.Status = StatusVerifiedOK
		}
		res.Actual = n
		verified = append(verified, res)
	}
	return verified
}
