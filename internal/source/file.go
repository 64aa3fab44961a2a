package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"db-seed/internal/engine"
	"db-seed/internal/schema"
)

const csvExt = ".csv"

// File reads <Dir>/<Table>.csv. A missing file skips the table.
type File struct {
	Dir string
}

func (f *File) Acquire(ctx context.Context, t *schema.Table) (*engine.RawTable, error) {
	path := filepath.Join(f.Dir, t.Name+csvExt)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &engine.SkipError{Table: t.Name, Err: fmt.Errorf("%s: %w", path, engine.ErrNotFound)}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	raw, err := engine.Parse(string(data))
	if err != nil {
		var ve *engine.ValidationError
		if errors.As(err, &ve) {
			ve.Table = t.Name
		}
		return nil, err
	}
	return raw, nil
}

// Discover lists the table names of CSV files in Dir that are not in known, sorted.
func (f *File) Discover(known []string) ([]string, error) {
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	skip := make(map[string]bool, len(known))
	for _, k := range known {
		skip[k] = true
	}

	var extra []string
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != csvExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), csvExt)
		if !skip[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return extra, nil
}
