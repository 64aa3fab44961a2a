package engine

// Pools holds the column values captured during one generation run. It is
// created per run and passed explicitly to every step; nothing survives the run.
type Pools struct {
	order  []string
	values map[string]map[string][]string
	keys   map[string]map[string]bool
}

// Source is a key column available for foreign-key resampling.
type Source struct {
	Table  string
	Values []string
}

func NewPools() *Pools {
	return &Pools{
		values: make(map[string]map[string][]string),
		keys:   make(map[string]map[string]bool),
	}
}

// Capture records columns of a processed table. Key columns become foreign-key
// sources for later tables; the others are only available through Lookup.
func (p *Pools) Capture(table string, columns map[string][]string, keys []string) {
	if _, ok := p.values[table]; !ok {
		p.order = append(p.order, table)
		p.values[table] = make(map[string][]string)
		p.keys[table] = make(map[string]bool)
	}
	for col, vals := range columns {
		p.values[table][col] = vals
	}
	for _, k := range keys {
		if _, ok := columns[k]; ok {
			p.keys[table][k] = true
		}
	}
}

// Lookup returns the captured values of table.column.
func (p *Pools) Lookup(table, column string) []string {
	return p.values[table][column]
}

// Tables lists captured tables in capture order.
func (p *Pools) Tables() []string {
	return append([]string(nil), p.order...)
}

// Sources merges the key columns of every captured table except exclude.
// When two tables expose the same key column name, the later one wins.
func (p *Pools) Sources(exclude string) map[string]Source {
	out := make(map[string]Source)
	for _, table := range p.order {
		if table == exclude {
			continue
		}
		for col := range p.keys[table] {
			out[col] = Source{Table: table, Values: p.values[table][col]}
		}
	}
	return out
}
