package schema

// Table declares one seeded table. Tables are declared in dependency order.
type Table struct {
	Name      string   `mapstructure:"name"`
	Source    string   `mapstructure:"source"`     // remote generator schema id
	Keys      []string `mapstructure:"keys"`       // columns other tables may reference
	DependsOn []string `mapstructure:"depends_on"` // parents, must be declared earlier
}

// AuthSpec declares a credential table derived from a primary table's id/name columns.
type AuthSpec struct {
	Table      string `mapstructure:"table"`
	IDColumn   string `mapstructure:"id_column"`
	NameColumn string `mapstructure:"name_column"`
	AuthTable  string `mapstructure:"auth_table"` // defaults to <Table>Auth
}

// DefaultTables is the repair-shop plan the tool was built for.
func DefaultTables() []Table {
	return []Table{
		{Name: "Vehicle", Source: "eb692b70", Keys: []string{"VIN"}},
		{Name: "Employee", Source: "66c9b870", Keys: []string{"EmployeeID"}},
		{Name: "Part", Source: "ae8c9bb0", Keys: []string{"PartID"}},
		{Name: "Customer", Source: "b9190230", Keys: []string{"CustomerID"}},
		{Name: "SalesOrder", Source: "ea27b3a0", Keys: []string{"SalesOrderID"},
			DependsOn: []string{"Vehicle", "Employee", "Customer"}},
		{Name: "ServiceOrder", Source: "5989a7f0", Keys: []string{"ServiceOrderID"},
			DependsOn: []string{"Vehicle", "Employee", "Customer"}},
		{Name: "ServiceLine", Source: "d18caae0", Keys: []string{"ServiceLineID"},
			DependsOn: []string{"ServiceOrder", "Part"}},
	}
}

func DefaultAuth() []AuthSpec {
	return []AuthSpec{
		{Table: "Employee", IDColumn: "EmployeeID", NameColumn: "Name"},
		{Table: "Customer", IDColumn: "CustomerID", NameColumn: "Name"},
	}
}
