package schema

// RefEmployeeNameTable represents the 'core.employeename' table, the
// denormalized name index. One row per (owner, key, value).
type RefEmployeeNameTable struct {
	Table   string
	OwnerID string
	Key     string
	Value   string
}

// RefEmployeeName is the schema definition for core.employeename
var RefEmployeeName = RefEmployeeNameTable{
	Table:   "core.employeename",
	OwnerID: "ownerid",
	Key:     "namekey",
	Value:   "namevalue",
}

func (t RefEmployeeNameTable) Columns() []string {
	return []string{t.OwnerID, t.Key, t.Value}
}
