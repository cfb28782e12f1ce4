package schema

// RefCompanyTable represents the 'core.company' table
type RefCompanyTable struct {
	Table      string
	ID         string
	ExternalID string
	Name       string
	PostalCode string
	City       string
	CreatedAt  string
	UpdatedAt  string
	DeletedAt  string
}

// RefCompany is the schema definition for core.company
var RefCompany = RefCompanyTable{
	Table:      "core.company",
	ID:         "id",
	ExternalID: "externalid",
	Name:       "name",
	PostalCode: "postalcode",
	City:       "city",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
	DeletedAt:  "deletedat",
}

func (t RefCompanyTable) Columns() []string {
	return []string{t.ID, t.ExternalID, t.Name, t.PostalCode, t.City, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
