package schema

// RefEmployeeTable represents the 'core.employee' table
type RefEmployeeTable struct {
	Table         string
	ID            string
	CompanyID     string
	Surname       string
	GivenName     string
	DateOfBirth   string
	Gender        string
	PostalCode    string
	City          string
	StreetAddress string
	CreatedAt     string
	UpdatedAt     string
}

// RefEmployee is the schema definition for core.employee
var RefEmployee = RefEmployeeTable{
	Table:         "core.employee",
	ID:            "id",
	CompanyID:     "companyid",
	Surname:       "surname",
	GivenName:     "givenname",
	DateOfBirth:   "dateofbirth",
	Gender:        "gender",
	PostalCode:    "postalcode",
	City:          "city",
	StreetAddress: "streetaddress",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t RefEmployeeTable) Columns() []string {
	return []string{
		t.ID, t.CompanyID, t.Surname, t.GivenName, t.DateOfBirth, t.Gender,
		t.PostalCode, t.City, t.StreetAddress, t.CreatedAt, t.UpdatedAt,
	}
}
