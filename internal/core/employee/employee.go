package employee

import "time"

// Employee represents one person employed by a company.
//
// Surname and GivenName are stored as entered; the name index carries their
// normalized search variants.
type Employee struct {
	ID            int64      `json:"id"`
	CompanyID     int64      `json:"company_id"`
	Surname       string     `json:"surname"`
	GivenName     string     `json:"given_name"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        *string    `json:"gender"`
	PostalCode    *string    `json:"postal_code"`
	City          *string    `json:"city"`
	StreetAddress *string    `json:"street_address"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Filter holds the parameters of a structured employee search.
type Filter struct {
	Surname     string     // Matched via Mode against the surname or its index variants
	Mode        SearchMode // How Surname is interpreted
	DateOfBirth *time.Time // Optional equality constraint
}

// Global field names for validation
const (
	FieldSurname       = "surname"
	FieldGivenName     = "given_name"
	FieldGender        = "gender"
	FieldPostalCode    = "postal_code"
	FieldCity          = "city"
	FieldStreetAddress = "street_address"
	FieldMode          = "mode"
	FieldQuery         = "query"
)
