package company

import "time"

// Company represents one tenant of the directory. ExternalID is the stable
// slug used in outward-facing references.
type Company struct {
	ID         int64      `json:"id"`
	ExternalID string     `json:"external_id"`
	Name       string     `json:"name"`
	PostalCode *string    `json:"postal_code"`
	City       *string    `json:"city"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated company search.
type Filter struct {
	Query string // Case-insensitive match against name
}

// Global field names for validation
const (
	FieldName       = "name"
	FieldExternalID = "external_id"
	FieldPostalCode = "postal_code"
	FieldCity       = "city"
)
