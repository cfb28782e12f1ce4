package company

import "context"

type Repository interface {
	ListCompanies(context context.Context, f Filter, limit, offset int) ([]*Company, int, error)
	ListCompaniesForUser(context context.Context, userID string, limit, offset int) ([]*Company, int, error)
	GetCompany(context context.Context, id int64) (*Company, error)
	GetCompanyByExternalID(context context.Context, externalID string) (*Company, error)
	CreateCompany(context context.Context, c *Company) error
	UpdateCompany(context context.Context, c *Company) error
	DeleteCompany(context context.Context, id int64) error

	// Membership backs the company-scoping authorization check.
	AddMember(context context.Context, companyID int64, userID string) error
	RemoveMember(context context.Context, companyID int64, userID string) error
	IsMember(context context.Context, companyID int64, userID string) (bool, error)
}
