package employee

import (
	"context"
	"time"

	"github.com/nwieland/staffdir/internal/namematch"
)

type Repository interface {
	ListEmployees(context context.Context, companyID int64, limit, offset int) ([]*Employee, int, error)
	GetEmployee(context context.Context, companyID, id int64) (*Employee, error)
	CreateEmployee(context context.Context, e *Employee) error
	UpdateEmployee(context context.Context, e *Employee) error
	DeleteEmployee(context context.Context, companyID, id int64) error

	// Search runs a structured surname query. A nil query.Key matches the
	// surname column, a non-nil key the name index.
	Search(context context.Context, companyID int64, query QueryValue, dateOfBirth *time.Time, limit, offset int) ([]*Employee, int, error)

	// SearchByPersonFilter runs a parsed free-text query against the name
	// index. Name predicates are OR-combined; the date is an AND constraint.
	SearchByPersonFilter(context context.Context, companyID int64, filter *namematch.PersonFilter, limit, offset int) ([]*Employee, int, error)

	// ListForIndex streams the identity and name fields of every employee of
	// a company, for bulk index rebuilds.
	ListForIndex(context context.Context, companyID int64) ([]IndexSource, error)
}

// IndexSource is the minimal projection a reindex run needs per employee.
type IndexSource struct {
	ID        int64
	Surname   string
	GivenName string
}

// NameIndexRepository persists the denormalized name variants.
type NameIndexRepository interface {
	// Replace atomically swaps the owner's entries: delete plus insert in one
	// transaction, so readers never observe a partially indexed employee.
	Replace(context context.Context, ownerID int64, entries []namematch.Entry) error

	// DeleteByOwners removes all entries of the given owners in one
	// statement. Callers bound the slice length; see the reindex service.
	DeleteByOwners(context context.Context, ownerIDs []int64) error

	// InsertAll appends entries without touching existing rows.
	InsertAll(context context.Context, entries []namematch.Entry) error
}
