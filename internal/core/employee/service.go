package employee

import (
	"context"
	"log/slog"

	"github.com/nwieland/staffdir/internal/namematch"
	"github.com/nwieland/staffdir/internal/platform/apperr"
	"github.com/nwieland/staffdir/internal/platform/validate"
	"github.com/nwieland/staffdir/pkg/slice"
)

const (
	maxNameLength    = 100
	maxAddressLength = 100
	maxPostalLength  = 10

	// deleteBatchSize bounds the owner list of one index delete statement
	// during bulk rebuilds.
	deleteBatchSize = 100
)

type Service struct {
	repo     Repository
	index    NameIndexRepository
	variants *namematch.VariantBuilder
	encoder  namematch.Encoder
	logger   *slog.Logger
}

func NewService(repo Repository, index NameIndexRepository, encoder namematch.Encoder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		index:    index,
		variants: namematch.NewVariantBuilder(encoder),
		encoder:  encoder,
		logger:   logger,
	}
}

func (service *Service) ListEmployees(context context.Context, companyID int64, limit, offset int) ([]*Employee, int, error) {
	return service.repo.ListEmployees(context, companyID, limit, offset)
}

func (service *Service) GetEmployee(context context.Context, companyID, id int64) (*Employee, error) {
	return service.repo.GetEmployee(context, companyID, id)
}

func (service *Service) CreateEmployee(context context.Context, employee *Employee) error {
	if err := service.validateEmployee(employee); err != nil {
		return err
	}

	if err := service.repo.CreateEmployee(context, employee); err != nil {
		return err
	}

	if err := service.writeIndex(context, employee); err != nil {
		return err
	}

	service.logger.Info("employee_created",
		slog.Int64("employee_id", employee.ID),
		slog.Int64("company_id", employee.CompanyID),
	)
	return nil
}

func (service *Service) UpdateEmployee(context context.Context, companyID, id int64, employee *Employee) error {
	employee.ID = id
	employee.CompanyID = companyID

	if err := service.validateEmployee(employee); err != nil {
		return err
	}

	if err := service.repo.UpdateEmployee(context, employee); err != nil {
		return err
	}

	if err := service.writeIndex(context, employee); err != nil {
		return err
	}

	service.logger.Info("employee_updated", slog.Int64("employee_id", employee.ID))
	return nil
}

func (service *Service) DeleteEmployee(context context.Context, companyID, id int64) error {
	if err := service.repo.DeleteEmployee(context, companyID, id); err != nil {
		return err
	}

	service.logger.Warn("employee_deleted", slog.Int64("employee_id", id))
	return nil
}

// Search runs a structured surname query. At least one of filter.Surname and
// filter.DateOfBirth must be present.
func (service *Service) Search(context context.Context, companyID int64, filter Filter, limit, offset int) ([]*Employee, int, error) {
	if filter.Surname == "" && filter.DateOfBirth == nil {
		return nil, 0, apperr.ValidationError("surname or date of birth required", apperr.FieldError{
			Field:   FieldQuery,
			Message: "provide a surname or a date of birth",
		})
	}

	query := QueryValue{Value: "%"}
	if filter.Surname != "" {
		query = BuildQueryValue(filter.Surname, filter.Mode, service.encoder)
	}

	return service.repo.Search(context, companyID, query, filter.DateOfBirth, limit, offset)
}

// SearchFreeText parses unstructured input and searches the name index.
// Input without any usable name or date yields an empty page, not an error.
func (service *Service) SearchFreeText(context context.Context, companyID int64, input string, phonetic bool, limit, offset int) ([]*Employee, int, error) {
	filter := namematch.ParsePersonFilter(input, phonetic, service.encoder)
	if !filter.HasNames() && filter.DateOfBirth == nil {
		return nil, 0, nil
	}

	return service.repo.SearchByPersonFilter(context, companyID, filter, limit, offset)
}

// ReindexResult reports what one bulk rebuild touched.
type ReindexResult struct {
	Employees int `json:"employees"`
	Entries   int `json:"entries"`
}

// Reindex rebuilds the name index for every employee of a company. With
// skipDeletion set, existing entries stay in place and the rebuild only
// appends; that is the fast path for first-time population.
func (service *Service) Reindex(context context.Context, companyID int64, skipDeletion bool) (ReindexResult, error) {
	sources, err := service.repo.ListForIndex(context, companyID)
	if err != nil {
		return ReindexResult{}, err
	}

	if !skipDeletion {
		ownerIDs := slice.Map(sources, func(source IndexSource) int64 { return source.ID })
		for _, batch := range slice.Chunk(ownerIDs, deleteBatchSize) {
			if err := service.index.DeleteByOwners(context, batch); err != nil {
				return ReindexResult{}, apperr.IndexWriteFailed(err)
			}
		}
	}

	var entries []namematch.Entry
	for _, source := range sources {
		entries = append(entries, service.variants.BuildVariants(source.ID, source.Surname, source.GivenName)...)
	}

	if err := service.index.InsertAll(context, entries); err != nil {
		return ReindexResult{}, apperr.IndexWriteFailed(err)
	}

	result := ReindexResult{Employees: len(sources), Entries: len(entries)}
	service.logger.Info("reindex_finished",
		slog.Int64("company_id", companyID),
		slog.Int("employees", result.Employees),
		slog.Int("entries", result.Entries),
		slog.Bool("skip_deletion", skipDeletion),
	)
	return result, nil
}

// BulkImportResult reports what one import call persisted.
type BulkImportResult struct {
	Employees int `json:"employees"`
	Entries   int `json:"entries"`
}

// BulkImport creates a batch of employees for one company and indexes them
// in a single append pass. Validation failures abort before any write.
func (service *Service) BulkImport(context context.Context, companyID int64, employees []*Employee) (BulkImportResult, error) {
	for _, employee := range employees {
		employee.CompanyID = companyID
		if err := service.validateEmployee(employee); err != nil {
			return BulkImportResult{}, err
		}
	}

	var entries []namematch.Entry
	for _, employee := range employees {
		if err := service.repo.CreateEmployee(context, employee); err != nil {
			return BulkImportResult{}, err
		}
		entries = append(entries, service.variants.BuildVariants(employee.ID, employee.Surname, employee.GivenName)...)
	}

	if err := service.index.InsertAll(context, entries); err != nil {
		return BulkImportResult{}, apperr.IndexWriteFailed(err)
	}

	result := BulkImportResult{Employees: len(employees), Entries: len(entries)}
	service.logger.Info("employees_imported",
		slog.Int64("company_id", companyID),
		slog.Int("employees", result.Employees),
		slog.Int("entries", result.Entries),
	)
	return result, nil
}

// writeIndex swaps the employee's index entries for freshly built ones.
func (service *Service) writeIndex(context context.Context, employee *Employee) error {
	entries := service.variants.BuildVariants(employee.ID, employee.Surname, employee.GivenName)
	if err := service.index.Replace(context, employee.ID, entries); err != nil {
		return apperr.IndexWriteFailed(err)
	}
	return nil
}

func (service *Service) validateEmployee(employee *Employee) error {
	validator := &validate.Validator{}

	validator.Required(FieldSurname, employee.Surname).MaxLen(FieldSurname, employee.Surname, maxNameLength)
	validator.MaxLen(FieldGivenName, employee.GivenName, maxNameLength)

	if employee.Gender != nil {
		validator.OneOf(FieldGender, *employee.Gender, "m", "f", "d")
	}
	if employee.PostalCode != nil {
		validator.MaxLen(FieldPostalCode, *employee.PostalCode, maxPostalLength)
	}
	if employee.City != nil {
		validator.MaxLen(FieldCity, *employee.City, maxAddressLength)
	}
	if employee.StreetAddress != nil {
		validator.MaxLen(FieldStreetAddress, *employee.StreetAddress, maxAddressLength)
	}

	return validator.Err()
}
