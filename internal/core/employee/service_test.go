package employee_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwieland/staffdir/internal/core/employee"
	"github.com/nwieland/staffdir/internal/namematch"
	"github.com/nwieland/staffdir/internal/platform/apperr"
	"github.com/nwieland/staffdir/pkg/pointer"
)

// fakeRepository is an in-memory Repository capturing calls.
type fakeRepository struct {
	nextID       int64
	created      []*employee.Employee
	updated      []*employee.Employee
	indexSources []employee.IndexSource
	createErr    error

	searchQuery employee.QueryValue
	searchDOB   *time.Time
}

func (f *fakeRepository) ListEmployees(context.Context, int64, int, int) ([]*employee.Employee, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) GetEmployee(context.Context, int64, int64) (*employee.Employee, error) {
	return nil, nil
}

func (f *fakeRepository) CreateEmployee(_ context.Context, e *employee.Employee) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	e.ID = f.nextID
	f.created = append(f.created, e)
	return nil
}

func (f *fakeRepository) UpdateEmployee(_ context.Context, e *employee.Employee) error {
	f.updated = append(f.updated, e)
	return nil
}

func (f *fakeRepository) DeleteEmployee(context.Context, int64, int64) error { return nil }

func (f *fakeRepository) Search(_ context.Context, _ int64, query employee.QueryValue, dateOfBirth *time.Time, _, _ int) ([]*employee.Employee, int, error) {
	f.searchQuery = query
	f.searchDOB = dateOfBirth
	return nil, 0, nil
}

func (f *fakeRepository) SearchByPersonFilter(context.Context, int64, *namematch.PersonFilter, int, int) ([]*employee.Employee, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) ListForIndex(context.Context, int64) ([]employee.IndexSource, error) {
	return f.indexSources, nil
}

// fakeNameIndex records index mutations.
type fakeNameIndex struct {
	replaced     map[int64][]namematch.Entry
	deleteCalls  [][]int64
	inserted     []namematch.Entry
	replaceErr   error
	insertAllErr error
}

func newFakeNameIndex() *fakeNameIndex {
	return &fakeNameIndex{replaced: make(map[int64][]namematch.Entry)}
}

func (f *fakeNameIndex) Replace(_ context.Context, ownerID int64, entries []namematch.Entry) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced[ownerID] = entries
	return nil
}

func (f *fakeNameIndex) DeleteByOwners(_ context.Context, ownerIDs []int64) error {
	f.deleteCalls = append(f.deleteCalls, ownerIDs)
	return nil
}

func (f *fakeNameIndex) InsertAll(_ context.Context, entries []namematch.Entry) error {
	if f.insertAllErr != nil {
		return f.insertAllErr
	}
	f.inserted = append(f.inserted, entries...)
	return nil
}

func newTestService(repo *fakeRepository, index *fakeNameIndex) *employee.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return employee.NewService(repo, index, namematch.MetaphoneEncoder{}, logger)
}

/*
TestService_CreateEmployee_WritesIndex checks that a create persists the
employee and swaps in its freshly built name variants.
*/
func TestService_CreateEmployee_WritesIndex(t *testing.T) {
	repo := &fakeRepository{}
	index := newFakeNameIndex()
	service := newTestService(repo, index)

	input := &employee.Employee{CompanyID: 1, Surname: "Schmitt"}
	require.NoError(t, service.CreateEmployee(context.Background(), input))

	require.Len(t, repo.created, 1)
	entries := index.replaced[input.ID]
	require.Len(t, entries, 3)
	assert.Equal(t, namematch.Entry{OwnerID: input.ID, Key: namematch.KeySurnameLowercase, Value: "schmit"}, entries[0])
	assert.Equal(t, namematch.Entry{OwnerID: input.ID, Key: namematch.KeySurnameReduced, Value: "smit"}, entries[1])
	assert.Equal(t, namematch.Entry{OwnerID: input.ID, Key: namematch.KeySurnamePhonetic, Value: "XMT"}, entries[2])
}

/*
TestService_CreateEmployee_Validation checks that invalid input is rejected
before any write.
*/
func TestService_CreateEmployee_Validation(t *testing.T) {
	repo := &fakeRepository{}
	index := newFakeNameIndex()
	service := newTestService(repo, index)

	err := service.CreateEmployee(context.Background(), &employee.Employee{CompanyID: 1})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Empty(t, repo.created)
	assert.Empty(t, index.replaced)
}

/*
TestService_CreateEmployee_GenderRestricted checks the closed gender value set.
*/
func TestService_CreateEmployee_GenderRestricted(t *testing.T) {
	repo := &fakeRepository{}
	index := newFakeNameIndex()
	service := newTestService(repo, index)

	err := service.CreateEmployee(context.Background(), &employee.Employee{
		CompanyID: 1,
		Surname:   "Schmitt",
		Gender:    pointer.To("x"),
	})

	require.Error(t, err)
	assert.Empty(t, repo.created)

	err = service.CreateEmployee(context.Background(), &employee.Employee{
		CompanyID: 1,
		Surname:   "Schmitt",
		Gender:    pointer.To("d"),
	})
	require.NoError(t, err)
	assert.Len(t, repo.created, 1)
}

/*
TestService_CreateEmployee_IndexFailure checks that a failed index write
surfaces as its own error class, distinct from validation failures.
*/
func TestService_CreateEmployee_IndexFailure(t *testing.T) {
	repo := &fakeRepository{}
	index := newFakeNameIndex()
	index.replaceErr = errors.New("connection reset")
	service := newTestService(repo, index)

	err := service.CreateEmployee(context.Background(), &employee.Employee{CompanyID: 1, Surname: "Schmitt"})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INDEX_WRITE_FAILED", ae.Code)
	// The employee row itself was persisted; reindex can repair the index.
	assert.Len(t, repo.created, 1)
}

/*
TestService_Reindex_BatchesDeletes checks that a full rebuild partitions the
owner list into delete statements of at most 100 ids.
*/
func TestService_Reindex_BatchesDeletes(t *testing.T) {
	repo := &fakeRepository{}
	for i := int64(1); i <= 250; i++ {
		repo.indexSources = append(repo.indexSources, employee.IndexSource{ID: i, Surname: "Schmitt"})
	}
	index := newFakeNameIndex()
	service := newTestService(repo, index)

	result, err := service.Reindex(context.Background(), 1, false)
	require.NoError(t, err)

	require.Len(t, index.deleteCalls, 3)
	assert.Len(t, index.deleteCalls[0], 100)
	assert.Len(t, index.deleteCalls[1], 100)
	assert.Len(t, index.deleteCalls[2], 50)

	assert.Equal(t, 250, result.Employees)
	// Three variants per single-token surname.
	assert.Equal(t, 750, result.Entries)
	assert.Len(t, index.inserted, 750)
}

/*
TestService_Reindex_SkipDeletion checks the append-only fast path.
*/
func TestService_Reindex_SkipDeletion(t *testing.T) {
	repo := &fakeRepository{}
	repo.indexSources = []employee.IndexSource{{ID: 1, Surname: "Maier", GivenName: "Karl"}}
	index := newFakeNameIndex()
	service := newTestService(repo, index)

	result, err := service.Reindex(context.Background(), 1, true)
	require.NoError(t, err)

	assert.Empty(t, index.deleteCalls)
	assert.Equal(t, 1, result.Employees)
	assert.Equal(t, 6, result.Entries)
}

/*
TestService_Search_RequiresCriteria checks that a structured search without
surname and date is rejected.
*/
func TestService_Search_RequiresCriteria(t *testing.T) {
	service := newTestService(&fakeRepository{}, newFakeNameIndex())

	_, _, err := service.Search(context.Background(), 1, employee.Filter{Mode: employee.SearchModePrefixLowercase}, 20, 0)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_Search_TranslatesFilter checks that the filter fields reach the
store as a translated index predicate plus the untouched date constraint.
*/
func TestService_Search_TranslatesFilter(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, newFakeNameIndex())

	dateOfBirth := time.Date(1975, 12, 31, 0, 0, 0, 0, time.UTC)
	filter := employee.Filter{
		Surname:     "Müller",
		Mode:        employee.SearchModePrefixLowercase,
		DateOfBirth: &dateOfBirth,
	}

	_, _, err := service.Search(context.Background(), 1, filter, 20, 0)

	require.NoError(t, err)
	require.NotNil(t, repo.searchQuery.Key)
	assert.Equal(t, namematch.KeySurnameLowercase, *repo.searchQuery.Key)
	assert.Equal(t, "mueler%", repo.searchQuery.Value)
	require.NotNil(t, repo.searchDOB)
	assert.True(t, repo.searchDOB.Equal(dateOfBirth))
}

/*
TestService_SearchFreeText_EmptyInput checks that name-free input yields an
empty page without touching the store.
*/
func TestService_SearchFreeText_EmptyInput(t *testing.T) {
	service := newTestService(&fakeRepository{}, newFakeNameIndex())

	employees, total, err := service.SearchFreeText(context.Background(), 1, " 12 13 1X ", false, 20, 0)

	require.NoError(t, err)
	assert.Empty(t, employees)
	assert.Zero(t, total)
}

/*
TestService_BulkImport checks batch creation plus a single append-only index
pass, and that validation aborts before any write.
*/
func TestService_BulkImport(t *testing.T) {
	repo := &fakeRepository{}
	index := newFakeNameIndex()
	service := newTestService(repo, index)

	batch := []*employee.Employee{
		{Surname: "Schmitt"},
		{Surname: "Maier", GivenName: "Karl"},
	}
	result, err := service.BulkImport(context.Background(), 9, batch)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Employees)
	assert.Equal(t, 9, result.Entries)
	require.Len(t, repo.created, 2)
	assert.Equal(t, int64(9), repo.created[0].CompanyID)
	assert.Len(t, index.inserted, 9)
	assert.Empty(t, index.replaced)
}

func TestService_BulkImport_ValidationAborts(t *testing.T) {
	repo := &fakeRepository{}
	index := newFakeNameIndex()
	service := newTestService(repo, index)

	_, err := service.BulkImport(context.Background(), 9, []*employee.Employee{
		{Surname: "Schmitt"},
		{Surname: ""},
	})

	require.Error(t, err)
	assert.Empty(t, repo.created)
	assert.Empty(t, index.inserted)
}
