package company_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwieland/staffdir/internal/core/company"
	"github.com/nwieland/staffdir/internal/platform/apperr"
	"github.com/nwieland/staffdir/internal/platform/sec"
)

// fakeRepository is an in-memory Repository with a member set per company.
type fakeRepository struct {
	nextID    int64
	companies map[int64]*company.Company
	members   map[int64]map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		companies: make(map[int64]*company.Company),
		members:   make(map[int64]map[string]bool),
	}
}

func (f *fakeRepository) ListCompanies(context.Context, company.Filter, int, int) ([]*company.Company, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) ListCompaniesForUser(context.Context, string, int, int) ([]*company.Company, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) GetCompany(_ context.Context, id int64) (*company.Company, error) {
	if c, ok := f.companies[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Company")
}

func (f *fakeRepository) GetCompanyByExternalID(_ context.Context, externalID string) (*company.Company, error) {
	for _, c := range f.companies {
		if c.ExternalID == externalID {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Company")
}

func (f *fakeRepository) CreateCompany(_ context.Context, c *company.Company) error {
	f.nextID++
	c.ID = f.nextID
	f.companies[c.ID] = c
	return nil
}

func (f *fakeRepository) UpdateCompany(_ context.Context, c *company.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeRepository) DeleteCompany(_ context.Context, id int64) error {
	delete(f.companies, id)
	return nil
}

func (f *fakeRepository) AddMember(_ context.Context, companyID int64, userID string) error {
	if f.members[companyID] == nil {
		f.members[companyID] = make(map[string]bool)
	}
	f.members[companyID][userID] = true
	return nil
}

func (f *fakeRepository) RemoveMember(_ context.Context, companyID int64, userID string) error {
	delete(f.members[companyID], userID)
	return nil
}

func (f *fakeRepository) IsMember(_ context.Context, companyID int64, userID string) (bool, error) {
	return f.members[companyID][userID], nil
}

func newTestService(repo *fakeRepository) *company.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return company.NewService(repo, logger)
}

/*
TestService_CreateCompany_GeneratesExternalID checks the slug fallback for a
missing external ID.
*/
func TestService_CreateCompany_GeneratesExternalID(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created := &company.Company{Name: "Müller & Söhne GmbH"}
	require.NoError(t, service.CreateCompany(context.Background(), created))
	assert.Equal(t, "muller-sohne-gmbh", created.ExternalID)

	// A caller-provided external ID is kept verbatim.
	explicit := &company.Company{Name: "Zweite GmbH", ExternalID: "custom-id"}
	require.NoError(t, service.CreateCompany(context.Background(), explicit))
	assert.Equal(t, "custom-id", explicit.ExternalID)
}

/*
TestService_CreateCompany_RequiresName checks boundary validation.
*/
func TestService_CreateCompany_RequiresName(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	err := service.CreateCompany(context.Background(), &company.Company{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, repo.companies)
}

/*
TestService_Authorize covers the company scoping rules: admins bypass
membership, everyone else needs a membership row.
*/
func TestService_Authorize(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created := &company.Company{Name: "Staffdir GmbH"}
	require.NoError(t, service.CreateCompany(context.Background(), created))
	require.NoError(t, service.AddMember(context.Background(), created.ID, "member-user"))

	tests := []struct {
		name     string
		claims   *sec.AuthClaims
		wantCode string
	}{
		{"nil_claims", nil, "UNAUTHORIZED"},
		{"admin_bypasses_membership", &sec.AuthClaims{UserID: "any", Role: string(sec.RoleAdmin)}, ""},
		{"member_allowed", &sec.AuthClaims{UserID: "member-user", Role: string(sec.RoleManager)}, ""},
		{"outsider_forbidden", &sec.AuthClaims{UserID: "stranger", Role: string(sec.RoleManager)}, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Authorize(context.Background(), tt.claims, created.ID)
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
			}
		})
	}
}
