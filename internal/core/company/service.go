package company

import (
	"context"
	"log/slog"

	"github.com/nwieland/staffdir/internal/platform/apperr"
	"github.com/nwieland/staffdir/internal/platform/sec"
	"github.com/nwieland/staffdir/internal/platform/validate"
	"github.com/nwieland/staffdir/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCompanies(context context.Context, filter Filter, limit, offset int) ([]*Company, int, error) {
	return service.repo.ListCompanies(context, filter, limit, offset)
}

func (service *Service) ListCompaniesForUser(context context.Context, userID string, limit, offset int) ([]*Company, int, error) {
	return service.repo.ListCompaniesForUser(context, userID, limit, offset)
}

func (service *Service) GetCompany(context context.Context, id int64) (*Company, error) {
	return service.repo.GetCompany(context, id)
}

func (service *Service) GetCompanyByExternalID(context context.Context, externalID string) (*Company, error) {
	return service.repo.GetCompanyByExternalID(context, externalID)
}

func (service *Service) CreateCompany(context context.Context, company *Company) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, company.Name).MaxLen(FieldName, company.Name, 200)
	if err := validator.Err(); err != nil {
		return err
	}

	if company.ExternalID == "" {
		company.ExternalID = slug.From(company.Name)
	}

	if err := service.repo.CreateCompany(context, company); err != nil {
		return err
	}

	service.logger.Info("company_created",
		slog.Int64("company_id", company.ID),
		slog.String("external_id", company.ExternalID),
	)
	return nil
}

func (service *Service) UpdateCompany(context context.Context, id int64, company *Company) error {
	company.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldName, company.Name).MaxLen(FieldName, company.Name, 200)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateCompany(context, company); err != nil {
		return err
	}

	service.logger.Info("company_updated", slog.Int64("company_id", company.ID))
	return nil
}

func (service *Service) DeleteCompany(context context.Context, id int64) error {
	if err := service.repo.DeleteCompany(context, id); err != nil {
		return err
	}

	service.logger.Warn("company_deleted", slog.Int64("company_id", id))
	return nil
}

func (service *Service) AddMember(context context.Context, companyID int64, userID string) error {
	if err := service.repo.AddMember(context, companyID, userID); err != nil {
		return err
	}

	service.logger.Info("company_member_added",
		slog.Int64("company_id", companyID),
		slog.String("user_id", userID),
	)
	return nil
}

func (service *Service) RemoveMember(context context.Context, companyID int64, userID string) error {
	return service.repo.RemoveMember(context, companyID, userID)
}

// Authorize reports whether the claims holder may act on the company.
// Admins are unscoped; everyone else must be a member.
func (service *Service) Authorize(context context.Context, claims *sec.AuthClaims, companyID int64) error {
	if claims == nil {
		return apperr.Unauthorized("authentication required")
	}
	if sec.UserRole(claims.Role) == sec.RoleAdmin {
		return nil
	}

	member, err := service.repo.IsMember(context, companyID, claims.UserID)
	if err != nil {
		return err
	}
	if !member {
		return apperr.Forbidden("no access to this company")
	}
	return nil
}
