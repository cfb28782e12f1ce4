package company

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nwieland/staffdir/internal/platform/apperr"
	"github.com/nwieland/staffdir/internal/platform/middleware"
	requestutil "github.com/nwieland/staffdir/internal/platform/request"
	"github.com/nwieland/staffdir/internal/platform/respond"
	"github.com/nwieland/staffdir/internal/platform/sec"
	"github.com/nwieland/staffdir/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Any authenticated user sees their own companies.
	router.Get("/", handler.listCompanies)
	router.Get("/{id}", handler.getCompany)
	router.Get("/by-external-id/{externalID}", handler.getCompanyByExternalID)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createCompany)
		adminRoute.Patch("/{id}", handler.updateCompany)
		adminRoute.Delete("/{id}", handler.deleteCompany)
		adminRoute.Put("/{id}/members/{userID}", handler.addMember)
		adminRoute.Delete("/{id}/members/{userID}", handler.removeMember)
	})
}

// RequestAuthorizer adapts [Service.Authorize] to the per-request gate the
// employee endpoints consume.
type RequestAuthorizer struct {
	service *Service
}

func NewRequestAuthorizer(service *Service) *RequestAuthorizer {
	return &RequestAuthorizer{service: service}
}

func (authorizer *RequestAuthorizer) Authorize(request *http.Request, companyID int64) error {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return err
	}
	return authorizer.service.Authorize(request.Context(), claims, companyID)
}

func companyID(request *http.Request) (int64, error) {
	id, err := strconv.ParseInt(requestutil.ID(request, "id"), 10, 64)
	if err != nil {
		return 0, apperr.ValidationError("invalid company id")
	}
	return id, nil
}

func (handler *Handler) listCompanies(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	// Admins browse every company; members only theirs.
	var (
		companies []*Company
		total     int
	)
	if sec.UserRole(claims.Role) == sec.RoleAdmin {
		filter := Filter{Query: request.URL.Query().Get("q")}
		companies, total, err = handler.service.ListCompanies(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	} else {
		companies, total, err = handler.service.ListCompaniesForUser(request.Context(), claims.UserID, paginationParams.Limit, paginationParams.Offset())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, companies, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCompany(writer http.ResponseWriter, request *http.Request) {
	id, err := companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.service.Authorize(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	company, err := handler.service.GetCompany(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, company)
}

func (handler *Handler) getCompanyByExternalID(writer http.ResponseWriter, request *http.Request) {
	externalID := requestutil.Param(request, "externalID")

	company, err := handler.service.GetCompanyByExternalID(request.Context(), externalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.service.Authorize(request.Context(), claims, company.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, company)
}

func (handler *Handler) createCompany(writer http.ResponseWriter, request *http.Request) {
	var input Company
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCompany(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCompany(writer http.ResponseWriter, request *http.Request) {
	id, err := companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Company
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCompany(request.Context(), id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteCompany(writer http.ResponseWriter, request *http.Request) {
	id, err := companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCompany(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) addMember(writer http.ResponseWriter, request *http.Request) {
	id, err := companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddMember(request.Context(), id, requestutil.Param(request, "userID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) removeMember(writer http.ResponseWriter, request *http.Request) {
	id, err := companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveMember(request.Context(), id, requestutil.Param(request, "userID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
