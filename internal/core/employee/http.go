package employee

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nwieland/staffdir/internal/platform/apperr"
	"github.com/nwieland/staffdir/internal/platform/middleware"
	requestutil "github.com/nwieland/staffdir/internal/platform/request"
	"github.com/nwieland/staffdir/internal/platform/respond"
	"github.com/nwieland/staffdir/internal/platform/sec"
	"github.com/nwieland/staffdir/pkg/pagination"
)

// Authorizer is the company-scoping gate every employee endpoint consults.
// Admins pass unconditionally; everyone else needs company membership.
type Authorizer interface {
	Authorize(request *http.Request, companyID int64) error
}

type Handler struct {
	service    *Service
	authorizer Authorizer
}

func NewHandler(service *Service, authorizer Authorizer) *Handler {
	return &Handler{service: service, authorizer: authorizer}
}

// RegisterRoutes mounts the employee endpoints of one company subtree. The
// parent router carries the {companyID} parameter and authentication.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listEmployees)
	router.Get("/search", handler.search)
	router.Get("/search/text", handler.searchFreeText)
	router.Get("/{id}", handler.getEmployee)

	router.Group(func(managerRoute chi.Router) {
		managerRoute.Use(middleware.RequireRole(sec.RoleManager))

		managerRoute.Post("/", handler.createEmployee)
		managerRoute.Patch("/{id}", handler.updateEmployee)
		managerRoute.Delete("/{id}", handler.deleteEmployee)
		managerRoute.Post("/reindex", handler.reindex)
		managerRoute.Post("/bulk", handler.bulkImport)
	})
}

// companyID resolves and authorizes the company of the current request.
func (handler *Handler) companyID(request *http.Request) (int64, error) {
	raw := requestutil.Param(request, "companyID")
	companyID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.ValidationError("invalid company id")
	}

	if err := handler.authorizer.Authorize(request, companyID); err != nil {
		return 0, err
	}
	return companyID, nil
}

func employeeID(request *http.Request) (int64, error) {
	id, err := strconv.ParseInt(requestutil.ID(request, "id"), 10, 64)
	if err != nil {
		return 0, apperr.ValidationError("invalid employee id")
	}
	return id, nil
}

func (handler *Handler) listEmployees(writer http.ResponseWriter, request *http.Request) {
	companyID, err := handler.companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	employees, total, err := handler.service.ListEmployees(request.Context(), companyID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, employees, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getEmployee(writer http.ResponseWriter, request *http.Request) {
	companyID, err := handler.companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := employeeID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	employee, err := handler.service.GetEmployee(request.Context(), companyID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, employee)
}

func (handler *Handler) createEmployee(writer http.ResponseWriter, request *http.Request) {
	companyID, err := handler.companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Employee
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.CompanyID = companyID

	if err := handler.service.CreateEmployee(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateEmployee(writer http.ResponseWriter, request *http.Request) {
	companyID, err := handler.companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := employeeID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Employee
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateEmployee(request.Context(), companyID, id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteEmployee(writer http.ResponseWriter, request *http.Request) {
	companyID, err := handler.companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := employeeID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEmployee(request.Context(), companyID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	companyID, err := handler.companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	queryParams := request.URL.Query()

	mode, err := ParseSearchMode(queryParams.Get("mode"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var dateOfBirth *time.Time
	if raw := queryParams.Get("date_of_birth"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("invalid date of birth", apperr.FieldError{
				Field:   "date_of_birth",
				Message: "expected YYYY-MM-DD",
			}))
			return
		}
		dateOfBirth = &parsed
	}

	paginationParams := pagination.FromRequest(request)

	employees, total, err := handler.service.Search(request.Context(), companyID,
		Filter{Surname: queryParams.Get("surname"), Mode: mode, DateOfBirth: dateOfBirth},
		paginationParams.Limit, paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, employees, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) searchFreeText(writer http.ResponseWriter, request *http.Request) {
	companyID, err := handler.companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	queryParams := request.URL.Query()
	phonetic := queryParams.Get("phonetic") == "true"

	paginationParams := pagination.FromRequest(request)

	employees, total, err := handler.service.SearchFreeText(request.Context(), companyID,
		queryParams.Get("q"), phonetic,
		paginationParams.Limit, paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, employees, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) reindex(writer http.ResponseWriter, request *http.Request) {
	companyID, err := handler.companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	skipDeletion := request.URL.Query().Get("skip_deletion") == "true"

	result, err := handler.service.Reindex(request.Context(), companyID, skipDeletion)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) bulkImport(writer http.ResponseWriter, request *http.Request) {
	companyID, err := handler.companyID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input []*Employee
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.BulkImport(request.Context(), companyID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}
