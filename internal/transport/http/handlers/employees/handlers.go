package employeehandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/employee"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	CreateEmployee(ctx context.Context, in employee.CreateInput) (employee.Created, error)
	GetEmployee(ctx context.Context, id string) (employee.Employee, error)
	ListEmployees(ctx context.Context, filter employee.Filter) ([]employee.Employee, int, error)
	UpdateEmployee(ctx context.Context, id string, patch employee.Patch) (employee.Employee, error)
	DeactivateEmployee(ctx context.Context, id string) error
	ListContacts(ctx context.Context, employeeID string) ([]employee.Contact, error)
	ReplaceContacts(ctx context.Context, employeeID string, contacts []employee.ContactInput) ([]employee.Contact, error)
}

type PayrollService interface {
	CreateProfile(ctx context.Context, employeeID string, in payroll.ProfileInput) (payroll.Profile, error)
	ListProfiles(ctx context.Context, employeeID string) ([]payroll.Profile, error)
}

type Handler struct {
	Service Service
	Payroll PayrollService
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service Service, payrollSvc PayrollService, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Payroll: payrollSvc, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Patch("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/{employeeID}/deactivate", h.handleDeactivate)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}/contacts", h.handleListContacts)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Put("/{employeeID}/contacts", h.handleReplaceContacts)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}/payroll-profiles", h.handleListProfiles)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/{employeeID}/payroll-profiles", h.handleCreateProfile)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	q := r.URL.Query()
	status := strings.ToLower(strings.TrimSpace(q.Get("status")))
	v.Enum("status", status, employee.Statuses, "Unknown employment status")
	employmentType := strings.ToLower(strings.TrimSpace(q.Get("employmentType")))
	v.Enum("employmentType", employmentType, employee.EmploymentTypes, "Unknown employment type")
	departmentID := v.QueryUUID(r, "departmentId")
	page := shared.ParsePage(r, v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	items, total, err := h.Service.ListEmployees(r.Context(), employee.Filter{
		Search:         q.Get("search"),
		Status:         status,
		DepartmentID:   departmentID,
		EmploymentType: employmentType,
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		shared.WriteError(w, r, err, "employee_list_failed")
		return
	}
	for i := range items {
		employee.FilterSensitiveFields(&items[i], user)
	}
	api.Success(w, shared.Paged[employee.Employee]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	emp, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err, "employee_get_failed")
		return
	}
	employee.FilterSensitiveFields(&emp, user)
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload createPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	in := payload.input(v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.CreateEmployee(r.Context(), in)
	if err != nil {
		shared.WriteError(w, r, err, "employee_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "employee.create", "employee", created.Employee.ID, created.Employee)
	if created.Payroll != nil {
		shared.RecordAudit(r, h.Audit, user.UserID, "payroll.profile.create", "payroll_profile", created.Payroll.ID, map[string]string{"employeeId": created.Employee.ID})
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload patchPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	patch := payload.patch(v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	emp, err := h.Service.UpdateEmployee(r.Context(), employeeID, patch)
	if err != nil {
		shared.WriteError(w, r, err, "employee_update_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "employee.update", "employee", employeeID, patch)
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	if err := h.Service.DeactivateEmployee(r.Context(), employeeID); err != nil {
		shared.WriteError(w, r, err, "employee_deactivate_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "employee.deactivate", "employee", employeeID, map[string]string{"status": employee.StatusTerminated})
	api.Success(w, map[string]string{"status": employee.StatusTerminated}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	contacts, err := h.Service.ListContacts(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err, "contact_list_failed")
		return
	}
	api.Success(w, contacts, middleware.GetRequestID(r.Context()))
}

type contactsPayload struct {
	Contacts []employee.ContactInput `json:"contacts"`
}

func (h *Handler) handleReplaceContacts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload contactsPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	contacts, err := h.Service.ReplaceContacts(r.Context(), employeeID, payload.Contacts)
	if err != nil {
		shared.WriteError(w, r, err, "contact_replace_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "employee.contacts.replace", "employee", employeeID, map[string]int{"contacts": len(contacts)})
	api.Success(w, contacts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	if !canSeePayroll(r.Context(), h.Perms, user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "payroll access required", middleware.GetRequestID(r.Context()))
		return
	}
	profiles, err := h.Payroll.ListProfiles(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err, "payroll_profile_list_failed")
		return
	}
	api.Success(w, profiles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload profilePayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	in := payload.input(v, "")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	profile, err := h.Payroll.CreateProfile(r.Context(), employeeID, in)
	if err != nil {
		shared.WriteError(w, r, err, "payroll_profile_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "payroll.profile.create", "payroll_profile", profile.ID, map[string]string{"employeeId": employeeID})
	api.Created(w, profile, middleware.GetRequestID(r.Context()))
}

// canSeePayroll lets employees read their own payroll history.
func canSeePayroll(ctx context.Context, perms middleware.PermissionStore, user auth.UserContext, employeeID string) bool {
	if user.EmployeeID != "" && user.EmployeeID == employeeID {
		return true
	}
	allowed, err := perms.HasPermission(ctx, user.RoleName, auth.PermPayrollRead)
	return err == nil && allowed
}
