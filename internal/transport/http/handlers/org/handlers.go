package orghandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/org"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	ListDepartments(ctx context.Context) ([]org.Department, error)
	CreateDepartment(ctx context.Context, in org.DepartmentInput) (org.Department, error)
	UpdateDepartment(ctx context.Context, id string, patch org.DepartmentPatch) error
	ListJobGrades(ctx context.Context) ([]org.JobGrade, error)
	CreateJobGrade(ctx context.Context, in org.JobGradeInput) (org.JobGrade, error)
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service Service, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermOrgRead, h.Perms)).Get("/departments", h.handleListDepartments)
	r.With(middleware.RequirePermission(auth.PermOrgWrite, h.Perms)).Post("/departments", h.handleCreateDepartment)
	r.With(middleware.RequirePermission(auth.PermOrgWrite, h.Perms)).Patch("/departments/{departmentID}", h.handleUpdateDepartment)
	r.With(middleware.RequirePermission(auth.PermOrgRead, h.Perms)).Get("/job-grades", h.handleListJobGrades)
	r.With(middleware.RequirePermission(auth.PermOrgWrite, h.Perms)).Post("/job-grades", h.handleCreateJobGrade)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "department_list_failed")
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload org.DepartmentInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	dept, err := h.Service.CreateDepartment(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "department_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "org.department.create", "department", dept.ID, dept)
	api.Created(w, dept, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload org.DepartmentPatch
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	departmentID, ok := shared.PathID(w, r, "departmentID")
	if !ok {
		return
	}
	if err := h.Service.UpdateDepartment(r.Context(), departmentID, payload); err != nil {
		shared.WriteError(w, r, err, "department_update_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "org.department.update", "department", departmentID, payload)
	api.Success(w, map[string]string{"id": departmentID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListJobGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.Service.ListJobGrades(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "job_grade_list_failed")
		return
	}
	api.Success(w, grades, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateJobGrade(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload org.JobGradeInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	grade, err := h.Service.CreateJobGrade(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "job_grade_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "org.job_grade.create", "job_grade", grade.ID, grade)
	api.Created(w, grade, middleware.GetRequestID(r.Context()))
}
