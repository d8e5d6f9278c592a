package benefitshandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/benefits"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	CreatePlan(ctx context.Context, in benefits.PlanInput) (benefits.Created, error)
	ListPlans(ctx context.Context, status string) ([]benefits.Plan, error)
	EnrollEmployees(ctx context.Context, planID string, in benefits.EnrollmentInput) ([]benefits.Enrollment, error)
	ListEnrollments(ctx context.Context, planID string) ([]benefits.Enrollment, error)
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
	r.Route("/benefits/plans", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermBenefitsRead, h.Perms)).Get("/", h.handleListPlans)
		r.With(middleware.RequirePermission(auth.PermBenefitsWrite, h.Perms)).Post("/", h.handleCreatePlan)
		r.With(middleware.RequirePermission(auth.PermBenefitsRead, h.Perms)).Get("/{planID}/enrollments", h.handleListEnrollments)
		r.With(middleware.RequirePermission(auth.PermBenefitsWrite, h.Perms)).Post("/{planID}/enrollments", h.handleEnroll)
	})
}

type planPayload struct {
	benefits.PlanInput
	EffectiveDate string `json:"effectiveDate"`
	EndDate       string `json:"endDate"`
}

func (h *Handler) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload planPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	in := payload.PlanInput
	in.EffectiveDate = v.OptionalDate("effectiveDate", payload.EffectiveDate)
	in.EndDate = v.OptionalDatePtr("endDate", payload.EndDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.CreatePlan(r.Context(), in)
	if err != nil {
		shared.WriteError(w, r, err, "benefit_plan_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "benefits.plan.create", "benefit_plan", created.Plan.ID, map[string]any{
		"name":        created.Plan.Name,
		"enrollments": len(created.Enrollments),
	})
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	v.Enum("status", status, []string{benefits.StatusActive, benefits.StatusInactive}, "Unknown plan status")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	plans, err := h.Service.ListPlans(r.Context(), status)
	if err != nil {
		shared.WriteError(w, r, err, "benefit_plan_list_failed")
		return
	}
	api.Success(w, plans, middleware.GetRequestID(r.Context()))
}

type enrollmentPayload struct {
	benefits.EnrollmentInput
	EnrollmentDate string `json:"enrollmentDate"`
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload enrollmentPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	in := payload.EnrollmentInput
	in.EnrollmentDate = v.OptionalDate("enrollmentDate", payload.EnrollmentDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	planID, ok := shared.PathID(w, r, "planID")
	if !ok {
		return
	}
	enrollments, err := h.Service.EnrollEmployees(r.Context(), planID, in)
	if err != nil {
		shared.WriteError(w, r, err, "benefit_enroll_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "benefits.plan.enroll", "benefit_plan", planID, map[string]int{"enrollments": len(enrollments)})
	api.Created(w, enrollments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	planID, ok := shared.PathID(w, r, "planID")
	if !ok {
		return
	}
	enrollments, err := h.Service.ListEnrollments(r.Context(), planID)
	if err != nil {
		shared.WriteError(w, r, err, "benefit_enrollment_list_failed")
		return
	}
	api.Success(w, enrollments, middleware.GetRequestID(r.Context()))
}
