package reportshandler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/reports"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	DashboardStats(ctx context.Context) reports.Stats
	RecentActivities(ctx context.Context, limit int) []reports.Activity
	HeadcountByDepartment(ctx context.Context) (reports.Chart, error)
	StatusDistribution(ctx context.Context) (reports.Chart, error)
	Turnover(ctx context.Context, from, to time.Time) (reports.Turnover, error)
	ExportEmployeesXLSX(ctx context.Context, w io.Writer) (int, error)
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service Service, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

const maxActivities = 50

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/dashboard", h.handleDashboard)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/activities", h.handleActivities)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/charts/headcount", h.handleHeadcount)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/charts/status", h.handleStatus)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/turnover", h.handleTurnover)
		r.With(middleware.RequirePermission(auth.PermReportsExport, h.Perms)).Get("/employees/export", h.handleExportEmployees)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.DashboardStats(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActivities(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			v.Add("limit", "Limit must be a positive number")
		}
		limit = min(n, maxActivities)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	api.Success(w, h.Service.RecentActivities(r.Context(), limit), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHeadcount(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Service.HeadcountByDepartment(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "headcount_chart_failed")
		return
	}
	api.Success(w, chart, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Service.StatusDistribution(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "status_chart_failed")
		return
	}
	api.Success(w, chart, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTurnover(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	from := v.QueryDate(r, "from")
	to := v.QueryDate(r, "to")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	turnover, err := h.Service.Turnover(r.Context(), from, to)
	if err != nil {
		shared.WriteError(w, r, err, "turnover_failed")
		return
	}
	api.Success(w, turnover, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportEmployees(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var buf bytes.Buffer
	rows, err := h.Service.ExportEmployeesXLSX(r.Context(), &buf)
	if err != nil {
		shared.WriteError(w, r, err, "employee_export_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "reports.employees.export", "employee", "", map[string]int{"rows": rows})

	api.Attachment(w, api.ContentTypeXLSX, "employees.xlsx", &buf)
}
