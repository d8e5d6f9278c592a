package compliancehandler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/compliance"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	CreateReport(ctx context.Context, in compliance.ReportInput) (compliance.Report, error)
	ListReports(ctx context.Context, filter compliance.ReportFilter) ([]compliance.Report, error)
	GetReport(ctx context.Context, id string) (compliance.Report, error)
	MarkSubmitted(ctx context.Context, id string, in compliance.SubmitInput) (compliance.Report, error)
	RenderPDF(ctx context.Context, id string, w io.Writer) error
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service Service, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

var reportStatuses = []string{compliance.StatusDraft, compliance.StatusSubmitted, compliance.StatusAccepted, compliance.StatusRejected}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/compliance/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermComplianceRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermComplianceWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermComplianceRead, h.Perms)).Get("/{reportID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermComplianceRead, h.Perms)).Get("/{reportID}/pdf", h.handlePDF)
		r.With(middleware.RequirePermission(auth.PermComplianceWrite, h.Perms)).Post("/{reportID}/submit", h.handleSubmit)
	})
}

type reportPayload struct {
	compliance.ReportInput
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	DueDate     string `json:"dueDate"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload reportPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	in := payload.ReportInput
	in.PeriodStart = v.OptionalDate("periodStart", payload.PeriodStart)
	in.PeriodEnd = v.OptionalDate("periodEnd", payload.PeriodEnd)
	in.DueDate = v.OptionalDate("dueDate", payload.DueDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	report, err := h.Service.CreateReport(r.Context(), in)
	if err != nil {
		shared.WriteError(w, r, err, "compliance_report_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "compliance.report.create", "compliance_report", report.ID, map[string]any{
		"name":  report.Name,
		"total": report.Total,
	})
	api.Created(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := compliance.ReportFilter{
		Status:     strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))),
		ReportType: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("reportType"))),
	}
	v.Enum("status", filter.Status, reportStatuses, "Unknown report status")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	reports, err := h.Service.ListReports(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err, "compliance_report_list_failed")
		return
	}
	api.Success(w, reports, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reportID, ok := shared.PathID(w, r, "reportID")
	if !ok {
		return
	}
	report, err := h.Service.GetReport(r.Context(), reportID)
	if err != nil {
		shared.WriteError(w, r, err, "compliance_report_get_failed")
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload compliance.SubmitInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	reportID, ok := shared.PathID(w, r, "reportID")
	if !ok {
		return
	}
	report, err := h.Service.MarkSubmitted(r.Context(), reportID, payload)
	if err != nil {
		shared.WriteError(w, r, err, "compliance_report_submit_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "compliance.report.submit", "compliance_report", reportID, map[string]string{"referenceNumber": report.ReferenceNumber})
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

// handlePDF renders into memory first so a failure still gets a JSON error.
func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	reportID, ok := shared.PathID(w, r, "reportID")
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Service.RenderPDF(r.Context(), reportID, &buf); err != nil {
		shared.WriteError(w, r, err, "compliance_report_pdf_failed")
		return
	}

	api.Attachment(w, api.ContentTypePDF, "compliance-report-"+reportID+".pdf", &buf)
}
