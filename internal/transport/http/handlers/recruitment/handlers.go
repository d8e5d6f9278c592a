package recruitmenthandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/recruitment"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	CreatePosting(ctx context.Context, in recruitment.PostingInput) (recruitment.Posting, error)
	ListPostings(ctx context.Context, filter recruitment.PostingFilter) ([]recruitment.Posting, error)
	UpdatePostingStatus(ctx context.Context, id string, in recruitment.StatusInput) error
	AddApplication(ctx context.Context, postingID string, in recruitment.ApplicationInput) (recruitment.Application, error)
	ListApplications(ctx context.Context, postingID string) ([]recruitment.Application, error)
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service Service, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

var postingStatuses = []string{
	recruitment.PostingDraft,
	recruitment.PostingOpen,
	recruitment.PostingOnHold,
	recruitment.PostingClosed,
	recruitment.PostingFilled,
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recruitment/postings", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRecruitmentRead, h.Perms)).Get("/", h.handleListPostings)
		r.With(middleware.RequirePermission(auth.PermRecruitmentWrite, h.Perms)).Post("/", h.handleCreatePosting)
		r.With(middleware.RequirePermission(auth.PermRecruitmentWrite, h.Perms)).Put("/{postingID}/status", h.handleUpdateStatus)
		r.With(middleware.RequirePermission(auth.PermRecruitmentWrite, h.Perms)).Get("/{postingID}/applications", h.handleListApplications)
		r.With(middleware.RequirePermission(auth.PermRecruitmentWrite, h.Perms)).Post("/{postingID}/applications", h.handleAddApplication)
	})
}

type postingPayload struct {
	recruitment.PostingInput
	PostedDate  string `json:"postedDate"`
	ClosingDate string `json:"closingDate"`
}

func (h *Handler) handleCreatePosting(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload postingPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	in := payload.PostingInput
	in.PostedDate = v.OptionalDate("postedDate", payload.PostedDate)
	in.ClosingDate = v.OptionalDatePtr("closingDate", payload.ClosingDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	posting, err := h.Service.CreatePosting(r.Context(), in)
	if err != nil {
		shared.WriteError(w, r, err, "job_posting_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "recruitment.posting.create", "job_posting", posting.ID, posting)
	api.Created(w, posting, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPostings(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := recruitment.PostingFilter{
		Status:       strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))),
		DepartmentID: v.QueryUUID(r, "departmentId"),
	}
	v.Enum("status", filter.Status, postingStatuses, "Unknown posting status")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	postings, err := h.Service.ListPostings(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err, "job_posting_list_failed")
		return
	}
	api.Success(w, postings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload recruitment.StatusInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.Status = strings.ToLower(strings.TrimSpace(payload.Status))
	postingID, ok := shared.PathID(w, r, "postingID")
	if !ok {
		return
	}
	if err := h.Service.UpdatePostingStatus(r.Context(), postingID, payload); err != nil {
		shared.WriteError(w, r, err, "job_posting_status_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "recruitment.posting.status", "job_posting", postingID, payload)
	api.Success(w, map[string]string{"id": postingID, "status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddApplication(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload recruitment.ApplicationInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	postingID, ok := shared.PathID(w, r, "postingID")
	if !ok {
		return
	}
	application, err := h.Service.AddApplication(r.Context(), postingID, payload)
	if err != nil {
		shared.WriteError(w, r, err, "job_application_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "recruitment.application.create", "job_application", application.ID, map[string]string{"postingId": postingID})
	api.Created(w, application, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	postingID, ok := shared.PathID(w, r, "postingID")
	if !ok {
		return
	}
	applications, err := h.Service.ListApplications(r.Context(), postingID)
	if err != nil {
		shared.WriteError(w, r, err, "job_application_list_failed")
		return
	}
	api.Success(w, applications, middleware.GetRequestID(r.Context()))
}
