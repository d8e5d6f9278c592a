package performancehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/performance"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	CreateReview(ctx context.Context, in performance.ReviewInput) (performance.Review, error)
	GetReview(ctx context.Context, id string) (performance.Review, error)
	ListReviews(ctx context.Context, filter performance.ReviewFilter) ([]performance.Review, error)
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
	r.Route("/performance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/categories", h.handleCategories)
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/reviews", h.handleListReviews)
		r.With(middleware.RequirePermission(auth.PermPerformanceReview, h.Perms)).Post("/reviews", h.handleCreateReview)
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/reviews/{reviewID}", h.handleGetReview)
	})
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]any{
		"categories": performance.Categories,
		"minRating":  performance.MinRating,
		"maxRating":  performance.MaxRating,
	}, middleware.GetRequestID(r.Context()))
}

type reviewPayload struct {
	performance.ReviewInput
	ReviewDate string `json:"reviewDate"`
}

func (h *Handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload reviewPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	in := payload.ReviewInput
	if in.ReviewerID == "" {
		in.ReviewerID = user.EmployeeID
	}
	v := shared.NewValidator()
	in.ReviewDate = v.OptionalDate("reviewDate", payload.ReviewDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	review, err := h.Service.CreateReview(r.Context(), in)
	if err != nil {
		shared.WriteError(w, r, err, "performance_review_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "performance.review.create", "performance_review", review.ID, map[string]any{
		"employeeId": review.EmployeeID,
		"rating":     review.Rating,
	})
	api.Created(w, review, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	filter := performance.ReviewFilter{
		EmployeeID: v.QueryUUID(r, "employeeId"),
		ReviewerID: v.QueryUUID(r, "reviewerId"),
	}
	page := shared.ParsePage(r, v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	filter.Limit, filter.Offset = page.Limit, page.Offset
	if user.RoleName == auth.RoleEmployee {
		filter.EmployeeID = user.EmployeeID
	}

	reviews, err := h.Service.ListReviews(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err, "performance_review_list_failed")
		return
	}
	api.Success(w, reviews, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	reviewID, ok := shared.PathID(w, r, "reviewID")
	if !ok {
		return
	}
	review, err := h.Service.GetReview(r.Context(), reviewID)
	if err != nil {
		shared.WriteError(w, r, err, "performance_review_get_failed")
		return
	}
	if user.RoleName == auth.RoleEmployee && review.EmployeeID != user.EmployeeID {
		api.Fail(w, http.StatusNotFound, "not_found", "record not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, review, middleware.GetRequestID(r.Context()))
}
