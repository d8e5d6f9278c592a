package leavehandler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/leave"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	SubmitRequest(ctx context.Context, in leave.RequestInput) (leave.Request, error)
	ListRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, error)
	ApproveRequest(ctx context.Context, id, approver string) (leave.Request, error)
	ListBalances(ctx context.Context, employeeID string, fiscalYear int) ([]leave.Balance, error)
	UpsertBalance(ctx context.Context, in leave.BalanceInput) (leave.Balance, error)
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
	now     func() time.Time
}

func NewHandler(service Service, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor, now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests", h.handleListRequests)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Post("/requests", h.handleCreateRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/requests/{requestID}/approve", h.handleApproveRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/balances", h.handleListBalances)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms), middleware.RequireRole(auth.RoleHR)).Put("/balances", h.handleUpsertBalance)
	})
}

// selfOnly reports whether the caller may only see their own leave.
func selfOnly(user auth.UserContext) bool {
	return user.RoleName == auth.RoleEmployee
}

type requestPayload struct {
	leave.RequestInput
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload requestPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	in := payload.RequestInput
	if in.EmployeeID == "" {
		in.EmployeeID = user.EmployeeID
	}
	if selfOnly(user) && in.EmployeeID != user.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "employees may only request their own leave", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	in.StartDate = v.OptionalDate("startDate", payload.StartDate)
	in.EndDate = v.OptionalDate("endDate", payload.EndDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Service.SubmitRequest(r.Context(), in)
	if err != nil {
		shared.WriteError(w, r, err, "leave_request_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "leave.request.create", "leave_request", req.ID, req)
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	q := r.URL.Query()
	v := shared.NewValidator()
	filter := leave.RequestFilter{
		EmployeeID: v.QueryUUID(r, "employeeId"),
		Status:     strings.ToLower(strings.TrimSpace(q.Get("status"))),
		LeaveType:  strings.ToLower(strings.TrimSpace(q.Get("leaveType"))),
		From:       v.QueryDate(r, "from"),
		To:         v.QueryDate(r, "to"),
	}
	v.Enum("status", filter.Status, []string{leave.StatusPending, leave.StatusApproved, leave.StatusRejected}, "Unknown leave status")
	v.Enum("leaveType", filter.LeaveType, leave.Types, "Unknown leave type")
	v.DateOrder("from", filter.From, "to", filter.To)
	page := shared.ParsePage(r, v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	filter.Limit, filter.Offset = page.Limit, page.Offset
	if selfOnly(user) {
		filter.EmployeeID = user.EmployeeID
	}

	requests, err := h.Service.ListRequests(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err, "leave_request_list_failed")
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	requestID, ok := shared.PathID(w, r, "requestID")
	if !ok {
		return
	}
	req, err := h.Service.ApproveRequest(r.Context(), requestID, user.UserID)
	if err != nil {
		shared.WriteError(w, r, err, "leave_request_approve_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "leave.request.approve", "leave_request", requestID, map[string]string{"status": req.Status})
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListBalances(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	employeeID := v.QueryUUID(r, "employeeId")
	if selfOnly(user) || employeeID == "" {
		employeeID = user.EmployeeID
	}
	v.Required("employeeId", employeeID, "Employee is required")
	year := leave.FiscalYear(h.now())
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			v.Add("year", "Year must be a number")
		}
		year = parsed
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	balances, err := h.Service.ListBalances(r.Context(), employeeID, year)
	if err != nil {
		shared.WriteError(w, r, err, "leave_balance_list_failed")
		return
	}
	api.Success(w, balances, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsertBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload leave.BalanceInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	balance, err := h.Service.UpsertBalance(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "leave_balance_upsert_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "leave.balance.upsert", "leave_balance", balance.ID, balance)
	api.Success(w, balance, middleware.GetRequestID(r.Context()))
}
