package traininghandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/training"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	CreateProgram(ctx context.Context, in training.ProgramInput) (training.Created, error)
	ListPrograms(ctx context.Context, status string) ([]training.Program, error)
	AddParticipants(ctx context.Context, programID string, in training.ParticipantsInput) ([]training.Participant, error)
	ListParticipants(ctx context.Context, programID string) ([]training.Participant, error)
	CompleteParticipant(ctx context.Context, programID, employeeID string, in training.CompletionInput) (training.Participant, error)
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service Service, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

var programStatuses = []string{training.ProgramScheduled, training.ProgramInProgress, training.ProgramCompleted, training.ProgramCancelled}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/training/programs", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTrainingRead, h.Perms)).Get("/", h.handleListPrograms)
		r.With(middleware.RequirePermission(auth.PermTrainingWrite, h.Perms)).Post("/", h.handleCreateProgram)
		r.With(middleware.RequirePermission(auth.PermTrainingRead, h.Perms)).Get("/{programID}/participants", h.handleListParticipants)
		r.With(middleware.RequirePermission(auth.PermTrainingWrite, h.Perms)).Post("/{programID}/participants", h.handleAddParticipants)
		r.With(middleware.RequirePermission(auth.PermTrainingWrite, h.Perms)).Post("/{programID}/participants/{employeeID}/complete", h.handleComplete)
	})
}

type programPayload struct {
	training.ProgramInput
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *Handler) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload programPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	in := payload.ProgramInput
	in.StartDate = v.OptionalDate("startDate", payload.StartDate)
	in.EndDate = v.OptionalDate("endDate", payload.EndDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.CreateProgram(r.Context(), in)
	if err != nil {
		shared.WriteError(w, r, err, "training_program_create_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "training.program.create", "training_program", created.Program.ID, map[string]any{
		"title":        created.Program.Title,
		"participants": len(created.Participants),
	})
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	v.Enum("status", status, programStatuses, "Unknown program status")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	programs, err := h.Service.ListPrograms(r.Context(), status)
	if err != nil {
		shared.WriteError(w, r, err, "training_program_list_failed")
		return
	}
	api.Success(w, programs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddParticipants(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload training.ParticipantsInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	programID, ok := shared.PathID(w, r, "programID")
	if !ok {
		return
	}
	participants, err := h.Service.AddParticipants(r.Context(), programID, payload)
	if err != nil {
		shared.WriteError(w, r, err, "training_participant_add_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "training.participants.add", "training_program", programID, map[string]int{"participants": len(participants)})
	api.Created(w, participants, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	programID, ok := shared.PathID(w, r, "programID")
	if !ok {
		return
	}
	participants, err := h.Service.ListParticipants(r.Context(), programID)
	if err != nil {
		shared.WriteError(w, r, err, "training_participant_list_failed")
		return
	}
	api.Success(w, participants, middleware.GetRequestID(r.Context()))
}

type completionPayload struct {
	training.CompletionInput
	CompletionDate string `json:"completionDate"`
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload completionPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	in := payload.CompletionInput
	in.CompletionDate = v.OptionalDate("completionDate", payload.CompletionDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	programID, ok := shared.PathID(w, r, "programID")
	if !ok {
		return
	}
	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	participant, err := h.Service.CompleteParticipant(r.Context(), programID, employeeID, in)
	if err != nil {
		shared.WriteError(w, r, err, "training_completion_failed")
		return
	}
	shared.RecordAudit(r, h.Audit, user.UserID, "training.participant.complete", "training_participant", participant.ID, participant)
	api.Success(w, participant, middleware.GetRequestID(r.Context()))
}
