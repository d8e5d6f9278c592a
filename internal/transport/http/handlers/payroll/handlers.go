package payrollhandler

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Service interface {
	Register(ctx context.Context) (payroll.Register, error)
}

type Handler struct {
	Service Service
	Perms   middleware.PermissionStore
}

func NewHandler(service Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/register", h.handleRegister)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/register/export", h.handleExportRegister)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	register, err := h.Service.Register(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "payroll_register_failed")
		return
	}
	api.Success(w, register, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportRegister(w http.ResponseWriter, r *http.Request) {
	register, err := h.Service.Register(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "payroll_export_failed")
		return
	}

	var buf bytes.Buffer
	if err := writeRegisterCSV(&buf, register); err != nil {
		shared.WriteError(w, r, err, "payroll_export_failed")
		return
	}
	api.Attachment(w, api.ContentTypeCSV, "payroll-register.csv", &buf)
}

func writeRegisterCSV(w io.Writer, register payroll.Register) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"employee_code", "full_name", "department", "currency", "payment_method", "gross", "deductions", "net"}); err != nil {
		return err
	}
	for _, row := range register.Rows {
		record := []string{
			row.EmployeeCode,
			row.FullName,
			row.Department,
			row.Profile.Currency,
			row.Profile.PaymentMethod,
			row.Totals.Gross.StringFixed(2),
			row.Totals.Deductions.StringFixed(2),
			row.Totals.Net.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{"", "TOTAL", "", "", "", register.Totals.Gross.StringFixed(2), register.Totals.Deductions.StringFixed(2), register.Totals.Net.StringFixed(2)}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
