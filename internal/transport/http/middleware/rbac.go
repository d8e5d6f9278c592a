package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/transport/http/api"
)

type PermissionStore interface {
	HasPermission(ctx context.Context, role, permission string) (bool, error)
}

type accessCheck func(r *http.Request, user auth.UserContext) (bool, error)

// RequirePermission admits callers whose role grants permission.
func RequirePermission(permission string, store PermissionStore) func(http.Handler) http.Handler {
	return guard("insufficient permissions", func(r *http.Request, user auth.UserContext) (bool, error) {
		return store.HasPermission(r.Context(), user.RoleName, permission)
	})
}

// RequireRole admits only the listed roles, whatever their permissions.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	message := strings.ToLower(strings.Join(roles, " or ")) + " role required"
	return guard(message, func(_ *http.Request, user auth.UserContext) (bool, error) {
		return slices.Contains(roles, user.RoleName), nil
	})
}

func guard(denied string, check accessCheck) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := GetRequestID(r.Context())
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
				return
			}

			allowed, err := check(r, user)
			if err != nil {
				slog.Error("access check failed", "role", user.RoleName, "path", r.URL.Path, "err", err)
				api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", reqID)
				return
			}
			if !allowed {
				slog.Debug("access denied", "userId", user.UserID, "role", user.RoleName, "method", r.Method, "path", r.URL.Path)
				api.Fail(w, http.StatusForbidden, "forbidden", denied, reqID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
