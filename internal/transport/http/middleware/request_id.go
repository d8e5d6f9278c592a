package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"hrportal/internal/requestctx"
)

const requestIDHeader = "X-Request-ID"

// RequestID reuses a caller supplied X-Request-ID of sane length and mints
// one otherwise.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)
		ctx := requestctx.With(r.Context(), requestctx.Info{RequestID: reqID, ClientIP: requestctx.ClientIP(r)})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.RequestID(ctx)
}
