package requestctx

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type ctxKey struct{}

// Info is the request metadata carried from the edge middleware to error
// responses and audit entries.
type Info struct {
	RequestID string
	ClientIP  string
}

func With(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

func From(ctx context.Context) Info {
	info, _ := ctx.Value(ctxKey{}).(Info)
	return info
}

func RequestID(ctx context.Context) string {
	return From(ctx).RequestID
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil || host == "" {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

// ClientIPFrom returns the address recorded by the middleware, falling back
// to reading the request itself.
func ClientIPFrom(r *http.Request) string {
	if ip := From(r.Context()).ClientIP; ip != "" {
		return ip
	}
	return ClientIP(r)
}
