package middleware

import "net/http"

type header struct {
	name  string
	value string
}

// apiHeaders are sent with every response. Employee records, payslip figures
// and exported files must never be cached or framed.
var apiHeaders = []header{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=()"},
	{"Cache-Control", "no-store"},
}

var hstsHeader = header{"Strict-Transport-Security", "max-age=63072000; includeSubDomains"}

// SecureHeaders adds HSTS only in production, where TLS is terminated in
// front of the service.
func SecureHeaders(isProd bool) func(http.Handler) http.Handler {
	set := apiHeaders
	if isProd {
		set = append(append([]header{}, apiHeaders...), hstsHeader)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			for _, h := range set {
				headers.Set(h.name, h.value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
