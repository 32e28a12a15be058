package middleware

import (
	"net/http"

	pnet "botdesk/internal/platform/net"
)

// AuthPort authenticates a request and names its subject
type AuthPort interface {
	Parse(r *http.Request) (subject string, err error)
}

// Auth rejects requests p cannot authenticate and stores the subject on the context.
// A nil port lets every request through
func Auth(p AuthPort, fail ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sub, err := p.Parse(r)
			if err != nil {
				fail(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithSubject(r.Context(), sub)))
		})
	}
}
