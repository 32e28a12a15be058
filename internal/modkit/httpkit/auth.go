package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "botdesk/internal/platform/errors"
	pnet "botdesk/internal/platform/net"
	phttp "botdesk/internal/platform/net/http"
	"botdesk/internal/platform/net/middleware"
)

const (
	// AdminSubject is the subject for requests carrying the static admin token
	AdminSubject = "admin"

	// Anonymous is the audit actor when admin routes run without a token
	Anonymous = "anonymous"
)

// TokenFunc maps a bearer token to a subject
type TokenFunc func(token string) (subject string, err error)

// Bearer reads "Authorization: Bearer <token>" and asks check who it belongs to
type Bearer struct{ check TokenFunc }

// NewBearer wraps check; a nil check rejects everything
func NewBearer(check TokenFunc) *Bearer { return &Bearer{check: check} }

// Parse implements middleware.AuthPort
func (b *Bearer) Parse(r *http.Request) (string, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	token = strings.TrimSpace(token)
	if !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	if b.check == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	sub, err := b.check(token)
	if err != nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return sub, nil
}

// StaticToken accepts exactly token. A blank token returns nil, which leaves
// Protected routes open
func StaticToken(token string) middleware.AuthPort {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	want := []byte(token)
	return NewBearer(func(got string) (string, error) {
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			return "", perr.Unauthorizedf("invalid bearer token")
		}
		return AdminSubject, nil
	})
}

// Auth is middleware.Auth writing rejections as error envelopes
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.RespondError)
}

// Protected mounts fn's routes behind p
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(Auth(p))
		fn(g)
	})
}

// Actor names who made an admin change, for audit logs
func Actor(r *http.Request) string {
	if sub := pnet.Subject(r.Context()); sub != "" {
		return sub
	}
	return Anonymous
}
