package middleware

import (
	"net/http"
	"runtime/debug"

	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/logger"
)

// ErrorWriter renders err as the response for r
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Recover logs a panic with its stack and answers with a panic coded error through write.
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func Recover(write ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				write(w, r, perr.PanicErrf("internal server error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
