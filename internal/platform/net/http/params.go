package http

import (
	"net/http"
	"strconv"
	"strings"

	perr "botdesk/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

// PathID reads a positive integer path parameter such as {id}
func PathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return 0, perr.WithField(perr.InvalidArgf("missing path parameter %s", name), name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a positive integer", name), name)
	}
	return id, nil
}

// QueryID reads an optional positive integer query parameter; ok is false when absent
func QueryID(r *http.Request, name string) (id int64, ok bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, perr.WithField(perr.InvalidArgf("%s must be a positive integer", name), name)
	}
	return id, true, nil
}
