// Package http is the transport layer: the chi router seam, the response
// envelope, JSON handler adapters and the server
package http

import (
	"encoding/json"
	"net/http"

	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/logger"
	pnet "botdesk/internal/platform/net"
)

// Envelope wraps every JSON response body
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
	Page       *Page          `json:"page,omitempty"`
}

// Page is pagination metadata for list responses
type Page struct {
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Cursor   string `json:"cursor,omitempty"`
}

// Response is what return style handlers hand back; Body may be an error
type Response struct {
	Status int
	Body   any
	Page   *Page
}

func OK(data any) Response      { return Response{Status: http.StatusOK, Body: data} }
func Created(data any) Response { return Response{Status: http.StatusCreated, Body: data} }
func NoContent() Response       { return Response{Status: http.StatusNoContent} }
func Error(err error) Response  { return Response{Body: err} }

// List is a 200 carrying a page block next to the items
func List(items any, p Page) Response {
	return Response{Status: http.StatusOK, Body: items, Page: &p}
}

// Handle adapts a return style handler
func Handle(fn func(*http.Request) Response) Handler {
	return func(w http.ResponseWriter, r *http.Request) { fn(r).Write(w, r) }
}

// Write renders the response; errors pick their own status
func (resp Response) Write(w http.ResponseWriter, r *http.Request) {
	if err, ok := resp.Body.(error); ok {
		RespondError(w, r, err)
		return
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       resp.Body,
		Page:       resp.Page,
	})
}

// RespondError writes err as an error envelope. 5xx causes are logged since the body only carries the message
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status, wire := perr.HTTP(err)
	if status >= http.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		Field:      wire.Field,
		RequestID:  pnet.RequestID(r.Context()),
	})
}

// JSON writes v with status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
