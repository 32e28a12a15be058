package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "botdesk/internal/platform/errors"
)

type rotateIn struct {
	Token string `json:"bot_token" validate:"required,min=10"`
}

func TestJSONHandler(t *testing.T) {
	h := JSONHandler(func(_ *http.Request, in rotateIn) (any, error) {
		switch in.Token {
		case "conflicting-token":
			return nil, perr.DuplicateKeyf("a discord bot with this token already exists")
		case "created-token":
			return Created(map[string]string{"hint": "****oken"}), nil
		}
		return map[string]string{"hint": "****" + in.Token[len(in.Token)-4:]}, nil
	})

	tests := []struct {
		name   string
		body   string
		status int
		code   perr.ErrorCode
	}{
		{name: "ok", body: `{"bot_token":"abcdefghij1234"}`, status: http.StatusOK},
		{name: "handler picks status", body: `{"bot_token":"created-token"}`, status: http.StatusCreated},
		{name: "handler error", body: `{"bot_token":"conflicting-token"}`, status: http.StatusConflict, code: perr.ErrorCodeDuplicateKey},
		{name: "malformed", body: `{"bot_token":`, status: http.StatusBadRequest, code: perr.ErrorCodeJSON},
		{name: "unknown field", body: `{"bot_token":"abcdefghij","extra":1}`, status: http.StatusBadRequest, code: perr.ErrorCodeJSON},
		{name: "fails validation", body: `{"bot_token":"short"}`, status: http.StatusBadRequest, code: perr.ErrorCodeValidation},
		{name: "empty", body: ``, status: http.StatusBadRequest, code: perr.ErrorCodeJSON},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/manage/admin/discord-app/bots/1/token", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.code != 0 && !strings.Contains(rec.Body.String(), `"code":`) {
				t.Fatalf("error code missing: %s", rec.Body.String())
			}
		})
	}
}

func TestCall(t *testing.T) {
	h := Call(func(*http.Request) (any, error) { return NoContent(), nil })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/manage/admin/discord-app/channel/3", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	h = Call(func(*http.Request) (any, error) { return nil, perr.NotFoundf("channel config 3 not found") })
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/v1/manage/admin/discord-app/channel/3", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
