package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "botdesk/internal/platform/errors"
	phttp "botdesk/internal/platform/net/http"
)

type renameIn struct {
	Name string `json:"name" validate:"required,max=200"`
}

// adminRoutes mounts a small bots style api the way modules do
func adminRoutes(token string) http.Handler {
	r := phttp.AdaptChi(chi.NewRouter())
	MountAPIV1(r, CommonStack(), func(api Router) {
		MountUnder(api, "/manage/bots", nil, func(bots Router) {
			Get(bots, "/public", func(r *http.Request) (any, error) {
				return map[string]string{"actor": Actor(r)}, nil
			})
			Protected(bots, StaticToken(token), func(pr Router) {
				Get(pr, "/{id}", func(r *http.Request) (any, error) {
					id, err := PathID(r, "id")
					if err != nil {
						return nil, err
					}
					return map[string]any{"id": id, "actor": Actor(r)}, nil
				})
				PostJSON(pr, "/", func(_ *http.Request, in renameIn) (any, error) {
					return Created(map[string]string{"name": in.Name}), nil
				})
				PutJSON(pr, "/{id}/token", func(*http.Request, renameIn) (any, error) { return OK("rotated"), nil })
				PatchJSON(pr, "/{id}", func(_ *http.Request, in renameIn) (any, error) { return in, nil })
				Delete(pr, "/{id}", func(*http.Request) (any, error) { return NoContent(), nil })
				Get(pr, "/boom/{id}", func(*http.Request) (any, error) { panic("boom") })
			})
		})
	})
	return r.Mux()
}

func do(h http.Handler, method, path, bearer, body string) (*httptest.ResponseRecorder, Envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestProtectedRoutes(t *testing.T) {
	h := adminRoutes("s3cret-admin-token")
	const ok = "Bearer s3cret-admin-token"

	tests := []struct {
		name   string
		method string
		path   string
		bearer string
		body   string
		status int
		code   perr.ErrorCode
	}{
		{name: "public", method: "GET", path: "/api/v1/manage/bots/public", status: http.StatusOK},
		{name: "no header", method: "GET", path: "/api/v1/manage/bots/1", status: http.StatusUnauthorized, code: perr.ErrorCodeUnauthorized},
		{name: "wrong scheme", method: "GET", path: "/api/v1/manage/bots/1", bearer: "Basic s3cret-admin-token", status: http.StatusUnauthorized, code: perr.ErrorCodeUnauthorized},
		{name: "wrong token", method: "GET", path: "/api/v1/manage/bots/1", bearer: "Bearer nope", status: http.StatusUnauthorized, code: perr.ErrorCodeUnauthorized},
		{name: "lowercase scheme", method: "GET", path: "/api/v1/manage/bots/1", bearer: "bearer s3cret-admin-token", status: http.StatusOK},
		{name: "bad id", method: "GET", path: "/api/v1/manage/bots/x", bearer: ok, status: http.StatusUnprocessableEntity, code: perr.ErrorCodeInvalidArgument},
		{name: "create", method: "POST", path: "/api/v1/manage/bots", bearer: ok, body: `{"name":"helpdesk"}`, status: http.StatusCreated},
		{name: "create invalid", method: "POST", path: "/api/v1/manage/bots", bearer: ok, body: `{"name":""}`, status: http.StatusBadRequest, code: perr.ErrorCodeValidation},
		{name: "rotate", method: "PUT", path: "/api/v1/manage/bots/1/token", bearer: ok, body: `{"name":"x"}`, status: http.StatusOK},
		{name: "patch", method: "PATCH", path: "/api/v1/manage/bots/1", bearer: ok, body: `{"name":"renamed"}`, status: http.StatusOK},
		{name: "delete", method: "DELETE", path: "/api/v1/manage/bots/1", bearer: ok, status: http.StatusNoContent},
		{name: "panic", method: "GET", path: "/api/v1/manage/bots/boom/1", bearer: ok, status: http.StatusInternalServerError, code: perr.ErrorCodePanic},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(h, tc.method, tc.path, tc.bearer, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if env.Code != tc.code {
				t.Fatalf("code = %d, want %d", env.Code, tc.code)
			}
			if tc.status != http.StatusNoContent && env.RequestID == "" {
				t.Fatalf("request id missing: %s", rec.Body.String())
			}
		})
	}
}

func TestActor(t *testing.T) {
	h := adminRoutes("s3cret-admin-token")

	_, env := do(h, "GET", "/api/v1/manage/bots/7", "Bearer s3cret-admin-token", "")
	if data, _ := env.Data.(map[string]any); data["actor"] != AdminSubject {
		t.Fatalf("actor = %v, want %s", env.Data, AdminSubject)
	}
	_, env = do(h, "GET", "/api/v1/manage/bots/public", "", "")
	if data, _ := env.Data.(map[string]any); data["actor"] != Anonymous {
		t.Fatalf("actor = %v, want %s", env.Data, Anonymous)
	}
}

func TestStaticToken_BlankLeavesRoutesOpen(t *testing.T) {
	if StaticToken("   ") != nil {
		t.Fatal("blank token must yield a nil port")
	}
	h := adminRoutes("")
	rec, env := do(h, "GET", "/api/v1/manage/bots/3", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if data, _ := env.Data.(map[string]any); data["actor"] != Anonymous {
		t.Fatalf("open routes run as %v", env.Data)
	}
}

func TestBearer_NilCheck(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	if _, err := NewBearer(nil).Parse(req); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("err = %v", err)
	}
}
