package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "botdesk/internal/platform/net/http"
)

var botOps = Under("/manage/admin/discord-app/bots/",
	Op{Method: "POST", Path: "/", Summary: "Register a bot", Tag: "Bots", Secured: true, Body: true},
	Op{Method: "GET", Path: "/{id}", Summary: "Fetch a bot", Tag: "Bots", Secured: true},
	Op{Method: "DELETE", Path: "/{id}", Summary: "Delete a bot", Tag: "Bots", Secured: true},
)

func TestUnder(t *testing.T) {
	tests := []struct {
		prefix, path, want string
	}{
		{"/meta", "/health", "/meta/health"},
		{"/meta/", "health", "/meta/health"},
		{"/search/filters", "/", "/search/filters"},
		{"", "/", "/"},
	}
	for _, tc := range tests {
		got := Under(tc.prefix, Op{Path: tc.path})[0].Path
		if got != tc.want {
			t.Fatalf("Under(%q, %q) = %q, want %q", tc.prefix, tc.path, got, tc.want)
		}
	}
}

func TestDocument_Responses(t *testing.T) {
	doc := Document(Info{Title: "Botdesk API", Version: "1.2.3", Server: "/api/v1"}, botOps)
	paths := doc["paths"].(map[string]any)

	tests := []struct {
		path, method string
		want         []string
		absent       []string
	}{
		{path: "/manage/admin/discord-app/bots", method: "post", want: []string{"201", "400", "401", "422", "500"}, absent: []string{"404"}},
		{path: "/manage/admin/discord-app/bots/{id}", method: "get", want: []string{"200", "401", "404", "500"}, absent: []string{"400"}},
		{path: "/manage/admin/discord-app/bots/{id}", method: "delete", want: []string{"204", "404"}},
	}
	for _, tc := range tests {
		op, ok := paths[tc.path].(map[string]any)[tc.method].(map[string]any)
		if !ok {
			t.Fatalf("%s %s missing", tc.method, tc.path)
		}
		responses := op["responses"].(map[string]any)
		for _, code := range tc.want {
			if _, ok := responses[code]; !ok {
				t.Fatalf("%s %s lacks %s", tc.method, tc.path, code)
			}
		}
		for _, code := range tc.absent {
			if _, ok := responses[code]; ok {
				t.Fatalf("%s %s has unexpected %s", tc.method, tc.path, code)
			}
		}
		if op["security"] == nil {
			t.Fatalf("%s %s not secured", tc.method, tc.path)
		}
	}

	get := paths["/manage/admin/discord-app/bots/{id}"].(map[string]any)["get"].(map[string]any)
	params := get["parameters"].([]any)
	if len(params) != 1 || params[0].(map[string]any)["name"] != "id" {
		t.Fatalf("path params = %+v", params)
	}
}

func TestMount(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{
		Enabled: true,
		Info:    Info{Title: "Botdesk API", Version: "dev", Server: "/api/v1"},
		Ops:     botOps,
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json = %d", rec.Code)
	}
	var doc struct {
		OpenAPI string         `json:"openapi"`
		Info    map[string]any `json:"info"`
		Paths   map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OpenAPI != "3.0.3" || doc.Info["title"] != "Botdesk API" || len(doc.Paths) != 2 {
		t.Fatalf("unexpected doc: %+v", doc)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect = %d", rec.Code)
	}
}

func TestMount_Disabled(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("doc.json served while disabled: %d", rec.Code)
	}
}
