package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"botdesk/internal/platform/config"
)

func TestAdaptChi_Routing(t *testing.T) {
	r := AdaptChi(chi.NewRouter())

	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	r.Use(tag("root"))
	r.Route("/api/v1", func(api Router) {
		api.Get("/meta/health", ok)
		api.Group(func(g Router) {
			g.Use(tag("auth"))
			g.Post("/manage/bots", ok)
			g.Put("/manage/bots/{id}/token", ok)
			g.Patch("/manage/bots/{id}", ok)
			g.Delete("/manage/bots/{id}", ok)
		})
		api.Handle("/files/*", http.HandlerFunc(ok))
	})

	tests := []struct {
		method string
		path   string
		want   int
		chain  []string
	}{
		{http.MethodGet, "/api/v1/meta/health", http.StatusOK, []string{"root"}},
		{http.MethodPost, "/api/v1/manage/bots", http.StatusOK, []string{"root", "auth"}},
		{http.MethodPut, "/api/v1/manage/bots/1/token", http.StatusOK, []string{"root", "auth"}},
		{http.MethodPatch, "/api/v1/manage/bots/1", http.StatusOK, []string{"root", "auth"}},
		{http.MethodDelete, "/api/v1/manage/bots/1", http.StatusOK, []string{"root", "auth"}},
		{http.MethodGet, "/api/v1/files/a/b", http.StatusOK, []string{"root"}},
		{http.MethodGet, "/api/v1/manage/bots", http.StatusMethodNotAllowed, []string{"root"}},
	}
	for _, tc := range tests {
		order = nil
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.want {
			t.Errorf("%s %s = %d, want %d", tc.method, tc.path, rec.Code, tc.want)
		}
		if len(order) != len(tc.chain) {
			t.Errorf("%s %s ran %v, want %v", tc.method, tc.path, order, tc.chain)
		}
	}
}

func TestMountProfiler(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		r := AdaptChi(chi.NewRouter())
		MountProfiler(r, "/debug", enabled)
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
		if (rec.Code == http.StatusOK) != enabled {
			t.Fatalf("enabled=%v status=%d", enabled, rec.Code)
		}
	}
}

func TestNewServer_Addr(t *testing.T) {
	tests := []struct {
		env  map[string]string
		want string
	}{
		{nil, ":4000"},
		{map[string]string{"CORE_API_PORT": "4100"}, ":4100"},
		{map[string]string{"CORE_API_PORT": "127.0.0.1:4200"}, "127.0.0.1:4200"},
	}
	for _, tc := range tests {
		s := NewServer(config.FromMap(tc.env).Prefix("CORE_API_"))
		if s.Addr() != tc.want {
			t.Errorf("Addr = %q, want %q", s.Addr(), tc.want)
		}
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s := NewServer(config.FromMap(nil))
	s.Router().Get("/api/v1/meta/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/meta/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
