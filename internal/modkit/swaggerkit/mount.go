package swaggerkit

import (
	"net/http"

	phttp "botdesk/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options control what Mount serves
type Options struct {
	Enabled bool
	Info    Info
	Ops     []Op
}

// Mount serves the UI at /api/docs/ and the document at /api/docs/doc.json
func Mount(r phttp.Router, opt Options) {
	if !opt.Enabled {
		return
	}
	doc := Document(opt.Info, opt.Ops)

	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		phttp.JSON(w, http.StatusOK, doc)
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("botdesk"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
