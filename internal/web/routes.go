package web

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/celebrity-twin/internal/render"
	"github.com/kozaktomas/celebrity-twin/internal/web/handlers"
	"github.com/kozaktomas/celebrity-twin/internal/web/static"
)

func (s *Server) setupRoutes() {
	renderHandler := handlers.NewRenderHandler(s.renderer, render.DemoMatches(s.config.Demo))
	resolveHandler := handlers.NewResolveHandler(s.images)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/render", renderHandler.RenderJSON)
		r.Get("/resolve", resolveHandler.Resolve)
	})

	s.router.Post("/render", renderHandler.RenderPage)
	s.router.Get("/demo", renderHandler.Demo)
	s.router.Get("/", s.serveIndex)
}

// serveIndex serves the embedded form page.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	f, err := static.GetFileSystem().Open("/index.html")
	if err != nil {
		http.Error(w, "index page missing", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, f)
}
