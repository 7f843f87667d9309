package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kozaktomas/celebrity-twin/internal/render"
)

// RenderHandler exposes the match renderer over HTTP
type RenderHandler struct {
	renderer *render.Renderer
	demo     []render.Match
}

// NewRenderHandler creates a new render handler. demo is rendered by Demo.
func NewRenderHandler(renderer *render.Renderer, demo []render.Match) *RenderHandler {
	return &RenderHandler{
		renderer: renderer,
		demo:     demo,
	}
}

// RenderJSON renders a posted JSON match list and returns the cards as JSON.
// Input that is not a JSON array yields an empty card list with the
// "No matches found." message, mirroring the page behavior.
func (h *RenderHandler) RenderJSON(w http.ResponseWriter, r *http.Request) {
	body, err := readMatchesBody(w, r)
	if err != nil {
		respondError(w, bodyErrorStatus(err), err.Error())
		return
	}

	page := render.NewPage()
	h.render(r, render.ParseMatches(body), page)
	respondJSON(w, http.StatusOK, page.View())
}

// RenderPage renders a posted match list (JSON body or "matches" form field)
// as a full HTML page.
func (h *RenderHandler) RenderPage(w http.ResponseWriter, r *http.Request) {
	body, err := readMatchesBody(w, r)
	if err != nil {
		http.Error(w, err.Error(), bodyErrorStatus(err))
		return
	}

	page := render.NewPage()
	h.render(r, render.ParseMatches(body), page)
	respondPage(w, page)
}

// Demo renders the built-in sample matches.
func (h *RenderHandler) Demo(w http.ResponseWriter, r *http.Request) {
	page := render.NewPage()
	page.Title = "Demo: " + render.DefaultTitle
	h.render(r, h.demo, page)
	respondPage(w, page)
}

// render runs the renderer; the outcome is already on the page, errors are only logged.
func (h *RenderHandler) render(r *http.Request, matches []render.Match, page *render.Page) {
	if err := h.renderer.Render(r.Context(), matches, page, page); err != nil {
		slog.Debug("render finished with message",
			"path", sanitizeForLog(r.URL.Path),
			"message", page.ErrorMessage,
			"error", err)
	}
}
