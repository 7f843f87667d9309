package handlers

import (
	"net/http"
	"strings"

	"github.com/kozaktomas/celebrity-twin/internal/render"
)

// ResolveHandler exposes single image lookups for debugging
type ResolveHandler struct {
	images render.ImageResolver
}

// NewResolveHandler creates a new resolve handler
func NewResolveHandler(images render.ImageResolver) *ResolveHandler {
	return &ResolveHandler{images: images}
}

// ResolveResponse is the result of a single lookup
type ResolveResponse struct {
	Name     string `json:"name"`
	Found    bool   `json:"found"`
	ImageURL string `json:"image_url,omitempty"`
}

// Resolve looks up the photo for ?name=.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	url, ok := h.images.Resolve(r.Context(), name)
	respondJSON(w, http.StatusOK, ResolveResponse{
		Name:     name,
		Found:    ok,
		ImageURL: url,
	})
}
