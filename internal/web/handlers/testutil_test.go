package handlers

import (
	"context"

	"github.com/kozaktomas/celebrity-twin/internal/render"
)

// stubImages resolves names from a fixed map.
type stubImages map[string]string

func (s stubImages) Resolve(_ context.Context, name string) (string, bool) {
	url, ok := s[name]
	return url, ok
}

// testRenderHandler creates a render handler backed by stub images
func testRenderHandler(images stubImages, demo []render.Match) *RenderHandler {
	return NewRenderHandler(render.NewRenderer(images), demo)
}
