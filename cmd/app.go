package cmd

import (
	"fmt"
	"log/slog"

	"github.com/kozaktomas/celebrity-twin/internal/config"
	"github.com/kozaktomas/celebrity-twin/internal/render"
	"github.com/kozaktomas/celebrity-twin/internal/resolver"
	"github.com/kozaktomas/celebrity-twin/internal/wikipedia"
)

// newResolver wires the Wikipedia client into an image resolver.
func newResolver(cfg *config.Config) (*resolver.Resolver, error) {
	client, err := wikipedia.NewWithCapture(cfg.Wikipedia, captureDir)
	if err != nil {
		return nil, fmt.Errorf("creating Wikipedia client: %w", err)
	}
	return resolver.New(client).WithLogger(slog.Default().With("component", "resolver")), nil
}

// newRenderer builds the renderer together with the resolver it uses.
func newRenderer(cfg *config.Config) (*render.Renderer, *resolver.Resolver, error) {
	images, err := newResolver(cfg)
	if err != nil {
		return nil, nil, err
	}
	renderer := render.NewRenderer(images)
	renderer.SetLogger(slog.Default().With("component", "render"))
	return renderer, images, nil
}
