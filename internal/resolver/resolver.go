// Package resolver turns a celebrity name into a best-effort photo URL using
// the Wikipedia API. Every failure degrades to "no image"; nothing is cached.
package resolver

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/kozaktomas/celebrity-twin/internal/wikipedia"
	"golang.org/x/text/unicode/norm"
)

// API is the subset of the Wikipedia client the resolver needs.
type API interface {
	GetSummary(ctx context.Context, title string) (*wikipedia.Summary, error)
	Search(ctx context.Context, query string) ([]wikipedia.SearchResult, error)
	GetPageImages(ctx context.Context, titles ...string) ([]wikipedia.PageImage, error)
}

// Resolver looks up images with three strategies, in order:
// exact-title summary, search-then-summary and page-images.
type Resolver struct {
	api    API
	logger *slog.Logger
}

// New creates a resolver backed by the given API.
func New(api API) *Resolver {
	return &Resolver{api: api, logger: slog.Default()}
}

// WithLogger returns a copy of the resolver that logs to logger.
func (r *Resolver) WithLogger(logger *slog.Logger) *Resolver {
	return &Resolver{api: r.api, logger: logger}
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// IsAllowedImageURL reports whether raw is an absolute (or protocol-relative)
// http(s) URL whose path ends in .jpg, .jpeg, .png or .webp, case-insensitively.
func IsAllowedImageURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(path.Ext(u.Path))]
	return ok
}

// NormalizeName trims surrounding whitespace and converts the name to NFC,
// the normalization form Wikipedia uses for titles.
func NormalizeName(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

// Resolve returns a photo URL for name. ok is false when no usable image was
// found; that is an expected outcome, not an error.
func (r *Resolver) Resolve(ctx context.Context, rawName string) (string, bool) {
	name := NormalizeName(rawName)
	if name == "" {
		return "", false
	}
	log := r.logger.With("name", name)

	if img, ok := r.fromSummary(ctx, log, name); ok {
		return img, true
	}

	if img, ok := r.fromSearch(ctx, log, name); ok {
		return img, true
	}

	if img, ok := r.fromPageImages(ctx, log, name); ok {
		return img, true
	}

	log.Debug("no image found")
	return "", false
}

// fromSummary prefers the thumbnail and falls back to the original image.
func (r *Resolver) fromSummary(ctx context.Context, log *slog.Logger, title string) (string, bool) {
	summary, err := r.api.GetSummary(ctx, title)
	if wikipedia.IsNotFoundError(err) {
		log.Debug("no article with that title", "title", title)
		return "", false
	}
	if err != nil {
		log.Warn("summary lookup failed", "title", title, "error", err)
		return "", false
	}

	var img string
	switch {
	case summary.Thumbnail != nil && summary.Thumbnail.Source != "":
		img = summary.Thumbnail.Source
	case summary.OriginalImage != nil:
		img = summary.OriginalImage.Source
	}

	if !IsAllowedImageURL(img) {
		log.Debug("summary has no usable image", "title", title, "image", img)
		return "", false
	}
	return img, true
}

func (r *Resolver) fromSearch(ctx context.Context, log *slog.Logger, name string) (string, bool) {
	results, err := r.api.Search(ctx, name)
	if err != nil {
		log.Debug("search failed", "error", err)
		return "", false
	}
	if len(results) == 0 || results[0].Title == "" {
		log.Debug("search returned no results")
		return "", false
	}
	return r.fromSummary(ctx, log, results[0].Title)
}

// fromPageImages only looks at the first page returned.
func (r *Resolver) fromPageImages(ctx context.Context, log *slog.Logger, name string) (string, bool) {
	pages, err := r.api.GetPageImages(ctx, name)
	if err != nil {
		log.Debug("page images lookup failed", "error", err)
		return "", false
	}
	if len(pages) == 0 || pages[0].Thumbnail == nil {
		log.Debug("page images returned no thumbnail")
		return "", false
	}

	img := pages[0].Thumbnail.Source
	if !IsAllowedImageURL(img) {
		log.Debug("page image not usable", "image", img)
		return "", false
	}
	return img, true
}
