// Package render turns a list of look-alike matches into cards with photos.
//
// The renderer writes into two injected containers, one for the cards and one
// for the user-visible error message, so the same procedure drives the HTML
// page, the JSON API and the CLI.
package render

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/kozaktomas/celebrity-twin/internal/resolver"
)

// User-visible messages.
const (
	MsgNoMatches    = "No matches found."
	MsgRenderFailed = "Something went wrong rendering matches."
)

var (
	// ErrNoMatches is returned when there was nothing to render.
	ErrNoMatches = errors.New("no matches")
	// ErrRenderFailed is returned when rendering stopped early. Cards appended
	// before the failure stay in the results container.
	ErrRenderFailed = errors.New("rendering matches failed")
)

// ImageResolver finds a photo URL for a celebrity name. ok is false when no
// usable image exists. URLs without an allowed image extension are ignored
// even when ok is true.
type ImageResolver interface {
	Resolve(ctx context.Context, name string) (url string, ok bool)
}

// ResultsContainer receives the rendered cards.
type ResultsContainer interface {
	Clear()
	Append(card Card) error
}

// ErrorDisplay shows or hides the single user-visible message.
type ErrorDisplay interface {
	Show(message string)
	Hide()
}

// Renderer renders matches one at a time. Renders into the same results
// container are serialized so their writes never interleave; renders into
// different containers run concurrently. Containers are told apart by
// identity, so they must be comparable (pointer types in practice).
type Renderer struct {
	images ImageResolver
	logger *slog.Logger

	mu    sync.Mutex
	slots map[ResultsContainer]*slot
}

// slot admits one render per container. users counts the holder plus waiters
// so the entry can be dropped once nobody needs it.
type slot struct {
	ch    chan struct{}
	users int
}

// NewRenderer creates a renderer that looks up photos with images.
func NewRenderer(images ImageResolver) *Renderer {
	return &Renderer{
		images: images,
		logger: slog.Default(),
		slots:  make(map[ResultsContainer]*slot),
	}
}

// SetLogger replaces the logger used for render diagnostics.
func (r *Renderer) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// Render clears both containers, then appends one card per match ordered by
// percent descending (stable for ties). Photos are resolved sequentially, one
// request chain at a time. The returned error is ErrNoMatches or wraps
// ErrRenderFailed; the matching message has already been shown.
//
// When another render into results is still running, Render waits for it.
// If ctx ends while waiting, Render returns without touching the containers.
func (r *Renderer) Render(ctx context.Context, matches []Match, results ResultsContainer, errs ErrorDisplay) (err error) {
	log := r.logger.With("render_id", uuid.NewString())

	release, err := r.acquire(ctx, results)
	if err != nil {
		log.Warn("gave up waiting for an earlier render into the same container", "error", err)
		return fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	defer release()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("render panicked", "panic", rec)
			errs.Show(MsgRenderFailed)
			err = fmt.Errorf("%w: panic: %v", ErrRenderFailed, rec)
		}
	}()

	results.Clear()
	errs.Hide()

	if len(matches) == 0 {
		errs.Show(MsgNoMatches)
		return ErrNoMatches
	}

	sorted := SortMatches(matches)
	log.Debug("rendering matches", "count", len(sorted))

	for i, m := range sorted {
		if err := ctx.Err(); err != nil {
			log.Warn("render interrupted", "rendered", i, "total", len(sorted), "error", err)
			errs.Show(MsgRenderFailed)
			return fmt.Errorf("%w: %w", ErrRenderFailed, err)
		}

		card := r.buildCard(ctx, m)
		if err := results.Append(card); err != nil {
			log.Error("appending card failed", "name", card.Name, "error", err)
			errs.Show(MsgRenderFailed)
			return fmt.Errorf("%w: appending card %q: %w", ErrRenderFailed, card.Name, err)
		}
	}

	log.Info("rendered matches", "count", len(sorted))
	return nil
}

// acquire takes the slot for results, waiting until it is free or ctx ends.
func (r *Renderer) acquire(ctx context.Context, results ResultsContainer) (func(), error) {
	r.mu.Lock()
	s, ok := r.slots[results]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		r.slots[results] = s
	}
	s.users++
	r.mu.Unlock()

	leave := func() {
		r.mu.Lock()
		s.users--
		if s.users == 0 {
			delete(r.slots, results)
		}
		r.mu.Unlock()
	}

	select {
	case s.ch <- struct{}{}:
		return func() {
			<-s.ch
			leave()
		}, nil
	case <-ctx.Done():
		leave()
		return nil, ctx.Err()
	}
}

func (r *Renderer) buildCard(ctx context.Context, m Match) Card {
	card := NewCard(m)
	if url, ok := r.images.Resolve(ctx, m.Name); ok && resolver.IsAllowedImageURL(url) {
		card.SetImage(url, m.Name)
	} else {
		card.HideImage()
	}
	return card
}

// SortMatches returns a copy of matches sorted by percent descending.
// Matches with equal percent keep their input order.
func SortMatches(matches []Match) []Match {
	sorted := slices.Clone(matches)
	slices.SortStableFunc(sorted, func(a, b Match) int {
		return cmp.Compare(b.sortPercent(), a.sortPercent())
	})
	return sorted
}
