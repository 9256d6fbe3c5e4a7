// Package media resolves embedded media references out-of-band. Field
// content references images by content-relative filename; displaying one
// requires exchanging the filename for a short-lived presigned URL.
// Resolution is memoized per element: one element never has two requests
// in flight, but the same filename in two fields resolves twice (a
// deliberate simplicity tradeoff, not a correctness requirement).
package media

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/logging"
)

// State is the lifecycle of one media element.
type State int

const (
	StateUnresolved State = iota
	StateResolving
	StateResolved
	StateFailed // non-retriable until a re-render registers fresh elements
)

// Sentinel errors for resolution attempts.
var (
	ErrUnknownElement  = errors.New("media: unknown element")
	ErrAlreadyInFlight = errors.New("media: resolution already in flight")
	ErrNotRetriable    = errors.New("media: element failed, re-render to retry")
)

// Element is one embedded media reference inside a field rendering.
type Element struct {
	ID          string // stable for the lifetime of one rendering
	Filename    string
	ContextType string // owning entity type, e.g. "note"
	ContextID   int64

	State     State
	URL       string // presigned URL once resolved
	ExpiresIn int    // seconds, advisory
}

// Fetcher is the single endpoint the resolver needs.
type Fetcher interface {
	GetImageFile(ctx context.Context, filename, contextType string, contextID int64) (api.Presigned, error)
}

// Resolver tracks every registered element and its resolution state.
type Resolver struct {
	mu       sync.Mutex
	fetcher  Fetcher
	elements map[string]*Element
	log      zerolog.Logger
}

// NewResolver creates a resolver over the given fetcher.
func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{
		fetcher:  fetcher,
		elements: make(map[string]*Element),
		log:      logging.Component("media"),
	}
}

// Register adds elements for a freshly rendered region, replacing any
// previous entry under the same id. Re-registering is how a failed
// element becomes retriable again.
func (r *Resolver) Register(elements []Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, el := range elements {
		copied := el
		copied.State = StateUnresolved
		r.elements[el.ID] = &copied
	}
}

// Element returns a snapshot of one element's state.
func (r *Resolver) Element(id string) (Element, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	el, ok := r.elements[id]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// Resolve exchanges the element's filename for a presigned URL. The call
// blocks for the network round-trip; concurrent calls for the same
// element are rejected, and a failed element stays failed until it is
// registered again.
func (r *Resolver) Resolve(ctx context.Context, id string) (string, error) {
	r.mu.Lock()
	el, ok := r.elements[id]
	if !ok {
		r.mu.Unlock()
		return "", ErrUnknownElement
	}
	switch el.State {
	case StateResolved:
		url := el.URL
		r.mu.Unlock()
		return url, nil
	case StateResolving:
		r.mu.Unlock()
		return "", ErrAlreadyInFlight
	case StateFailed:
		r.mu.Unlock()
		return "", ErrNotRetriable
	}
	el.State = StateResolving
	filename, ctxType, ctxID := el.Filename, el.ContextType, el.ContextID
	r.mu.Unlock()

	presigned, err := r.fetcher.GetImageFile(ctx, filename, ctxType, ctxID)

	r.mu.Lock()
	defer r.mu.Unlock()
	// The element may have been replaced by a re-render mid-flight; the
	// stale result must not resurrect the old entry.
	current, ok := r.elements[id]
	if !ok || current != el {
		return "", ErrUnknownElement
	}
	if err != nil {
		el.State = StateFailed
		r.log.Warn().Err(err).Str("filename", filename).Msg("media resolution failed")
		return "", fmt.Errorf("resolve %s: %w", filename, err)
	}
	el.State = StateResolved
	el.URL = presigned.URL
	el.ExpiresIn = presigned.ExpiresIn
	return el.URL, nil
}

var imgSrcPattern = regexp.MustCompile(`(?i)<img[^>]*\ssrc\s*=\s*["']([^"']+)["']`)

// ExtractElements finds the local media references inside one field's
// HTML. Absolute URLs and data URIs are not local content references and
// are left untouched.
func ExtractElements(fieldHTML, contextType string, contextID int64) []Element {
	var out []Element
	for i, m := range imgSrcPattern.FindAllStringSubmatch(fieldHTML, -1) {
		src := m[1]
		if !IsLocalReference(src) {
			continue
		}
		out = append(out, Element{
			ID:          fmt.Sprintf("%s/%d/img-%d", contextType, contextID, i),
			Filename:    src,
			ContextType: contextType,
			ContextID:   contextID,
		})
	}
	return out
}

// IsLocalReference reports whether src names deck-local content rather
// than an external or inline resource.
func IsLocalReference(src string) bool {
	lower := strings.ToLower(src)
	switch {
	case strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "//"),
		strings.HasPrefix(lower, "data:"):
		return false
	}
	return src != ""
}
