// Package api is the HTTP client for the deck platform's review
// endpoints. Every write endpoint is invoked at most once per item per
// user action; the pending guard in internal/core/review enforces that,
// not this package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/deckrev/deckrev/internal/core/deck"
	"github.com/deckrev/deckrev/internal/core/logging"
)

// Client talks to one deck platform instance.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
	log   zerolog.Logger
}

// NewClient builds a client for the given base URL. Redirects are never
// followed automatically: a redirect on a note-level action is an
// anomaly the caller must see (see ErrAnomalousRedirect).
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: server base URL is empty", ErrValidation)
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q is not absolute", ErrValidation, baseURL)
	}

	return &Client{
		base:  base,
		token: token,
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: logging.Component("api"),
	}, nil
}

// suggestionRoutes maps resolvable suggestion kinds to their accept/deny
// route prefixes. Exhaustive over the non-note-level kinds.
var suggestionRoutes = map[deck.ItemKind][2]string{
	deck.ItemField: {"AcceptField", "DenyField"},
	deck.ItemTag:   {"AcceptTag", "DenyTag"},
	deck.ItemMove:  {"AcceptNoteMove", "DenyNoteMove"},
}

// noteRoutes maps note-level kinds to their routes.
var noteRoutes = map[deck.ItemKind]string{
	deck.ItemNotePublish:       "AcceptNote",
	deck.ItemNoteDelete:        "DeleteNote",
	deck.ItemNoteRemovalAccept: "AcceptNoteRemoval",
	deck.ItemNoteRemovalDeny:   "DenyNoteRemoval",
}

// ResolveSuggestion accepts or denies a single field, tag, or move
// suggestion. Success is an empty 2xx body.
func (c *Client) ResolveSuggestion(ctx context.Context, key deck.ItemKey, accept bool) error {
	routes, ok := suggestionRoutes[key.Kind]
	if !ok {
		return fmt.Errorf("%w: kind %s is not an item suggestion", ErrValidation, key.Kind)
	}
	if key.ID <= 0 {
		return fmt.Errorf("%w: missing id for %s", ErrValidation, key.Kind)
	}

	route := routes[0]
	if !accept {
		route = routes[1]
	}
	_, err := c.get(ctx, fmt.Sprintf("/%s/%d", route, key.ID), nil)
	return err
}

// ResolveNote performs a note-level terminal action (publish, delete,
// accept removal, deny removal). A redirect to the site root is reported
// as ErrAnomalousRedirect, never as success.
func (c *Client) ResolveNote(ctx context.Context, kind deck.ItemKind, noteID int64) error {
	route, ok := noteRoutes[kind]
	if !ok {
		return fmt.Errorf("%w: kind %s is not note-level", ErrValidation, kind)
	}
	if noteID <= 0 {
		return fmt.Errorf("%w: missing note id", ErrValidation)
	}
	_, err := c.get(ctx, fmt.Sprintf("/%s/%d", route, noteID), nil)
	return err
}

// UpdateFieldSuggestion replaces one field's pending suggestion and
// returns the server-rendered diff fragment.
func (c *Client) UpdateFieldSuggestion(ctx context.Context, fieldID int64, content string) (string, error) {
	if fieldID <= 0 {
		return "", fmt.Errorf("%w: missing field id", ErrValidation)
	}

	body, err := c.post(ctx, "/UpdateFieldSuggestion", map[string]any{
		"field_id": fieldID,
		"content":  content,
	})
	if err != nil {
		return "", err
	}

	// The endpoint answers either a raw HTML fragment or {"diff_html": ...}.
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") {
		var resp struct {
			DiffHTML string `json:"diff_html"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("decode diff response: %w", err)
		}
		return resp.DiffHTML, nil
	}
	return string(body), nil
}

// GetAllFieldsForEdit loads the all-fields edit session for a note
// scoped to one commit.
func (c *Client) GetAllFieldsForEdit(ctx context.Context, noteID int64, commitID int) (EditSession, error) {
	var session EditSession
	if noteID <= 0 || commitID <= 0 {
		return session, fmt.Errorf("%w: missing note or commit id", ErrValidation)
	}

	body, err := c.get(ctx, fmt.Sprintf("/GetAllFieldsForEdit/%d", noteID), url.Values{
		"commit_id": {strconv.Itoa(commitID)},
	})
	if err != nil {
		return session, err
	}
	if err := json.Unmarshal(body, &session); err != nil {
		return session, fmt.Errorf("decode edit session: %w", err)
	}
	return session, nil
}

// BatchUpdateFieldSuggestions persists a multi-field edit in one request.
func (c *Client) BatchUpdateFieldSuggestions(ctx context.Context, noteID int64, commitID int, fields []FieldUpdate) (BatchEditResult, error) {
	var result BatchEditResult
	if noteID <= 0 || commitID <= 0 {
		return result, fmt.Errorf("%w: missing note or commit id", ErrValidation)
	}
	if len(fields) == 0 {
		return result, fmt.Errorf("%w: empty field batch", ErrValidation)
	}

	body, err := c.post(ctx, "/BatchUpdateFieldSuggestions", map[string]any{
		"note_id":   noteID,
		"commit_id": commitID,
		"fields":    fields,
	})
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("decode batch result: %w", err)
	}
	return result, nil
}

// BulkNoteAction submits a batch approve or deny over the given notes.
// The response reports per-item outcomes; mixed results are normal.
func (c *Client) BulkNoteAction(ctx context.Context, commitID int, noteIDs []int64, action BulkAction) (BulkResult, error) {
	var result BulkResult
	if commitID <= 0 {
		return result, fmt.Errorf("%w: missing commit id", ErrValidation)
	}
	if len(noteIDs) == 0 {
		return result, fmt.Errorf("%w: empty selection", ErrValidation)
	}

	body, err := c.post(ctx, "/BulkNoteAction", map[string]any{
		"commit_id": commitID,
		"note_ids":  noteIDs,
		"action":    action,
	})
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("decode bulk result: %w", err)
	}
	return result, nil
}

// GetImageFile resolves a content-relative media filename into a
// short-lived presigned URL.
func (c *Client) GetImageFile(ctx context.Context, filename, contextType string, contextID int64) (Presigned, error) {
	var p Presigned
	if filename == "" || contextType == "" || contextID <= 0 {
		return p, fmt.Errorf("%w: missing media context", ErrValidation)
	}

	body, err := c.post(ctx, "/GetImageFile", map[string]any{
		"filename":     filename,
		"context_type": contextType,
		"context_id":   contextID,
	})
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return p, fmt.Errorf("decode presigned url: %w", err)
	}
	if p.URL == "" {
		return p, fmt.Errorf("%w: empty presigned url", ErrValidation)
	}
	return p, nil
}

// CommitPage fetches one page of a commit's note listing. Offset and
// limit are clamped to the server's bounds before the request.
func (c *Client) CommitPage(ctx context.Context, commitID, offset, limit int) (Page, error) {
	var page Page
	if commitID <= 0 {
		return page, fmt.Errorf("%w: missing commit id", ErrValidation)
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 1
	} else if limit > 200 {
		limit = 200
	}

	body, err := c.get(ctx, fmt.Sprintf("/commit/%d", commitID), url.Values{
		"offset": {strconv.Itoa(offset)},
		"limit":  {strconv.Itoa(limit)},
		"format": {"json"},
	})
	if err != nil {
		return page, err
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return page, fmt.Errorf("decode commit page: %w", err)
	}
	if page.Loaded > page.Total {
		return page, fmt.Errorf("%w: page reports loaded %d > total %d", ErrValidation, page.Loaded, page.Total)
	}
	return page, nil
}

// ListCommits fetches the open-reviews overview.
func (c *Client) ListCommits(ctx context.Context) ([]CommitSummary, error) {
	body, err := c.get(ctx, "/reviews", url.Values{"format": {"json"}})
	if err != nil {
		return nil, err
	}
	var commits []CommitSummary
	if err := json.Unmarshal(body, &commits); err != nil {
		return nil, fmt.Errorf("decode commit list: %w", err)
	}
	return commits, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath(path).String(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", req.URL.Path).Msg("request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug().
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		loc := resp.Header.Get("Location")
		if loc == "/" || loc == c.base.String() || loc == c.base.String()+"/" {
			return nil, ErrAnomalousRedirect
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: "redirect to " + loc}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
