// Package api implements the domain ports against the remote recipe
// service's JSON-over-HTTP interface. It is a stateless transport
// boundary: no caching, no retries, no logic beyond request/response.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.RecipeService    = (*Client)(nil)
	_ domain.CategorySource   = (*Client)(nil)
	_ domain.IngredientSource = (*Client)(nil)
	_ domain.ImageUploader    = (*Client)(nil)
)

// ── Wire types ───────────────────────────────────────────────────

// recipePayload is the create/update request body. The service assigns
// and owns the identifier, so it is never sent.
type recipePayload struct {
	Title         string              `json:"title"`
	Category      string              `json:"category"`
	CoverImageURL string              `json:"cover_image_url"`
	Ingredients   []domain.Ingredient `json:"ingredients"`
	Steps         []domain.Step       `json:"steps"`
}

func toPayload(r domain.Recipe) recipePayload {
	r.Normalize()
	return recipePayload{
		Title:         r.Title,
		Category:      r.Category,
		CoverImageURL: r.CoverImageURL,
		Ingredients:   r.Ingredients,
		Steps:         r.Steps,
	}
}

// matchRequest is the ingredient-overlap query body.
type matchRequest struct {
	MyIngredients []string `json:"myIngredients"`
}

// uploadRequest carries a filename and a base64 data-URI payload.
type uploadRequest struct {
	Filename string `json:"filename"`
	Body     string `json:"body"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// Client talks to the remote recipe service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a recipe service client. baseURL is the service
// root without a trailing slash (e.g. "https://api.example.com").
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do issues one JSON request. A nil body sends no payload; a nil out
// discards the response body. Non-2xx statuses are mapped to failure
// kinds: 404 becomes FailNotFound, everything else FailNetwork.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
		c.log.Debug("%s %s (%d bytes)", method, path, len(data))
	} else {
		c.log.Debug("%s %s", method, path)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewFailure(domain.FailNetwork, fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewFailure(domain.FailNetwork, "reading response", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NewFailure(domain.FailNotFound, fmt.Sprintf("%s %s", method, path), domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Warn("%s %s -> %s", method, path, resp.Status)
		return domain.NewFailure(domain.FailNetwork,
			fmt.Sprintf("%s %s: %s", method, path, resp.Status), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return domain.NewFailure(domain.FailNetwork, "decoding response", err)
	}
	return nil
}

// List returns all recipes.
func (c *Client) List(ctx context.Context) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes", nil, &recipes); err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].Normalize()
	}
	c.log.Debug("listed %d recipes", len(recipes))
	return recipes, nil
}

// Get returns a single recipe by ID.
func (c *Client) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/"+url.PathEscape(id), nil, &recipe); err != nil {
		return nil, err
	}
	recipe.Normalize()
	return &recipe, nil
}

// Create stores a new recipe and returns it with its assigned ID.
func (c *Client) Create(ctx context.Context, r domain.Recipe) (*domain.Recipe, error) {
	var created domain.Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", toPayload(r), &created); err != nil {
		return nil, err
	}
	created.Normalize()
	c.log.Info("created recipe %q (id=%s)", created.Title, created.ID)
	return &created, nil
}

// Update replaces an existing recipe.
func (c *Client) Update(ctx context.Context, id string, r domain.Recipe) (*domain.Recipe, error) {
	var updated domain.Recipe
	if err := c.do(ctx, http.MethodPut, "/recipes/"+url.PathEscape(id), toPayload(r), &updated); err != nil {
		return nil, err
	}
	updated.Normalize()
	c.log.Info("updated recipe %q (id=%s)", updated.Title, id)
	return &updated, nil
}

// Delete removes a recipe.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	c.log.Info("deleted recipe id=%s", id)
	return nil
}

// FindByIngredients runs the pantry overlap query.
func (c *Client) FindByIngredients(ctx context.Context, names []string) ([]domain.Recipe, error) {
	var matches []domain.Recipe
	req := matchRequest{MyIngredients: names}
	if err := c.do(ctx, http.MethodPost, "/recipes/find-by-ingredients", req, &matches); err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Normalize()
	}
	c.log.Debug("matched %d recipes for %d pantry ingredients", len(matches), len(names))
	return matches, nil
}

// Categories returns the category vocabulary.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Ingredients returns the master ingredient vocabulary.
func (c *Client) Ingredients(ctx context.Context) ([]string, error) {
	var ingredients []string
	if err := c.do(ctx, http.MethodGet, "/ingredients", nil, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Upload stores an image and returns its remote URL. Failures are
// reported with the upload kind so callers can distinguish an aborted
// save from a failed one.
func (c *Client) Upload(ctx context.Context, filename, payload string) (string, error) {
	var resp uploadResponse
	req := uploadRequest{Filename: filename, Body: payload}
	if err := c.do(ctx, http.MethodPost, "/upload", req, &resp); err != nil {
		return "", domain.NewFailure(domain.FailUpload, "image upload failed", err)
	}
	c.log.Info("uploaded image %s -> %s", filename, resp.URL)
	return resp.URL, nil
}
