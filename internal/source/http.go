package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hyperjump/tafuta/internal/models"
)

// maxResponseBytes caps how much of a collection response is read.
const maxResponseBytes = 32 << 20

// HTTP fetches a collection from a REST endpoint returning a JSON list or a paginated envelope.
type HTTP struct {
	name   string
	typ    models.EntityType
	url    string
	token  string
	client *http.Client
}

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithClient sets the HTTP client (default http.DefaultClient).
func WithClient(c *http.Client) HTTPOption {
	return func(h *HTTP) { h.client = c }
}

// WithBearerToken sends token in the Authorization header.
func WithBearerToken(token string) HTTPOption {
	return func(h *HTTP) { h.token = token }
}

// NewHTTP creates an HTTP source for url.
func NewHTTP(name string, typ models.EntityType, url string, opts ...HTTPOption) *HTTP {
	h := &HTTP{name: name, typ: typ, url: url, client: http.DefaultClient}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HTTP) Name() string            { return h.name }
func (h *HTTP) Type() models.EntityType { return h.typ }

func (h *HTTP) Fetch(ctx context.Context) ([]models.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return models.DecodeItemsJSON(h.typ, body)
}
