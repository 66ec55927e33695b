package thecatapi

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/platform/httpclient"
	"cat-breed-search/internal/platform/metrics"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrCatalogNotConfigured = errors.New("catalog client not configured")
	ErrCatalogUnauthorized  = errors.New("catalog unauthorized")
	ErrCatalogUpstream      = errors.New("catalog upstream error")
)

const (
	breedsSearchPath = "/breeds/search"
	imagesSearchPath = "/images/search"

	endpointBreeds = "breeds_search"
	endpointImages = "images_search"
)

// Config del cliente del catálogo. APIKey es opcional: el endpoint público
// responde sin key, con cuota más baja.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Vacío => "x-api-key".
	APIKeyHeader string

	Timeout   time.Duration
	RateLimit float64 // req/s; 0 = sin límite
	RateBurst int

	// Opcional: transport propio (proxy, tests). nil => http.DefaultTransport.
	Transport http.RoundTripper
}

// Client implementa breeds.Catalog contra un catálogo compatible con TheCatAPI.
type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
	sanitizer    *bluemonday.Policy
}

var _ breeds.Catalog = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrCatalogNotConfigured
	}
	hc := httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
	if err := hc.SetBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	hc.WithRateLimit(cfg.RateLimit, cfg.RateBurst)

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "x-api-key"
	}
	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		sanitizer:    bluemonday.StrictPolicy(),
	}, nil
}

// -------------------------
// Wire DTOs
// -------------------------

type weightDTO struct {
	Imperial string `json:"imperial"`
	Metric   string `json:"metric"`
}

type breedDTO struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Origin           string     `json:"origin"`
	Temperament      string     `json:"temperament"`
	LifeSpan         string     `json:"life_span"`
	Weight           *weightDTO `json:"weight"`
	AltNames         string     `json:"alt_names"`
	WikipediaURL     string     `json:"wikipedia_url"`
	ReferenceImageID string     `json:"reference_image_id"`
}

type imageDTO struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SearchBreeds: GET /breeds/search?q=<term>&limit=<limit>
func (c *Client) SearchBreeds(ctx context.Context, term string, limit int) ([]breeds.Breed, error) {
	q := url.Values{}
	q.Set("q", term)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var raw []breedDTO
	if err := c.get(ctx, endpointBreeds, breedsSearchPath, q, &raw); err != nil {
		return nil, err
	}

	out := make([]breeds.Breed, 0, len(raw))
	for _, d := range raw {
		out = append(out, c.toBreed(d))
	}
	return out, nil
}

// SearchImages: GET /images/search?breed_id=<id>
func (c *Client) SearchImages(ctx context.Context, breedID string) ([]breeds.Image, error) {
	q := url.Values{}
	q.Set("breed_id", breedID)

	var raw []imageDTO
	if err := c.get(ctx, endpointImages, imagesSearchPath, q, &raw); err != nil {
		return nil, err
	}

	out := make([]breeds.Image, 0, len(raw))
	for _, d := range raw {
		out = append(out, breeds.Image{
			ID:     d.ID,
			URL:    strings.TrimSpace(d.URL),
			Width:  d.Width,
			Height: d.Height,
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{c.apiKeyHeader: c.apiKey}
	}

	start := time.Now()
	err := c.http.GetJSON(ctx, path, q, headers, out)
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, statusLabel(err)).Inc()

	if err == nil {
		return nil
	}
	switch httpclient.StatusCode(err) {
	case 401, 403:
		return fmt.Errorf("%w: %w", ErrCatalogUnauthorized, err)
	default:
		return fmt.Errorf("%w: %w", ErrCatalogUpstream, err)
	}
}

// El catálogo devuelve texto libre que termina en pantalla (web o terminal).
func (c *Client) toBreed(d breedDTO) breeds.Breed {
	b := breeds.Breed{
		ID:               d.ID,
		Name:             c.clean(d.Name),
		Description:      c.clean(d.Description),
		Origin:           c.clean(d.Origin),
		Temperament:      c.clean(d.Temperament),
		LifeSpan:         strings.TrimSpace(d.LifeSpan),
		AltNames:         c.clean(d.AltNames),
		WikipediaURL:     strings.TrimSpace(d.WikipediaURL),
		ReferenceImageID: d.ReferenceImageID,
	}
	if d.Weight != nil {
		b.Weight = &breeds.Weight{
			Metric:   strings.TrimSpace(d.Weight.Metric),
			Imperial: strings.TrimSpace(d.Weight.Imperial),
		}
	}
	return b
}

// clean saca cualquier markup; StrictPolicy escapa entidades, así que se
// desescapan para conservar el texto plano ("Cat's", "A & B").
func (c *Client) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.sanitizer.Sanitize(s)))
}

func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if code := httpclient.StatusCode(err); code != 0 {
		return strconv.Itoa(code)
	}
	return "error"
}
