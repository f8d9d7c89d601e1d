package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopease/internal/model"

	"github.com/rs/zerolog"
)

// httpRepository implements ProductRepository against a REST catalogue
// exposing GET /products and GET /products/{id}.
type httpRepository struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPRepository creates a new HTTP-backed product repository.
func NewHTTPRepository(baseURL string, timeout time.Duration, logger zerolog.Logger) ProductRepository {
	return &httpRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("repository", "http-catalog").Logger(),
	}
}

// GetAll retrieves the full product collection.
func (r *httpRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	endpoint := r.baseURL + "/products"

	resp, err := r.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Error().
			Str("url", endpoint).
			Int("status", resp.StatusCode).
			Msg("catalogue returned unexpected status")
		return nil, fmt.Errorf("catalogue returned status %d for %s", resp.StatusCode, endpoint)
	}

	var products []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		r.logger.Error().Err(err).Str("url", endpoint).Msg("failed to decode product list")
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}

	r.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *httpRepository) GetByID(ctx context.Context, id model.ProductID) (*model.Product, error) {
	endpoint := r.baseURL + "/products/" + url.PathEscape(id.String())

	resp, err := r.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error().
			Str("product_id", id.String()).
			Int("status", resp.StatusCode).
			Msg("catalogue returned unexpected status")
		return nil, fmt.Errorf("catalogue returned status %d for product %s", resp.StatusCode, id)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read product %s: %w", id, err)
	}

	// Some catalogues answer an unknown ID with 200 and an empty body.
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, nil
	}

	var p model.Product
	if err := json.Unmarshal(body, &p); err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to decode product")
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}

	return &p, nil
}

func (r *httpRepository) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalogue request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error().Err(err).Str("url", endpoint).Msg("catalogue request failed")
		return nil, fmt.Errorf("failed to communicate with catalogue: %w", err)
	}

	return resp, nil
}
