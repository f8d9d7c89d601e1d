package handler

import (
	"net/http"

	"shopease/internal/catalog"
	"shopease/internal/model"
	"shopease/internal/service"

	"github.com/rs/zerolog"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	CatalogSeeded bool   `json:"catalogSeeded"`
}

// CatalogHandler handles catalogue HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Health handles GET /health requests.
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:        "healthy",
		CatalogSeeded: h.service.Seeded(),
	}, h.logger)
}

// List handles GET /api/products?search=&category=&sort= requests.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, h.logger)
		return
	}

	params := r.URL.Query()
	query := catalog.Query{
		Search:   params.Get("search"),
		Category: params.Get("category"),
		Sort:     catalog.ParseSortKey(params.Get("sort")),
	}

	writeJSON(w, r, http.StatusOK, h.service.List(r.Context(), query), h.logger)
}

// Create handles POST /api/products requests.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, h.logger)
		return
	}

	var draft model.ProductDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), draft)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, r, http.StatusCreated, product, h.logger)
}

// GetByID handles GET /api/products/{id} requests.
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, h.logger)
		return
	}

	productID := pathID(r.URL.Path, "/api/products/")
	if productID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	product, err := h.service.Get(r.Context(), productID)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, product, h.logger)
}

// Categories handles GET /api/categories requests.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, h.service.Categories(r.Context()), h.logger)
}

// Stats handles GET /api/stats requests.
func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, h.service.Stats(r.Context()), h.logger)
}
