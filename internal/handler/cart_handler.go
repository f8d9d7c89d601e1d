package handler

import (
	"encoding/json"
	"net/http"

	"shopease/internal/model"
	"shopease/internal/service"

	"github.com/rs/zerolog"
)

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	ProductID model.ProductID `json:"productId"`
}

// UpdateItemRequest is the body of PUT /api/cart/items/{id}.
type UpdateItemRequest struct {
	Quantity *json.Number `json:"quantity"`
}

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Cart dispatches /api/cart by method.
func (h *CartHandler) Cart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodDelete:
		h.Clear(w, r)
	default:
		methodNotAllowed(w, r, h.logger)
	}
}

// Items dispatches /api/cart/items and /api/cart/items/{id} by method.
func (h *CartHandler) Items(w http.ResponseWriter, r *http.Request) {
	if pathID(r.URL.Path, "/api/cart/items/") == "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, h.logger)
			return
		}
		h.AddItem(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.UpdateItem(w, r)
	case http.MethodDelete:
		h.RemoveItem(w, r)
	default:
		methodNotAllowed(w, r, h.logger)
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.service.Get(r.Context()), h.logger)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.service.Clear(r.Context()), h.logger)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}

	summary, err := h.service.Add(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, summary, h.logger)
}

// UpdateItem handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID := pathID(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	var req UpdateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.Quantity == nil {
		writeDomainError(w, r, model.ErrInvalidQuantity, h.logger)
		return
	}

	quantity, err := req.Quantity.Int64()
	if err != nil {
		writeDomainError(w, r, model.ErrInvalidQuantity, h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, h.service.UpdateQuantity(r.Context(), productID, int(quantity)), h.logger)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := pathID(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	writeJSON(w, r, http.StatusOK, h.service.Remove(r.Context(), productID), h.logger)
}
