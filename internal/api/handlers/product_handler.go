package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mblanco/stockroom-be/internal/auth"
	"github.com/mblanco/stockroom-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ProductHandler handles HTTP requests for products. All routes sit behind
// the session middleware; the owner is always the session user.
type ProductHandler struct {
	service services.ProductServiceProvider
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service services.ProductServiceProvider) *ProductHandler {
	return &ProductHandler{service: service}
}

// CreateProductPayload defines the structure for product creation requests.
// Any client-supplied owner field is ignored.
type CreateProductPayload struct {
	Name       string  `json:"name"`
	CategoryID int64   `json:"category_id"`
	Rack       *string `json:"rack"`
	Bin        *string `json:"bin"`
}

// UpdateProductPayload defines the structure for partial product updates.
// Omitted rack/bin leave the stored value unchanged; explicit nulls clear it.
type UpdateProductPayload struct {
	Name string         `json:"name"`
	Rack optionalString `json:"rack"`
	Bin  optionalString `json:"bin"`
}

// Create persists a new product owned by the session user.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Login required")
		return
	}

	var payload CreateProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" || payload.CategoryID == 0 {
		respondError(w, http.StatusBadRequest, "name & category_id required")
		return
	}

	product, err := h.service.CreateProduct(userID, payload.Name, payload.CategoryID, payload.Rack, payload.Bin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			respondError(w, http.StatusBadRequest, "category does not exist")
		case errors.Is(err, services.ErrConflict):
			respondError(w, http.StatusConflict, "Product name taken")
		default:
			log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create product")
			respondError(w, http.StatusInternalServerError, "Failed to create product")
		}
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// Update applies a partial update to a product owned by the session user.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Login required")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var payload UpdateProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	product, err := h.service.UpdateProduct(userID, productID, services.ProductUpdate{
		Name:    payload.Name,
		Rack:    payload.Rack.Value,
		RackSet: payload.Rack.Set,
		Bin:     payload.Bin.Value,
		BinSet:  payload.Bin.Set,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, services.ErrConflict):
			respondError(w, http.StatusConflict, "Product name taken")
		default:
			log.Error().Err(err).Int64("product_id", productID).Msg("Failed to update product")
			respondError(w, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Delete removes a product owned by the session user.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Login required")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.service.DeleteProduct(userID, productID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Int64("product_id", productID).Msg("Failed to delete product")
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	respondMessage(w, http.StatusOK, "Product deleted")
}
