package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mblanco/stockroom-be/internal/services"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service services.CategoryServiceProvider
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service services.CategoryServiceProvider) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryPayload defines the structure for category creation requests.
type CategoryPayload struct {
	Name string `json:"name"`
}

// List returns every category.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// Create persists a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CategoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	category, err := h.service.CreateCategory(payload.Name)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			respondError(w, http.StatusConflict, "Category already exists")
			return
		}
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create category")
		respondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	respondJSON(w, http.StatusCreated, category)
}
