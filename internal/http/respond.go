package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/samirnagib/app-lista-compras/internal/geo"
	"github.com/samirnagib/app-lista-compras/internal/repository"
	"github.com/samirnagib/app-lista-compras/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: details,
	})
}

// handleServiceError maps service and repository errors onto HTTP
// statuses. Anything unrecognized is a 500.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrListNotFound):
		respondError(w, http.StatusNotFound, "list_not_found", "shopping list not found")
	case errors.Is(err, repository.ErrNoCurrentList):
		respondError(w, http.StatusNotFound, "no_current_list", "no current list set")
	case errors.Is(err, service.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found in list")
	case errors.Is(err, service.ErrEmptyListName):
		respondError(w, http.StatusBadRequest, "invalid_name", "list name must not be empty")
	case errors.Is(err, geo.ErrLocationUnavailable):
		respondError(w, http.StatusServiceUnavailable, "location_unavailable", "could not resolve user location")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
