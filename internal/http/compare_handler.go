package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samirnagib/app-lista-compras/internal/catalog"
	"github.com/samirnagib/app-lista-compras/internal/compare"
	"github.com/samirnagib/app-lista-compras/internal/service"
)

type CompareHandler struct {
	lists   *service.ListService
	compare *service.CompareService
}

func NewCompareHandler(lists *service.ListService, cmp *service.CompareService) *CompareHandler {
	return &CompareHandler{lists: lists, compare: cmp}
}

type SectionsResponseDTO struct {
	ListID   string            `json:"list_id"`
	Sections []catalog.Section `json:"sections"`
}

type CompareResponseDTO struct {
	ListID     string               `json:"list_id"`
	Totals     []compare.StoreTotal `json:"totals"`
	CheapestID string               `json:"cheapest_id,omitempty"`
}

// GetSections renders the list grouped by supermarket section.
func (h *CompareHandler) GetSections(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.GetList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sections := catalog.Sectionize(list.Products)
	if sections == nil {
		sections = []catalog.Section{}
	}
	respondJSON(w, http.StatusOK, SectionsResponseDTO{
		ListID:   list.ID,
		Sections: sections,
	})
}

// Compare runs a price-comparison session for the list. An empty totals
// slice means no supermarkets were found nearby; that is a valid
// response, not an error.
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.GetList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.compare.Compare(r.Context(), list)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	totals := result.Totals
	if totals == nil {
		totals = []compare.StoreTotal{}
	}
	respondJSON(w, http.StatusOK, CompareResponseDTO{
		ListID:     list.ID,
		Totals:     totals,
		CheapestID: result.CheapestID,
	})
}
