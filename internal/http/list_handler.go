package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samirnagib/app-lista-compras/internal/catalog"
	"github.com/samirnagib/app-lista-compras/internal/domain"
	"github.com/samirnagib/app-lista-compras/internal/service"
	"github.com/shopspring/decimal"
)

type ListHandler struct {
	lists *service.ListService
}

func NewListHandler(lists *service.ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

type CreateListRequestDTO struct {
	Name string `json:"name"`
}

type ProductRequestDTO struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Category  string          `json:"category"`
	Checked   bool            `json:"checked"`
}

type BudgetRequestDTO struct {
	Budget decimal.Decimal `json:"budget"`
}

type SelectSupermarketRequestDTO struct {
	SupermarketID string `json:"supermarket_id"`
}

type CurrentListRequestDTO struct {
	ListID string `json:"list_id"`
}

type ListResponseDTO struct {
	*domain.ShoppingList
	Summary domain.BudgetSummary `json:"summary"`
}

func listResponse(list *domain.ShoppingList) ListResponseDTO {
	return ListResponseDTO{
		ShoppingList: list,
		Summary:      domain.SummarizeBudget(list.Budget, list.Products),
	}
}

// validate rejects input the core's arithmetic is not defined for.
func (p ProductRequestDTO) validate() (code, details string) {
	if strings.TrimSpace(p.Name) == "" {
		return "invalid_name", "product name must not be empty"
	}
	if p.Quantity <= 0 {
		return "invalid_quantity", "quantity must be positive"
	}
	if p.UnitPrice.IsNegative() {
		return "invalid_unit_price", "unit price must not be negative"
	}
	if p.Category != "" && !catalog.KnownLabel(p.Category) {
		return "invalid_category", "unknown section label"
	}
	return "", ""
}

func (p ProductRequestDTO) toDomain(id string) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      p.Name,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		ImageURL:  p.ImageURL,
		Category:  p.Category,
		Checked:   p.Checked,
	}
}

func (h *ListHandler) GetAllLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.GetAllLists(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if lists == nil {
		lists = []*domain.ShoppingList{}
	}
	respondJSON(w, http.StatusOK, lists)
}

func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req CreateListRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	list, err := h.lists.CreateList(r.Context(), req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, listResponse(list))
}

func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.GetList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse(list))
}

func (h *ListHandler) RenameList(w http.ResponseWriter, r *http.Request) {
	var req CreateListRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	list, err := h.lists.RenameList(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse(list))
}

func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	if err := h.lists.DeleteList(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) DuplicateList(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.DuplicateList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, listResponse(list))
}

func (h *ListHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if code, details := req.validate(); code != "" {
		respondError(w, http.StatusBadRequest, code, details)
		return
	}

	list, err := h.lists.AddProduct(r.Context(), chi.URLParam(r, "id"), req.toDomain(""))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, listResponse(list))
}

func (h *ListHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if code, details := req.validate(); code != "" {
		respondError(w, http.StatusBadRequest, code, details)
		return
	}

	list, err := h.lists.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req.toDomain(chi.URLParam(r, "productID")))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse(list))
}

func (h *ListHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.RemoveProduct(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "productID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse(list))
}

func (h *ListHandler) ToggleChecked(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.ToggleChecked(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "productID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse(list))
}

func (h *ListHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req BudgetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Budget.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_budget", "budget must not be negative")
		return
	}

	list, err := h.lists.SetBudget(r.Context(), chi.URLParam(r, "id"), req.Budget)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse(list))
}

func (h *ListHandler) SelectSupermarket(w http.ResponseWriter, r *http.Request) {
	var req SelectSupermarketRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.SupermarketID == "" {
		respondError(w, http.StatusBadRequest, "invalid_supermarket_id", "supermarket_id must not be empty")
		return
	}

	list, err := h.lists.SelectSupermarket(r.Context(), chi.URLParam(r, "id"), req.SupermarketID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse(list))
}

func (h *ListHandler) GetCurrentList(w http.ResponseWriter, r *http.Request) {
	id, err := h.lists.CurrentListID(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CurrentListRequestDTO{ListID: id})
}

func (h *ListHandler) SetCurrentList(w http.ResponseWriter, r *http.Request) {
	var req CurrentListRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.lists.SetCurrentListID(r.Context(), req.ListID); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CurrentListRequestDTO{ListID: req.ListID})
}
