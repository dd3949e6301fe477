package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/appfuel/purchasekit/internal/models"
	service "github.com/appfuel/purchasekit/internal/services"
	pkgerrors "github.com/appfuel/purchasekit/pkg/errors"
	"github.com/gorilla/mux"
)

// Catalog seeds previously-fetched products so host applications can keep
// the purchase catalog in sync.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Put(ctx context.Context, product *models.Product) error
}

type Handler struct {
	purchases service.PurchaseService
	restores  service.RestoreService
	catalog   Catalog
}

func NewHandler(purchases service.PurchaseService, restores service.RestoreService, catalog Catalog) *Handler {
	return &Handler{purchases: purchases, restores: restores, catalog: catalog}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/purchase", h.Purchase).Methods("POST")
	r.HandleFunc("/restore", h.Restore).Methods("POST")
	r.HandleFunc("/products", h.PutProduct).Methods("PUT")
}

// Purchase runs an external-origin purchase for a catalog product. The
// terminal outcome is always reported with 200; only malformed requests
// and catalog misses map to error statuses.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	product, err := h.catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrProductUnavailable) {
			h.writeError(w, http.StatusNotFound, err)
		} else {
			h.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	result := h.purchases.Purchase(r.Context(), models.ExternalPurchase(product))

	response := map[string]string{"state": string(result.State)}
	if result.Err != nil {
		response["error"] = result.Err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	result := h.restores.Restore(r.Context(), models.ExternalRestore())

	response := map[string]string{"state": string(result.State)}
	if result.Err != nil {
		response["error"] = result.Err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) PutProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if product.ID == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("product id is required"))
		return
	}

	if err := h.catalog.Put(r.Context(), &product); err != nil {
		slog.Error("failed to store product", "product_id", product.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
