package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rahulvj/atm-inventory-be/internal/apperr"
	"github.com/rahulvj/atm-inventory-be/internal/services"
	ws "github.com/rahulvj/atm-inventory-be/internal/websocket"
)

// ProductHandler handles HTTP requests for the product inventory.
type ProductHandler struct {
	service  services.ProductServiceProvider
	eventSvc services.EventServiceProvider
	hub      *ws.Hub
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service services.ProductServiceProvider, eventSvc services.EventServiceProvider, hub *ws.Hub) *ProductHandler {
	return &ProductHandler{service: service, eventSvc: eventSvc, hub: hub}
}

// productID resolves the {id} URL parameter. A mutating route reached
// without a usable id means no row was selected.
func productID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, apperr.Selection("no product selected")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Selection("no product selected")
	}
	return id, nil
}

// notifyChange records an audit event and pushes a change notification so
// connected screens reload their listing.
func (h *ProductHandler) notifyChange(eventType, message string, productID *int64) {
	if err := h.eventSvc.CreateEvent(eventType, "info", message, productID); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record audit event")
	}
	if h.hub != nil {
		h.hub.Broadcast <- ws.NewMessage(ws.ActionInventoryChanged, map[string]string{"type": eventType})
	}
}

// GetAll returns every product in storage order.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Create adds a new product from raw form fields.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	product, err := h.service.Add(input)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notifyChange("product.created", fmt.Sprintf("Product %q added", product.Name), &product.ID)
	writeJSON(w, http.StatusCreated, product)
}

// Update overwrites the selected product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var input services.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	product, err := h.service.Update(id, input)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notifyChange("product.updated", fmt.Sprintf("Product %q updated", product.Name), &product.ID)
	writeJSON(w, http.StatusOK, product)
}

// Delete removes the selected product. Deleting an id that is already gone
// is reported as success.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Remove(id); err != nil {
		log.Error().Err(err).Int64("product_id", id).Msg("Failed to delete product")
		writeError(w, err)
		return
	}

	h.notifyChange("product.deleted", fmt.Sprintf("Product %d deleted", id), &id)
	w.WriteHeader(http.StatusNoContent)
}

// LowStock returns every product below the stock threshold.
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.LowStock(services.LowStockThreshold)
	if err != nil {
		log.Error().Err(err).Msg("Failed to query low-stock products")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// SalesSummary returns the summed price*quantity over all products.
func (h *ProductHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.SalesSummary()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute sales summary")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":     total,
		"formatted": fmt.Sprintf("%.2f", total),
	})
}
